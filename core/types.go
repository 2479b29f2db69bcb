// SPDX-License-Identifier: MIT
// Package: consentflow/core
//
// types.go - roles, categories, layers and the Node/Edge value types.

package core

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/consentflow/geom"
)

// Sentinel errors for graph assembly and token parsing.
var (
	// ErrNoCore indicates that no node carries RoleCore.
	ErrNoCore = errors.New("core: graph has no core node")

	// ErrMultipleCores indicates that more than one node carries RoleCore.
	ErrMultipleCores = errors.New("core: graph has more than one core node")

	// ErrNodeID indicates a Node.ID that does not match its slice position.
	ErrNodeID = errors.New("core: node id does not match its index")

	// ErrEdgeID indicates an Edge.ID that does not match its slice position.
	ErrEdgeID = errors.New("core: edge id does not match its index")

	// ErrEdgeEndpoint indicates an edge endpoint outside the node range.
	ErrEdgeEndpoint = errors.New("core: edge endpoint out of range")

	// ErrSelfLoop indicates an edge joining a node to itself.
	ErrSelfLoop = errors.New("core: self-loop not allowed")

	// ErrDuplicatePair indicates a second edge over an existing unordered pair.
	ErrDuplicatePair = errors.New("core: duplicate endpoint pair")

	// ErrBadLength indicates an edge whose arc length is not strictly positive.
	ErrBadLength = errors.New("core: edge length must be positive")

	// ErrUnknownPolicy indicates an unrecognised consent token.
	ErrUnknownPolicy = errors.New("core: unknown consent policy")

	// ErrUnknownCategory indicates an unrecognised category token.
	ErrUnknownCategory = errors.New("core: unknown category")
)

// Role is the function a node plays in the network.
type Role uint8

const (
	// RoleRelay is an intermediate hop.
	RoleRelay Role = iota
	// RoleCore is the single policy decision point every route crosses.
	RoleCore
	// RoleSource emits traffic (left margin).
	RoleSource
	// RoleDestination receives traffic (right margin) and owns a Category.
	RoleDestination
)

// String returns the lowercase role name.
func (r Role) String() string {
	switch r {
	case RoleCore:
		return "core"
	case RoleSource:
		return "source"
	case RoleDestination:
		return "destination"
	case RoleRelay:
		return "relay"
	default:
		return fmt.Sprintf("role(%d)", uint8(r))
	}
}

// Category classifies the traffic an edge (or destination) carries.
// Categories are ordered from least to most restrictive.
type Category uint8

const (
	// CategoryNone marks nodes that carry no category (core, sources, relays).
	// Policies treat it like CategoryEssential.
	CategoryNone Category = iota
	// CategoryEssential is always allowed.
	CategoryEssential
	// CategoryFunctional is allowed unless consent is fully denied.
	CategoryFunctional
	// CategoryAnalytics requires full consent.
	CategoryAnalytics
	// CategoryMarketing requires full consent.
	CategoryMarketing
)

// Categories lists the concrete categories in restrictiveness order.
var Categories = [...]Category{CategoryEssential, CategoryFunctional, CategoryAnalytics, CategoryMarketing}

// String returns the lowercase category name.
func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryEssential:
		return "essential"
	case CategoryFunctional:
		return "functional"
	case CategoryAnalytics:
		return "analytics"
	case CategoryMarketing:
		return "marketing"
	default:
		return fmt.Sprintf("category(%d)", uint8(c))
	}
}

// ParseCategory maps a lowercase token onto a Category.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "none", "":
		return CategoryNone, nil
	case "essential":
		return CategoryEssential, nil
	case "functional":
		return CategoryFunctional, nil
	case "analytics":
		return CategoryAnalytics, nil
	case "marketing":
		return CategoryMarketing, nil
	default:
		return CategoryNone, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// Stricter returns whichever of a and b is more restrictive.
func Stricter(a, b Category) Category {
	if b > a {
		return b
	}

	return a
}

// Layer is a discrete depth tier: 0 (far) … 2 (near).
// It drives parallax strength and visual prominence.
type Layer uint8

// LayerCount is the number of depth tiers.
const LayerCount = 3

// Clamp returns l limited to the valid range.
func (l Layer) Clamp() Layer {
	if l >= LayerCount {
		return LayerCount - 1
	}

	return l
}

// Node is one vertex of the network. Pos is the base position in canvas
// pixels; the per-frame rendered position adds drift and parallax on top.
type Node struct {
	ID     int
	Role   Role
	Label  string
	Pos    geom.Point
	Layer  Layer
	Radius float64

	// Drift oscillation: offset = (sin(t·Speed+Phase), cos(0.8·t·Speed+Phase)·k)·Amp.
	DriftPhase float64
	DriftSpeed float64
	DriftAmp   float64

	// Category is set on destinations only.
	Category Category
}

// Edge is an undirected quadratic curve A→Control→B.
type Edge struct {
	ID       int
	A, B     int
	Category Category
	Control  geom.Point
	Length   float64 // precomputed arc length, > 0
	Layer    Layer
	Dotted   bool

	// Phase offsets the slow per-edge pulse.
	Phase float64
	// CoreProximity in [0,1] grows as the nearer endpoint approaches the core.
	CoreProximity float64
}

// Other returns the endpoint opposite to id. If id is not an endpoint the
// result is A.
func (e Edge) Other(id int) int {
	if id == e.A {
		return e.B
	}

	return e.A
}

// Touches reports whether id is an endpoint of e.
func (e Edge) Touches(id int) bool {
	return e.A == id || e.B == id
}

// PairKey identifies an unordered endpoint pair; Lo ≤ Hi.
type PairKey struct {
	Lo, Hi int
}

// MakePairKey orders a and b into a PairKey.
func MakePairKey(a, b int) PairKey {
	if a > b {
		a, b = b, a
	}

	return PairKey{Lo: a, Hi: b}
}

// Adjacent is one entry of a node's adjacency list.
type Adjacent struct {
	To     int
	EdgeID int
}
