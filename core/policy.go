package core

import "fmt"

// Policy is the visitor's tri-state consent.
type Policy uint8

const (
	// PolicyMixed allows essential and functional traffic.
	PolicyMixed Policy = iota
	// PolicyGranted allows every category.
	PolicyGranted
	// PolicyDenied allows essential traffic only.
	PolicyDenied
)

// DefaultPolicy is the consent assumed when hosts do not provide one.
const DefaultPolicy = PolicyMixed

// Policies lists every policy value, in display order.
var Policies = [...]Policy{PolicyGranted, PolicyMixed, PolicyDenied}

// String returns the lowercase policy token.
func (p Policy) String() string {
	switch p {
	case PolicyGranted:
		return "granted"
	case PolicyMixed:
		return "mixed"
	case PolicyDenied:
		return "denied"
	default:
		return fmt.Sprintf("policy(%d)", uint8(p))
	}
}

// ParsePolicy maps "granted", "mixed" or "denied" onto a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "granted":
		return PolicyGranted, nil
	case "mixed":
		return PolicyMixed, nil
	case "denied":
		return PolicyDenied, nil
	default:
		return DefaultPolicy, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Allows reports whether traffic of category c may flow under p.
func (p Policy) Allows(c Category) bool {
	switch p {
	case PolicyGranted:
		return true
	case PolicyMixed:
		return c <= CategoryFunctional
	default:
		return c <= CategoryEssential
	}
}

// AllowsEdge is Allows applied to e.Category; it matches the edge-filter
// signature used by shortest-path searches.
func (p Policy) AllowsEdge(e Edge) bool {
	return p.Allows(e.Category)
}
