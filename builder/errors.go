// SPDX-License-Identifier: MIT
// Package: consentflow/builder
//
// errors.go - sentinel errors for the builder package.
//
// Error policy:
//   - Only sentinel variables are exposed; callers branch with errors.Is.
//   - Implementations attach method context with %w (builderErrorf).
//   - Option constructors panic on nonsense; Build never panics.

package builder

import (
	"errors"
	"fmt"
)

// ErrInvalidDensity indicates a density tier outside low/medium/high.
var ErrInvalidDensity = errors.New("builder: invalid density")

// ErrBadRuntimeConfig indicates a RuntimeConfig that cannot yield a network
// (no sources, no destinations, or a negative node budget).
var ErrBadRuntimeConfig = errors.New("builder: invalid runtime config")

// ErrConstructFailed indicates that the assembled nodes and edges were
// rejected by core.NewGraph. It signals a bug in the pipeline, never bad input.
var ErrConstructFailed = errors.New("builder: construction failed")

// builderErrorf prefixes an error with method context, keeping %w chains intact.
func builderErrorf(method, format string, args ...interface{}) error {
	return fmt.Errorf("%s: "+format, append([]interface{}{method}, args...)...)
}
