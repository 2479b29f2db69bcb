// Package signal animates data signals along consent routes.
//
// A Signal walks the segments of a router.Route: each Advance moves its
// parameter T by speed·dt/edgeLength, evaluates the segment's quadratic
// Bézier at the clamped T and records a short decaying trail. On a blocked
// segment the signal fades once T passes FadeAfter and is removed when T
// reaches 1 or its alpha falls to RemoveAlpha.
//
// Pool owns the live population and enforces the per-tier cap: Add beyond
// Max is refused without error.
//
// Two Tunings ship with the package: Consent (the consent-aware hero) and
// Backdrop (the decorative variant, which ignores blocking).
package signal
