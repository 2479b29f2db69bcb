package signal

// Tuning holds the constants of one animation variant.
type Tuning struct {
	SpeedMin, SpeedMax           float64 // px/s for regular spawns
	BurstSpeedMin, BurstSpeedMax float64 // px/s for click bursts
	TealChance                   float64 // probability of ColorTeal

	TrailCap   int     // stored trail points
	TrailDecay float64 // per-step multiplier on stored trail alpha

	FadeAfter   float64 // T past which blocked segments fade
	FadeRate    float64 // alpha lost per second while fading
	RecoverRate float64 // alpha regained per second otherwise
	RemoveAlpha float64 // removal threshold

	// IgnoreBlocking treats every segment as allowed.
	IgnoreBlocking bool
}

// Consent returns the consent-aware hero tuning.
func Consent() Tuning {
	return Tuning{
		SpeedMin: 62, SpeedMax: 98,
		BurstSpeedMin: 86, BurstSpeedMax: 124,
		TealChance:  0.74,
		TrailCap:    9,
		TrailDecay:  0.84,
		FadeAfter:   0.24,
		FadeRate:    2.1,
		RecoverRate: 0.6,
		RemoveAlpha: 0.03,
	}
}

// Backdrop returns the decorative backdrop tuning.
func Backdrop() Tuning {
	return Tuning{
		SpeedMin: 70, SpeedMax: 110,
		BurstSpeedMin: 70, BurstSpeedMax: 110,
		TealChance:     0.76,
		TrailCap:       7,
		TrailDecay:     0.84,
		FadeAfter:      1,
		RecoverRate:    0.4,
		RemoveAlpha:    0.03,
		IgnoreBlocking: true,
	}
}
