package builder

// Method names used as error context.
const (
	MethodBuild           = "Build"
	MethodBuildWithConfig = "BuildWithConfig"
)

//-----------------------------------------------------------------------------
// Placement
//-----------------------------------------------------------------------------

const (
	coreX, coreY     = 0.63, 0.5
	coreRadius       = 7.2
	coreDriftAmp     = 2.2
	coreDriftSpeedLo = 0.16
	coreDriftSpeedHi = 0.34

	sourceXLo, sourceXHi = 0.08, 0.24
	sourceYLo, sourceYHi = 0.14, 0.84
	sourceJitter         = 0.06
	sourceRadius         = 3.4

	destXLo, destXHi = 0.76, 0.94
	destYLo, destYHi = 0.15, 0.88
	destJitter       = 0.055
	destRadius       = 3.6

	relayXLo, relayXHi = 0.2, 0.84
	relayYLo, relayYHi = 0.1, 0.9

	// Anchored nodes never sit closer than 8% to the top or bottom edge.
	marginYLo, marginYHi = 0.08, 0.92

	// Cumulative layer odds: 38% far, 40% mid, 22% near.
	layerFarCut = 0.38
	layerMidCut = 0.78
)

// Drift ranges per role: [speedLo, speedHi, ampLo, ampHi].
var (
	sourceDrift = [4]float64{0.18, 0.36, 1.2, 4.2}
	destDrift   = [4]float64{0.18, 0.34, 1.1, 4.4}
	relayDrift  = [4]float64{0.18, 0.42, 0.8, 3.6}
)

// relayRadius is indexed by layer.
var relayRadius = [3]float64{2.1, 2.8, 3.5}

// Display labels; rotated when counts exceed the list.
var (
	SourceLabels      = []string{"Web", "Mobile SDK", "Tags", "CRM", "CMP", "API Gateway", "Edge SDK"}
	DestinationLabels = []string{"Policy Core", "CDP", "Data Lake", "Ads", "Warehouse", "Attribution", "Analytics"}
)

//-----------------------------------------------------------------------------
// Wiring and geometry
//-----------------------------------------------------------------------------

const (
	// anchorNeighbors is how many same-side neighbours each source/destination joins.
	anchorNeighbors = 2

	curveFactorLo, curveFactorHi = 0.05, 0.12
	curveMin, curveMax           = 7.0, 32.0

	dottedChance = 0.12

	// DefaultLengthSamples is the polyline resolution for edge arc lengths.
	DefaultLengthSamples = 14

	// coreProximityReach scales max(w,h) into the distance at which proximity hits 0.
	coreProximityReach = 0.56
)

// Cumulative category odds for edges touching a source.
var sourceThresholds = [3]float64{0.5, 0.85, 0.95}

// DefaultRelayThresholds are the cumulative essential/functional/analytics
// odds for edges touching neither a source nor a destination.
var DefaultRelayThresholds = [3]float64{0.32, 0.67, 0.87}
