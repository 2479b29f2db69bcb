package metrics

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.FramesTotal == nil || r.GraphNodes == nil || r.RoutesBlocked == nil {
		t.Error("collectors not initialized")
	}
	if r.GetPrometheusRegistry() == nil {
		t.Error("Prometheus registry not initialized")
	}
}

func TestDefaultRegistry(t *testing.T) {
	if DefaultRegistry() != DefaultRegistry() {
		t.Error("DefaultRegistry() should return the same instance")
	}
}

func TestRecordFrame(t *testing.T) {
	r := NewRegistry()
	r.RecordFrame(false, 4*time.Millisecond, 12)
	r.RecordFrame(false, 5*time.Millisecond, 14)
	r.RecordFrame(true, time.Millisecond, 0)

	if got := testutil.ToFloat64(r.FramesTotal.WithLabelValues("animated")); got != 2 {
		t.Errorf("animated frames = %v, want 2", got)
	}
	if got := testutil.ToFloat64(r.FramesTotal.WithLabelValues("static")); got != 1 {
		t.Errorf("static frames = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.SignalsLive); got != 0 {
		t.Errorf("live signals = %v, want 0", got)
	}

	var m dto.Metric
	if err := r.FrameDuration.Write(&m); err != nil {
		t.Fatalf("Failed to write metric: %v", err)
	}
	if m.Histogram.GetSampleCount() != 3 {
		t.Errorf("frame samples = %d, want 3", m.Histogram.GetSampleCount())
	}
}

func TestRecordSignals(t *testing.T) {
	r := NewRegistry()
	r.RecordSpawn(false, true)
	r.RecordSpawn(true, true)
	r.RecordSpawn(true, true)
	r.RecordSpawn(false, false)
	r.RecordFinished(3, 0)
	r.RecordFinished(1, 2)

	cases := []struct {
		name string
		got  float64
		want float64
	}{
		{"regular", testutil.ToFloat64(r.SignalsSpawnedTotal.WithLabelValues("regular")), 1},
		{"burst", testutil.ToFloat64(r.SignalsSpawnedTotal.WithLabelValues("burst")), 2},
		{"dropped", testutil.ToFloat64(r.SignalsDroppedTotal), 1},
		{"completed", testutil.ToFloat64(r.SignalsFinishedTotal.WithLabelValues("completed")), 4},
		{"faded", testutil.ToFloat64(r.SignalsFinishedTotal.WithLabelValues("faded")), 2},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
}

func TestNetworkMetrics(t *testing.T) {
	r := NewRegistry()
	r.RecordRebuild(2*time.Millisecond, 58, 96)
	r.UpdateRoutes(42, 12, 12)
	r.RecordPolicyChange("denied")
	r.RecordConfigReload(nil)
	r.RecordConfigReload(errors.New("bad yaml"))

	expected := `
# HELP consentflow_graph_nodes Number of nodes in the current network
# TYPE consentflow_graph_nodes gauge
consentflow_graph_nodes 58
# HELP consentflow_routes Number of routes under the current policy
# TYPE consentflow_routes gauge
consentflow_routes 42
# HELP consentflow_routes_blocked Routes crossing at least one blocked edge
# TYPE consentflow_routes_blocked gauge
consentflow_routes_blocked 12
`
	if err := testutil.GatherAndCompare(r.GetPrometheusRegistry(), strings.NewReader(expected),
		"consentflow_graph_nodes", "consentflow_routes", "consentflow_routes_blocked"); err != nil {
		t.Error(err)
	}
	if got := testutil.ToFloat64(r.GraphRebuildsTotal); got != 1 {
		t.Errorf("rebuilds = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.ConfigReloadsTotal.WithLabelValues("error")); got != 1 {
		t.Errorf("reload errors = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.PolicyChangesTotal.WithLabelValues("denied")); got != 1 {
		t.Errorf("policy changes = %v, want 1", got)
	}
}

func TestNilRegistryIsNoop(t *testing.T) {
	var r *Registry
	r.RecordFrame(false, time.Millisecond, 1)
	r.RecordSpawn(true, true)
	r.RecordFinished(1, 1)
	r.RecordRebuild(time.Millisecond, 1, 1)
	r.UpdateRoutes(1, 1, 1)
	r.RecordPolicyChange("mixed")
	r.RecordConfigReload(nil)
}
