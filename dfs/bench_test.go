package dfs_test

import (
	"testing"

	"github.com/katalvlaran/consentflow/builder"
	"github.com/katalvlaran/consentflow/dfs"
	"github.com/katalvlaran/consentflow/profile"
)

// BenchmarkBridges_DesktopHigh measures bridge detection on the largest
// desktop network.
func BenchmarkBridges_DesktopHigh(b *testing.B) {
	g, err := builder.Build(1920, 1080, false, profile.DensityHigh, 42)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = dfs.Bridges(g)
	}
}
