package engine_test

import (
	"fmt"
	"time"

	"github.com/katalvlaran/consentflow/engine"
	"github.com/katalvlaran/consentflow/paint"
	"github.com/katalvlaran/consentflow/scheduler"
)

// ExampleInstance mounts the hero on an offscreen host and steps one
// second of frames.
func ExampleInstance() {
	sched := scheduler.NewManual()
	rec := &paint.Recorder{}
	host := engine.NewBasicHost(engine.Bounds{Width: 1280, Height: 720}, rec, sched)

	inst, err := engine.New(host, engine.WithSeed(42))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if err := inst.Start(); err != nil {
		fmt.Println("error:", err)
		return
	}
	defer inst.Stop()

	for k := 0; k < 60; k++ {
		sched.Step(time.Second / 60)
	}

	s := inst.Snapshot()
	fmt.Println("nodes:", s.Nodes, "routes:", s.Routes)
	fmt.Println("frames painted:", rec.Frames)
	// Output:
	// nodes: 58 routes: 42
	// frames painted: 60
}
