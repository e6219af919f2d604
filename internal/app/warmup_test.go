package app

import (
	"testing"
	"time"
)

func TestHeatCpuReturnsAfterDuration(t *testing.T) {
	start := time.Now()
	heatCpu(2, 20*time.Millisecond)
	if elapsed := time.Since(start); elapsed > 500*time.Millisecond {
		t.Fatalf("heatCpu took %v, want roughly 20ms", elapsed)
	}
}
