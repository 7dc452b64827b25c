package hardware_test

import (
	"testing"

	"github.com/gauntlet-bench/gauntlet/internal/hardware"
)

func TestLogicalCores(t *testing.T) {
	if n := hardware.LogicalCores(); n < 1 {
		t.Errorf("expected at least 1 core, got %d", n)
	}
}

func TestDefaultWorkers(t *testing.T) {
	n := hardware.DefaultWorkers()
	if n < 1 || n > 16 {
		t.Errorf("default worker budget out of range: %d", n)
	}
}
