package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObservePhase(t *testing.T) {
	m := New()
	m.ObservePhase("closure", 1500*time.Millisecond, 4, 0, 3)

	if got := testutil.ToFloat64(m.phaseDuration.WithLabelValues("closure")); got != 1.5 {
		t.Errorf("phase_duration_seconds = %v, want 1.5", got)
	}
	if got := testutil.ToFloat64(m.phaseUnits.WithLabelValues("closure")); got != 4 {
		t.Errorf("phase_units_added = %v, want 4", got)
	}
	if got := testutil.ToFloat64(m.phaseMathOps.WithLabelValues("closure")); got != 3 {
		t.Errorf("phase_math_ops_added = %v, want 3", got)
	}
}

func TestObserveClosure(t *testing.T) {
	m := New()
	m.ObserveClosure(3, true)
	if got := testutil.ToFloat64(m.closureStable); got != 1 {
		t.Errorf("closure_stable = %v, want 1", got)
	}
	m.ObserveClosure(10, false)
	if got := testutil.ToFloat64(m.closureStable); got != 0 {
		t.Errorf("closure_stable = %v, want 0", got)
	}
	if got := testutil.ToFloat64(m.closureRounds); got != 10 {
		t.Errorf("closure_rounds = %v, want 10", got)
	}
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	m.ObservePhase("seed", time.Second, 1, 1, 1)
	m.ObserveBlock("base", 7)
	m.ObserveClosure(1, true)
	m.SetUnits("base", 7)
	m.SetHostedOps(1)
	m.SetFilesWritten(1)
	if err := m.WriteTextfile(filepath.Join(t.TempDir(), "x.prom")); err != nil {
		t.Errorf("nil WriteTextfile: %v", err)
	}
	if m.Registry() != nil {
		t.Error("nil metrics should have no registry")
	}
}

func TestWriteTextfile(t *testing.T) {
	m := New()
	m.SetUnits("base", 7)
	m.ObserveBlock("si", 12)
	m.SetHostedOps(42)

	path := filepath.Join(t.TempDir(), "unitgen.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{
		`unitgen_units{tag="base"} 7`,
		`unitgen_block_candidates{block="si"} 12`,
		`unitgen_hosted_ops 42`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("textfile missing %q:\n%s", want, text)
		}
	}
}
