package cmd

import (
	"testing"

	"github.com/theirongolddev/spent/internal/config"
)

func TestConfigSet_PieChartThreshold(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	// Zero reads back as an absent key and would silently revert to the
	// default on the next load, so it is rejected up front.
	for _, bad := range []string{"0", "-1", "101", "lots"} {
		if err := runConfigSet(nil, []string{"pie_chart_threshold", bad}); err == nil {
			t.Errorf("value %q: expected error", bad)
		}
	}

	if err := runConfigSet(nil, []string{"pie_chart_threshold", "5.5"}); err != nil {
		t.Fatalf("set 5.5: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Limits.PieChartThreshold != 5.5 {
		t.Errorf("PieChartThreshold = %v, want 5.5", cfg.Limits.PieChartThreshold)
	}
}
