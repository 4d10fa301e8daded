package update

import (
	"testing"
	"time"
)

func TestComputeDelay(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	interval := 24 * time.Hour

	tests := []struct {
		name      string
		autoCheck bool
		lastCheck time.Time
		haveLast  bool
		wantDelay time.Duration
		wantOK    bool
	}{
		{
			name:      "auto-check disabled schedules nothing",
			autoCheck: false,
			lastCheck: now.Add(-time.Hour),
			haveLast:  true,
			wantOK:    false,
		},
		{
			name:      "no prior check fires immediately",
			autoCheck: true,
			haveLast:  false,
			wantDelay: 0,
			wantOK:    true,
		},
		{
			name:      "interval exactly elapsed fires immediately",
			autoCheck: true,
			lastCheck: now.Add(-interval),
			haveLast:  true,
			wantDelay: 0,
			wantOK:    true,
		},
		{
			name:      "interval partially elapsed waits the remainder",
			autoCheck: true,
			lastCheck: now.Add(-10 * time.Hour),
			haveLast:  true,
			wantDelay: 14 * time.Hour,
			wantOK:    true,
		},
		{
			name:      "interval long overdue clamps to zero",
			autoCheck: true,
			lastCheck: now.Add(-72 * time.Hour),
			haveLast:  true,
			wantDelay: 0,
			wantOK:    true,
		},
		{
			name:      "last check in the future clamps to zero",
			autoCheck: true,
			lastCheck: now.Add(time.Hour),
			haveLast:  true,
			wantDelay: 0,
			wantOK:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotDelay, gotOK := ComputeDelay(tt.autoCheck, interval, tt.lastCheck, tt.haveLast, now)
			if gotOK != tt.wantOK {
				t.Fatalf("ok = %v, want %v", gotOK, tt.wantOK)
			}
			if gotOK && gotDelay != tt.wantDelay {
				t.Errorf("delay = %v, want %v", gotDelay, tt.wantDelay)
			}
			if gotDelay < 0 {
				t.Errorf("delay = %v, must never be negative", gotDelay)
			}
		})
	}
}

// clamping must hold for arbitrary skew, not just one hour.
func TestComputeDelayNeverNegative(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for _, skew := range []time.Duration{time.Second, time.Hour, 240 * time.Hour} {
		delay, ok := ComputeDelay(true, time.Hour, now.Add(skew), true, now)
		if !ok {
			t.Fatalf("skew %v: expected a scheduled check", skew)
		}
		if delay != 0 {
			t.Errorf("skew %v: delay = %v, want 0", skew, delay)
		}
	}
}
