package service

import (
	"testing"
	"time"
)

func TestRankFor(t *testing.T) {
	tests := []struct {
		points int
		want   string
	}{
		{0, "Starter"},
		{49, "Starter"},
		{50, "Explorer"},
		{200, "Achiever"},
		{500, "Champion"},
	}
	for _, tt := range tests {
		if got := rankFor(tt.points); got != tt.want {
			t.Errorf("rankFor(%d) = %q, want %q", tt.points, got, tt.want)
		}
	}
}

func TestMidnight(t *testing.T) {
	loc := time.FixedZone("IST", 5*3600+1800)
	at := time.Date(2025, 3, 14, 23, 59, 58, 0, loc)

	got := midnight(at)
	want := time.Date(2025, 3, 14, 0, 0, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("midnight = %v, want %v", got, want)
	}
}
