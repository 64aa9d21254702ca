package model

import "testing"

func TestRiskLevelRank(t *testing.T) {
	ordered := []RiskLevel{RiskNone, RiskLow, RiskMedium, RiskHigh, RiskCritical}

	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].Rank() >= ordered[i].Rank() {
			t.Errorf("Rank order broken: %v (%d) >= %v (%d)",
				ordered[i-1], ordered[i-1].Rank(), ordered[i], ordered[i].Rank())
		}
	}

	if RiskLevel("bogus").Rank() != -1 {
		t.Errorf("unknown level rank = %d, want -1", RiskLevel("bogus").Rank())
	}
	if RiskLevel("bogus").Valid() {
		t.Error("unknown level reported valid")
	}
}

func TestMaxRiskLevel(t *testing.T) {
	tests := []struct {
		a, b, want RiskLevel
	}{
		{RiskNone, RiskLow, RiskLow},
		{RiskCritical, RiskLow, RiskCritical},
		{RiskMedium, RiskMedium, RiskMedium},
		{RiskHigh, RiskCritical, RiskCritical},
		// Lexical comparison would pick "medium" > "critical"; ordinal must not.
		{RiskCritical, RiskMedium, RiskCritical},
	}

	for _, tt := range tests {
		if got := MaxRiskLevel(tt.a, tt.b); got != tt.want {
			t.Errorf("MaxRiskLevel(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
