package service

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestDefaultConfigsWellFormed(t *testing.T) {
	if len(defaultConfigs) != 11 {
		t.Fatalf("default configs = %d, want 11", len(defaultConfigs))
	}

	seen := make(map[string]bool)
	for _, cfg := range defaultConfigs {
		if cfg.Key == "" || cfg.Category == "" || cfg.Description == "" {
			t.Errorf("config %q incomplete", cfg.Key)
		}
		if seen[cfg.Key] {
			t.Errorf("duplicate config key %q", cfg.Key)
		}
		seen[cfg.Key] = true

		var value map[string]any
		if err := json.Unmarshal(cfg.Value, &value); err != nil {
			t.Errorf("config %q value is not a JSON object: %v", cfg.Key, err)
		}
	}

	for _, key := range []string{"ai_model_config", "feature_flags", "api_rate_limits", "account_config"} {
		if !seen[key] {
			t.Errorf("missing default config %q", key)
		}
	}
}

// License keys land in a unique column, so registering two schools without a
// key must produce two distinct generated keys.
func TestNewLicenseKey(t *testing.T) {
	first := newLicenseKey()
	second := newLicenseKey()

	for _, key := range []string{first, second} {
		if !strings.HasPrefix(key, "SCH-") {
			t.Errorf("key %q missing SCH- prefix", key)
		}
		if len(key) != len("SCH-")+8 {
			t.Errorf("key %q has wrong length", key)
		}
		if key != strings.ToUpper(key) {
			t.Errorf("key %q is not uppercase", key)
		}
	}
	if first == second {
		t.Errorf("consecutive keys collide: %q", first)
	}
}
