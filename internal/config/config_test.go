package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dl0057754/Wex-PB-Tool/enrichment"
	"github.com/Dl0057754/Wex-PB-Tool/templates"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, enrichment.StrategyRuleBased, cfg.Strategy)
	assert.Equal(t, templates.KindBundle, cfg.Template)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, templates.DefaultLaborRate, cfg.LaborRate)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
	assert.Equal(t, 2*time.Second, cfg.LookupPace)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENRICHMENT_STRATEGY", "oem_lookup")
	t.Setenv("OUTPUT_TEMPLATE", "supplier_loader")
	t.Setenv("LOOKUP_BRAND", "Trane")
	t.Setenv("LOOKUP_DOMAIN", "ferguson.com")
	t.Setenv("LABOR_RATE", "99.50")
	t.Setenv("CONFIDENCE_THRESHOLD", "80")
	t.Setenv("LOOKUP_PACE", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, enrichment.StrategyOEM, cfg.Strategy)
	assert.Equal(t, templates.KindSupplierLoader, cfg.Template)
	assert.Equal(t, "Trane", cfg.LookupBrand)
	assert.Equal(t, 99.50, cfg.LaborRate)
	assert.Equal(t, 80, cfg.Threshold)
	assert.Equal(t, 5*time.Second, cfg.LookupPace)
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad strategy", map[string]string{"ENRICHMENT_STRATEGY": "magic"}},
		{"bad template", map[string]string{"OUTPUT_TEMPLATE": "fancy"}},
		{"threshold out of range", map[string]string{"CONFIDENCE_THRESHOLD": "101"}},
		{"ai without key", map[string]string{"ENRICHMENT_STRATEGY": "ai_assisted"}},
		{"oem with unknown brand", map[string]string{
			"ENRICHMENT_STRATEGY": "oem_lookup",
			"LOOKUP_BRAND":        "Acme",
		}},
		{"oem with unknown domain", map[string]string{
			"ENRICHMENT_STRATEGY": "oem_lookup",
			"LOOKUP_DOMAIN":       "example.org",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestAIStrategyWithKey(t *testing.T) {
	t.Setenv("ENRICHMENT_STRATEGY", "ai_assisted")
	t.Setenv("AI_API_KEY", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "secret", cfg.AIAPIKey)
}
