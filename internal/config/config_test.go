package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := LoadFile("")
	require.NoError(t, err)

	assert.Equal(t, "woocommerce", cfg.Affiliate.Context)
	assert.Equal(t, 20.0, cfg.Affiliate.DefaultRate)
	assert.False(t, cfg.Affiliate.IgnoreZeroReferrals)
	assert.False(t, cfg.Affiliate.RevokeOnRefund)
	assert.Equal(t, "local", cfg.Storage.Provider)
	assert.Equal(t, "none", cfg.Publisher.Provider)
}

func TestLoadFileThenEnvOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
app:
  port: 9000
affiliate:
  default_rate: 12.5
  revoke_on_refund: true
  visit_ttl: 48h
kafka:
  brokers: ["kafka-1:9092", "kafka-2:9092"]
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))
	t.Setenv("AFFILIATE_IGNORE_ZERO_REFERRALS", "true")
	t.Setenv("APP_PORT", "9100")

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.App.Port)
	assert.Equal(t, 12.5, cfg.Affiliate.DefaultRate)
	assert.True(t, cfg.Affiliate.RevokeOnRefund)
	assert.True(t, cfg.Affiliate.IgnoreZeroReferrals)
	assert.Equal(t, 48*time.Hour, cfg.Affiliate.VisitTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	// fields absent from the file keep their defaults
	assert.Equal(t, "woocommerce", cfg.Affiliate.Context)
	assert.Equal(t, "referralbridge-orders", cfg.Kafka.GroupID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsNegativeRate(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("AFFILIATE_DEFAULT_RATE", "-1")

	_, err := LoadFile("")
	assert.Error(t, err)
}

func TestValidateRequiresWebhookSecretInProduction(t *testing.T) {
	t.Setenv("APP_ENV", "production")

	_, err := LoadFile("")
	assert.Error(t, err)

	t.Setenv("WEBHOOK_SECRET", "s3cret")
	_, err = LoadFile("")
	assert.NoError(t, err)
}

func TestGetEnvAsSliceTrims(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", " a:1 , ,b:2")
	assert.Equal(t, []string{"a:1", "b:2"}, getEnvAsSlice("KAFKA_BROKERS", nil))
}

func TestEnvironmentFromFile(t *testing.T) {
	t.Setenv("APP_ENV", "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app:\n  environment: production\nsecurity:\n  webhook_secret: s3cret\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, cfg.App.IsProduction())
	assert.False(t, cfg.App.IsDevelopment())

	assert.True(t, (&AppConfig{}).IsDevelopment())
	assert.True(t, (&AppConfig{Environment: "development"}).IsDevelopment())
	assert.False(t, (&AppConfig{Environment: "staging"}).IsProduction())
}
