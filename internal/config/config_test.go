package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
[server]
http_port = 9090

[database]
host = "db"
user = "booking"
dbname = "facility"

[facility]
timezone = "Asia/Bangkok"

[booking]
pending_timeout_minutes = 15

[auth]
jwt_secret = "from-file"
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, sample)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, 15*time.Minute, cfg.Booking.PendingTimeout())
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, "payment.exchange", cfg.RabbitMQ.PaymentExchange)

	loc, err := cfg.Facility.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Bangkok", loc.String())
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	path := writeConfig(t, sample)
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("RABBIT_URL", "amqp://guest:guest@mq:5672/")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.RabbitMQ.URL)
	assert.Contains(t, cfg.Database.DSN(), "password=s3cret")
}

func TestLoad_DotEnv(t *testing.T) {
	path := writeConfig(t, sample)
	require.NoError(t, os.WriteFile(".env", []byte("OMISE_PUBLIC_KEY=pkey_test\nOMISE_SECRET_KEY=skey_test\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("OMISE_PUBLIC_KEY")
		os.Unsetenv("OMISE_SECRET_KEY")
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "pkey_test", cfg.Payment.PublicKey)
	assert.Equal(t, "skey_test", cfg.Payment.SecretKey)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := defaults()
		c.Auth.JWTSecret = "x"
		return c
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad port", func(c *Config) { c.Server.HTTPPort = 0 }},
		{"bad timezone", func(c *Config) { c.Facility.Timezone = "Mars/Olympus" }},
		{"zero pending timeout", func(c *Config) { c.Booking.PendingTimeoutMinutes = 0 }},
		{"missing jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"payment without keys", func(c *Config) { c.Payment.Enabled = true }},
		{"rabbit without url", func(c *Config) { c.RabbitMQ.Enabled = true }},
		{"reminder interval longer than window", func(c *Config) { c.Worker.ReminderInterval = 3601 }},
		{"negative reminder interval", func(c *Config) { c.Worker.ReminderInterval = -1 }},
		{"negative sweep interval", func(c *Config) { c.Worker.SweepInterval = -5 }},
	}

	require.NoError(t, valid().Validate())

	edge := valid()
	edge.Worker.ReminderInterval = 3600
	require.NoError(t, edge.Validate(), "interval equal to the window still covers every booking")

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.ErrorIs(t, c.Validate(), ErrInvalidConfig)
		})
	}
}
