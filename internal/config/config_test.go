package config_test

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"foodline-dispatch/internal/config"
)

func resetFlags(t *testing.T) {
	t.Helper()
	old := pflag.CommandLine
	oldArgs := os.Args
	pflag.CommandLine = pflag.NewFlagSet(os.Args[0], pflag.ContinueOnError)
	os.Args = []string{oldArgs[0]}
	t.Cleanup(func() {
		pflag.CommandLine = old
		os.Args = oldArgs
	})
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT",
		"POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_USER", "POSTGRES_PASSWORD", "POSTGRES_DB",
		"KAFKA_BROKERS", "KAFKA_INTAKE_TOPIC", "KAFKA_GROUP_ID", "KAFKA_DELIVERY_TOPIC",
		"DISPATCH_ESCALATION_TIMEOUT", "MAIN_OPERATOR_ID",
		"RATE_LIMIT_ENABLED", "RATE_LIMIT_RATE", "RATE_LIMIT_BURST", "RATE_LIMIT_TTL",
		"PPROF_PORT", "PPROF_USER", "PPROF_PASSWORD",
	} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Equal(t, 8080, cfg.Port)

	require.Equal(t, "127.0.0.1", cfg.DB.Host)
	require.Equal(t, "5432", cfg.DB.Port)
	require.Equal(t, "myuser", cfg.DB.User)
	require.Equal(t, "mypassword", cfg.DB.Pass)
	require.Equal(t, "test_db", cfg.DB.Name)

	require.Empty(t, cfg.Kafka.Brokers)
	require.Equal(t, 60*time.Second, cfg.Dispatch.EscalationTimeout)
	require.Equal(t, int64(1), cfg.Dispatch.MainOperatorID)

	require.True(t, cfg.RateLimit.Enabled)
	require.Equal(t, float64(5), cfg.RateLimit.Rate)
	require.Equal(t, 10, cfg.RateLimit.Burst)
}

func TestLoad_RateLimitOverrides(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("RATE_LIMIT_RATE", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "3")
	t.Setenv("RATE_LIMIT_TTL", "1m")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.False(t, cfg.RateLimit.Enabled)
	require.Equal(t, 2.5, cfg.RateLimit.Rate)
	require.Equal(t, 3, cfg.RateLimit.Burst)
	require.Equal(t, time.Minute, cfg.RateLimit.TTL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("PORT", "9090")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "15432")
	t.Setenv("POSTGRES_USER", "u")
	t.Setenv("POSTGRES_PASSWORD", "p")
	t.Setenv("POSTGRES_DB", "service")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("KAFKA_INTAKE_TOPIC", "orders.intake")
	t.Setenv("KAFKA_GROUP_ID", "dispatch")
	t.Setenv("KAFKA_DELIVERY_TOPIC", "orders.delivery")
	t.Setenv("DISPATCH_ESCALATION_TIMEOUT", "30s")
	t.Setenv("MAIN_OPERATOR_ID", "777")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, "db", cfg.DB.Host)
	require.Equal(t, "15432", cfg.DB.Port)
	require.Equal(t, "u", cfg.DB.User)
	require.Equal(t, "p", cfg.DB.Pass)
	require.Equal(t, "service", cfg.DB.Name)
	require.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	require.Equal(t, "orders.intake", cfg.Kafka.Topic)
	require.Equal(t, 30*time.Second, cfg.Dispatch.EscalationTimeout)
	require.Equal(t, int64(777), cfg.Dispatch.MainOperatorID)
}

func TestLoad_DSN(t *testing.T) {
	db := config.DB{Host: "h", Port: "5432", User: "u", Pass: "p", Name: "n"}
	require.Equal(t, "postgres://u:p@h:5432/n", db.DSN())
}

func TestLoad_InvalidPort(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("PORT", "70000")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_InvalidPostgresPort(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("POSTGRES_PORT", "not-a-number")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_InvalidEscalationTimeout(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("DISPATCH_ESCALATION_TIMEOUT", "bad-interval")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_InvalidMainOperatorID(t *testing.T) {
	resetFlags(t)
	clearEnv(t)

	t.Setenv("MAIN_OPERATOR_ID", "-3")

	cfg, err := config.Load()
	require.Error(t, err)
	require.Nil(t, cfg)
}

func TestLoad_FlagsParseError(t *testing.T) {
	oldArgs := os.Args
	oldCommandLine := pflag.CommandLine

	defer func() {
		os.Args = oldArgs
		pflag.CommandLine = oldCommandLine
	}()

	clearEnv(t)

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	pflag.CommandLine = fs
	os.Args = []string{"cmd", "--port=not-a-number"}

	cfg, err := config.Load()

	require.Error(t, err)
	require.Nil(t, cfg)
	require.Contains(t, err.Error(), "parse flags")
}
