package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "stub", cfg.Payment.Mode)
	assert.Equal(t, "USD", cfg.Payment.Currency)
	assert.False(t, cfg.Ledger.AllowOverdraft)
	assert.Equal(t, 30*time.Second, cfg.Ledger.BalanceTTL)
	assert.Equal(t, int64(100), cfg.Booking.CompletionPoints)
	assert.Equal(t, int64(50), cfg.Referral.ReferrerPoints)
	assert.Equal(t, int64(20), cfg.Referral.RefereePoints)
	assert.Equal(t, "@hourly", cfg.Sweep.Schedule)
}

func TestFromViper_ReadsEnvironment(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("LEDGER_ALLOW_OVERDRAFT", "true")
	t.Setenv("PAYMENT_CURRENCY", "idr")
	t.Setenv("SWEEP_SCHEDULE", "*/5 * * * *")

	cfg, err := FromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, cfg.Ledger.AllowOverdraft)
	assert.Equal(t, "IDR", cfg.Payment.Currency)
	assert.Equal(t, "*/5 * * * *", cfg.Sweep.Schedule)
}

func TestFromViper_MidtransNeedsServerKey(t *testing.T) {
	v := viper.New()
	v.Set("PAYMENT_MODE", "midtrans")

	_, err := FromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MIDTRANS_SERVER_KEY")
}

func TestFromViper_RejectsUnknownCurrency(t *testing.T) {
	v := viper.New()
	v.Set("PAYMENT_CURRENCY", "EUR")

	_, err := FromViper(v)
	require.Error(t, err)
}
