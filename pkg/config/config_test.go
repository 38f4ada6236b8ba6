package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestFromViperDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := fromViper(v)

	assert.Equal(t, 5000, cfg.Port)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.Host)
	assert.Equal(t, 587, cfg.Mail.Port)
	assert.False(t, cfg.Mail.Configured())
	assert.True(t, cfg.Mail.ProbeOnStart)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "colegio", cfg.Database.Name)
}

func TestFromViperLegacyPasswordAlias(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("DB_PASS", "legacy")
	v.Set("MAIL_USER", "  colegio@example.com ")
	v.Set("MAIL_PASS", "app-password")

	cfg := fromViper(v)

	assert.Equal(t, "legacy", cfg.Database.Password)
	assert.Equal(t, "colegio@example.com", cfg.Mail.Username)
	assert.True(t, cfg.Mail.Configured())
}

func TestSchoolLocationFallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, SchoolConfig{Timezone: "Mars/Olympus"}.Location())
	assert.Equal(t, time.UTC, SchoolConfig{}.Location())
}

func TestSplitAndTrim(t *testing.T) {
	assert.Nil(t, splitAndTrim(""))
	assert.Equal(t, []string{"http://a", "http://b"}, splitAndTrim(" http://a , ,http://b"))
}
