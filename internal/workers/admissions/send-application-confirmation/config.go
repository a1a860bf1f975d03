package sendapplicationconfirmation

import (
	"time"

	"admissions-workers/internal/common/config"
	"admissions-workers/internal/workers/admissions/jobs"
)

type Config struct {
	Timeout      time.Duration
	Institution  string
	EmailEnabled bool
	SMSEnabled   bool
	CountryCode  string
}

func LoadConfig(cfg *config.Config, wcfg config.WorkerConfig) *Config {
	return &Config{
		Timeout:      jobs.Timeout(wcfg),
		Institution:  cfg.Institution.Name,
		EmailEnabled: cfg.Notifications.Email.Enabled,
		SMSEnabled:   cfg.Notifications.SMS.Enabled,
		CountryCode:  cfg.Notifications.SMS.CountryCode,
	}
}
