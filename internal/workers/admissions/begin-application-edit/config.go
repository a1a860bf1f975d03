package beginapplicationedit

import (
	"time"

	"admissions-workers/internal/common/config"
	"admissions-workers/internal/workers/admissions/jobs"
)

type Config struct {
	Timeout time.Duration
}

func LoadConfig(wcfg config.WorkerConfig) *Config {
	return &Config{Timeout: jobs.Timeout(wcfg)}
}
