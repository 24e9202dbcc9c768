// internal/workers/assistant/suggest-queries/config.go
package suggestqueries

import "time"

type Config struct {
	Timeout time.Duration
	Grouped bool
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 3 * time.Second,
		Grouped: true,
	}
}
