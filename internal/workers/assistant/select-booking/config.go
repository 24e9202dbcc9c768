// internal/workers/assistant/select-booking/config.go
package selectbooking

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}
