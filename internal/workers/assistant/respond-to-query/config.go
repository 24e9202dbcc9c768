// internal/workers/assistant/respond-to-query/config.go
package respondtoquery

import "time"

type Config struct {
	Timeout time.Duration
	// FollowUps caps the suggestions returned alongside each answer.
	FollowUps int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:   5 * time.Second,
		FollowUps: 4,
	}
}
