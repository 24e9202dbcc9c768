// internal/workers/assistant/lookup-bookings/config.go
package lookupbookings

import "time"

type Config struct {
	Timeout      time.Duration
	HistoryLimit int
	TopicLimit   int
}

func LoadConfig() *Config {
	return &Config{
		Timeout:      10 * time.Second,
		HistoryLimit: 10,
		TopicLimit:   20,
	}
}
