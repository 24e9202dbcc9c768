// internal/workers/assistant/initiate-refund/config.go
package initiaterefund

import "time"

type Config struct {
	Timeout  time.Duration
	Currency string
}

func LoadConfig() *Config {
	return &Config{
		Timeout:  15 * time.Second,
		Currency: "INR",
	}
}
