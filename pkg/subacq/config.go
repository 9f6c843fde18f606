package subacq

import "time"

const (
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3
)

// Config holds the per-subacquirer connection settings. BaseURL comes from the
// subacquirer row; Timeout and MaxRetries come from its config blob and fall
// back to the defaults when absent.
type Config struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxRetries int           `mapstructure:"max_retries"`
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultTimeout
	}
	return c.Timeout
}
