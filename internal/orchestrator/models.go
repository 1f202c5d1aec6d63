package orchestrator

import "time"

// Poll defaults for droplet readiness checks.
const (
	DefaultPollInterval    = 5 * time.Second
	DefaultPollMaxAttempts = 60
)

// Config contains all the parameters needed for a lifecycle operation.
type Config struct {
	ConfigPath      string        // Path to the configuration file
	StatePath       string        // Path to the state file ("" = state.DefaultPath)
	OutputFormat    string        // Output format (json or table)
	LogLevel        string        // Minimum log level (debug, info, warn, error)
	PollInterval    time.Duration // Delay between droplet readiness checks (0 = default)
	PollMaxAttempts int           // Readiness checks before giving up (0 = default)
}
