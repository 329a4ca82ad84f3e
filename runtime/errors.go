package runtime

import "fmt"

var (
	// ErrAgentNotFound is returned when an operation references an agent id
	// that is not in the runtime's table.
	ErrAgentNotFound = fmt.Errorf("agent not found")

	// ErrPlatformNotConfigured is returned when no adapter is registered for
	// a platform an operation needs.
	ErrPlatformNotConfigured = fmt.Errorf("platform not configured")
)
