// Package lifecycle holds shared timing constants for component start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds every start/stop hook: pings, flushes and shutdowns.
const DefaultTimeout = 10 * time.Second
