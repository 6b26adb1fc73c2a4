// Package lifecycle holds shared timeouts for fx start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown steps (DB ping, server close).
const DefaultTimeout = 10 * time.Second
