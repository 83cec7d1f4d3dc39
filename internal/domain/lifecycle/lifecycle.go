// Package lifecycle holds shared lifecycle-related constants.
package lifecycle

import "time"

// DefaultTimeout is the default grace period for graceful shutdown hooks.
const DefaultTimeout = 10 * time.Second
