// Package lifecycle holds constants shared by components that participate in
// application start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds graceful start/stop operations such as server
// shutdown and database pings.
const DefaultTimeout = 10 * time.Second
