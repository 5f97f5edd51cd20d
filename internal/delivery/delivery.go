// Package delivery defines the contract for the process's outward-facing servers.
package delivery

import "context"

// Delivery is a long-running server started by cmd/folks.
// Serve blocks until the server is shut down through its fx stop hook.
type Delivery interface {
	Serve(ctx context.Context) error
}
