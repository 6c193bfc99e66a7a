// Package delivery defines the contract shared by all transport servers.
package delivery

import "context"

// Delivery is a long-running transport server managed by the fx lifecycle.
type Delivery interface {
	// Serve starts the server and blocks until it stops.
	Serve(ctx context.Context) error
}
