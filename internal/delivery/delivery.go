// Package delivery defines the contract shared by all serve-able transports.
package delivery

import "context"

// Delivery is a transport that can serve requests until its context or
// lifecycle stops it. Implementations are collected into an fx group and
// started by the composition root.
type Delivery interface {
	Serve(ctx context.Context) error
}
