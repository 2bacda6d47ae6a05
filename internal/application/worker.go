package application

import "context"

// Worker represents a background job loop.
// Implementations must run until the context is canceled.
type Worker interface {
	Start(ctx context.Context)
}
