// Package publisher uploads the written premium document so a static chart
// can be served from object storage.
package publisher

import "context"

// Publisher pushes the serialized document somewhere readers can fetch it.
type Publisher interface {
	Publish(ctx context.Context, data []byte) error
	Name() string
}

// Noop is used when no destination is configured.
type Noop struct{}

func (Noop) Publish(context.Context, []byte) error { return nil }
func (Noop) Name() string                          { return "none" }
