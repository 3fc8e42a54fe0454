package undofsm

import "github.com/comalice/undofsm/internal/production"

// ChannelPublisher forwards changes to a channel without blocking; changes
// that do not fit are dropped and counted.
type ChannelPublisher = production.ChannelPublisher

// NewChannelPublisher creates a ChannelPublisher writing to ch. Register it
// with WithListener(p.Publish).
func NewChannelPublisher(ch chan<- Change) *ChannelPublisher {
	return production.NewChannelPublisher(ch)
}
