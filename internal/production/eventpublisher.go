package production

import (
	"github.com/comalice/undofsm/internal/primitives"
)

// ChannelPublisher forwards changes to a Go channel.
// Non-blocking publish with drop on backpressure.
type ChannelPublisher struct {
	ch      chan<- primitives.Change
	dropped int
}

// NewChannelPublisher creates a ChannelPublisher with the given output channel.
func NewChannelPublisher(ch chan<- primitives.Change) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

// Publish delivers c if the channel has room and drops it otherwise.
func (p *ChannelPublisher) Publish(c primitives.Change) {
	select {
	case p.ch <- c:
	default:
		p.dropped++
	}
}

// Dropped returns the number of changes discarded because the channel was full.
func (p *ChannelPublisher) Dropped() int {
	return p.dropped
}

// Close closes the output channel. Publish must not be called afterwards.
func (p *ChannelPublisher) Close() {
	close(p.ch)
}
