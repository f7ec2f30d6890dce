package game

import "github.com/ashureev/arctic-quest/internal/domain"

// EventSink receives session events. Publish must not block.
type EventSink interface {
	Publish(e domain.Event)
}

// MultiSink fans an event out to several sinks.
type MultiSink []EventSink

// Publish implements EventSink.
func (m MultiSink) Publish(e domain.Event) {
	for _, s := range m {
		if s != nil {
			s.Publish(e)
		}
	}
}

type nopSink struct{}

func (nopSink) Publish(domain.Event) {}
