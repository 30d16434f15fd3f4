package audit

import "github.com/rs/zerolog/log"

type Event struct {
	Actor    string
	Action   string
	Entity   string
	EntityID string
	Metadata any
}

type Dispatcher struct {
	sink  *Sink
	queue chan Event
}

func NewDispatcher(sink *Sink) *Dispatcher {
	d := &Dispatcher{
		sink:  sink,
		queue: make(chan Event, 100),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	for ev := range d.queue {
		d.sink.Record(ev)
	}
}

func (d *Dispatcher) Dispatch(ev Event) {
	select {
	case d.queue <- ev:
		// enqueued
	default:
		// queue full, drop rather than block a request
		log.Warn().Str("action", ev.Action).Msg("audit queue full, dropping event")
	}
}
