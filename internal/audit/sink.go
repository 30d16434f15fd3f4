package audit

import "github.com/rs/zerolog"

// Sink writes audit events to the structured log. The booking records
// themselves live behind the external API, so the log is the only local
// audit trail this service keeps.
type Sink struct {
	logger zerolog.Logger
}

func NewSink(logger zerolog.Logger) *Sink {
	return &Sink{logger: logger.With().Str("component", "audit").Logger()}
}

func (s *Sink) Record(ev Event) {
	entry := s.logger.Info().
		Str("actor", ev.Actor).
		Str("action", ev.Action).
		Str("entity", ev.Entity)

	if ev.EntityID != "" {
		entry = entry.Str("entity_id", ev.EntityID)
	}
	if ev.Metadata != nil {
		entry = entry.Interface("metadata", ev.Metadata)
	}

	entry.Msg("audit")
}
