package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// AgentName identifies this service in audit and provenance entries.
const AgentName = "Ayush FHIR Service"

// Service records audit events with their paired provenance entries.
type Service struct {
	repo   Repository
	logger zerolog.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

func shortID(prefix string) string {
	return fmt.Sprintf("%s-%s", prefix, uuid.New().String()[:8])
}

// RecordCreate stores an audit event and provenance entry for a created
// resource and returns both. Storage failures are logged but do not fail the
// request that triggered the recording.
func (s *Service) RecordCreate(ctx context.Context, resourceType, targetReference string) (Event, Provenance) {
	now := s.now().UTC()

	event := Event{
		ID:           shortID("audit"),
		Action:       "C",
		Outcome:      "0",
		AgentName:    AgentName,
		ResourceType: resourceType,
		Recorded:     now,
	}
	prov := Provenance{
		ID:              shortID("provenance"),
		TargetReference: targetReference,
		AgentName:       AgentName,
		Recorded:        now,
	}

	if err := s.repo.SaveEvent(ctx, event); err != nil {
		s.logger.Error().Err(err).Str("resource_type", resourceType).Msg("save audit event")
	}
	if err := s.repo.SaveProvenance(ctx, prov); err != nil {
		s.logger.Error().Err(err).Str("target", targetReference).Msg("save provenance")
	}

	return event, prov
}

// AuditEntries returns all recorded audit events as FHIR resources.
func (s *Service) AuditEntries(ctx context.Context) ([]map[string]interface{}, error) {
	events, err := s.repo.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]map[string]interface{}, 0, len(events))
	for _, e := range events {
		entries = append(entries, e.ToFHIR())
	}
	return entries, nil
}

// ProvenanceEntries returns all recorded provenance entries as FHIR
// resources.
func (s *Service) ProvenanceEntries(ctx context.Context) ([]map[string]interface{}, error) {
	provs, err := s.repo.ListProvenance(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]map[string]interface{}, 0, len(provs))
	for _, p := range provs {
		entries = append(entries, p.ToFHIR())
	}
	return entries, nil
}
