package problemlist

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ayush-fhir/api/internal/domain/audit"
	"github.com/ayush-fhir/api/internal/domain/semantics"
	"github.com/ayush-fhir/api/internal/domain/terminology"
	"github.com/ayush-fhir/api/internal/platform/fhir"
)

// ErrCodeNotFound is returned when the NAMASTE code is not in the loaded
// crosswalk.
type ErrCodeNotFound struct {
	Code string
}

func (e *ErrCodeNotFound) Error() string {
	return fmt.Sprintf("NAMASTE code %s not found", e.Code)
}

// CreateParams identifies the patient context for a problem-list entry.
// Empty fields fall back to the sandbox demo identifiers.
type CreateParams struct {
	NAMASTECode    string
	PatientID      string
	PractitionerID string
	EncounterID    string
}

func (p *CreateParams) applyDefaults() {
	if p.PatientID == "" {
		p.PatientID = "patient-001"
	}
	if p.PractitionerID == "" {
		p.PractitionerID = "practitioner-001"
	}
	if p.EncounterID == "" {
		p.EncounterID = "encounter-001"
	}
}

// Service assembles dual-coded Condition resources from the crosswalk.
type Service struct {
	index *terminology.Index
	audit *audit.Service
	now   func() time.Time
}

func NewService(index *terminology.Index, auditSvc *audit.Service) *Service {
	return &Service{index: index, audit: auditSvc, now: time.Now}
}

// Create builds a problem-list Condition carrying the NAMASTE coding, every
// mapped ICD-11 coding, and a SNOMED CT coding when the term has one. The
// creation is recorded in the audit trail.
func (s *Service) Create(ctx context.Context, params CreateParams) (*CreateResponse, error) {
	params.applyDefaults()

	term, ok := s.index.Get(params.NAMASTECode)
	if !ok {
		return nil, &ErrCodeNotFound{Code: params.NAMASTECode}
	}

	condition := s.buildCondition(term, params)
	event, prov := s.audit.RecordCreate(ctx, "Condition", "Condition/"+condition.ID)

	summary := DualCodingSummary{
		NAMASTE: CodeDisplay{Code: term.Code, Display: term.Label},
		ICD11:   []CodeDisplay{},
	}
	for _, code := range term.ICD11Codes {
		summary.ICD11 = append(summary.ICD11, CodeDisplay{Code: code, Display: icdDisplay(code)})
	}

	return &CreateResponse{
		Condition:  condition,
		AuditEvent: event.ToFHIR(),
		Provenance: prov.ToFHIR(),
		DualCoding: summary,
	}, nil
}

func icdDisplay(code string) string {
	if strings.HasPrefix(code, "TM2-") {
		return code + " (TM2)"
	}
	return code + " (Biomedicine)"
}

func (s *Service) buildCondition(term *terminology.Term, params CreateParams) Condition {
	codings := []fhir.Coding{{
		System:  terminology.NAMASTECSURL,
		Code:    term.Code,
		Display: term.Label,
	}}
	for _, icd := range term.ICD11Codes {
		codings = append(codings, fhir.Coding{
			System:  terminology.ICD11URL,
			Code:    icd,
			Display: icdDisplay(icd),
		})
	}
	if semantic := semantics.CodingFor(term.Label, "clinical"); semantic.SNOMED != nil {
		codings = append(codings, fhir.Coding{
			System:  semantic.SNOMED.System,
			Code:    semantic.SNOMED.Code,
			Display: semantic.SNOMED.Display,
		})
	}

	return Condition{
		ResourceType: "Condition",
		ID:           fmt.Sprintf("condition-%s", uuid.New().String()[:8]),
		Meta: &fhir.Meta{
			Profile: []string{"http://hl7.org/fhir/StructureDefinition/Condition"},
		},
		Identifier: []fhir.Identifier{{
			System: terminology.BaseURL + "/conditions",
			Value:  fmt.Sprintf("COND-%s", uuid.New().String()[:8]),
		}},
		ClinicalStatus: &fhir.CodeableConcept{Coding: []fhir.Coding{{
			System:  "http://terminology.hl7.org/CodeSystem/condition-clinical",
			Code:    "active",
			Display: "Active",
		}}},
		VerificationStatus: &fhir.CodeableConcept{Coding: []fhir.Coding{{
			System:  "http://terminology.hl7.org/CodeSystem/condition-ver-status",
			Code:    "confirmed",
			Display: "Confirmed",
		}}},
		Category: []fhir.CodeableConcept{{Coding: []fhir.Coding{{
			System:  "http://terminology.hl7.org/CodeSystem/condition-category",
			Code:    "encounter-diagnosis",
			Display: "Encounter Diagnosis",
		}}}},
		Code: &fhir.CodeableConcept{
			Coding: codings,
			Text:   term.Label,
		},
		Subject: &fhir.Reference{
			Reference: "Patient/" + params.PatientID,
			Display:   "Patient",
		},
		Encounter: &fhir.Reference{
			Reference: "Encounter/" + params.EncounterID,
			Display:   "Encounter",
		},
		RecordedDate: fhir.Timestamp(s.now()),
		Recorder: &fhir.Reference{
			Reference: "Practitioner/" + params.PractitionerID,
			Display:   "Practitioner",
		},
		Note: []fhir.Annotation{{
			Text: fmt.Sprintf("Dual-coded condition: %s (NAMASTE: %s)", term.Label, term.Code),
		}},
	}
}
