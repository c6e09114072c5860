package problemlist

import (
	"github.com/ayush-fhir/api/internal/platform/fhir"
)

// Condition is the FHIR Condition resource emitted for a problem-list entry.
type Condition struct {
	ResourceType       string                 `json:"resourceType"`
	ID                 string                 `json:"id"`
	Meta               *fhir.Meta             `json:"meta,omitempty"`
	Identifier         []fhir.Identifier      `json:"identifier,omitempty"`
	ClinicalStatus     *fhir.CodeableConcept  `json:"clinicalStatus,omitempty"`
	VerificationStatus *fhir.CodeableConcept  `json:"verificationStatus,omitempty"`
	Category           []fhir.CodeableConcept `json:"category,omitempty"`
	Code               *fhir.CodeableConcept  `json:"code,omitempty"`
	Subject            *fhir.Reference        `json:"subject,omitempty"`
	Encounter          *fhir.Reference        `json:"encounter,omitempty"`
	RecordedDate       string                 `json:"recordedDate,omitempty"`
	Recorder           *fhir.Reference        `json:"recorder,omitempty"`
	Note               []fhir.Annotation      `json:"note,omitempty"`
}

// DualCodingSummary echoes back the codings applied to a condition so
// clients can display the crosswalk without parsing the resource.
type DualCodingSummary struct {
	NAMASTE CodeDisplay   `json:"namaste"`
	ICD11   []CodeDisplay `json:"icd11"`
}

type CodeDisplay struct {
	Code    string `json:"code"`
	Display string `json:"display"`
}

// CreateResponse is the payload returned by POST /fhir/problem-list.
type CreateResponse struct {
	Condition  Condition              `json:"condition"`
	AuditEvent map[string]interface{} `json:"audit_event"`
	Provenance map[string]interface{} `json:"provenance"`
	DualCoding DualCodingSummary      `json:"dual_coding"`
}
