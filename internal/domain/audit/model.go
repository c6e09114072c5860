package audit

import (
	"time"

	"github.com/ayush-fhir/api/internal/platform/fhir"
)

// Event is a recorded audit event, serialized as a FHIR AuditEvent.
type Event struct {
	ID           string    `json:"id"`
	Action       string    `json:"action"`  // C, R, U, D
	Outcome      string    `json:"outcome"` // "0" success
	AgentName    string    `json:"agent_name"`
	ResourceType string    `json:"resource_type"`
	Recorded     time.Time `json:"recorded"`
}

// Provenance is a recorded provenance entry, serialized as a FHIR
// Provenance resource.
type Provenance struct {
	ID              string    `json:"id"`
	TargetReference string    `json:"target_reference"`
	AgentName       string    `json:"agent_name"`
	Recorded        time.Time `json:"recorded"`
}

// ToFHIR renders the event as a FHIR AuditEvent resource.
func (e Event) ToFHIR() map[string]interface{} {
	interaction := "read"
	display := "Read"
	if e.Action == "C" {
		interaction = "create"
		display = "Create"
	}
	outcomeDesc := "Failure"
	if e.Outcome == "0" {
		outcomeDesc = "Success"
	}

	return map[string]interface{}{
		"resourceType": "AuditEvent",
		"id":           e.ID,
		"type": fhir.Coding{
			System:  "http://terminology.hl7.org/CodeSystem/audit-event-type",
			Code:    "rest",
			Display: "RESTful Operation",
		},
		"subtype": []fhir.Coding{{
			System:  "http://hl7.org/fhir/restful-interaction",
			Code:    interaction,
			Display: display,
		}},
		"action":      e.Action,
		"recorded":    fhir.Timestamp(e.Recorded),
		"outcome":     e.Outcome,
		"outcomeDesc": outcomeDesc,
		"agent": []map[string]interface{}{{
			"type": fhir.CodeableConcept{Coding: []fhir.Coding{{
				System:  "http://terminology.hl7.org/CodeSystem/audit-agent-type",
				Code:    "1",
				Display: "User Device",
			}}},
			"requestor": true,
			"name":      e.AgentName,
		}},
		"source": map[string]interface{}{
			"site":     "ayush-fhir-service",
			"observer": fhir.Reference{Reference: "Device/ayush-fhir-device"},
		},
		"entity": []map[string]interface{}{{
			"type": fhir.Coding{
				System:  "http://terminology.hl7.org/CodeSystem/audit-entity-type",
				Code:    "2",
				Display: "System Object",
			},
			"role": fhir.Coding{
				System:  "http://terminology.hl7.org/CodeSystem/object-role",
				Code:    "4",
				Display: "Domain Resource",
			},
			"what": fhir.Reference{Reference: e.ResourceType + "/example"},
		}},
	}
}

// ToFHIR renders the entry as a FHIR Provenance resource.
func (p Provenance) ToFHIR() map[string]interface{} {
	return map[string]interface{}{
		"resourceType": "Provenance",
		"id":           p.ID,
		"target":       []fhir.Reference{{Reference: p.TargetReference}},
		"recorded":     fhir.Timestamp(p.Recorded),
		"agent": []map[string]interface{}{{
			"type": fhir.CodeableConcept{Coding: []fhir.Coding{{
				System:  "http://terminology.hl7.org/CodeSystem/provenance-participant-type",
				Code:    "author",
				Display: "Author",
			}}},
			"who": fhir.Reference{Display: p.AgentName},
		}},
		"activity": fhir.CodeableConcept{Coding: []fhir.Coding{{
			System:  "http://terminology.hl7.org/CodeSystem/v3-DataOperation",
			Code:    "CREATE",
			Display: "Create",
		}}},
	}
}
