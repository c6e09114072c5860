package consent

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ayush-fhir/api/internal/platform/fhir"
)

// Resource shapes for the FHIR Consent resource built by POST /consent.

type FHIRConsent struct {
	ResourceType string                 `json:"resourceType"`
	ID           string                 `json:"id"`
	Status       string                 `json:"status"`
	Scope        fhir.CodeableConcept   `json:"scope"`
	Category     []fhir.CodeableConcept `json:"category"`
	Patient      fhir.Reference         `json:"patient"`
	DateTime     string                 `json:"dateTime"`
	PolicyRule   fhir.CodeableConcept   `json:"policyRule"`
	Provision    Provision              `json:"provision"`
}

type Provision struct {
	Type    string                 `json:"type"` // permit or deny
	Purpose []fhir.Coding          `json:"purpose,omitempty"`
	Action  []fhir.CodeableConcept `json:"action,omitempty"`
	Class   []fhir.Coding          `json:"class,omitempty"`
}

// BuildConsent creates an opt-in patient-privacy Consent resource permitting
// access for the given purpose.
func BuildConsent(patientID, purpose string) FHIRConsent {
	return FHIRConsent{
		ResourceType: "Consent",
		ID:           fmt.Sprintf("consent-%s", uuid.New().String()[:8]),
		Status:       "active",
		Scope: fhir.CodeableConcept{Coding: []fhir.Coding{{
			System:  "http://terminology.hl7.org/CodeSystem/consentscope",
			Code:    "patient-privacy",
			Display: "Patient Privacy",
		}}},
		Category: []fhir.CodeableConcept{{Coding: []fhir.Coding{{
			System:  "http://terminology.hl7.org/CodeSystem/consentcategorycodes",
			Code:    "INFAO",
			Display: "Information Access",
		}}}},
		Patient: fhir.Reference{
			Reference: "Patient/" + patientID,
			Display:   "Patient",
		},
		DateTime: fhir.Timestamp(time.Now()),
		PolicyRule: fhir.CodeableConcept{Coding: []fhir.Coding{{
			System:  "http://terminology.hl7.org/CodeSystem/consentpolicycodes",
			Code:    "OPTIN",
			Display: "Opt In",
		}}},
		Provision: Provision{
			Type: "permit",
			Purpose: []fhir.Coding{{
				System:  "http://terminology.hl7.org/CodeSystem/v3-PurposeOfUse",
				Code:    purpose,
				Display: titleCase(purpose),
			}},
			Action: []fhir.CodeableConcept{{Coding: []fhir.Coding{{
				System:  "http://terminology.hl7.org/CodeSystem/consentaction",
				Code:    "access",
				Display: "Access",
			}}}},
		},
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	low := strings.ToLower(s)
	return strings.ToUpper(low[:1]) + low[1:]
}

// RulesFromConsent expands a Consent resource's provision into engine rules.
// Each purpose/action/class combination yields one rule; a provision without
// classes applies to all resource types. Unknown purpose or action codes fall
// back to treatment reads rather than being dropped.
func RulesFromConsent(consent FHIRConsent) []Rule {
	patientID := strings.TrimPrefix(consent.Patient.Reference, "Patient/")
	allow := consent.Provision.Type == "permit"

	classes := consent.Provision.Class
	if len(classes) == 0 {
		classes = []fhir.Coding{{Code: "*"}}
	}

	var rules []Rule
	for _, purposeCoding := range consent.Provision.Purpose {
		purpose := PurposeTreatment
		if ValidPurpose(purposeCoding.Code) {
			purpose = Purpose(purposeCoding.Code)
		}

		for _, actionConcept := range consent.Provision.Action {
			action := ActionRead
			for _, actionCoding := range actionConcept.Coding {
				if ValidAction(actionCoding.Code) {
					action = Action(actionCoding.Code)
					break
				}
			}

			for _, class := range classes {
				resourceType := class.Code
				if resourceType == "" {
					resourceType = "*"
				}
				rules = append(rules, Rule{
					PatientID:    patientID,
					Purpose:      purpose,
					Action:       action,
					ResourceType: resourceType,
					Allow:        allow,
				})
			}
		}
	}
	return rules
}
