package consent

import (
	"sync"
)

// Action is an operation a subject wants to perform on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionWrite  Action = "write"
	ActionDelete Action = "delete"
	ActionSearch Action = "search"
)

// Purpose is the declared purpose of use for an access request.
type Purpose string

const (
	PurposeTreatment    Purpose = "TREATMENT"
	PurposePayment      Purpose = "PAYMENT"
	PurposeOperations   Purpose = "HEALTHCARE_OPERATIONS"
	PurposeResearch     Purpose = "RESEARCH"
	PurposePublicHealth Purpose = "PUBLIC_HEALTH"
)

// ValidAction reports whether the string names a known action.
func ValidAction(s string) bool {
	switch Action(s) {
	case ActionRead, ActionWrite, ActionDelete, ActionSearch:
		return true
	}
	return false
}

// ValidPurpose reports whether the string names a known purpose.
func ValidPurpose(s string) bool {
	switch Purpose(s) {
	case PurposeTreatment, PurposePayment, PurposeOperations, PurposeResearch, PurposePublicHealth:
		return true
	}
	return false
}

// Subject is the "who" of an access request.
type Subject struct {
	ID           string   `json:"subject_id"`
	Type         string   `json:"subject_type"` // practitioner, patient, system
	Roles        []string `json:"subject_roles"`
	Organization string   `json:"organization,omitempty"`
}

// Resource is the "what" of an access request. Owner holds the patient id
// for patient-owned resources.
type Resource struct {
	ID    string `json:"resource_id"`
	Type  string `json:"resource_type"`
	Owner string `json:"owner,omitempty"`
}

// AccessRequest is a single privilege-management decision input.
type AccessRequest struct {
	Subject  Subject
	Action   Action
	Resource Resource
	Purpose  Purpose
}

// Rule is one consent rule derived from a FHIR Consent provision.
type Rule struct {
	PatientID    string
	Purpose      Purpose
	Action       Action
	ResourceType string // "*" matches all
	Allow        bool
}

// Engine evaluates access requests against role permissions and loaded
// consent rules, applying the purpose-limitation and data-minimization
// principles of ISO 22600.
type Engine struct {
	mu    sync.RWMutex
	rules []Rule

	rolePermissions map[string][]Action
}

// NewEngine creates an engine with the standard role permission table.
func NewEngine() *Engine {
	return &Engine{
		rolePermissions: map[string][]Action{
			"doctor":     {ActionRead, ActionWrite, ActionSearch},
			"nurse":      {ActionRead, ActionSearch},
			"patient":    {ActionRead},
			"system":     {ActionRead, ActionWrite, ActionSearch, ActionDelete},
			"researcher": {ActionRead, ActionSearch},
		},
	}
}

// AddRule registers a consent rule.
func (e *Engine) AddRule(rule Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, rule)
}

// LoadRules registers a batch of consent rules.
func (e *Engine) LoadRules(rules []Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, rules...)
}

// CheckAccess decides a request and returns the decision with a
// human-readable reason. Checks are ordered so the most specific denial
// reason wins: role permissions, then consent, then purpose limitation,
// then data minimization.
func (e *Engine) CheckAccess(req AccessRequest) (bool, string) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if !e.checkRolePermissions(req) {
		return false, "Insufficient role permissions"
	}
	if !e.checkConsentRules(req) {
		return false, "Consent not granted"
	}
	if !e.checkPurposeLimitation(req) {
		return false, "Purpose not allowed"
	}
	if !e.checkDataMinimization(req) {
		return false, "Data minimization violation"
	}
	return true, "Access granted"
}

func (e *Engine) checkRolePermissions(req AccessRequest) bool {
	for _, role := range req.Subject.Roles {
		for _, allowed := range e.rolePermissions[role] {
			if allowed == req.Action {
				return true
			}
		}
	}
	return false
}

func (e *Engine) checkConsentRules(req AccessRequest) bool {
	applicable := 0
	for _, rule := range e.rules {
		if rule.Purpose != req.Purpose || rule.Action != req.Action {
			continue
		}
		if rule.ResourceType != req.Resource.Type && rule.ResourceType != "*" {
			continue
		}
		applicable++
		if rule.Allow {
			return true
		}
	}
	if applicable == 0 {
		return e.checkDefaultConsent(req)
	}
	return false
}

// checkDefaultConsent applies the implicit grants that hold when no explicit
// consent rule matches: treatment access for doctors and patients reading
// their own records.
func (e *Engine) checkDefaultConsent(req AccessRequest) bool {
	if req.Purpose == PurposeTreatment &&
		hasRole(req.Subject, "doctor") &&
		(req.Action == ActionRead || req.Action == ActionWrite) {
		return true
	}
	if req.Subject.Type == "patient" &&
		req.Action == ActionRead &&
		req.Resource.Owner == req.Subject.ID {
		return true
	}
	return false
}

func (e *Engine) checkPurposeLimitation(req AccessRequest) bool {
	switch req.Purpose {
	case PurposeTreatment:
		return true
	case PurposeResearch:
		for _, rule := range e.rules {
			if rule.Purpose == PurposeResearch && rule.Allow {
				return true
			}
		}
		return false
	case PurposePayment, PurposeOperations:
		return hasRole(req.Subject, "doctor") || hasRole(req.Subject, "system")
	}
	return true
}

func (e *Engine) checkDataMinimization(req AccessRequest) bool {
	if req.Subject.Type == "system" {
		return true
	}
	if req.Subject.Type == "patient" && req.Resource.Owner == req.Subject.ID {
		return true
	}
	if req.Purpose == PurposeTreatment && hasRole(req.Subject, "doctor") {
		return true
	}
	return false
}

func hasRole(s Subject, role string) bool {
	for _, r := range s.Roles {
		if r == role {
			return true
		}
	}
	return false
}
