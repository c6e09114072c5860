package fhir

import "testing"

func TestErrorOutcome(t *testing.T) {
	o := ErrorOutcome("something went wrong")
	if o.ResourceType != "OperationOutcome" {
		t.Errorf("expected OperationOutcome, got %q", o.ResourceType)
	}
	if len(o.Issue) != 1 {
		t.Fatalf("expected one issue, got %d", len(o.Issue))
	}
	if o.Issue[0].Severity != IssueSeverityError || o.Issue[0].Code != IssueTypeProcessing {
		t.Errorf("unexpected issue: %+v", o.Issue[0])
	}
}

func TestNotFoundOutcome(t *testing.T) {
	o := NotFoundOutcome("Condition", "abc")
	if o.Issue[0].Code != IssueTypeNotFound {
		t.Errorf("expected not-found code, got %q", o.Issue[0].Code)
	}
	if o.Issue[0].Diagnostics != "Condition/abc not found" {
		t.Errorf("unexpected diagnostics: %q", o.Issue[0].Diagnostics)
	}
}

func TestValidationOutcome(t *testing.T) {
	o := ValidationOutcome("code", "is required")
	if o.Issue[0].Code != IssueTypeInvalid {
		t.Errorf("expected invalid code, got %q", o.Issue[0].Code)
	}
	if len(o.Issue[0].Expression) != 1 || o.Issue[0].Expression[0] != "code" {
		t.Errorf("expected field expression, got %+v", o.Issue[0].Expression)
	}
}

func TestSecurityOutcome(t *testing.T) {
	o := SecurityOutcome("missing bearer token")
	if o.Issue[0].Code != IssueTypeSecurity {
		t.Errorf("expected security code, got %q", o.Issue[0].Code)
	}
	if o.Issue[0].Severity != IssueSeverityError {
		t.Errorf("expected error severity, got %q", o.Issue[0].Severity)
	}
}
