package terminology

import (
	"testing"
)

type staticTitles map[string]string

func (s staticTitles) Title(code string) (string, bool) {
	t, ok := s[code]
	return t, ok
}

func newTestService() *Service {
	idx := NewIndex()
	idx.BulkLoad(sampleTerms())
	titles := staticTitles{
		"TM2-AY134": "Acid dyspepsia (TM2)",
		"5A11":      "Type 2 diabetes mellitus",
	}
	return NewService(idx, titles)
}

func TestService_Search_RequiresQuery(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Search(""); err == nil {
		t.Error("expected error for empty query")
	}
}

func TestService_Translate_NAMASTEEnrichedTitles(t *testing.T) {
	svc := newTestService()
	resp, err := svc.Translate("AY002", SystemNAMASTE)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Targets) != 2 {
		t.Fatalf("expected 2 targets, got %+v", resp.Targets)
	}
	if resp.Targets[0].Code != "5A11" || resp.Targets[0].Title != "Type 2 diabetes mellitus" {
		t.Errorf("expected title-enriched 5A11, got %+v", resp.Targets[0])
	}
	if resp.Targets[1].Code != "TM2-AY201" || resp.Targets[1].Title != "TM2-AY201" {
		t.Errorf("unknown title should fall back to the code, got %+v", resp.Targets[1])
	}
	for _, target := range resp.Targets {
		if target.System != "ICD-11" {
			t.Errorf("expected ICD-11 system tag, got %+v", target)
		}
	}
}

func TestService_Translate_ICD11ReturnsLabels(t *testing.T) {
	svc := newTestService()
	resp, err := svc.Translate("5A11", SystemICD11)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Targets) != 1 {
		t.Fatalf("expected 1 target, got %+v", resp.Targets)
	}
	got := resp.Targets[0]
	if got.Code != "AY002" || got.Title != "Prameha" || got.System != "NAMASTE" {
		t.Errorf("expected labeled NAMASTE target, got %+v", got)
	}
}

func TestService_Translate_Deduplicates(t *testing.T) {
	idx := NewIndex()
	idx.BulkLoad([]Term{
		{Code: "T1", Label: "Dup", ICD11Codes: []string{"ICD-11:5A11", "5A11"}},
	})
	svc := NewService(idx, nil)

	resp, err := svc.Translate("T1", SystemNAMASTE)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Targets) != 1 {
		t.Errorf("expected deduplicated targets, got %+v", resp.Targets)
	}
}

func TestService_Translate_UnknownSystem(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Translate("AY001", "icd10"); err == nil {
		t.Error("expected error for unknown system")
	}
}

func TestService_Translate_UnknownCodeIsEmpty(t *testing.T) {
	svc := newTestService()
	resp, err := svc.Translate("ZZ999", SystemNAMASTE)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Targets) != 0 {
		t.Errorf("expected empty targets, got %+v", resp.Targets)
	}
}

func TestService_Ingest(t *testing.T) {
	svc := NewService(NewIndex(), nil)
	count, err := svc.Ingest([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 ingested, got %d", count)
	}
}

func TestService_Suggest_RequiresQuery(t *testing.T) {
	svc := newTestService()
	if _, err := svc.Suggest(""); err == nil {
		t.Error("expected error for empty query")
	}
}
