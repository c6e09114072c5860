package terminology

import (
	"errors"
	"strings"
	"testing"
)

const sampleCSV = `id,term,category,synonyms,icd11_tm2_code
AY001,Amlapitta,digestive,"Sour indigestion,Acid dyspepsia",TM2-AY134
AY002,Prameha,metabolic,Madhumeha,"5A11,TM2-AY201"
AY003,Jwara,general,,ICD-11:TM2-AY400
AY004,Shwasa Roga,respiratory,,
`

func TestParseCSV_Valid(t *testing.T) {
	terms, err := ParseCSV([]byte(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(terms) != 4 {
		t.Fatalf("expected 4 terms, got %d", len(terms))
	}

	first := terms[0]
	if first.Code != "AY001" || first.Label != "Amlapitta" || first.Category != "digestive" {
		t.Errorf("unexpected first term: %+v", first)
	}
	if len(first.Synonyms) != 2 || first.Synonyms[0] != "Sour indigestion" {
		t.Errorf("expected split synonyms, got %+v", first.Synonyms)
	}
	if len(terms[1].ICD11Codes) != 2 || terms[1].ICD11Codes[0] != "5A11" {
		t.Errorf("expected split target codes, got %+v", terms[1].ICD11Codes)
	}
	if len(terms[3].Synonyms) != 0 || len(terms[3].ICD11Codes) != 0 {
		t.Errorf("empty cells should yield empty lists, got %+v", terms[3])
	}
}

func TestParseCSV_MissingColumns(t *testing.T) {
	csv := "id,term\nAY001,Amlapitta\n"
	_, err := ParseCSV([]byte(csv))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(verr.Error(), "category") {
		t.Errorf("expected missing columns named, got %q", verr.Error())
	}
}

func TestParseCSV_DuplicateID(t *testing.T) {
	csv := `id,term,category,synonyms,icd11_tm2_code
AY001,Amlapitta,,,
AY001,Prameha,,,
`
	_, err := ParseCSV([]byte(csv))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !strings.Contains(verr.Error(), "duplicate") {
		t.Errorf("expected duplicate id error, got %q", verr.Error())
	}
}

func TestParseCSV_MissingRequiredCell(t *testing.T) {
	csv := `id,term,category,synonyms,icd11_tm2_code
AY001,,,,
`
	_, err := ParseCSV([]byte(csv))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestParseCSV_Empty(t *testing.T) {
	_, err := ParseCSV(nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestIngestCSV_LoadsIndex(t *testing.T) {
	idx := NewIndex()
	count, err := IngestCSV(idx, []byte(sampleCSV))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4 ingested, got %d", count)
	}
	if res := idx.Search("Amlapitta"); len(res.Exact) != 1 {
		t.Errorf("expected ingested terms to be searchable, got %+v", res)
	}
}

func TestIngestCSV_ValidationFailureLeavesSnapshotIntact(t *testing.T) {
	idx := NewIndex()
	if _, err := IngestCSV(idx, []byte(sampleCSV)); err != nil {
		t.Fatalf("seed load failed: %v", err)
	}

	bad := "id,term\nX,Y\n"
	if _, err := IngestCSV(idx, []byte(bad)); err == nil {
		t.Fatal("expected validation error")
	}

	if idx.Len() != 4 {
		t.Errorf("failed load must not touch the published snapshot, got %d terms", idx.Len())
	}
	if res := idx.Search("Prameha"); len(res.Exact) != 1 {
		t.Errorf("previous snapshot should still serve reads, got %+v", res)
	}
}
