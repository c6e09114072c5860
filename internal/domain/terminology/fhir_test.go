package terminology

import "testing"

func TestBuildCodeSystem(t *testing.T) {
	idx := NewIndex()
	idx.BulkLoad(sampleTerms())

	cs := BuildCodeSystem(idx)
	if cs.ResourceType != "CodeSystem" || cs.ID != "namaste" || cs.Status != "active" {
		t.Fatalf("unexpected envelope: %+v", cs)
	}
	if len(cs.Concept) != 4 {
		t.Fatalf("expected 4 concepts, got %d", len(cs.Concept))
	}
	first := cs.Concept[0]
	if first.Code != "AY001" || first.Display != "Amlapitta" {
		t.Errorf("expected load order preserved, got %+v", first)
	}
	if len(first.Designation) != 1 || first.Designation[0].Value != "Sour indigestion" {
		t.Errorf("expected synonym designations, got %+v", first.Designation)
	}
	if len(cs.Concept[3].Designation) != 0 {
		t.Errorf("term without synonyms should have no designations, got %+v", cs.Concept[3].Designation)
	}
}

func TestBuildConceptMap(t *testing.T) {
	idx := NewIndex()
	idx.BulkLoad(sampleTerms())

	cm := BuildConceptMap(idx)
	if cm.SourceURI != NAMASTECSURL || cm.TargetURI != ICD11URL {
		t.Fatalf("unexpected uris: %+v", cm)
	}
	if len(cm.Group) != 1 || len(cm.Group[0].Element) != 4 {
		t.Fatalf("expected one group with 4 elements, got %+v", cm.Group)
	}

	byCode := map[string]ConceptMapElement{}
	for _, el := range cm.Group[0].Element {
		byCode[el.Code] = el
	}
	jwara := byCode["AY003"]
	if len(jwara.Target) != 1 || jwara.Target[0].Code != "TM2-AY400" {
		t.Errorf("expected normalized target code, got %+v", jwara.Target)
	}
	if jwara.Target[0].Equivalence != "equivalent" {
		t.Errorf("expected equivalence=equivalent, got %+v", jwara.Target[0])
	}
	if len(byCode["AY004"].Target) != 0 {
		t.Errorf("unmapped term should have empty targets, got %+v", byCode["AY004"].Target)
	}
}

func TestBuildCodeSystem_EmptyIndex(t *testing.T) {
	cs := BuildCodeSystem(NewIndex())
	if cs.Concept == nil || len(cs.Concept) != 0 {
		t.Errorf("empty index should yield empty concept list, got %+v", cs.Concept)
	}
}
