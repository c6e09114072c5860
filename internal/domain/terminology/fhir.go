package terminology

// CodeSystem is the FHIR CodeSystem rendering of the loaded NAMASTE terms.
type CodeSystem struct {
	ResourceType string              `json:"resourceType"`
	ID           string              `json:"id"`
	URL          string              `json:"url"`
	Version      string              `json:"version"`
	Name         string              `json:"name"`
	Status       string              `json:"status"`
	Content      string              `json:"content"`
	Concept      []CodeSystemConcept `json:"concept"`
}

type CodeSystemConcept struct {
	Code        string        `json:"code"`
	Display     string        `json:"display"`
	Designation []Designation `json:"designation,omitempty"`
}

type Designation struct {
	Value string `json:"value"`
}

// ConceptMap is the FHIR ConceptMap rendering of the NAMASTE→ICD-11 crosswalk.
type ConceptMap struct {
	ResourceType string            `json:"resourceType"`
	ID           string            `json:"id"`
	URL          string            `json:"url"`
	SourceURI    string            `json:"sourceUri"`
	TargetURI    string            `json:"targetUri"`
	Group        []ConceptMapGroup `json:"group"`
}

type ConceptMapGroup struct {
	Source  string              `json:"source"`
	Target  string              `json:"target"`
	Element []ConceptMapElement `json:"element"`
}

type ConceptMapElement struct {
	Code   string             `json:"code"`
	Target []ConceptMapTarget `json:"target"`
}

type ConceptMapTarget struct {
	Code        string `json:"code"`
	Equivalence string `json:"equivalence"`
}

// BuildCodeSystem renders the current snapshot as a complete CodeSystem with
// synonym designations.
func BuildCodeSystem(idx *Index) *CodeSystem {
	cs := &CodeSystem{
		ResourceType: "CodeSystem",
		ID:           "namaste",
		URL:          NAMASTECSURL,
		Version:      "1.0.0",
		Name:         "NAMASTE",
		Status:       "active",
		Content:      "complete",
		Concept:      []CodeSystemConcept{},
	}
	for _, t := range idx.Terms() {
		concept := CodeSystemConcept{Code: t.Code, Display: t.Label}
		for _, syn := range t.Synonyms {
			concept.Designation = append(concept.Designation, Designation{Value: syn})
		}
		cs.Concept = append(cs.Concept, concept)
	}
	return cs
}

// BuildConceptMap renders the crosswalk as a single-group ConceptMap with
// normalized ICD-11 target codes.
func BuildConceptMap(idx *Index) *ConceptMap {
	elements := []ConceptMapElement{}
	for _, t := range idx.Terms() {
		targets := []ConceptMapTarget{}
		for _, icd := range t.ICD11Codes {
			targets = append(targets, ConceptMapTarget{
				Code:        NormalizeICD11(icd),
				Equivalence: "equivalent",
			})
		}
		elements = append(elements, ConceptMapElement{Code: t.Code, Target: targets})
	}
	return &ConceptMap{
		ResourceType: "ConceptMap",
		ID:           "namaste-to-icd11",
		URL:          ConceptMapURL,
		SourceURI:    NAMASTECSURL,
		TargetURI:    ICD11URL,
		Group: []ConceptMapGroup{{
			Source:  NAMASTECSURL,
			Target:  ICD11URL,
			Element: elements,
		}},
	}
}
