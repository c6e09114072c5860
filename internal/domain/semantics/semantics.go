package semantics

import "strings"

// SNOMED CT and LOINC lookup tables backing the semantic coding layer
// required by India's EHR standards. Clinical findings resolve through
// SNOMED CT; laboratory tests and observations resolve through LOINC.

const (
	SystemSNOMED = "http://snomed.info/sct"
	SystemLOINC  = "http://loinc.org"
)

// Concept is a SNOMED CT concept.
type Concept struct {
	Code     string `json:"code"`
	Display  string `json:"display"`
	System   string `json:"system"`
	Category string `json:"category"`
}

// Code is a LOINC code.
type Code struct {
	Code     string `json:"code"`
	Display  string `json:"display"`
	System   string `json:"system"`
	Category string `json:"category"`
}

// Both vocabularies are registration-ordered so search results are stable
// across calls. The maps index the same entries for direct lookup.

type conceptEntry struct {
	term    string
	concept Concept
}

type codeEntry struct {
	term string
	code Code
}

var snomedEntries = []conceptEntry{
	// Clinical findings
	{"finding", Concept{Code: "404684003", Display: "Clinical finding", System: SystemSNOMED, Category: "clinical-finding"}},
	{"disease", Concept{Code: "64572001", Display: "Disease", System: SystemSNOMED, Category: "clinical-finding"}},
	{"disorder", Concept{Code: "362981000", Display: "Qualifier value", System: SystemSNOMED, Category: "clinical-finding"}},

	// Ayurvedic findings
	{"amlapitta", Concept{Code: "22253000", Display: "Pain in stomach", System: SystemSNOMED, Category: "clinical-finding"}},
	{"prameha", Concept{Code: "73211009", Display: "Diabetes mellitus", System: SystemSNOMED, Category: "clinical-finding"}},
	{"shwasa", Concept{Code: "13645005", Display: "Cough", System: SystemSNOMED, Category: "clinical-finding"}},
	{"jwara", Concept{Code: "386661006", Display: "Fever", System: SystemSNOMED, Category: "clinical-finding"}},
}

var loincEntries = []codeEntry{
	// Lab tests
	{"glucose", Code{Code: "33747-0", Display: "Glucose [Mass/volume] in Blood", System: SystemLOINC, Category: "laboratory"}},
	{"hemoglobin", Code{Code: "718-7", Display: "Hemoglobin [Mass/volume] in Blood", System: SystemLOINC, Category: "laboratory"}},
	{"cholesterol", Code{Code: "2093-3", Display: "Cholesterol [Mass/volume] in Serum or Plasma", System: SystemLOINC, Category: "laboratory"}},
	{"blood_pressure", Code{Code: "85354-9", Display: "Blood pressure panel", System: SystemLOINC, Category: "vital-signs"}},
	{"temperature", Code{Code: "8310-5", Display: "Body temperature", System: SystemLOINC, Category: "vital-signs"}},
	{"pulse", Code{Code: "8867-4", Display: "Heart rate", System: SystemLOINC, Category: "vital-signs"}},

	// Ayurvedic observations
	{"prakriti", Code{Code: "LA33-6", Display: "Constitutional type", System: SystemLOINC, Category: "observation"}},
	{"dosha", Code{Code: "LA34-4", Display: "Dosha imbalance", System: SystemLOINC, Category: "observation"}},
}

var snomedConcepts = func() map[string]Concept {
	m := make(map[string]Concept, len(snomedEntries))
	for _, e := range snomedEntries {
		m[e.term] = e.concept
	}
	return m
}()

var loincCodes = func() map[string]Code {
	m := make(map[string]Code, len(loincEntries))
	for _, e := range loincEntries {
		m[e.term] = e.code
	}
	return m
}()

// GetConcept returns the SNOMED concept registered for a term.
func GetConcept(term string) (Concept, bool) {
	c, ok := snomedConcepts[strings.ToLower(term)]
	return c, ok
}

// GetCode returns the LOINC code registered for a term.
func GetCode(term string) (Code, bool) {
	c, ok := loincCodes[strings.ToLower(term)]
	return c, ok
}

// SearchConcepts returns SNOMED concepts whose key or display contains the
// query, case-insensitively, in registration order.
func SearchConcepts(query string) []Concept {
	q := strings.ToLower(query)
	out := []Concept{}
	for _, e := range snomedEntries {
		if strings.Contains(e.term, q) || strings.Contains(strings.ToLower(e.concept.Display), q) {
			out = append(out, e.concept)
		}
	}
	return out
}

// SearchCodes returns LOINC codes whose key or display contains the query,
// in registration order.
func SearchCodes(query string) []Code {
	q := strings.ToLower(query)
	out := []Code{}
	for _, e := range loincEntries {
		if strings.Contains(e.term, q) || strings.Contains(strings.ToLower(e.code.Display), q) {
			out = append(out, e.code)
		}
	}
	return out
}

// Coding is the system/code/display triple surfaced by SemanticCoding.
type Coding struct {
	System  string `json:"system"`
	Code    string `json:"code"`
	Display string `json:"display"`
}

// SemanticCoding holds the coding chosen for a term by category.
type SemanticCoding struct {
	SNOMED   *Coding `json:"snomed"`
	LOINC    *Coding `json:"loinc"`
	Category string  `json:"category"`
}

// CodingFor picks the appropriate semantic coding for a term. Clinical
// categories resolve through SNOMED CT, laboratory and observation
// categories through LOINC.
func CodingFor(term, category string) SemanticCoding {
	result := SemanticCoding{Category: category}

	switch category {
	case "clinical", "finding", "disease", "disorder":
		if concept, ok := GetConcept(term); ok {
			result.SNOMED = &Coding{System: concept.System, Code: concept.Code, Display: concept.Display}
		}
	case "laboratory", "test", "observation", "vital-signs":
		if code, ok := GetCode(term); ok {
			result.LOINC = &Coding{System: code.System, Code: code.Code, Display: code.Display}
		}
	}

	return result
}
