package terminology

// Term represents a NAMASTE crosswalk record: one traditional-medicine
// diagnostic term with its mapped ICD-11 (TM2 or Biomedicine) codes.
type Term struct {
	Code       string   `json:"code"`
	Label      string   `json:"label"`
	Category   string   `json:"category,omitempty"`
	Synonyms   []string `json:"synonyms"`
	ICD11Codes []string `json:"icd11_tm2_codes"`
}

// TermResult is the projection of a Term returned by Search.
type TermResult struct {
	Code       string   `json:"code"`
	Label      string   `json:"label"`
	Synonyms   []string `json:"synonyms"`
	ICD11Codes []string `json:"icd11_tm2_codes"`
}

// SearchResult partitions matches into exact and partial buckets.
// Both lists are empty (never nil) when nothing matches.
type SearchResult struct {
	Exact   []TermResult `json:"exact"`
	Partial []TermResult `json:"partial"`
}

// Direction selects which way Translate resolves a code.
type Direction int

const (
	// NAMASTEToICD11 resolves a NAMASTE code (or name) to ICD-11 codes.
	NAMASTEToICD11 Direction = iota
	// ICD11ToNAMASTE resolves an ICD-11 code back to NAMASTE codes.
	ICD11ToNAMASTE
)

// Match is a single code in a translation result, tagged with its system.
type Match struct {
	System string `json:"system"`
	Code   string `json:"code"`
}

// TranslateResult holds the (possibly empty) matches for a translation.
type TranslateResult struct {
	Matches []Match `json:"matches"`
}

// Suggestion is one ranked candidate for a free-text query.
type Suggestion struct {
	NAMASTECode     string   `json:"namaste_code"`
	Label           string   `json:"label"`
	ICD11Candidates []string `json:"icd11_candidates"`
	Confidence      int      `json:"confidence"`
}

// SuggestResult wraps the ranked suggestion list.
type SuggestResult struct {
	Suggestions []Suggestion `json:"suggestions"`
}

// System identifiers used to tag translation matches.
const (
	SystemNAMASTE = "namaste"
	SystemICD11   = "icd11"
)

// CodeSystemURI constants for the FHIR resources built from the index.
const (
	BaseURL       = "http://example.com"
	NAMASTECSURL  = BaseURL + "/CodeSystem/namaste"
	ConceptMapURL = BaseURL + "/ConceptMap/namaste-to-icd11"
	ICD11URL      = "http://id.who.int/icd11"
)
