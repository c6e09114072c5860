package terminology

import (
	"fmt"
)

// TitleSource resolves an ICD-11 code to a human-readable title. The WHO
// reference set implements it; a nil source leaves codes untitled.
type TitleSource interface {
	Title(code string) (string, bool)
}

// Target is one enriched translation target returned by the REST layer.
type Target struct {
	Code   string `json:"code"`
	Title  string `json:"title"`
	System string `json:"system"`
}

// TranslateResponse is the REST shape of a translation: deduplicated targets
// enriched with display titles.
type TranslateResponse struct {
	Targets []Target `json:"targets"`
}

// Service provides crosswalk query and ingestion operations over the index.
type Service struct {
	index  *Index
	titles TitleSource
}

// NewService creates a terminology service. titles may be nil.
func NewService(index *Index, titles TitleSource) *Service {
	return &Service{index: index, titles: titles}
}

// Index exposes the underlying crosswalk for collaborators that read the
// snapshot directly (FHIR builders, stats).
func (s *Service) Index() *Index {
	return s.index
}

// Ingest validates and loads a CSV export, replacing the whole index.
func (s *Service) Ingest(content []byte) (int, error) {
	return IngestCSV(s.index, content)
}

// Search returns exact and partial matches for a free-text query.
func (s *Service) Search(query string) (SearchResult, error) {
	if query == "" {
		return SearchResult{}, fmt.Errorf("query parameter is required")
	}
	return s.index.Search(query), nil
}

// Suggest returns confidence-ranked candidates for a free-text query.
func (s *Service) Suggest(query string) (SuggestResult, error) {
	if query == "" {
		return SuggestResult{}, fmt.Errorf("query parameter is required")
	}
	return s.index.Suggest(query), nil
}

// Translate resolves a code in the named system ("namaste" or "icd11") to
// deduplicated, title-enriched targets in the other system.
func (s *Service) Translate(code, system string) (*TranslateResponse, error) {
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}

	resp := &TranslateResponse{Targets: []Target{}}
	seen := make(map[string]bool)

	switch system {
	case SystemNAMASTE:
		raw := s.index.Translate(code, NAMASTEToICD11)
		for _, m := range raw.Matches {
			if m.Code == "" || seen[m.Code] {
				continue
			}
			seen[m.Code] = true
			resp.Targets = append(resp.Targets, Target{
				Code:   m.Code,
				Title:  s.titleFor(m.Code),
				System: "ICD-11",
			})
		}
	case SystemICD11:
		raw := s.index.Translate(code, ICD11ToNAMASTE)
		for _, m := range raw.Matches {
			if m.Code == "" || seen[m.Code] {
				continue
			}
			seen[m.Code] = true
			title := m.Code
			if t, ok := s.index.Get(m.Code); ok {
				title = t.Label
			}
			resp.Targets = append(resp.Targets, Target{
				Code:   m.Code,
				Title:  title,
				System: "NAMASTE",
			})
		}
	default:
		return nil, fmt.Errorf("system must be %q or %q, got %q", SystemNAMASTE, SystemICD11, system)
	}

	return resp, nil
}

func (s *Service) titleFor(code string) string {
	if s.titles != nil {
		if title, ok := s.titles.Title(code); ok {
			return title
		}
	}
	return code
}
