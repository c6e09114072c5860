package terminology

import (
	"sort"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/hbollon/go-edlib"
)

// Fuzzy-matching contract shared by Search and Translate fallbacks.
const (
	fuzzyCutoff     = 0.6
	fuzzyCandidates = 8
)

// Suggest ranking limits. Very short queries return a longer, alphabetically
// tie-broken list for type-ahead use.
const (
	shortQueryLen   = 2
	shortQueryLimit = 50
	longQueryLimit  = 20
)

// Index is the bidirectional NAMASTE/ICD-11 crosswalk. All reads operate on
// an immutable snapshot; BulkLoad builds a replacement snapshot off to the
// side and publishes it with a single atomic swap, so lookups running
// concurrently with a load always observe a fully built index.
type Index struct {
	snap atomic.Pointer[snapshot]
}

type nameEntry struct {
	name string // lower-cased label or synonym
	code string // owning NAMASTE code
}

type snapshot struct {
	terms  map[string]*Term    // code -> term
	order  []string            // codes in load order
	byName map[string]string   // lower(label|synonym) -> code, first writer wins
	byICD  map[string][]string // raw and normalized ICD-11 code -> NAMASTE codes
	names  []nameEntry         // name universe for fuzzy matching
}

// NewIndex returns an empty index ready for reads.
func NewIndex() *Index {
	idx := &Index{}
	idx.snap.Store(newSnapshot())
	return idx
}

func newSnapshot() *snapshot {
	return &snapshot{
		terms:  make(map[string]*Term),
		byName: make(map[string]string),
		byICD:  make(map[string][]string),
	}
}

// NormalizeICD11 strips the "ICD-11:" system prefix and surrounding
// whitespace from a target code.
func NormalizeICD11(code string) string {
	return strings.TrimSpace(strings.ReplaceAll(code, "ICD-11:", ""))
}

func (s *snapshot) add(term Term) {
	t := term
	if _, seen := s.terms[t.Code]; !seen {
		s.order = append(s.order, t.Code)
	}
	s.terms[t.Code] = &t

	label := strings.ToLower(t.Label)
	s.byName[label] = t.Code
	s.names = append(s.names, nameEntry{name: label, code: t.Code})
	for _, syn := range t.Synonyms {
		low := strings.ToLower(syn)
		if _, taken := s.byName[low]; !taken {
			s.byName[low] = t.Code
		}
		s.names = append(s.names, nameEntry{name: low, code: t.Code})
	}

	for _, icd := range t.ICD11Codes {
		norm := NormalizeICD11(icd)
		s.byICD[icd] = append(s.byICD[icd], t.Code)
		if norm != icd {
			s.byICD[norm] = append(s.byICD[norm], t.Code)
		}
	}
}

// BulkLoad replaces the entire index with the given terms and returns the
// number of terms loaded. The previous snapshot stays visible to concurrent
// readers until the new one is published.
func (idx *Index) BulkLoad(terms []Term) int {
	next := newSnapshot()
	for _, t := range terms {
		next.add(t)
	}
	idx.snap.Store(next)
	return len(terms)
}

// Len reports how many terms are currently loaded.
func (idx *Index) Len() int {
	return len(idx.snap.Load().terms)
}

// Get returns the term for a NAMASTE code.
func (idx *Index) Get(code string) (*Term, bool) {
	t, ok := idx.snap.Load().terms[code]
	return t, ok
}

// Terms returns all loaded terms in load order.
func (idx *Index) Terms() []*Term {
	s := idx.snap.Load()
	out := make([]*Term, 0, len(s.order))
	for _, code := range s.order {
		out = append(out, s.terms[code])
	}
	return out
}

func project(t *Term) TermResult {
	return TermResult{
		Code:       t.Code,
		Label:      t.Label,
		Synonyms:   t.Synonyms,
		ICD11Codes: t.ICD11Codes,
	}
}

// Search partitions terms into exact matches (query equals label or a
// synonym, case-insensitively) and partial matches (query is a substring).
// When both buckets come up empty the closest names by edit-distance ratio
// are folded into the partial bucket.
func (idx *Index) Search(query string) SearchResult {
	s := idx.snap.Load()
	q := strings.ToLower(strings.TrimSpace(query))

	result := SearchResult{Exact: []TermResult{}, Partial: []TermResult{}}

	for _, code := range s.order {
		t := s.terms[code]
		label := strings.ToLower(t.Label)

		exact := label == q
		partial := strings.Contains(label, q)
		for _, syn := range t.Synonyms {
			low := strings.ToLower(syn)
			if low == q {
				exact = true
			}
			if strings.Contains(low, q) {
				partial = true
			}
		}

		switch {
		case exact:
			result.Exact = append(result.Exact, project(t))
		case partial:
			result.Partial = append(result.Partial, project(t))
		}
	}

	if len(result.Exact) == 0 && len(result.Partial) == 0 && q != "" {
		seen := make(map[string]bool)
		for _, e := range closestNames(q, s.names, fuzzyCandidates, fuzzyCutoff) {
			if seen[e.code] {
				continue
			}
			seen[e.code] = true
			result.Partial = append(result.Partial, project(s.terms[e.code]))
		}
	}

	return result
}

// Translate resolves a code across the crosswalk.
//
// NAMASTE→ICD-11 accepts a code, an exact label/synonym, or (as a last
// resort) the closest fuzzy name match, so the same endpoint serves both
// code-driven and name-driven callers. ICD-11→NAMASTE looks up the raw and
// normalized forms of the input and unions the resulting codes. An unknown
// input yields an empty match list, never an error.
func (idx *Index) Translate(code string, dir Direction) TranslateResult {
	s := idx.snap.Load()
	result := TranslateResult{Matches: []Match{}}

	if dir == NAMASTEToICD11 {
		term := s.terms[code]
		if term == nil {
			if byName, ok := s.byName[strings.ToLower(code)]; ok {
				term = s.terms[byName]
			}
		}
		if term == nil {
			if best, ok := bestName(strings.ToLower(code), s.names, fuzzyCutoff); ok {
				term = s.terms[s.byName[best]]
			}
		}
		if term == nil {
			return result
		}
		for _, icd := range term.ICD11Codes {
			result.Matches = append(result.Matches, Match{System: SystemICD11, Code: NormalizeICD11(icd)})
		}
		return result
	}

	norm := NormalizeICD11(code)
	seen := make(map[string]bool)
	for _, bucket := range [][]string{s.byICD[code], s.byICD[norm]} {
		for _, nam := range bucket {
			if seen[nam] {
				continue
			}
			seen[nam] = true
			result.Matches = append(result.Matches, Match{System: SystemNAMASTE, Code: nam})
		}
	}
	return result
}

// Suggest scores every term against a free-text query and returns a ranked
// candidate list for disambiguation UIs. The scoring table is heuristic and
// pinned by downstream consumers; keep the literals in sync with the tests.
func (idx *Index) Suggest(text string) SuggestResult {
	s := idx.snap.Load()
	q := strings.ToLower(strings.TrimSpace(text))
	qLen := utf8.RuneCountInString(q) // characters, not bytes: queries may be Devanagari, Tamil, Arabic

	suggestions := []Suggestion{}
	for _, code := range s.order {
		t := s.terms[code]
		label := strings.ToLower(t.Label)

		prefix := strings.HasPrefix(label, q)
		exact := label == q
		for _, syn := range t.Synonyms {
			low := strings.ToLower(syn)
			if strings.HasPrefix(low, q) {
				prefix = true
			}
			if low == q {
				exact = true
			}
		}

		score := 0
		switch {
		case prefix && qLen == 1:
			score = 92
		case prefix:
			score = 96
		case exact:
			score = 95
		case strings.Contains(label, q):
			score = 80
		default:
			if overlap := tokenOverlap(q, label); overlap > 0 {
				score = 60 + 10*min(overlap, 3)
			}
		}
		if score == 0 {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			NAMASTECode:     t.Code,
			Label:           t.Label,
			ICD11Candidates: t.ICD11Codes,
			Confidence:      min(score, 99),
		})
	}

	if qLen <= shortQueryLen {
		sort.SliceStable(suggestions, func(i, j int) bool {
			if suggestions[i].Confidence != suggestions[j].Confidence {
				return suggestions[i].Confidence > suggestions[j].Confidence
			}
			return suggestions[i].Label < suggestions[j].Label
		})
		return SuggestResult{Suggestions: capSuggestions(suggestions, shortQueryLimit)}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})
	return SuggestResult{Suggestions: capSuggestions(suggestions, longQueryLimit)}
}

func capSuggestions(s []Suggestion, limit int) []Suggestion {
	if len(s) > limit {
		return s[:limit]
	}
	return s
}

func tokenOverlap(q, label string) int {
	labelTokens := make(map[string]bool)
	for _, tok := range strings.Fields(label) {
		labelTokens[tok] = true
	}
	seen := make(map[string]bool)
	overlap := 0
	for _, tok := range strings.Fields(q) {
		if labelTokens[tok] && !seen[tok] {
			seen[tok] = true
			overlap++
		}
	}
	return overlap
}

// similarity is a normalized edit-distance ratio in [0,1].
func similarity(a, b string) float64 {
	score, err := edlib.StringsSimilarity(a, b, edlib.Levenshtein)
	if err != nil {
		return 0
	}
	return float64(score)
}

type scoredName struct {
	nameEntry
	score float64
}

// closestNames returns up to n name entries with similarity >= cutoff,
// best first. Ties keep registration order.
func closestNames(q string, names []nameEntry, n int, cutoff float64) []nameEntry {
	var scored []scoredName
	for _, e := range names {
		if sc := similarity(q, e.name); sc >= cutoff {
			scored = append(scored, scoredName{nameEntry: e, score: sc})
		}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	if len(scored) > n {
		scored = scored[:n]
	}
	out := make([]nameEntry, len(scored))
	for i, sn := range scored {
		out[i] = sn.nameEntry
	}
	return out
}

// bestName returns the single closest name at or above the cutoff.
func bestName(q string, names []nameEntry, cutoff float64) (string, bool) {
	best := ""
	bestScore := cutoff
	found := false
	for _, e := range names {
		if sc := similarity(q, e.name); sc > bestScore || (!found && sc >= cutoff) {
			best = e.name
			bestScore = sc
			found = true
		}
	}
	return best, found
}
