package terminology

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// RequiredColumns are the CSV headers a NAMASTE export must carry.
// The synonyms and icd11_tm2_code cells hold comma-separated lists.
var RequiredColumns = []string{"id", "term", "category", "synonyms", "icd11_tm2_code"}

// ValidationError reports a malformed CSV upload. Ingestion aborts before the
// index is touched, so the previously published snapshot stays live.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "csv validation: " + e.Reason
}

// ParseCSV parses and validates a NAMASTE CSV export into crosswalk terms.
// It enforces the required header set, non-empty id/term cells, and id
// uniqueness across the file.
func ParseCSV(content []byte) ([]Term, error) {
	r := csv.NewReader(bytes.NewReader(content))
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, &ValidationError{Reason: "empty or unreadable CSV"}
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.ToLower(name))] = i
	}
	var missing []string
	for _, required := range RequiredColumns {
		if _, ok := col[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Reason: fmt.Sprintf("missing required columns: %s", strings.Join(missing, ", "))}
	}

	var terms []Term
	seen := make(map[string]bool)
	for line := 2; ; line++ {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ValidationError{Reason: fmt.Sprintf("line %d: %v", line, err)}
		}

		cell := func(name string) string {
			i := col[name]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		code := cell("id")
		label := cell("term")
		if code == "" {
			return nil, &ValidationError{Reason: fmt.Sprintf("line %d: missing id", line)}
		}
		if label == "" {
			return nil, &ValidationError{Reason: fmt.Sprintf("line %d: missing term", line)}
		}
		if seen[code] {
			return nil, &ValidationError{Reason: fmt.Sprintf("duplicate id %q", code)}
		}
		seen[code] = true

		terms = append(terms, Term{
			Code:       code,
			Label:      label,
			Category:   cell("category"),
			Synonyms:   splitList(cell("synonyms")),
			ICD11Codes: splitList(cell("icd11_tm2_code")),
		})
	}
	return terms, nil
}

// IngestCSV parses, validates, and atomically loads a CSV export into the
// index, returning the number of terms loaded.
func IngestCSV(idx *Index, content []byte) (int, error) {
	terms, err := ParseCSV(content)
	if err != nil {
		return 0, err
	}
	return idx.BulkLoad(terms), nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
