package ingest

import "github.com/AngelCh415/digmar-dash/internal/models"

// Missing returns the required columns absent from cols, in canonical order.
// Extra columns are ignored and order does not matter.
func Missing(cols []string) []string {
	have := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		have[c] = struct{}{}
	}
	var out []string
	for _, req := range models.RequiredColumns {
		if _, ok := have[req]; !ok {
			out = append(out, req)
		}
	}
	return out
}

// Valid reports whether every required column is present.
func Valid(cols []string) bool { return len(Missing(cols)) == 0 }

// Validate rejects the whole table when any required column is missing.
func Validate(cols []string) error {
	if m := Missing(cols); len(m) > 0 {
		return &SchemaError{Missing: m}
	}
	return nil
}
