package schema

import (
	"fmt"
	"strings"
)

// SchemaError reports required columns missing from a table. It is fatal for
// the whole table.
type SchemaError struct {
	Variant string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: table does not match variant %q: missing required columns: %s",
		e.Variant, strings.Join(e.Missing, ", "))
}

// Missing returns the variant's required columns absent from columns, in
// required order. Extra columns and column order are ignored.
func Missing(columns []string, v Variant) []string {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[strings.TrimSpace(c)] = true
	}

	var missing []string
	for _, req := range v.RequiredColumns {
		if !present[req] {
			missing = append(missing, req)
		}
	}
	return missing
}

// Check returns a *SchemaError when any required column is missing.
func Check(columns []string, v Variant) error {
	if missing := Missing(columns, v); len(missing) > 0 {
		return &SchemaError{Variant: v.ID, Missing: missing}
	}
	return nil
}
