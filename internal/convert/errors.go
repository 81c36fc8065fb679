package convert

import (
	"fmt"
)

// RowError reports a row whose geometry could not be parsed, even after
// repair. Row is the 1-based data row number (the header is not counted).
type RowError struct {
	Row   int
	Value string
	Err   error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("convert: row %d: invalid geometry %q: %v", e.Row, e.Value, e.Err)
}

func (e *RowError) Unwrap() error { return e.Err }
