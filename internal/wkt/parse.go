package wkt

import (
	"fmt"
	"strings"

	"github.com/twpayne/go-geom"
	geomwkt "github.com/twpayne/go-geom/encoding/wkt"
)

// ParseError reports geometry text that is not valid WKT.
type ParseError struct {
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("wkt: invalid geometry %q", e.Text)
	}
	return fmt.Sprintf("wkt: invalid geometry %q: %v", e.Text, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Parse decodes WKT into a go-geom geometry. Coordinates are kept as given;
// no reference system is attached.
func Parse(text string) (geom.T, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &ParseError{Text: text}
	}

	g, err := geomwkt.Unmarshal(trimmed)
	if err != nil {
		return nil, &ParseError{Text: text, Err: err}
	}
	if g == nil {
		return nil, &ParseError{Text: text}
	}
	return g, nil
}

// RepairAndParse runs Repair before Parse. The returned bool reports
// whether Repair changed the text.
func RepairAndParse(text string) (geom.T, bool, error) {
	fixed := Repair(text)
	g, err := Parse(fixed)
	return g, fixed != text, err
}
