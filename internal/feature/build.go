// Package feature turns table rows into GeoJSON features and assembles them
// into a FeatureCollection.
package feature

import (
	"math"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/plot-geojson/internal/schema"
)

// Row is one input record keyed by column name. Values are strings from CSV
// input, or float64/bool from spreadsheet cells.
type Row map[string]any

// Text returns the trimmed string form of a column value.
func (r Row) Text(column string) string {
	s, _ := stringify(r[column])
	return s
}

// Build combines a parsed geometry with the variant's properties. It never
// fails: missing, empty, or unparseable values take the property default.
// The returned slice names the properties that fell back to their default.
func Build(row Row, g geom.T, v schema.Variant) (*geojson.Feature, []string) {
	props := make(map[string]any, len(v.Properties))
	var defaulted []string

	for _, p := range v.Properties {
		val, ok := coerce(row[p.Column], p.Type)
		if !ok {
			val = p.DefaultValue()
			defaulted = append(defaulted, p.Name)
		}
		props[p.Name] = val
	}

	return &geojson.Feature{
		Geometry:   g,
		Properties: props,
	}, defaulted
}

func coerce(raw any, typ schema.PropertyType) (any, bool) {
	switch typ {
	case schema.TypeNumber:
		return toNumber(raw)
	default:
		s, ok := stringify(raw)
		if !ok || s == "" || s == "NaN" {
			return nil, false
		}
		return s, true
	}
}

func toNumber(raw any) (any, bool) {
	var f float64
	switch x := raw.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil, false
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		f = parsed
	default:
		return nil, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return f, true
}

// stringify renders a scalar cell value as text. Non-scalars report false.
func stringify(raw any) (string, bool) {
	switch x := raw.(type) {
	case nil:
		return "", false
	case string:
		return strings.TrimSpace(x), true
	case float64:
		if math.IsNaN(x) {
			return "", false
		}
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case bool:
		return strconv.FormatBool(x), true
	default:
		return "", false
	}
}
