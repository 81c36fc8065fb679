package feature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twpayne/go-geom"

	"github.com/sells-group/plot-geojson/internal/schema"
)

func testPoint() geom.T {
	return geom.NewPointFlat(geom.XY, []float64{37.1, -0.4})
}

func TestBuild_LegacyRow(t *testing.T) {
	row := Row{
		"Plot WKT":               "POLYGON ((0 0, 0 1, 1 1, 1 0))",
		"Sucafina Plot ID":       "P1",
		"Plot area (ha)":         "2.5",
		"Country":                "Kenya",
		"Region":                 "Nyeri",
		"Recommended compliance": "Yes",
	}

	f, defaulted := Build(row, testPoint(), schema.Legacy())
	require.NotNil(t, f)
	assert.Empty(t, defaulted)
	assert.Equal(t, map[string]any{
		"Sucafina_Plot_ID":       "P1",
		"Plot_area_ha":           2.5,
		"Country":                "Kenya",
		"Region":                 "Nyeri",
		"Recommended compliance": "Yes",
	}, f.Properties)
	assert.Equal(t, testPoint(), f.Geometry)
}

func TestBuild_AllDefaults(t *testing.T) {
	f, defaulted := Build(Row{}, testPoint(), schema.Legacy())
	require.NotNil(t, f)

	assert.Equal(t, map[string]any{
		"Sucafina_Plot_ID":       "Unknown",
		"Plot_area_ha":           0.0,
		"Country":                "Unknown",
		"Region":                 "Unknown",
		"Recommended compliance": "Unknown",
	}, f.Properties)
	assert.Len(t, defaulted, 5)
}

func TestBuild_OptionalColumnAbsent(t *testing.T) {
	row := Row{
		"Geometry":        "POINT (1 2)",
		"ProducerName":    "Coop A",
		"Area":            "1,5",
		"ProducerCountry": "Peru",
		"EUDR compliance": "Compliant",
	}

	f, defaulted := Build(row, testPoint(), schema.EUDR())
	assert.Equal(t, "Unknown", f.Properties["ProductionPlace"])
	assert.Equal(t, 0.0, f.Properties["Area"])
	assert.ElementsMatch(t, []string{"Area", "ProductionPlace"}, defaulted)
}

func TestCoerceNumber(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want any
		ok   bool
	}{
		{"float", 2.5, 2.5, true},
		{"int", 3, 3.0, true},
		{"string", " 4.25 ", 4.25, true},
		{"scientific", "1e3", 1000.0, true},
		{"empty", "", nil, false},
		{"blank", "   ", nil, false},
		{"garbage", "abc", nil, false},
		{"nan string", "NaN", nil, false},
		{"nan float", math.NaN(), nil, false},
		{"inf", math.Inf(1), nil, false},
		{"nil", nil, nil, false},
		{"bool", true, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerce(tt.raw, schema.TypeNumber)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerceString(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want any
		ok   bool
	}{
		{"string", "Kenya", "Kenya", true},
		{"trimmed", "  Nyeri ", "Nyeri", true},
		{"float", 12.0, "12", true},
		{"fraction", 0.75, "0.75", true},
		{"int", 7, "7", true},
		{"bool", false, "false", true},
		{"empty", "", nil, false},
		{"nan", "NaN", nil, false},
		{"nan float", math.NaN(), nil, false},
		{"nil", nil, nil, false},
		{"slice", []string{"a"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := coerce(tt.raw, schema.TypeString)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRowText(t *testing.T) {
	row := Row{"a": " x ", "b": 1.5}
	assert.Equal(t, "x", row.Text("a"))
	assert.Equal(t, "1.5", row.Text("b"))
	assert.Equal(t, "", row.Text("missing"))
}
