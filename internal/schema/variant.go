// Package schema defines the supported table shapes and checks uploaded
// tables against them.
package schema

import (
	"slices"
	"strings"

	"github.com/rotisserie/eris"
)

// PropertyType is the declared type of an output property.
type PropertyType string

// Supported property types.
const (
	TypeString PropertyType = "string"
	TypeNumber PropertyType = "number"
)

// Default values substituted for missing or unusable attribute data.
const (
	DefaultString         = "Unknown"
	DefaultNumber float64 = 0
)

// Property maps one source column to one output property.
type Property struct {
	Name    string       `yaml:"name" json:"name"`
	Column  string       `yaml:"column" json:"column"`
	Type    PropertyType `yaml:"type" json:"type"`
	Default any          `yaml:"default,omitempty" json:"default"`
}

// DefaultValue returns the property's declared default, falling back to the
// type-wide default when none is set.
func (p Property) DefaultValue() any {
	if n, ok := p.Default.(int); ok {
		return float64(n)
	}
	if p.Default != nil {
		return p.Default
	}
	switch p.Type {
	case TypeNumber:
		return DefaultNumber
	default:
		return DefaultString
	}
}

// Variant describes one supported table shape.
type Variant struct {
	ID              string     `yaml:"id" json:"id"`
	Name            string     `yaml:"name" json:"name"`
	RequiredColumns []string   `yaml:"required_columns" json:"required_columns"`
	OptionalColumns []string   `yaml:"optional_columns,omitempty" json:"optional_columns,omitempty"`
	GeometryColumn  string     `yaml:"geometry_column" json:"geometry_column"`
	Properties      []Property `yaml:"properties" json:"properties"`
}

// Validate checks the variant's internal consistency.
func (v Variant) Validate() error {
	if strings.TrimSpace(v.ID) == "" {
		return eris.New("schema: variant id is required")
	}
	if len(v.RequiredColumns) == 0 {
		return eris.Errorf("schema: variant %q has no required columns", v.ID)
	}
	if !slices.Contains(v.RequiredColumns, v.GeometryColumn) {
		return eris.Errorf("schema: variant %q geometry column %q is not a required column", v.ID, v.GeometryColumn)
	}

	seen := make(map[string]bool, len(v.Properties))
	for _, p := range v.Properties {
		if p.Name == "" {
			return eris.Errorf("schema: variant %q has a property with no name", v.ID)
		}
		if seen[p.Name] {
			return eris.Errorf("schema: variant %q declares property %q twice", v.ID, p.Name)
		}
		seen[p.Name] = true

		if !slices.Contains(v.RequiredColumns, p.Column) && !slices.Contains(v.OptionalColumns, p.Column) {
			return eris.Errorf("schema: variant %q property %q reads undeclared column %q", v.ID, p.Name, p.Column)
		}
		if err := checkDefault(p); err != nil {
			return eris.Wrapf(err, "schema: variant %q", v.ID)
		}
	}
	return nil
}

func checkDefault(p Property) error {
	switch p.Type {
	case TypeString:
		if p.Default != nil {
			if _, ok := p.Default.(string); !ok {
				return eris.Errorf("property %q: string default has type %T", p.Name, p.Default)
			}
		}
	case TypeNumber:
		switch p.Default.(type) {
		case nil, float64, int:
		default:
			return eris.Errorf("property %q: number default has type %T", p.Name, p.Default)
		}
	default:
		return eris.Errorf("property %q: unknown type %q", p.Name, p.Type)
	}
	return nil
}

func str(name, column string) Property {
	return Property{Name: name, Column: column, Type: TypeString}
}

func num(name, column string) Property {
	return Property{Name: name, Column: column, Type: TypeNumber}
}

// Legacy is the first plot export format, keyed by a "Plot WKT" geometry column.
func Legacy() Variant {
	return Variant{
		ID:   "legacy",
		Name: "Plot WKT",
		RequiredColumns: []string{
			"Sucafina Plot ID", "Plot area (ha)", "Country", "Region",
			"Recommended compliance", "Plot WKT",
		},
		GeometryColumn: "Plot WKT",
		Properties: []Property{
			str("Sucafina_Plot_ID", "Sucafina Plot ID"),
			num("Plot_area_ha", "Plot area (ha)"),
			str("Country", "Country"),
			str("Region", "Region"),
			str("Recommended compliance", "Recommended compliance"),
		},
	}
}

// EUDR is the producer export keyed by ProducerName.
func EUDR() Variant {
	return Variant{
		ID:   "eudr",
		Name: "Geometry + ProducerName",
		RequiredColumns: []string{
			"Geometry", "ProducerName", "Area", "ProducerCountry", "EUDR compliance",
		},
		OptionalColumns: []string{"ProductionPlace"},
		GeometryColumn:  "Geometry",
		Properties: []Property{
			str("ProducerName", "ProducerName"),
			num("Area", "Area"),
			str("ProducerCountry", "ProducerCountry"),
			str("EUDR compliance", "EUDR compliance"),
			str("ProductionPlace", "ProductionPlace"),
		},
	}
}

// ICECOT is the commodity export carrying ICE cotton plot identifiers.
func ICECOT() Variant {
	return Variant{
		ID:   "ice-cot",
		Name: "Geometry + Commodity",
		RequiredColumns: []string{
			"Geometry", "Commodity", "Area", "ProducerCountry", "Variety",
			"CTOFarmerID", "Aggregator_ID", "CTOPlotID", "DateOfMapping",
		},
		GeometryColumn: "Geometry",
		Properties: []Property{
			str("Commodity", "Commodity"),
			num("Area", "Area"),
			str("ProducerCountry", "ProducerCountry"),
			str("Variety", "Variety"),
			str("CTOFarmerID", "CTOFarmerID"),
			str("Aggregator_ID", "Aggregator_ID"),
			str("CTOPlotID", "CTOPlotID"),
			str("DateOfMapping", "DateOfMapping"),
		},
	}
}
