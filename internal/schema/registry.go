package schema

import (
	"os"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// AutoVariant asks the registry to pick the first variant whose required
// columns are all present.
const AutoVariant = "auto"

// Registry is an ordered, read-only set of variants.
type Registry struct {
	order []string
	byID  map[string]Variant
}

// NewRegistry validates variants and indexes them in the given order.
func NewRegistry(variants ...Variant) (*Registry, error) {
	r := &Registry{byID: make(map[string]Variant, len(variants))}
	for _, v := range variants {
		if err := v.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byID[v.ID]; dup {
			return nil, eris.Errorf("schema: duplicate variant id %q", v.ID)
		}
		r.order = append(r.order, v.ID)
		r.byID[v.ID] = v.clone()
	}
	return r, nil
}

// Builtin returns the built-in variants in detection order.
func Builtin() []Variant {
	return []Variant{Legacy(), EUDR(), ICECOT()}
}

// Default returns a registry holding the built-in variants.
func Default() *Registry {
	r, err := NewRegistry(Builtin()...)
	if err != nil {
		panic(err)
	}
	return r
}

// LoadFile returns a registry with the built-in variants followed by the
// variants declared in a YAML file:
//
//	variants:
//	  - id: coop
//	    geometry_column: WKT
//	    required_columns: [WKT, Coop]
//	    properties:
//	      - {name: Coop, column: Coop, type: string}
func LoadFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "schema: read variants file %s", path)
	}

	var doc struct {
		Variants []Variant `yaml:"variants"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "schema: parse variants file")
	}

	return NewRegistry(append(Builtin(), doc.Variants...)...)
}

// Lookup returns the variant registered under id.
func (r *Registry) Lookup(id string) (Variant, bool) {
	v, ok := r.byID[id]
	if !ok {
		return Variant{}, false
	}
	return v.clone(), true
}

// IDs returns the registered variant IDs in order.
func (r *Registry) IDs() []string {
	return slices.Clone(r.order)
}

// Variants returns all variants in registry order.
func (r *Registry) Variants() []Variant {
	out := make([]Variant, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id].clone())
	}
	return out
}

// Detect returns the first variant whose required columns are all present.
// When none match, the error is a *SchemaError for the closest variant.
func (r *Registry) Detect(columns []string) (Variant, error) {
	var closest *SchemaError
	for _, id := range r.order {
		v := r.byID[id]
		missing := Missing(columns, v)
		if len(missing) == 0 {
			return v.clone(), nil
		}
		if closest == nil || len(missing) < len(closest.Missing) {
			closest = &SchemaError{Variant: id, Missing: missing}
		}
	}
	if closest == nil {
		return Variant{}, eris.New("schema: registry is empty")
	}
	return Variant{}, closest
}

// Resolve returns the variant named by id, or detects one from columns when
// id is empty or "auto".
func (r *Registry) Resolve(id string, columns []string) (Variant, error) {
	id = strings.TrimSpace(id)
	if id == "" || id == AutoVariant {
		return r.Detect(columns)
	}
	v, ok := r.Lookup(id)
	if !ok {
		return Variant{}, eris.Errorf("schema: unknown variant %q (known: %s)", id, strings.Join(r.order, ", "))
	}
	return v, nil
}

func (v Variant) clone() Variant {
	v.RequiredColumns = slices.Clone(v.RequiredColumns)
	v.OptionalColumns = slices.Clone(v.OptionalColumns)
	v.Properties = slices.Clone(v.Properties)
	return v
}
