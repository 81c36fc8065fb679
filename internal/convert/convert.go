// Package convert runs the table-to-GeoJSON pipeline: schema gate, then per
// row repair, parse and build, then assembly.
package convert

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
	"go.uber.org/zap"

	"github.com/sells-group/plot-geojson/internal/feature"
	"github.com/sells-group/plot-geojson/internal/schema"
	"github.com/sells-group/plot-geojson/internal/table"
	"github.com/sells-group/plot-geojson/internal/wkt"
)

// State is a step of one conversion run.
type State string

// Conversion states. Rejected and Ready are terminal; a row failure without
// SkipInvalid also ends the run.
const (
	StateAwaitingTable    State = "awaiting_table"
	StateValidating       State = "validating"
	StateRejected         State = "rejected"
	StatePerRowProcessing State = "per_row_processing"
	StateAssembling       State = "assembling"
	StateReady            State = "ready"
)

// DefaultOutputName is used when the input has no usable base name.
const DefaultOutputName = "converted_GeoJson.geojson"

// Options configures a Converter.
type Options struct {
	// Variant is a registry ID, or "auto"/empty to detect it from the header.
	Variant string
	// SkipInvalid drops rows with unparseable geometry and records them in
	// Result.Issues instead of aborting the run.
	SkipInvalid bool
}

// Result is the output of a successful run.
type Result struct {
	RunID      string
	Variant    string
	Collection *geojson.FeatureCollection
	Rows       int
	Repaired   int
	Defaulted  int
	Issues     []*RowError
	State      State
}

// Converter turns tables into FeatureCollections. It holds no per-run state
// and is safe for concurrent use.
type Converter struct {
	registry *schema.Registry
	opts     Options
}

// New creates a Converter backed by registry.
func New(registry *schema.Registry, opts Options) *Converter {
	if registry == nil {
		registry = schema.Default()
	}
	return &Converter{registry: registry, opts: opts}
}

// WithOptions returns a copy of c using opts.
func (c *Converter) WithOptions(opts Options) *Converter {
	return &Converter{registry: c.registry, opts: opts}
}

// Run converts tbl. A table missing required columns fails with a
// *schema.SchemaError; an unparseable geometry fails with a *RowError unless
// SkipInvalid is set.
func (c *Converter) Run(ctx context.Context, tbl *table.Table) (*Result, error) {
	res := &Result{RunID: uuid.NewString(), State: StateAwaitingTable}
	log := zap.L().With(zap.String("run_id", res.RunID))

	if tbl == nil {
		return nil, eris.New("convert: no table")
	}

	res.State = StateValidating
	variant, err := c.registry.Resolve(c.opts.Variant, tbl.Columns)
	if err == nil {
		err = schema.Check(tbl.Columns, variant)
	}
	if err != nil {
		res.State = StateRejected
		log.Warn("convert: table rejected", zap.Error(err))
		return nil, err
	}
	res.Variant = variant.ID
	res.Rows = len(tbl.Rows)

	res.State = StatePerRowProcessing
	features := make([]*geojson.Feature, 0, len(tbl.Rows))
	for i, row := range tbl.Rows {
		if err := ctx.Err(); err != nil {
			return nil, eris.Wrap(err, "convert: context cancelled")
		}

		raw := row.Text(variant.GeometryColumn)
		g, repaired, err := wkt.RepairAndParse(raw)
		if err != nil {
			rowErr := &RowError{Row: i + 1, Value: raw, Err: err}
			if !c.opts.SkipInvalid {
				log.Warn("convert: row rejected", zap.Int("row", rowErr.Row), zap.Error(err))
				return nil, rowErr
			}
			log.Debug("convert: skipping row", zap.Int("row", rowErr.Row), zap.Error(err))
			res.Issues = append(res.Issues, rowErr)
			continue
		}
		if repaired {
			res.Repaired++
		}

		f, defaulted := feature.Build(row, g, variant)
		if len(defaulted) > 0 {
			res.Defaulted++
			log.Debug("convert: properties defaulted",
				zap.Int("row", i+1),
				zap.Strings("properties", defaulted),
			)
		}
		features = append(features, f)
	}

	res.State = StateAssembling
	res.Collection = feature.Assemble(features)
	res.State = StateReady

	log.Info("convert: run complete",
		zap.String("variant", res.Variant),
		zap.Int("rows", res.Rows),
		zap.Int("features", len(features)),
		zap.Int("repaired", res.Repaired),
		zap.Int("defaulted", res.Defaulted),
		zap.Int("skipped", len(res.Issues)),
	)
	return res, nil
}

// OutputName derives the download name from the uploaded file name: its
// base name with the extension replaced by ".geojson".
func OutputName(input string) string {
	base := filepath.Base(strings.ReplaceAll(input, "\\", "/"))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.TrimSpace(base)
	if base == "" || base == "." || base == "/" {
		return DefaultOutputName
	}
	return base + ".geojson"
}
