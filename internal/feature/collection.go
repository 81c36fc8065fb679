package feature

import (
	"encoding/json"
	"io"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// MediaType is the media type of an encoded FeatureCollection.
const MediaType = "application/geo+json"

// Assemble wraps features, in order, into a FeatureCollection. An empty input
// yields an empty (non-null) features array.
func Assemble(features []*geojson.Feature) *geojson.FeatureCollection {
	fs := make([]*geojson.Feature, 0, len(features))
	fs = append(fs, features...)
	return &geojson.FeatureCollection{Features: fs}
}

// Marshal encodes the collection as compact GeoJSON. Property keys are
// sorted, so equal input produces byte-identical output.
func Marshal(fc *geojson.FeatureCollection) ([]byte, error) {
	if fc.Features == nil {
		fc = Assemble(nil)
	}
	data, err := json.Marshal(fc)
	if err != nil {
		return nil, eris.Wrap(err, "feature: marshal collection")
	}
	return data, nil
}

// Encode writes the collection to w, indented when indent is set.
func Encode(w io.Writer, fc *geojson.FeatureCollection, indent bool) error {
	if fc.Features == nil {
		fc = Assemble(nil)
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(fc); err != nil {
		return eris.Wrap(err, "feature: encode collection")
	}
	return nil
}
