package server

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/sells-group/plot-geojson/internal/convert"
	"github.com/sells-group/plot-geojson/internal/feature"
	"github.com/sells-group/plot-geojson/internal/schema"
	"github.com/sells-group/plot-geojson/internal/table"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
	Variant string   `json:"variant,omitempty"`
	Row     int      `json:"row,omitempty"`
	Value   string   `json:"value,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVariants(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.registry.Variants())
}

// handleConvert converts the multipart "file" upload and returns it as a
// GeoJSON attachment.
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "file too large or invalid form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no file provided"})
		return
	}
	defer file.Close()

	opts := s.opts.Convert
	if v := r.URL.Query().Get("variant"); v != "" {
		opts.Variant = v
	}
	if v := r.URL.Query().Get("skip_invalid"); v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "skip_invalid must be a boolean"})
			return
		}
		opts.SkipInvalid = skip
	}

	tbl, err := table.Read(r.Context(), header.Filename, file, s.opts.Input)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	res, err := s.converter.WithOptions(opts).Run(r.Context(), tbl)
	if err != nil {
		writeConvertError(w, err)
		return
	}

	data, err := feature.Marshal(res.Collection)
	if err != nil {
		zap.L().Error("server: marshal collection", zap.String("run_id", res.RunID), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to encode result"})
		return
	}

	w.Header().Set("Content-Type", feature.MediaType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{
		"filename": convert.OutputName(header.Filename),
	}))
	w.Header().Set("X-Run-ID", res.RunID)
	w.Header().Set("X-Skipped-Rows", strconv.Itoa(len(res.Issues)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeConvertError(w http.ResponseWriter, err error) {
	var se *schema.SchemaError
	if errors.As(err, &se) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error:   "missing required columns",
			Variant: se.Variant,
			Missing: se.Missing,
		})
		return
	}

	var re *convert.RowError
	if errors.As(err, &re) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: "invalid geometry",
			Row:   re.Row,
			Value: re.Value,
		})
		return
	}

	writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Debug("server: write response", zap.Error(err))
	}
}
