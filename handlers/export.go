// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/dyscover/auth"
	"github.com/danielhkuo/dyscover/cliparse"
	"github.com/danielhkuo/dyscover/export"
	"github.com/danielhkuo/dyscover/middleware"
	"github.com/danielhkuo/dyscover/models"
)

type ExportHandler struct {
	exporter *export.Exporter
	cfg      cliparse.Config
}

func NewExportHandler(exporter *export.Exporter, cfg cliparse.Config) *ExportHandler {
	return &ExportHandler{exporter: exporter, cfg: cfg}
}

var exportFormats = map[string]struct {
	contentType string
	filename    string
	write       func(io.Writer, []export.Row) error
}{
	"csv":  {"text/csv; charset=utf-8", export.CSVFile, export.WriteCSV},
	"xlsx": {"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.XLSXFile, export.WriteXLSX},
}

// Export handles GET /api/export?format=csv|xlsx
// The endpoint is disabled unless an export key is configured.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	if h.cfg.ExportKey == "" {
		middleware.ErrorResponse(w, http.StatusForbidden, "Export is disabled")
		return
	}
	if err := auth.ValidateExportKey(r.Header.Get(models.HeaderExportKey), h.cfg.ExportKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid export key")
		return
	}

	name := r.URL.Query().Get("format")
	if name == "" {
		name = "csv"
	}
	format, ok := exportFormats[name]
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "format must be csv or xlsx")
		return
	}

	rows, err := h.exporter.Rows(r.Context())
	if err != nil {
		slog.Error("failed to load export rows", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	var buf bytes.Buffer
	if err := format.write(&buf, rows); err != nil {
		slog.Error("failed to render export", "format", name, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to render export")
		return
	}

	slog.Info("dataset exported", "format", name, "rows", len(rows))

	w.Header().Set("Content-Type", format.contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
