package handlers

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/clinicops/rollup"
	"github.com/clinicops/rollup/internal/server/response"
	"github.com/clinicops/rollup/pkg/constants"
	"github.com/clinicops/rollup/pkg/errors"
	"github.com/clinicops/rollup/pkg/xlsx"
)

// DefaultReportName names the workbook when the caller does not.
const DefaultReportName = "Weekly Report"

// xlsxContentType is the MIME type for generated workbooks.
const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// errUploadTooLarge marks a single file over the per-file cap so it can be
// answered with 413 instead of 400.
var errUploadTooLarge = stderrors.New("file exceeds the per-file upload limit")

// allowedExtensions lists the upload types ingestion understands. The
// scheduling exports are HTML tables saved with an .xls extension, so .xls
// stays on the list even though no source produces a real one.
var allowedExtensions = map[string]bool{
	".csv":  true,
	".xls":  true,
	".xlsx": true,
}

// HandleGenerateReport handles POST /api/v1/reports.
// @Summary Generate report
// @Description Build the weekly activity report from uploaded source exports
// @Tags reports
// @Accept multipart/form-data
// @Produce json
// @Param doxy_file formData file true "Doxy visit log"
// @Param account_file formData file true "Account detail visit export"
// @Param gusto_file formData file true "Gusto time tracking export"
// @Param booking_file formData file false "OnceHub booking summary"
// @Param provider query string false "Restrict the report to providers matching this name"
// @Success 200 {object} response.Response{data=object}
// @Failure 400 {object} response.Response{error=response.Error}
// @Failure 413 {object} response.Response{error=response.Error}
// @Failure 422 {object} response.Response{error=response.Error}
// @Failure 500 {object} response.Response{error=response.Error}
// @Router /api/v1/reports [post].
func (h *Handlers) HandleGenerateReport(w http.ResponseWriter, r *http.Request) {
	in, ok := h.parseInputs(w, r)
	if !ok {
		return
	}

	rep, err := h.rollup.Generate(r.Context(), in)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	rep = rep.FilterProvider(r.FormValue("provider"))

	response.OK(w, map[string]any{
		"report": rep,
		"summary": map[string]any{
			"providers":    rep.ProviderCount(),
			"total_visits": rep.TotalVisits(),
			"sheets":       len(rep.Tables()),
			"warnings":     rep.Warnings(),
		},
	})
}

// HandleGenerateWorkbook handles POST /api/v1/reports/workbook.
// @Summary Download report workbook
// @Description Build the weekly activity report and return it as an xlsx download
// @Tags reports
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param doxy_file formData file true "Doxy visit log"
// @Param account_file formData file true "Account detail visit export"
// @Param gusto_file formData file true "Gusto time tracking export"
// @Param booking_file formData file false "OnceHub booking summary"
// @Param report_name formData string false "Name for the downloaded file"
// @Param start_date formData string false "Covered range start (YYYY-MM-DD), used to name an unnamed download"
// @Param end_date formData string false "Covered range end (YYYY-MM-DD)"
// @Param provider query string false "Restrict the report to providers matching this name"
// @Success 200 {file} binary
// @Failure 400 {object} response.Response{error=response.Error}
// @Failure 413 {object} response.Response{error=response.Error}
// @Failure 422 {object} response.Response{error=response.Error}
// @Failure 500 {object} response.Response{error=response.Error}
// @Router /api/v1/reports/workbook [post].
func (h *Handlers) HandleGenerateWorkbook(w http.ResponseWriter, r *http.Request) {
	in, ok := h.parseInputs(w, r)
	if !ok {
		return
	}

	rep, err := h.rollup.Generate(r.Context(), in)
	if err != nil {
		response.ErrorFromType(w, err)
		return
	}
	rep = rep.FilterProvider(r.FormValue("provider"))

	// Render the workbook into memory first so a late excelize failure can
	// still produce a clean JSON error
	var buf bytes.Buffer
	if err := xlsx.Write(&buf, rep.Tables()); err != nil {
		response.InternalError(w, err)
		return
	}

	filename := workbookFilename(r.FormValue("report_name"),
		r.FormValue("start_date"), r.FormValue("end_date"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("X-Report-Providers", strconv.Itoa(rep.ProviderCount()))
	w.Header().Set("X-Report-Visits", strconv.Itoa(rep.TotalVisits()))
	w.WriteHeader(http.StatusOK)

	if _, err := buf.WriteTo(w); err != nil {
		h.logger.Error().Err(err).Str("filename", filename).Msg("Failed to stream workbook")
	}
}

// parseInputs reads the uploaded source files out of the multipart form.
// On failure it writes the error response and returns ok=false.
func (h *Handlers) parseInputs(w http.ResponseWriter, r *http.Request) (rollup.Inputs, bool) {
	// Cap the whole request before the multipart reader touches it; the
	// extra megabyte covers boundaries and text fields
	r.Body = http.MaxBytesReader(w, r.Body, int64(constants.MaxUploadFiles)*h.maxUpload+(1<<20))

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if stderrors.As(err, &maxErr) {
			response.PayloadTooLarge(w, "request exceeds the upload limit")
			return rollup.Inputs{}, false
		}
		response.BadRequest(w, "Invalid multipart form data", err.Error())
		return rollup.Inputs{}, false
	}

	var in rollup.Inputs
	files := []struct {
		field    string
		required bool
		dst      *[]byte
	}{
		{"doxy_file", true, &in.Doxy},
		{"account_file", true, &in.AccountDetail},
		{"gusto_file", true, &in.Gusto},
		{"booking_file", false, &in.Booking},
	}

	for _, f := range files {
		data, err := h.readUpload(r, f.field, f.required)
		if err != nil {
			if stderrors.Is(err, errUploadTooLarge) {
				response.PayloadTooLarge(w, f.field+" exceeds the per-file upload limit")
				return rollup.Inputs{}, false
			}
			response.ErrorFromType(w, err)
			return rollup.Inputs{}, false
		}
		*f.dst = data
	}

	return in, true
}

// readUpload pulls one uploaded file out of the parsed form. A missing
// optional file is nil bytes and no error.
func (h *Handlers) readUpload(r *http.Request, field string, required bool) ([]byte, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if stderrors.Is(err, http.ErrMissingFile) {
			if !required {
				return nil, nil
			}
			return nil, errors.NewValidationError(field, nil, "file is required")
		}
		return nil, errors.NewValidationError(field, nil, "file could not be read")
	}
	defer func() { _ = file.Close() }()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedExtensions[ext] {
		return nil, errors.NewValidationError(field, header.Filename,
			"unsupported file type, expected .csv, .xls, or .xlsx")
	}

	if header.Size > h.maxUpload {
		return nil, errUploadTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(file, h.maxUpload+1))
	if err != nil {
		return nil, errors.WrapIO("read upload", header.Filename, err)
	}
	if int64(len(data)) > h.maxUpload {
		return nil, errUploadTooLarge
	}
	if len(data) == 0 {
		return nil, errors.NewValidationError(field, header.Filename, "file is empty")
	}

	return data, nil
}

// workbookFilename builds a safe attachment name. Preference order: the
// requested name, then the covered date range, then a timestamped default so
// repeat downloads do not collide.
func workbookFilename(name, startDate, endDate string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = rangeReportName(startDate, endDate)
	}
	if name == "" {
		name = DefaultReportName + " " + time.Now().Format(constants.TimeFormatFilename)
	}
	clean := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\' || r == '"':
			return '_'
		case r < 0x20:
			return -1
		}
		return r
	}, name)
	return clean + ".xlsx"
}

// rangeReportName names the report after the week it covers. Empty unless
// both dates parse.
func rangeReportName(startDate, endDate string) string {
	start, err := time.Parse(time.DateOnly, strings.TrimSpace(startDate))
	if err != nil {
		return ""
	}
	end, err := time.Parse(time.DateOnly, strings.TrimSpace(endDate))
	if err != nil {
		return ""
	}
	return fmt.Sprintf("Report %d-%d to %d-%d",
		int(start.Month()), start.Day(), int(end.Month()), end.Day())
}
