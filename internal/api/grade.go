package api

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Rubric/internal/broker"
	"github.com/MikeSquared-Agency/Rubric/internal/grader"
	"github.com/MikeSquared-Agency/Rubric/internal/workbook"
)

// uploadField is the multipart form field holding the workbook file.
const uploadField = "file"

type GradeHandler struct {
	broker    *broker.Broker
	maxUpload int64
}

func NewGradeHandler(b *broker.Broker, maxUpload int64) *GradeHandler {
	return &GradeHandler{broker: b, maxUpload: maxUpload}
}

type GradeResponse struct {
	ReportID string `json:"report_id,omitempty"`
	grader.Report
}

// Grade accepts either a multipart upload (field "file", .xlsx or .json) or
// a JSON workbook body. With ?format=text the feedback log is returned as
// plain text.
func (h *GradeHandler) Grade(w http.ResponseWriter, r *http.Request) {
	if h.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	}

	wb, status, err := h.readWorkbook(r)
	if err != nil {
		writeError(w, status, err.Error())
		return
	}

	rec, err := h.broker.Submit(r.Context(), broker.SourceAPI, wb)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, rec.Report.FeedbackLog)
		return
	}

	resp := GradeResponse{Report: rec.Report}
	if rec.ID != uuid.Nil {
		resp.ReportID = rec.ID.String()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *GradeHandler) readWorkbook(r *http.Request) (*workbook.Workbook, int, error) {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, http.StatusUnsupportedMediaType, errors.New("content type required")
	}

	var wb *workbook.Workbook
	switch mediaType {
	case "multipart/form-data":
		wb, err = h.readUpload(r)
	case "application/json":
		wb, err = workbook.DecodeJSON(r.Body)
	default:
		return nil, http.StatusUnsupportedMediaType, fmt.Errorf("unsupported content type %q", mediaType)
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("workbook exceeds %d bytes", tooLarge.Limit)
		}
		return nil, http.StatusBadRequest, err
	}
	return wb, http.StatusOK, nil
}

func (h *GradeHandler) readUpload(r *http.Request) (*workbook.Workbook, error) {
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return workbook.ReadXLSX(file, name, h.broker.SheetNames())
	case ".json":
		wb, err := workbook.DecodeJSON(file)
		if err != nil {
			return nil, err
		}
		if wb.Name == "" {
			wb.Name = name
		}
		return wb, nil
	default:
		return nil, fmt.Errorf("%w: %s", workbook.ErrUnknownFormat, filepath.Ext(name))
	}
}
