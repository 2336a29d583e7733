package api

import (
	goerrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medportal-org/portal/auth"
	"github.com/medportal-org/portal/doctors"
	"github.com/medportal-org/portal/errors"
	"github.com/medportal-org/portal/records"
)

type GenerateReportRequest struct {
	TranscribedText string `json:"transcribedText"`
}

type GenerateReportResponse struct {
	ReportText string `json:"reportText"`
}

type SaveReportRequest struct {
	ReportText string `json:"reportText"`
	// ContentId updates a previously saved report's content instead of
	// storing a new document.
	ContentId string `json:"contentId,omitempty"`
}

// GenerateReport turns a doctor's dictated notes into a formatted report.
// The report is returned to the caller for review and not persisted until
// it is explicitly saved.
// (POST /v1/patients/:patientId/reports)
func (h *Handler) GenerateReport(ec echo.Context) error {
	ctx := ec.Request().Context()
	patientId := ec.Param("patientId")

	request := GenerateReportRequest{}
	if err := ec.Bind(&request); err != nil {
		return errors.BadRequest
	}

	data, err := h.getPatientData(ec, patientId)
	if err != nil {
		return err
	}
	doctor, err := h.getAuthenticatedDoctor(ec)
	if err != nil {
		return err
	}

	report := h.chatbot.GenerateMedicalReport(ctx, *data, doctor, request.TranscribedText)
	return ec.JSON(http.StatusOK, GenerateReportResponse{ReportText: report})
}

// SaveReport persists the report text and appends a reference to the
// patient's medical record. Entity extraction and merging run afterwards on
// a best-effort basis, a parsing failure never fails the save.
// (POST /v1/patients/:patientId/reports/save)
func (h *Handler) SaveReport(ec echo.Context) error {
	ctx := ec.Request().Context()
	patientId := ec.Param("patientId")

	request := SaveReportRequest{}
	if err := ec.Bind(&request); err != nil {
		return errors.BadRequest
	}
	if request.ReportText == "" {
		return errors.BadRequest
	}

	data, err := h.getPatientData(ec, patientId)
	if err != nil {
		return err
	}

	report, err := h.records.SaveReport(ctx, patientId, request.ReportText, request.ContentId)
	if err != nil {
		if goerrors.Is(err, records.ErrContentNotFound) {
			return errors.NotFound
		}
		return err
	}

	doctor, err := h.getAuthenticatedDoctor(ec)
	if err != nil {
		doctor = nil
	}

	extracted, err := h.parser.Parse(ctx, request.ReportText, *data, doctor)
	if err != nil {
		h.logger.Warnw("failed to extract entities from saved report",
			"patientId", patientId, "error", err)
	} else if !extracted.IsEmpty() {
		if _, err := h.records.MergeExtracted(ctx, patientId, extracted); err != nil {
			h.logger.Warnw("failed to merge extracted entities",
				"patientId", patientId, "error", err)
		}
	}

	return ec.JSON(http.StatusOK, report)
}

// getAuthenticatedDoctor resolves the doctor behind the current request.
func (h *Handler) getAuthenticatedDoctor(ec echo.Context) (*doctors.Doctor, error) {
	authData := auth.GetAuthData(ec.Request().Context())
	if !auth.IsDoctorAuth(authData) {
		return nil, errors.Forbidden
	}

	doctor, err := h.doctors.Get(ec.Request().Context(), authData.SubjectId)
	if err != nil {
		if goerrors.Is(err, doctors.ErrNotFound) {
			return nil, errors.Forbidden
		}
		return nil, err
	}
	return doctor, nil
}
