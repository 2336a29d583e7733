package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medportal-org/portal/errors"
)

type ParseReportRequest struct {
	PatientId  string `json:"patientId"`
	ReportText string `json:"reportText"`
}

// ParseReport extracts structured entities from report text without saving
// anything, so callers can preview what a save would merge.
// (POST /v1/parse)
func (h *Handler) ParseReport(ec echo.Context) error {
	ctx := ec.Request().Context()

	request := ParseReportRequest{}
	if err := ec.Bind(&request); err != nil {
		return errors.BadRequest
	}
	if request.PatientId == "" || request.ReportText == "" {
		return errors.BadRequest
	}

	data, err := h.getPatientData(ec, request.PatientId)
	if err != nil {
		return err
	}
	doctor, err := h.getAuthenticatedDoctor(ec)
	if err != nil {
		return err
	}

	extracted, err := h.parser.Parse(ctx, request.ReportText, *data, doctor)
	if err != nil {
		return errors.HttpError{Code: http.StatusBadGateway, Err: err}
	}

	return ec.JSON(http.StatusOK, extracted)
}
