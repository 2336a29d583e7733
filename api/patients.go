package api

import (
	goerrors "errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/medportal-org/portal/chatbot"
	"github.com/medportal-org/portal/errors"
	"github.com/medportal-org/portal/patients"
	"github.com/medportal-org/portal/records"
)

// ListPatients
// (GET /v1/patients)
func (h *Handler) ListPatients(ec echo.Context) error {
	ctx := ec.Request().Context()

	filter := &patients.Filter{}
	if search := ec.QueryParam("search"); search != "" {
		filter.Search = &search
	}
	if email := ec.QueryParam("email"); email != "" {
		filter.Email = &email
	}

	page := pagination(intQueryParam(ec, "offset"), intQueryParam(ec, "limit"))
	list, err := h.patients.List(ctx, filter, page)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, list)
}

// CreatePatient
// (POST /v1/patients)
func (h *Handler) CreatePatient(ec echo.Context) error {
	ctx := ec.Request().Context()

	patient := patients.Patient{}
	if err := ec.Bind(&patient); err != nil {
		return errors.BadRequest
	}
	if patient.Email == nil || *patient.Email == "" {
		return errors.BadRequest
	}

	created, err := h.patients.Create(ctx, patient)
	if err != nil {
		if goerrors.Is(err, patients.ErrDuplicate) {
			return errors.Duplicate
		}
		return err
	}

	return ec.JSON(http.StatusOK, created)
}

// GetPatientProfile returns the patient together with the resolved medical
// record, matching the shape consumed by the model context formatter.
// (GET /v1/patients/:patientId/profile)
func (h *Handler) GetPatientProfile(ec echo.Context) error {
	patientId := ec.Param("patientId")

	data, err := h.getPatientData(ec, patientId)
	if err != nil {
		return err
	}

	return ec.JSON(http.StatusOK, data)
}

// getPatientData assembles the patient and the resolved medical record. A
// missing medical record is not an error, profiles and chat work without one.
func (h *Handler) getPatientData(ec echo.Context, patientId string) (*chatbot.PatientData, error) {
	ctx := ec.Request().Context()

	patient, err := h.patients.Get(ctx, patientId)
	if err != nil {
		if goerrors.Is(err, patients.ErrNotFound) {
			return nil, errors.NotFound
		}
		return nil, err
	}

	record, err := h.records.GetResolved(ctx, patientId)
	if err != nil && !goerrors.Is(err, records.ErrNotFound) {
		return nil, err
	}

	return &chatbot.PatientData{
		Patient:       patient,
		MedicalRecord: record,
	}, nil
}

func intQueryParam(ec echo.Context, name string) *int {
	raw := ec.QueryParam(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}
