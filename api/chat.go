package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/medportal-org/portal/errors"
)

const (
	ChatActionAsk       = "ask"
	ChatActionSummarize = "summarize"
)

type ChatRequest struct {
	Query  string `json:"query"`
	Action string `json:"action"`
}

type ChatResponse struct {
	Response string `json:"response"`
}

// Chat answers a free-form question about the patient or summarizes the
// medical record, depending on the requested action.
// (POST /v1/patients/:patientId/chat)
func (h *Handler) Chat(ec echo.Context) error {
	ctx := ec.Request().Context()
	patientId := ec.Param("patientId")

	request := ChatRequest{}
	if err := ec.Bind(&request); err != nil {
		return errors.BadRequest
	}
	if request.Action == "" {
		request.Action = ChatActionAsk
	}

	data, err := h.getPatientData(ec, patientId)
	if err != nil {
		return err
	}

	var response string
	switch request.Action {
	case ChatActionAsk:
		if request.Query == "" {
			return errors.BadRequest
		}
		response = h.chatbot.GenerateResponse(ctx, *data, request.Query)
	case ChatActionSummarize:
		response = h.chatbot.SummarizeMedicalRecord(ctx, *data)
	default:
		return errors.BadRequest
	}

	return ec.JSON(http.StatusOK, ChatResponse{Response: response})
}
