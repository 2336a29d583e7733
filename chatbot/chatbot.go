// Package chatbot renders patient and doctor records into model-ready text
// and issues single text-generation calls to the configured generative model
// for chat answers, record summaries, report formatting, and structured
// extraction.
package chatbot

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/medportal-org/portal/doctors"
)

// Chatbot holds the single model client handle. The handle is constructed
// once at startup and never mutated afterwards, so every operation is safe
// for concurrent use. No operation retries or imposes its own timeout, and
// none returns an error: every failure mode degrades to a string the caller
// can display directly.
type Chatbot struct {
	client Client
	logger *zap.SugaredLogger
}

func NewChatbot(client Client, logger *zap.SugaredLogger) *Chatbot {
	return &Chatbot{
		client: client,
		logger: logger,
	}
}

// GenerateResponse answers a doctor's free-text query strictly from the
// supplied patient data.
func (c *Chatbot) GenerateResponse(ctx context.Context, data PatientData, doctorQuery string) string {
	if c.client == nil {
		return "AI model is not initialized."
	}

	patientContext := FormatPatientData(data)
	prompt := chatInstruction +
		"\n\nPatient Medical Data:\n" + patientContext +
		"\n\nDoctor's Query: " + doctorQuery +
		"\n\nAssistant Response:"

	text, err := c.client.GenerateContent(ctx, prompt)
	if err != nil {
		c.logger.Errorw("error generating chatbot response", "error", err)
		return fmt.Sprintf("Sorry, I could not generate a response at this time. Error: %T", err)
	}
	if text == "" {
		c.logger.Warnw("model returned an empty response for chat")
		return "Sorry, the AI model returned an empty response."
	}
	return text
}

// SummarizeMedicalRecord produces a concise structured summary of the
// patient's medical record.
func (c *Chatbot) SummarizeMedicalRecord(ctx context.Context, data PatientData) string {
	if c.client == nil {
		return "AI model is not initialized for summarization."
	}

	patientContext := FormatPatientData(data)
	prompt := summaryInstruction +
		"\n\nPatient Medical Data:\n" + patientContext +
		"\n\nAssistant Summary:"

	text, err := c.client.GenerateContent(ctx, prompt)
	if err != nil {
		c.logger.Errorw("error generating medical record summary", "error", err)
		return fmt.Sprintf("Sorry, I could not generate the summary at this time. Error: %T", err)
	}
	if text == "" {
		c.logger.Warnw("model returned an empty response for summary")
		return "Sorry, the AI model returned an empty summary response."
	}
	return text
}

// GenerateMedicalReport reorganizes transcribed dictation into a structured
// report body. An empty transcript is rejected before any model call.
func (c *Chatbot) GenerateMedicalReport(ctx context.Context, data PatientData, doctor *doctors.Doctor, transcribedText string) string {
	if c.client == nil {
		return "AI model is not initialized for report generation."
	}

	if strings.TrimSpace(transcribedText) == "" {
		return "No transcribed text provided to generate a report."
	}

	patientContext := FormatPatientData(data)
	doctorContext := FormatDoctorData(doctor)

	parts := []string{
		reportInstruction,
		"\n--- Doctor Information ---",
		doctorContext,
		"\n\n--- Patient Information ---",
		patientContext,
		"\n\n--- Dictated Notes ---",
		transcribedText,
		"\n\n--- Formatted Medical Report ---",
		"Generate the formatted medical report below:",
	}
	prompt := strings.Join(parts, "\n")

	text, err := c.client.GenerateContent(ctx, prompt)
	if err != nil {
		c.logger.Errorw("error calling model for report generation", "error", err)
		return fmt.Sprintf("Error communicating with AI model for report generation: %T: %v", err, err)
	}
	if text == "" {
		c.logger.Warnw("model returned an empty response for report generation")
		return "AI model generated no text response."
	}
	return strings.TrimSpace(text)
}

// GenerateStructuredResponse sends a caller-authored prompt and returns the
// raw text output. The caller fully controls intent and output format; no
// parsing or validation happens here.
func (c *Chatbot) GenerateStructuredResponse(ctx context.Context, prompt string) string {
	if c.client == nil {
		return "AI model is not initialized for structured response."
	}

	c.logger.Debugw("calling model for structured response")
	text, err := c.client.GenerateContent(ctx, prompt)
	if err != nil {
		c.logger.Errorw("error during structured response generation", "error", err)
		return fmt.Sprintf("Error communicating with AI model for structured task: %T: %v", err, err)
	}
	if text == "" {
		c.logger.Warnw("model returned an empty response for structured task")
		return "AI model generated no text response for structured task."
	}
	return text
}
