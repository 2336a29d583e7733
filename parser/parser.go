package parser

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/medportal-org/portal/chatbot"
	"github.com/medportal-org/portal/doctors"
	"github.com/medportal-org/portal/flexdate"
	"github.com/medportal-org/portal/records"
)

// ErrInvalidModelOutput is returned when the model response cannot be decoded
// into structured entities.
var ErrInvalidModelOutput = errors.New("model returned invalid structured output")

// StructuredGenerator produces raw text for a caller-authored prompt.
type StructuredGenerator interface {
	GenerateStructuredResponse(ctx context.Context, prompt string) string
}

const extractionInstruction = `You are an expert medical assistant. Your task is to carefully read the following medical report and extract structured information based on the provided patient and doctor context.
Only extract information that is new or updated compared to the existing medical record, if that information is present in the report text. If the report confirms existing information, you don't need to re-extract it.
For this task, focus on extracting the following entities mentioned in the Medical Report Text:

- Medications: List of medications mentioned. For each medication, include name, dosage, frequency, start_date (YYYY-MM-DD), end_date (YYYY-MM-DD, or null if ongoing/duration not specified), and notes (optional).
- Diagnoses: List of medical diagnoses mentioned. For each diagnosis, include disease name, year of diagnosis (YYYY), diagnosis_date (YYYY-MM-DD, or null if year is more precise or date not specified), and notes (optional).
- Allergies: List of patient allergies mentioned.
- Consultations: List of consultations mentioned, each as a single free-text line including the date (YYYY-MM-DD), the main findings, and any follow-up date.
- Immunizations: List of immunizations mentioned. For each, include vaccine name, date (YYYY-MM-DD), administered_by (optional) and lot_number (optional).

Present the extracted information as a JSON object with the following top-level keys: "medications", "diagnoses", "allergies", "consultations", "immunizations". If a category is not mentioned in the report text, its corresponding value in the JSON should be an empty list. Ensure dates in the extracted JSON are in YYYY-MM-DD format where possible.

Do NOT include any information not explicitly requested for extraction. Do NOT include any introductory or concluding text outside the JSON object. Ensure the output is valid JSON. If no relevant information is found, return a JSON object with empty lists.`

// ReportParser turns free-text medical reports into structured entities by
// round-tripping them through the model.
type ReportParser struct {
	generator StructuredGenerator
	logger    *zap.SugaredLogger
}

func NewReportParser(generator StructuredGenerator, logger *zap.SugaredLogger) *ReportParser {
	return &ReportParser{
		generator: generator,
		logger:    logger,
	}
}

// Parse extracts structured entities from the given report text. An empty
// report yields empty entities rather than an error, so callers can treat
// parsing as best-effort.
func (p *ReportParser) Parse(ctx context.Context, reportText string, data chatbot.PatientData, doctor *doctors.Doctor) (records.ExtractedEntities, error) {
	var entities records.ExtractedEntities
	if strings.TrimSpace(reportText) == "" {
		p.logger.Warnw("attempted to parse empty report text")
		return entities, nil
	}

	prompt, err := p.buildPrompt(reportText, data, doctor)
	if err != nil {
		return entities, fmt.Errorf("unable to build extraction prompt: %w", err)
	}

	p.logger.Debugw("calling model for report parsing")
	raw := p.generator.GenerateStructuredResponse(ctx, prompt)

	parsed := map[string]interface{}{}
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &parsed); err != nil {
		p.logger.Errorw("failed to parse model output as json", "error", err)
		return entities, fmt.Errorf("%w: %v", ErrInvalidModelOutput, err)
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &entities,
		WeaklyTypedInput: true,
		DecodeHook:       flexibleDateHook,
	})
	if err != nil {
		return entities, err
	}
	if err := decoder.Decode(parsed); err != nil {
		p.logger.Errorw("failed to decode extracted entities", "error", err)
		return records.ExtractedEntities{}, fmt.Errorf("%w: %v", ErrInvalidModelOutput, err)
	}

	return entities, nil
}

func (p *ReportParser) buildPrompt(reportText string, data chatbot.PatientData, doctor *doctors.Doctor) (string, error) {
	patientContext, err := json.MarshalIndent(data.Patient, "", "  ")
	if err != nil {
		return "", err
	}
	recordContext, err := json.MarshalIndent(data.MedicalRecord, "", "  ")
	if err != nil {
		return "", err
	}
	doctorContext, err := json.MarshalIndent(doctor, "", "  ")
	if err != nil {
		return "", err
	}

	parts := []string{
		extractionInstruction,
		"\nPatient and Doctor Context (for reference, do not include this formatted context in the JSON output):",
		"---",
		"Patient Information:",
		string(patientContext),
		"\nMedical Record:",
		string(recordContext),
		"\nDoctor Information:",
		string(doctorContext),
		"---",
		"\nMedical Report Text to Parse:",
		"---",
		reportText,
		"---",
		"\nJSON Output:",
	}
	return strings.Join(parts, "\n"), nil
}

// stripCodeFences removes a markdown ```json block if the model wrapped its
// output in one.
func stripCodeFences(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	return strings.TrimSpace(cleaned)
}

// flexibleDateHook converts plain strings to flexdate values, preferring
// structured dates when the text matches a known layout.
func flexibleDateHook(from reflect.Type, to reflect.Type, value interface{}) (interface{}, error) {
	if from.Kind() != reflect.String || to != reflect.TypeOf(flexdate.Date{}) {
		return value, nil
	}

	text := value.(string)
	if text == "" || strings.EqualFold(text, "null") {
		return flexdate.Date{}, nil
	}
	for _, layout := range []string{flexdate.DayPrecision, flexdate.MinutePrecision, time.RFC3339} {
		if t, err := time.Parse(layout, text); err == nil {
			return flexdate.FromTime(t), nil
		}
	}
	return flexdate.FromString(text), nil
}
