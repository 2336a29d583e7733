package records

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/medportal-org/portal/flexdate"
)

var ErrNotFound = errors.New("medical record not found")
var ErrContentNotFound = errors.New("report content not found")

const ReportTypeAIGenerated = "AI Generated Consultation"

type Service interface {
	// Get returns the raw medical record, report references unresolved.
	Get(ctx context.Context, patientId string) (*MedicalRecord, error)

	// GetResolved returns the medical record with every report reference's
	// content dereferenced into its description.
	GetResolved(ctx context.Context, patientId string) (*MedicalRecord, error)

	// SaveReport stores the report text and appends a reference to the
	// patient's medical record, creating the record when missing. A non-empty
	// contentId updates the existing content document instead of inserting a
	// new one.
	SaveReport(ctx context.Context, patientId string, content string, contentId string) (*Report, error)

	// MergeExtracted folds model-extracted entities into the medical record.
	MergeExtracted(ctx context.Context, patientId string, extracted ExtractedEntities) (*MedicalRecord, error)
}

type MedicalRecord struct {
	Id                   *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PatientId            string              `bson:"patient_id" json:"patientId"`
	Allergies            []string            `bson:"allergies,omitempty" json:"allergies,omitempty"`
	FamilyMedicalHistory *string             `bson:"family_medical_history,omitempty" json:"familyMedicalHistory,omitempty"`
	CurrentMedications   []Medication        `bson:"current_medications,omitempty" json:"currentMedications,omitempty"`
	Diagnoses            []Diagnosis         `bson:"diagnoses,omitempty" json:"diagnoses,omitempty"`
	Prescriptions        []string            `bson:"prescriptions,omitempty" json:"prescriptions,omitempty"`
	ConsultationHistory  []string            `bson:"consultation_history,omitempty" json:"consultationHistory,omitempty"`
	Reports              []Report            `bson:"reports,omitempty" json:"reports,omitempty"`
	Immunizations        []Immunization      `bson:"immunizations,omitempty" json:"immunizations,omitempty"`
}

type Medication struct {
	Name      string        `bson:"name" json:"name" mapstructure:"name"`
	Dosage    string        `bson:"dosage,omitempty" json:"dosage,omitempty" mapstructure:"dosage"`
	Frequency string        `bson:"frequency,omitempty" json:"frequency,omitempty" mapstructure:"frequency"`
	StartDate flexdate.Date `bson:"start_date,omitempty" json:"startDate,omitempty" mapstructure:"start_date"`
	EndDate   flexdate.Date `bson:"end_date,omitempty" json:"endDate,omitempty" mapstructure:"end_date"`
	Notes     string        `bson:"notes,omitempty" json:"notes,omitempty" mapstructure:"notes"`
}

type Diagnosis struct {
	Disease       string        `bson:"disease" json:"disease" mapstructure:"disease"`
	Year          int           `bson:"year,omitempty" json:"year,omitempty" mapstructure:"year"`
	DiagnosisDate flexdate.Date `bson:"diagnosis_date,omitempty" json:"diagnosisDate,omitempty" mapstructure:"diagnosis_date"`
	Notes         string        `bson:"notes,omitempty" json:"notes,omitempty" mapstructure:"notes"`
}

// Report references externally stored content. Description carries the
// resolved content once dereferenced; until then it holds the stored summary.
type Report struct {
	ReportId    string        `bson:"report_id" json:"reportId"`
	ReportType  string        `bson:"report_type" json:"reportType"`
	Date        flexdate.Date `bson:"date,omitempty" json:"date,omitempty"`
	ContentId   string        `bson:"content_id,omitempty" json:"contentId,omitempty"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
}

type Immunization struct {
	Name           string        `bson:"name" json:"name" mapstructure:"name"`
	Date           flexdate.Date `bson:"date,omitempty" json:"date,omitempty" mapstructure:"date"`
	AdministeredBy string        `bson:"administered_by,omitempty" json:"administeredBy,omitempty" mapstructure:"administered_by"`
	LotNumber      string        `bson:"lot_number,omitempty" json:"lotNumber,omitempty" mapstructure:"lot_number"`
}

type ReportContent struct {
	Id          *primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Content     string              `bson:"content" json:"content"`
	CreatedAt   primitive.DateTime  `bson:"created_at" json:"createdAt"`
	LastUpdated *primitive.DateTime `bson:"last_updated,omitempty" json:"lastUpdated,omitempty"`
}

// ExtractedEntities is what the report parser pulls out of formatted report
// text. Consultations arrive as free-text lines, matching how the medical
// record stores consultation history.
type ExtractedEntities struct {
	Medications   []Medication   `json:"medications" mapstructure:"medications"`
	Diagnoses     []Diagnosis    `json:"diagnoses" mapstructure:"diagnoses"`
	Allergies     []string       `json:"allergies" mapstructure:"allergies"`
	Consultations []string       `json:"consultations" mapstructure:"consultations"`
	Immunizations []Immunization `json:"immunizations" mapstructure:"immunizations"`
}

func (e ExtractedEntities) IsEmpty() bool {
	return len(e.Medications) == 0 && len(e.Diagnoses) == 0 && len(e.Allergies) == 0 &&
		len(e.Consultations) == 0 && len(e.Immunizations) == 0
}
