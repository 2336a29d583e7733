package records_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/medportal-org/portal/records"
	recordsTest "github.com/medportal-org/portal/records/test"
)

// fakeRepository keeps records and contents in memory.
type fakeRepository struct {
	records       map[string]*records.MedicalRecord
	contents      map[string]*records.ReportContent
	contentErrors map[string]error
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		records:       map[string]*records.MedicalRecord{},
		contents:      map[string]*records.ReportContent{},
		contentErrors: map[string]error{},
	}
}

func (f *fakeRepository) Get(ctx context.Context, patientId string) (*records.MedicalRecord, error) {
	record, ok := f.records[patientId]
	if !ok {
		return nil, records.ErrNotFound
	}
	clone := *record
	clone.Reports = append([]records.Report{}, record.Reports...)
	return &clone, nil
}

func (f *fakeRepository) Create(ctx context.Context, record records.MedicalRecord) (*records.MedicalRecord, error) {
	if _, ok := f.records[record.PatientId]; ok {
		return nil, errors.New("duplicate record")
	}
	f.records[record.PatientId] = &record
	return f.Get(ctx, record.PatientId)
}

func (f *fakeRepository) Update(ctx context.Context, record records.MedicalRecord) (*records.MedicalRecord, error) {
	if _, ok := f.records[record.PatientId]; !ok {
		return nil, records.ErrNotFound
	}
	f.records[record.PatientId] = &record
	return f.Get(ctx, record.PatientId)
}

func (f *fakeRepository) AppendReport(ctx context.Context, patientId string, report records.Report) error {
	record, ok := f.records[patientId]
	if !ok {
		return records.ErrNotFound
	}
	record.Reports = append(record.Reports, report)
	return nil
}

func (f *fakeRepository) GetContent(ctx context.Context, contentId string) (*records.ReportContent, error) {
	if err, ok := f.contentErrors[contentId]; ok {
		return nil, err
	}
	content, ok := f.contents[contentId]
	if !ok {
		return nil, records.ErrContentNotFound
	}
	return content, nil
}

func (f *fakeRepository) InsertContent(ctx context.Context, content string) (string, error) {
	id := primitive.NewObjectID().Hex()
	f.contents[id] = &records.ReportContent{Content: content}
	return id, nil
}

func (f *fakeRepository) UpdateContent(ctx context.Context, contentId string, content string) error {
	existing, ok := f.contents[contentId]
	if !ok {
		return records.ErrContentNotFound
	}
	existing.Content = content
	return nil
}

var _ = Describe("Records Service", func() {
	var repo *fakeRepository
	var service records.Service

	BeforeEach(func() {
		var err error
		repo = newFakeRepository()
		service, err = records.NewService(repo, zap.NewNop().Sugar())
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("GetResolved", func() {
		var patientId string

		BeforeEach(func() {
			patientId = primitive.NewObjectID().Hex()
			record := recordsTest.RandomMedicalRecord(patientId)

			contentId, err := repo.InsertContent(nil, "Full cholesterol panel. LDL slightly above range.")
			Expect(err).ToNot(HaveOccurred())
			record.Reports[0].ContentId = contentId
			record.Reports[0].Description = "Cholesterol slightly elevated."

			_, err = repo.Create(nil, record)
			Expect(err).ToNot(HaveOccurred())
		})

		It("merges report content into the description", func() {
			resolved, err := service.GetResolved(nil, patientId)
			Expect(err).ToNot(HaveOccurred())
			Expect(resolved.Reports[0].Description).To(Equal("Full cholesterol panel. LDL slightly above range."))
		})

		It("keeps the stored description when content cannot be resolved", func() {
			record, err := repo.Get(nil, patientId)
			Expect(err).ToNot(HaveOccurred())
			repo.contentErrors[record.Reports[0].ContentId] = fmt.Errorf("network down")

			resolved, err := service.GetResolved(nil, patientId)
			Expect(err).ToNot(HaveOccurred())
			Expect(resolved.Reports[0].Description).To(Equal("Cholesterol slightly elevated."))
		})

		It("returns not found for an unknown patient", func() {
			_, err := service.GetResolved(nil, primitive.NewObjectID().Hex())
			Expect(err).To(MatchError(records.ErrNotFound))
		})
	})

	Describe("SaveReport", func() {
		It("creates the medical record when missing", func() {
			patientId := primitive.NewObjectID().Hex()
			report, err := service.SaveReport(nil, patientId, "Patient presented with cough and fever.", "")
			Expect(err).ToNot(HaveOccurred())
			Expect(report.ReportId).ToNot(BeEmpty())
			Expect(report.ReportType).To(Equal(records.ReportTypeAIGenerated))

			record, err := repo.Get(nil, patientId)
			Expect(err).ToNot(HaveOccurred())
			Expect(record.Reports).To(HaveLen(1))
			Expect(record.Reports[0].ContentId).To(Equal(report.ContentId))

			content, err := repo.GetContent(nil, report.ContentId)
			Expect(err).ToNot(HaveOccurred())
			Expect(content.Content).To(Equal("Patient presented with cough and fever."))
		})

		It("appends to an existing medical record", func() {
			patientId := primitive.NewObjectID().Hex()
			_, err := repo.Create(nil, recordsTest.RandomMedicalRecord(patientId))
			Expect(err).ToNot(HaveOccurred())

			_, err = service.SaveReport(nil, patientId, "Follow up in two weeks.", "")
			Expect(err).ToNot(HaveOccurred())

			record, err := repo.Get(nil, patientId)
			Expect(err).ToNot(HaveOccurred())
			Expect(record.Reports).To(HaveLen(2))
		})

		It("updates existing content when a content id is provided", func() {
			patientId := primitive.NewObjectID().Hex()
			first, err := service.SaveReport(nil, patientId, "Initial assessment.", "")
			Expect(err).ToNot(HaveOccurred())

			second, err := service.SaveReport(nil, patientId, "Revised assessment.", first.ContentId)
			Expect(err).ToNot(HaveOccurred())
			Expect(second.ContentId).To(Equal(first.ContentId))

			content, err := repo.GetContent(nil, first.ContentId)
			Expect(err).ToNot(HaveOccurred())
			Expect(content.Content).To(Equal("Revised assessment."))
		})

		It("fails when the content id does not exist", func() {
			patientId := primitive.NewObjectID().Hex()
			_, err := service.SaveReport(nil, patientId, "Revised assessment.", primitive.NewObjectID().Hex())
			Expect(err).To(MatchError(records.ErrContentNotFound))
		})
	})

	Describe("MergeExtracted", func() {
		var patientId string

		BeforeEach(func() {
			patientId = primitive.NewObjectID().Hex()
			_, err := repo.Create(nil, recordsTest.RandomMedicalRecord(patientId))
			Expect(err).ToNot(HaveOccurred())
		})

		It("unions allergies preserving first-seen order", func() {
			merged, err := service.MergeExtracted(nil, patientId, records.ExtractedEntities{
				Allergies: []string{"Shellfish", "Latex"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(merged.Allergies).To(Equal([]string{"Penicillin", "Shellfish", "Latex"}))
		})

		It("appends extracted medications and diagnoses", func() {
			merged, err := service.MergeExtracted(nil, patientId, records.ExtractedEntities{
				Medications: []records.Medication{{Name: "Amoxicillin", Dosage: "500mg", Frequency: "three times daily"}},
				Diagnoses:   []records.Diagnosis{{Disease: "Tonsillitis", Year: 2024}},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(merged.CurrentMedications).To(HaveLen(3))
			Expect(merged.CurrentMedications[2].Name).To(Equal("Amoxicillin"))
			Expect(merged.Diagnoses).To(HaveLen(3))
		})

		It("creates the record when missing", func() {
			newPatient := primitive.NewObjectID().Hex()
			merged, err := service.MergeExtracted(nil, newPatient, records.ExtractedEntities{
				Allergies: []string{"Peanuts"},
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(merged.Allergies).To(Equal([]string{"Peanuts"}))
		})

		It("does not touch the record for an empty extraction", func() {
			merged, err := service.MergeExtracted(nil, patientId, records.ExtractedEntities{})
			Expect(err).ToNot(HaveOccurred())
			Expect(merged.Allergies).To(Equal([]string{"Penicillin", "Shellfish"}))
			Expect(merged.CurrentMedications).To(HaveLen(2))
		})
	})
})
