package records

import (
	"context"
	"errors"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/medportal-org/portal/flexdate"
)

type service struct {
	repo   Repository
	logger *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(repo Repository, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		repo:   repo,
		logger: logger,
	}, nil
}

func (s *service) Get(ctx context.Context, patientId string) (*MedicalRecord, error) {
	return s.repo.Get(ctx, patientId)
}

func (s *service) GetResolved(ctx context.Context, patientId string) (*MedicalRecord, error) {
	record, err := s.repo.Get(ctx, patientId)
	if err != nil {
		return nil, err
	}

	for i, report := range record.Reports {
		if report.ContentId == "" {
			continue
		}
		content, err := s.repo.GetContent(ctx, report.ContentId)
		if err != nil {
			// Unresolvable references keep their stored description
			s.logger.Warnw("unable to resolve report content",
				"patientId", patientId,
				"contentId", report.ContentId,
				"error", err,
			)
			continue
		}
		record.Reports[i].Description = content.Content
	}

	return record, nil
}

func (s *service) SaveReport(ctx context.Context, patientId string, content string, contentId string) (*Report, error) {
	if _, err := s.repo.Get(ctx, patientId); err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if _, err := s.repo.Create(ctx, MedicalRecord{PatientId: patientId}); err != nil {
			return nil, err
		}
		s.logger.Infow("created new medical record", "patientId", patientId)
	}

	if contentId != "" {
		if err := s.repo.UpdateContent(ctx, contentId, content); err != nil {
			return nil, err
		}
	} else {
		var err error
		contentId, err = s.repo.InsertContent(ctx, content)
		if err != nil {
			return nil, err
		}
	}

	report := Report{
		ReportId:   uuid.NewString(),
		ReportType: ReportTypeAIGenerated,
		Date:       flexdate.FromTime(time.Now().UTC()),
		ContentId:  contentId,
	}
	if err := s.repo.AppendReport(ctx, patientId, report); err != nil {
		return nil, err
	}

	s.logger.Infow("report saved and linked to medical record",
		"patientId", patientId,
		"contentId", contentId,
	)
	return &report, nil
}

func (s *service) MergeExtracted(ctx context.Context, patientId string, extracted ExtractedEntities) (*MedicalRecord, error) {
	record, err := s.repo.Get(ctx, patientId)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
		record, err = s.repo.Create(ctx, MedicalRecord{PatientId: patientId})
		if err != nil {
			return nil, err
		}
	}

	if extracted.IsEmpty() {
		return record, nil
	}

	record.Allergies = unionAllergies(record.Allergies, extracted.Allergies)
	record.CurrentMedications = append(record.CurrentMedications, extracted.Medications...)
	record.Diagnoses = append(record.Diagnoses, extracted.Diagnoses...)
	record.ConsultationHistory = append(record.ConsultationHistory, extracted.Consultations...)
	record.Immunizations = append(record.Immunizations, extracted.Immunizations...)

	return s.repo.Update(ctx, *record)
}

// unionAllergies appends allergies not already known, preserving first-seen order.
func unionAllergies(existing []string, extracted []string) []string {
	known := mapset.NewSet[string](existing...)
	result := existing
	for _, allergy := range extracted {
		if allergy == "" || known.Contains(allergy) {
			continue
		}
		known.Add(allergy)
		result = append(result, allergy)
	}
	return result
}
