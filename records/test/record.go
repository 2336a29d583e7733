package test

import (
	"time"

	"github.com/medportal-org/portal/flexdate"
	"github.com/medportal-org/portal/pointer"
	"github.com/medportal-org/portal/records"
	"github.com/medportal-org/portal/test"
)

func RandomMedicalRecord(patientId string) records.MedicalRecord {
	return records.MedicalRecord{
		PatientId:            patientId,
		Allergies:            []string{"Penicillin", "Shellfish"},
		FamilyMedicalHistory: pointer.FromAny(test.Faker.Lorem().Sentence(8)),
		CurrentMedications: []records.Medication{
			{
				Name:      "Lisinopril",
				Dosage:    "10mg",
				Frequency: "daily",
				StartDate: flexdate.FromString("2023-01-20"),
				Notes:     "For hypertension",
			},
			{
				Name:      "Metformin",
				Dosage:    "500mg",
				Frequency: "twice daily",
				StartDate: flexdate.FromString("2022-11-01"),
				Notes:     "For Type 2 Diabetes",
			},
		},
		Diagnoses: []records.Diagnosis{
			{Disease: "Hypertension", Year: 2022, DiagnosisDate: flexdate.FromString("2022-10-15")},
			{Disease: "Type 2 Diabetes", Year: 2021, DiagnosisDate: flexdate.FromString("2021-09-01")},
		},
		Reports: []records.Report{
			{
				ReportId:    test.Faker.UUID().V4(),
				ReportType:  "Blood Test",
				Date:        flexdate.FromTime(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)),
				Description: "Cholesterol slightly elevated.",
			},
		},
		Immunizations: []records.Immunization{
			{
				Name:           "Flu Shot",
				Date:           flexdate.FromTime(time.Date(2024, 10, 5, 0, 0, 0, 0, time.UTC)),
				AdministeredBy: "Dr. Smith",
				LotNumber:      "ABC123",
			},
		},
	}
}
