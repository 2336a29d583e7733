package chatbot

import (
	"fmt"
	"strings"

	"github.com/medportal-org/portal/doctors"
	"github.com/medportal-org/portal/flexdate"
	"github.com/medportal-org/portal/patients"
	"github.com/medportal-org/portal/records"
)

// PatientData is the nested document handed to the formatter: the patient
// profile plus the resolved medical record. Either part may be missing.
type PatientData struct {
	Patient       *patients.Patient      `json:"patient"`
	MedicalRecord *records.MedicalRecord `json:"medical_record"`
}

const (
	placeholder     = "N/A"
	noPatientData   = "No patient data available."
	noDoctorData    = "No doctor data available."
	noMedicalRecord = "No medical record details available."
)

// FormatPatientData renders the patient and medical record into the text
// block used as model context. Every missing field degrades to a visible
// placeholder instead of vanishing, so the model cannot mistake an absent
// field for evidence and fabricate an answer around it.
func FormatPatientData(data PatientData) string {
	if data.Patient == nil && data.MedicalRecord == nil {
		return noPatientData
	}

	var b strings.Builder
	if patient := data.Patient; patient != nil {
		id := placeholder
		if patient.Id != nil {
			id = patient.Id.Hex()
		}
		fmt.Fprintf(&b, "Patient ID: %s\n", id)
		fmt.Fprintf(&b, "Name: %s\n", formatPatientName(patient.Name))
		fmt.Fprintf(&b, "Email: %s\n", strOr(patient.Email))
		fmt.Fprintf(&b, "Age: %s\n", intOr(patient.Age))
		fmt.Fprintf(&b, "Gender: %s\n", strOr(patient.Gender))
		fmt.Fprintf(&b, "Phone: %s\n", strOr(patient.PhoneNumber))
		b.WriteString(formatAddress(patient.Address))
		if !patient.RegistrationDate.IsZero() {
			fmt.Fprintf(&b, "Registration Date: %s\n", patient.RegistrationDate.FormatOr(flexdate.MinutePrecision, placeholder))
		}
		if !patient.DateOfBirth.IsZero() {
			fmt.Fprintf(&b, "Date of Birth: %s\n", patient.DateOfBirth.FormatOr(flexdate.DayPrecision, placeholder))
		}
	}

	b.WriteString("\n--- Medical Record ---\n")
	record := data.MedicalRecord
	if record == nil {
		b.WriteString(noMedicalRecord + "\n")
		return b.String()
	}

	fmt.Fprintf(&b, "Allergies: %s\n", joinOr(record.Allergies, "None"))

	if record.FamilyMedicalHistory != nil && *record.FamilyMedicalHistory != "" {
		fmt.Fprintf(&b, "Family Medical History: %s\n", *record.FamilyMedicalHistory)
	} else {
		b.WriteString("Family Medical History: None provided.\n")
	}

	if len(record.CurrentMedications) > 0 {
		b.WriteString("Current Medications:\n")
		for _, med := range record.CurrentMedications {
			fmt.Fprintf(&b, "- %s (%s, %s)\n", orNA(med.Name), orNA(med.Dosage), orNA(med.Frequency))
		}
	}

	if len(record.Diagnoses) > 0 {
		b.WriteString("Diagnoses:\n")
		for _, diag := range record.Diagnoses {
			year := placeholder
			if diag.Year != 0 {
				year = fmt.Sprintf("%d", diag.Year)
			}
			fmt.Fprintf(&b, "- %s (Year: %s)\n", orNA(diag.Disease), year)
		}
	}

	fmt.Fprintf(&b, "Prescriptions: %s\n", joinOr(record.Prescriptions, "None"))
	fmt.Fprintf(&b, "Consultation History: %s\n", joinOr(record.ConsultationHistory, "None provided."))

	if len(record.Reports) > 0 {
		b.WriteString("Reports:\n")
		for _, report := range record.Reports {
			description := report.Description
			if description == "" {
				description = "Content not available."
			}
			fmt.Fprintf(&b, "- %s on %s: %s\n",
				orDefault(report.ReportType, "Report"),
				report.Date.FormatOr(flexdate.DayPrecision, placeholder),
				description,
			)
		}
	}

	if len(record.Immunizations) > 0 {
		b.WriteString("Immunizations:\n")
		for _, imm := range record.Immunizations {
			fmt.Fprintf(&b, "- %s on %s by %s. Lot: %s\n",
				orDefault(imm.Name, "Vaccine"),
				imm.Date.FormatOr(flexdate.DayPrecision, placeholder),
				orNA(imm.AdministeredBy),
				orNA(imm.LotNumber),
			)
		}
	}

	return b.String()
}

// FormatDoctorData renders the short doctor header block.
func FormatDoctorData(doctor *doctors.Doctor) string {
	if doctor == nil {
		return noDoctorData
	}

	first, last := placeholder, ""
	if doctor.Name != nil {
		if doctor.Name.First != "" {
			first = doctor.Name.First
		}
		last = doctor.Name.Last
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Doctor Name: Dr. %s %s\n", first, last)
	fmt.Fprintf(&b, "Specialty: %s\n", strOr(doctor.Specialty))
	fmt.Fprintf(&b, "Contact: %s | %s", strOr(doctor.PhoneNumber), strOr(doctor.Email))
	return b.String()
}

func formatPatientName(name *patients.Name) string {
	first, last := placeholder, ""
	if name != nil {
		if name.First != "" {
			first = name.First
		}
		last = name.Last
	}
	return strings.TrimRight(first+" "+last, " ")
}

func formatAddress(address *patients.Address) string {
	street, city, state, zip, country := placeholder, placeholder, placeholder, placeholder, placeholder
	if address != nil {
		street = orNA(address.Street)
		city = orNA(address.City)
		state = orNA(address.State)
		zip = orNA(address.Zip)
		country = orNA(address.Country)
	}
	return fmt.Sprintf("Address: %s, %s, %s, %s, %s\n", street, city, state, zip, country)
}

func strOr(p *string) string {
	if p == nil || *p == "" {
		return placeholder
	}
	return *p
}

func intOr(p *int) string {
	if p == nil {
		return placeholder
	}
	return fmt.Sprintf("%d", *p)
}

func orNA(s string) string {
	return orDefault(s, placeholder)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func joinOr(items []string, fallback string) string {
	if len(items) == 0 {
		return fallback
	}
	return strings.Join(items, ", ")
}
