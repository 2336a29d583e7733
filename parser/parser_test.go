package parser_test

import (
	"context"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/medportal-org/portal/chatbot"
	"github.com/medportal-org/portal/doctors"
	"github.com/medportal-org/portal/flexdate"
	"github.com/medportal-org/portal/parser"
	"github.com/medportal-org/portal/patients"
	"github.com/medportal-org/portal/pointer"
	recordsTest "github.com/medportal-org/portal/records/test"
)

type fakeGenerator struct {
	response string
	prompts  []string
}

func (f *fakeGenerator) GenerateStructuredResponse(ctx context.Context, prompt string) string {
	f.prompts = append(f.prompts, prompt)
	return f.response
}

var _ = Describe("ReportParser", func() {
	var generator *fakeGenerator
	var reportParser *parser.ReportParser
	var data chatbot.PatientData
	var doctor *doctors.Doctor

	BeforeEach(func() {
		generator = &fakeGenerator{response: `{"medications": [], "diagnoses": [], "allergies": [], "consultations": [], "immunizations": []}`}
		reportParser = parser.NewReportParser(generator, zap.NewNop().Sugar())
		record := recordsTest.RandomMedicalRecord("66a1f0c2e4b0a1b2c3d4e5f6")
		data = chatbot.PatientData{
			Patient: &patients.Patient{
				Name: &patients.Name{First: "John", Last: "Doe"},
			},
			MedicalRecord: &record,
		}
		doctor = &doctors.Doctor{
			Name:      &doctors.Name{First: "Alice", Last: "Smith"},
			Specialty: pointer.FromAny("Cardiology"),
		}
	})

	It("returns empty entities for an empty report without calling the model", func() {
		entities, err := reportParser.Parse(context.Background(), "  \n ", data, doctor)
		Expect(err).ToNot(HaveOccurred())
		Expect(entities.IsEmpty()).To(BeTrue())
		Expect(generator.prompts).To(BeEmpty())
	})

	It("includes the report text and context in the prompt", func() {
		_, err := reportParser.Parse(context.Background(), "Patient started Atorvastatin 20mg.", data, doctor)
		Expect(err).ToNot(HaveOccurred())
		Expect(generator.prompts).To(HaveLen(1))
		Expect(generator.prompts[0]).To(ContainSubstring("Medical Report Text to Parse:"))
		Expect(generator.prompts[0]).To(ContainSubstring("Patient started Atorvastatin 20mg."))
		Expect(generator.prompts[0]).To(ContainSubstring(`"John"`))
		Expect(generator.prompts[0]).To(ContainSubstring(`"Alice"`))
		Expect(generator.prompts[0]).To(HaveSuffix("JSON Output:"))
	})

	It("decodes extracted entities from the model output", func() {
		generator.response = `{
			"medications": [{"name": "Atorvastatin", "dosage": "20mg", "frequency": "once daily", "start_date": "2024-02-01"}],
			"diagnoses": [{"disease": "Hyperlipidemia", "year": 2024, "notes": "elevated LDL"}],
			"allergies": ["Aspirin"],
			"consultations": ["2024-02-01: follow-up in 3 months"],
			"immunizations": []
		}`

		entities, err := reportParser.Parse(context.Background(), "report", data, doctor)
		Expect(err).ToNot(HaveOccurred())
		Expect(entities.Medications).To(HaveLen(1))
		Expect(entities.Medications[0].Name).To(Equal("Atorvastatin"))
		Expect(entities.Medications[0].Dosage).To(Equal("20mg"))
		Expect(entities.Medications[0].StartDate.Time).ToNot(BeNil())
		Expect(*entities.Medications[0].StartDate.Time).To(Equal(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)))
		Expect(entities.Diagnoses).To(HaveLen(1))
		Expect(entities.Diagnoses[0].Disease).To(Equal("Hyperlipidemia"))
		Expect(entities.Diagnoses[0].Year).To(Equal(2024))
		Expect(entities.Allergies).To(ConsistOf("Aspirin"))
		Expect(entities.Consultations).To(ConsistOf("2024-02-01: follow-up in 3 months"))
		Expect(entities.Immunizations).To(BeEmpty())
	})

	It("strips markdown code fences from the model output", func() {
		generator.response = "```json\n{\"allergies\": [\"Latex\"]}\n```"
		entities, err := reportParser.Parse(context.Background(), "report", data, doctor)
		Expect(err).ToNot(HaveOccurred())
		Expect(entities.Allergies).To(ConsistOf("Latex"))
	})

	It("tolerates weakly typed model output", func() {
		generator.response = `{"diagnoses": [{"disease": "Asthma", "year": "2019"}]}`
		entities, err := reportParser.Parse(context.Background(), "report", data, doctor)
		Expect(err).ToNot(HaveOccurred())
		Expect(entities.Diagnoses).To(HaveLen(1))
		Expect(entities.Diagnoses[0].Year).To(Equal(2019))
	})

	It("keeps unparseable dates as text", func() {
		generator.response = `{"immunizations": [{"name": "Tetanus", "date": "sometime in spring 2023"}]}`
		entities, err := reportParser.Parse(context.Background(), "report", data, doctor)
		Expect(err).ToNot(HaveOccurred())
		Expect(entities.Immunizations).To(HaveLen(1))
		Expect(entities.Immunizations[0].Date).To(Equal(flexdate.FromString("sometime in spring 2023")))
	})

	It("treats null date strings as unset", func() {
		generator.response = `{"medications": [{"name": "Metoprolol", "end_date": "null"}]}`
		entities, err := reportParser.Parse(context.Background(), "report", data, doctor)
		Expect(err).ToNot(HaveOccurred())
		Expect(entities.Medications).To(HaveLen(1))
		Expect(entities.Medications[0].EndDate.IsZero()).To(BeTrue())
	})

	It("fails with an invalid output error when the model returns prose", func() {
		generator.response = "I could not find any entities in the report."
		_, err := reportParser.Parse(context.Background(), "report", data, doctor)
		Expect(err).To(MatchError(parser.ErrInvalidModelOutput))
	})
})
