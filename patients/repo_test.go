package patients_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx/fxtest"

	"github.com/medportal-org/portal/patients"
	patientsTest "github.com/medportal-org/portal/patients/test"
	"github.com/medportal-org/portal/store"
	dbTest "github.com/medportal-org/portal/store/test"
)

var _ = Describe("Patients Repository", func() {
	var repo patients.Repository
	var database *mongo.Database
	var collection *mongo.Collection

	BeforeEach(func() {
		var err error
		database = dbTest.GetTestDatabase()
		collection = database.Collection("patients")
		lifecycle := fxtest.NewLifecycle(GinkgoT())
		repo, err = patients.NewRepository(database, lifecycle)
		Expect(err).ToNot(HaveOccurred())
		Expect(repo).ToNot(BeNil())
		lifecycle.RequireStart()
	})

	AfterEach(func() {
		_, err := collection.DeleteMany(nil, primitive.M{})
		Expect(err).ToNot(HaveOccurred())
	})

	Describe("Create", func() {
		var patient patients.Patient

		BeforeEach(func() {
			patient = patientsTest.RandomPatient()
		})

		It("returns the created patient", func() {
			result, err := repo.Create(nil, patient)

			Expect(err).ToNot(HaveOccurred())
			Expect(result).ToNot(BeNil())
			Expect(result.Id).ToNot(BeNil())
			Expect(result.Email).To(Equal(patient.Email))
			Expect(result.Name).To(Equal(patient.Name))
			Expect(result.RegistrationDate).To(Equal(patient.RegistrationDate))
			Expect(result.DateOfBirth).To(Equal(patient.DateOfBirth))
		})

		It("returns a duplicate error when the email is taken", func() {
			_, err := repo.Create(nil, patient)
			Expect(err).ToNot(HaveOccurred())

			second := patientsTest.RandomPatient()
			second.Email = patient.Email
			_, err = repo.Create(nil, second)
			Expect(err).To(MatchError(patients.ErrDuplicate))
		})
	})

	Describe("Get", func() {
		var created *patients.Patient

		BeforeEach(func() {
			var err error
			created, err = repo.Create(nil, patientsTest.RandomPatient())
			Expect(err).ToNot(HaveOccurred())
		})

		It("returns the patient by hex id", func() {
			result, err := repo.Get(nil, created.Id.Hex())
			Expect(err).ToNot(HaveOccurred())
			Expect(result.Email).To(Equal(created.Email))
		})

		It("returns not found for an unknown id", func() {
			_, err := repo.Get(nil, primitive.NewObjectID().Hex())
			Expect(err).To(MatchError(patients.ErrNotFound))
		})

		It("returns not found for a malformed id", func() {
			_, err := repo.Get(nil, "not-a-hex-id")
			Expect(err).To(MatchError(patients.ErrNotFound))
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			for i := 0; i < 15; i++ {
				_, err := repo.Create(nil, patientsTest.RandomPatient())
				Expect(err).ToNot(HaveOccurred())
			}
		})

		It("honors pagination", func() {
			page := store.Pagination{Offset: 10, Limit: 10}
			result, err := repo.List(nil, &patients.Filter{}, page)
			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(5))
		})
	})
})
