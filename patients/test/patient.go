package test

import (
	"time"

	"github.com/medportal-org/portal/flexdate"
	"github.com/medportal-org/portal/patients"
	"github.com/medportal-org/portal/pointer"
	"github.com/medportal-org/portal/test"
)

func RandomPatient() patients.Patient {
	registered := test.Faker.Time().TimeBetween(time.Now().AddDate(-3, 0, 0), time.Now()).UTC().Truncate(time.Millisecond)
	return patients.Patient{
		Name: &patients.Name{
			First: test.Faker.Person().FirstName(),
			Last:  test.Faker.Person().LastName(),
		},
		Email:       pointer.FromAny(test.Faker.Internet().Email()),
		PhoneNumber: pointer.FromAny(test.Faker.Phone().Number()),
		Age:         pointer.FromAny(test.Faker.IntBetween(18, 90)),
		Gender:      pointer.FromAny(test.Faker.Gender().Name()),
		Address: &patients.Address{
			Street:  test.Faker.Address().StreetAddress(),
			City:    test.Faker.Address().City(),
			State:   test.Faker.Address().State(),
			Zip:     test.Faker.Address().PostCode(),
			Country: test.Faker.Address().Country(),
		},
		EmergencyContact: &patients.EmergencyContact{
			Name:         test.Faker.Person().Name(),
			Phone:        test.Faker.Phone().Number(),
			Relationship: "Spouse",
		},
		RegistrationDate: flexdate.FromTime(registered),
		DateOfBirth:      flexdate.FromString(test.Faker.Time().ISO8601(time.Now())[:10]),
	}
}
