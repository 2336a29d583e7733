package test

import (
	"github.com/medportal-org/portal/doctors"
	"github.com/medportal-org/portal/pointer"
	"github.com/medportal-org/portal/test"
)

func RandomDoctor() doctors.Doctor {
	return doctors.Doctor{
		Name: &doctors.Name{
			First: test.Faker.Person().FirstName(),
			Last:  test.Faker.Person().LastName(),
		},
		Specialty:   pointer.FromAny("General Practitioner"),
		PhoneNumber: pointer.FromAny(test.Faker.Phone().Number()),
		Email:       pointer.FromAny(test.Faker.Internet().Email()),
	}
}
