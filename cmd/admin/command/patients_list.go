package command

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medportal-org/portal/patients"
	"github.com/medportal-org/portal/store"
)

var patientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered patients",
	Long:  "The list command is used to retrieve a list of all registered patients",
	RunE:  func(cmd *cobra.Command, args []string) error { return Run(listPatients) },
}

func listPatients(service patients.Service) error {
	page := store.DefaultPagination().WithLimit(1000)
	list, err := service.List(context.TODO(), &patients.Filter{}, page)
	if err != nil {
		return err
	}

	for _, patient := range list {
		id := patient.Id.Hex()
		email := ""
		if patient.Email != nil {
			email = *patient.Email
		}
		name := ""
		if patient.Name != nil {
			name = fmt.Sprintf("%s %s", patient.Name.First, patient.Name.Last)
		}

		fmt.Printf("%s %s %s\n", id, email, name)
	}
	fmt.Printf("Found %v patients\n", len(list))

	return nil
}

func init() {
	patientsCmd.AddCommand(patientsListCmd)
}
