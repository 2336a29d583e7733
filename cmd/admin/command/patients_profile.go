package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medportal-org/portal/chatbot"
	"github.com/medportal-org/portal/patients"
	"github.com/medportal-org/portal/records"
)

var patientsProfileParams = struct {
	PatientId string
}{}

var patientsProfileCmd = &cobra.Command{
	Use:   "profile {patientId}",
	Args:  cobra.ExactArgs(1),
	Short: "Print a patient profile",
	Long:  "The profile command prints the patient profile the way the model sees it",
	RunE: func(cmd *cobra.Command, args []string) error {
		patientsProfileParams.PatientId = args[0]
		return Run(printProfile)
	},
}

func printProfile(patientsService patients.Service, recordsService records.Service) error {
	ctx := context.TODO()

	patient, err := patientsService.Get(ctx, patientsProfileParams.PatientId)
	if err != nil {
		return err
	}

	record, err := recordsService.GetResolved(ctx, patientsProfileParams.PatientId)
	if err != nil && !errors.Is(err, records.ErrNotFound) {
		return err
	}

	fmt.Println(chatbot.FormatPatientData(chatbot.PatientData{
		Patient:       patient,
		MedicalRecord: record,
	}))

	return nil
}

func init() {
	patientsCmd.AddCommand(patientsProfileCmd)
}
