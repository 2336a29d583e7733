package command

import (
	"github.com/spf13/cobra"
)

var patientsCmd = &cobra.Command{
	Use:   "patients",
	Short: "Manage portal patients",
	Long:  "The patients command is used to inspect patients registered in the portal",
}

func init() {
	rootCmd.AddCommand(patientsCmd)
}
