package main

import (
	"github.com/spf13/cobra"
)

var generateAreasCmd = &cobra.Command{
	Use:   "areas",
	Short: "Populate target zones with dive areas",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, mode, err := newGenerateRunner()
		if err != nil {
			return err
		}
		return runner.RunAreas(cmd.Context(), mode)
	},
}

func init() {
	generateCmd.AddCommand(generateAreasCmd)
}
