package main

import (
	"github.com/spf13/cobra"
)

var generateZonesCmd = &cobra.Command{
	Use:   "zones",
	Short: "Populate target regions with diving zones",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, mode, err := newGenerateRunner()
		if err != nil {
			return err
		}
		return runner.RunZones(cmd.Context(), mode)
	},
}

func init() {
	generateCmd.AddCommand(generateZonesCmd)
}
