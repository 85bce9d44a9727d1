package main

import (
	"github.com/spf13/cobra"
)

var generatePointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Populate target areas with individual dive points",
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, mode, err := newGenerateRunner()
		if err != nil {
			return err
		}
		return runner.RunPoints(cmd.Context(), mode)
	},
}

func init() {
	generateCmd.AddCommand(generatePointsCmd)
}
