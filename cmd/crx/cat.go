package main

import (
	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat <package> <path>",
	Short: "Print a member's decoded content",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pkg, err := loadPackage(args[0])
		if err != nil {
			return err
		}

		content, err := pkg.ReadFile(args[1])
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(content)
		return err
	},
}

func init() {
	rootCmd.AddCommand(catCmd)
}
