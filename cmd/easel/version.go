package main

import (
	"fmt"

	"github.com/aretw0/easel"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of easel",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "easel version %s\n", easel.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
