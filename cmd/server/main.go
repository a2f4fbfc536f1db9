package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumedash",
	Short: "Admin dashboard for developer resume profiles",
	Long: `resumedash serves the admin dashboard used to edit developer profiles,
experiences, skills, projects and social media links stored behind the
resume REST API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sasCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
