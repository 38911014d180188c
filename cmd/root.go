/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	apiURL   string
	apiToken string
	roleName string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "frontdesk",
	Short: "Job portal front desk: views, bulk actions and a backend-for-frontend server",
	Long: `frontdesk talks to the job portal REST API on behalf of candidates,
companies, employees and super-admins. It renders application timelines,
filtered job lists and course progress, runs bulk deletes, and can serve the
same views over HTTP.

Connection settings come from the environment (API_BASE_URL, SESSION_TOKEN)
and can be overridden with --api and --token.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "portal API base URL (overrides API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "session token (overrides SESSION_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&roleName, "role", "", "act as this role instead of asking the portal (candidate, company, employee, superadmin)")
}
