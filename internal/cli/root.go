// Package cli implements the blinkyctl command tree. Every command talks to
// a running server through the remote store client.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"blinky/internal/remote"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "blinkyctl",
	Short: "Blinky - project tracking and personal finance from the terminal",
	Long: `Blinkyctl manages the projects, income, expenses and savings goals of a
running blinky server.

The server address is read from ~/.blinky/config.yaml and can be overridden
with --server.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Server base URL (overrides config)")

	rootCmd.AddCommand(projectCmd)
	rootCmd.AddCommand(incomeCmd)
	rootCmd.AddCommand(expenseCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(statusCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// newClient resolves the server address and returns a client for it.
func newClient() (*remote.Client, error) {
	url := serverURL
	if url == "" {
		cfg, err := LoadClientConfig()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		url = cfg.ServerURL
	}
	return remote.NewClient(url), nil
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage client configuration",
}

var configSetServerCmd = &cobra.Command{
	Use:   "set-server [url]",
	Short: "Persist the server address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := LoadClientConfig()
		if err != nil {
			return err
		}
		cfg.ServerURL = args[0]
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		fmt.Printf("Server set to %s\n", cfg.ServerURL)
		return nil
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check whether the server is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		if err := client.Healthy(cmd.Context()); err != nil {
			return fmt.Errorf("server unreachable: %w", err)
		}
		fmt.Println("Server is healthy")
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetServerCmd)
}
