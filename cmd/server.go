/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"os"
	"syscall"
	"time"

	"github.com/careerhub/frontdesk/internal/logging"
	"github.com/careerhub/frontdesk/internal/server"
	"github.com/careerhub/frontdesk/internal/shutdown"
	"github.com/spf13/cobra"
)

var serverPort int

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Starts the frontdesk backend-for-frontend server",
	Long: `Starts the frontdesk HTTP server. Each request is forwarded to the
portal API with the caller's own token. Usage:

	frontdesk server --port 8081
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := loadConfig()
		if serverPort != 0 {
			cfg.ServerPort = serverPort
		}
		log := logging.New(cfg.LogLevel)
		defer func() { _ = log.Sync() }()

		srv, err := server.New(cfg, log)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		startErr := make(chan error, 1)
		go func() {
			err := srv.Start()
			if err != nil {
				log.Error("server error", "err", err)
			}
			startErr <- err
			cancel()
		}()

		if err := shutdown.Graceful(ctx, []os.Signal{os.Interrupt, syscall.SIGTERM}, srv, 10*time.Second, log); err != nil {
			return err
		}
		return <-startErr
	},
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 0, "listen port (overrides SERVER_PORT)")
	rootCmd.AddCommand(serverCmd)
}
