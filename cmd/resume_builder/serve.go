package main

import (
	"fmt"
	"time"

	"github.com/jonathan/resume-builder/internal/persistence"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort   int
	serveConfig string
	serveSink   string
	serveDir    string
	serveTTL    time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes editing sessions, document assembly, and submit over REST.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVarP(&serveConfig, "config", "c", "", "Path to config JSON file")
	serveCmd.Flags().StringVar(&serveSink, "sink", "", "Sink kind: memory, file, redis, postgres, mongo, minio")
	serveCmd.Flags().StringVar(&serveDir, "dir", "", "Output directory for the file sink")
	serveCmd.Flags().DurationVar(&serveTTL, "session-ttl", server.DefaultSessionTTL, "Idle time before an editing session expires (negative disables expiry)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(serveConfig, cmd.Flags(), map[string]*string{
		"sink": &serveSink,
		"dir":  &serveDir,
	})
	if err != nil {
		return err
	}
	logger := newLogger(cfg, cmd.ErrOrStderr())

	sink, err := persistence.Open(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s sink: %w", cfg.Sink, err)
	}

	srv, err := server.New(server.Config{
		Port:       servePort,
		Sink:       sink,
		Key:        cfg.Key,
		Logger:     logger,
		SessionTTL: serveTTL,
	})
	if err != nil {
		_ = sink.Close()
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
