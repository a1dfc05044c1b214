package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hamzasdq/earnlybot/internal/chatbot"
	"github.com/hamzasdq/earnlybot/internal/db"
	"github.com/hamzasdq/earnlybot/internal/server"
	"github.com/hamzasdq/earnlybot/internal/transcript"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chat HTTP server",
	Long:  `Starts the HTTP and WebSocket chat API backed by the intent engine.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		engine, cfg, err := buildEngine()
		if err != nil {
			return err
		}

		var transcripts *transcript.Store
		if cfg.PersistChats {
			database, err := db.Open(filepath.Join(cfg.DataDir, "earnlybot.db"))
			if err != nil {
				return fmt.Errorf("opening transcript database: %w", err)
			}
			defer database.Close()
			transcripts = transcript.NewStore(database)
		}

		srv := server.New(server.Config{Port: cfg.Port, AllowAll: cfg.AllowAllOrigins})
		chatbot.RegisterRoutes(srv.Router(), engine, transcripts)
		chatbot.RegisterWebSocket(srv.Router(), engine)

		stats := engine.Stats()
		log.Printf("earnlybot ready: %d intents, %d patterns, kb %s",
			stats.TotalIntents, stats.TotalPatterns, stats.Version)

		errCh := make(chan error, 1)
		go func() { errCh <- srv.Start() }()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return err
		case <-stop:
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
