package main

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/Hawkhub/tg-tw-answering-bot/pkg/log"
	"github.com/Hawkhub/tg-tw-answering-bot/pkg/srv"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the AnswerBot services",
	Long:  `Initializes the archive and the Telegram bot and runs them until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting answerbot")

		// Define services using the setup.go logic
		services := NewServices(ctx)

		// Start services
		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("answerbot has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
}
