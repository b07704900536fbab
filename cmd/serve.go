package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/westbourne-advisory/website/api"
	"github.com/westbourne-advisory/website/cms"
	"github.com/westbourne-advisory/website/services"
)

const shutdownTimeout = 30 * time.Second

// errInterrupted marks a shutdown asked for by a signal rather than a failure.
var errInterrupted = errors.New("interrupted")

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), appConfig)
		},
	}
}

func runServe(ctx context.Context, c map[string]string) error {
	log.Info().Msg("Initializing app...")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	registry := newRegistry()
	metrics := cms.NewMetrics(registry)

	client, cacheCloser, err := newCMSClient(ctx, c, metrics)
	if err != nil {
		return err
	}
	defer cacheCloser.Close()

	db, err := openDatabase(c)
	if err != nil {
		return err
	}
	defer db.Close()

	templates, err := loadTemplates(ctx, c)
	if err != nil {
		return err
	}

	drafts, err := newDraftCodec(c)
	if err != nil {
		return err
	}

	notifierCfg, err := notifierConfig(ctx, c)
	if err != nil {
		return err
	}

	server, err := api.NewServer(c, api.Deps{
		Content:   cms.NewContent(client, metrics),
		Database:  db,
		Templates: templates,
		Drafts:    drafts,
		Notifier:  services.NewNotifier(notifierCfg),
		Registry:  registry,
	})
	if err != nil {
		return fmt.Errorf("error initializing server: %w", err)
	}

	// Start and listenToInterrupt each send once and only the first is read.
	errChannel := make(chan error, 2)

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(shutdownTimeout)
	if errors.Is(fatalErr, errInterrupted) {
		return nil
	}
	return fmt.Errorf("server stopped: %w", fatalErr)
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%w: %s", errInterrupted, <-c)
}
