package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/Laserlicht/toweroops/engine"
	"github.com/Laserlicht/toweroops/i18n"
	"github.com/Laserlicht/toweroops/server"
	"github.com/Laserlicht/toweroops/storage"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	translator := i18n.Load()
	log.Info().Str("language", translator.Language()).Msg(translator.T("app-title"))

	store, err := storage.NewStore()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open storage")
	}
	settings := store.LoadSettings()

	eng := engine.New(
		engine.WithAILevel(settings.AILevel),
		engine.WithStatistics(store.LoadStatistics()),
		engine.WithStatsSaver(store),
	)

	hub := server.NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx.Done())

	srv := &http.Server{
		Addr:    *addr,
		Handler: server.New(eng, store, hub).Router(),
	}

	go func() {
		log.Info().Str("addr", *addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("shutdown incomplete")
	}
}
