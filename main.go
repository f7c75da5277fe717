package main

import (
	"context"
	"contactia/app/client/mailer"
	"contactia/app/client/storedb"
	"contactia/app/client/twilio"
	"contactia/app/config"
	"contactia/app/server"
	"contactia/app/service/availability"
	"contactia/app/service/booking"
	"contactia/app/service/dialogue"
	"contactia/app/service/notify"
	"contactia/app/service/session"
	"contactia/app/service/transcript"
	"contactia/app/util/mylog"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gofiber/fiber/v2/log"
	"github.com/samber/do"
	"golang.org/x/sync/errgroup"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, storedb.NewClient)
	do.Provide(di, mailer.NewClient)
	do.Provide(di, twilio.NewClient)
	do.Provide(di, notify.NewQueue)
	do.Provide(di, notify.NewWorker)
	do.Provide(di, availability.New)
	do.Provide(di, booking.New)
	do.Provide(di, dialogue.New)
	do.Provide(di, transcript.New)
	do.Provide(di, session.New)
	do.Provide(di, server.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	g, gCtx := errgroup.WithContext(appCtx)

	g.Go(func() error {
		do.MustInvoke[*notify.Worker](di).Run(gCtx)

		return nil
	})

	g.Go(func() error {
		return do.MustInvoke[*server.Server](di).Run(gCtx)
	})

	if err = g.Wait(); err != nil {
		slog.Error("Service stopped with error", "error", err)
	}
}
