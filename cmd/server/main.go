package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"github.com/OPMDOR/system-access-form/modules/requests"
	"github.com/OPMDOR/system-access-form/modules/requests/infrastructure/persistence"
	"github.com/OPMDOR/system-access-form/pkg/configuration"
	"github.com/OPMDOR/system-access-form/pkg/eventbus"
	"github.com/OPMDOR/system-access-form/pkg/export"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	records, err := persistence.LoadSnapshotFile(conf.SnapshotPath)
	if err != nil {
		logger.WithError(err).Fatal("load request snapshot")
	}
	logger.WithField("records", len(records)).Info("request snapshot loaded")

	bus := eventbus.NewEventPublisher(logger)
	module := requests.NewModule(records, bus, logger,
		export.WithGeneratedBy(conf.Export.GeneratedBy),
		export.WithDefaultLimit(conf.Export.DefaultLimit),
	)

	router := mux.NewRouter()
	module.Register(router)

	srv := &http.Server{
		Addr:         conf.SocketAddress,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
	}

	go func() {
		logger.WithField("addr", conf.SocketAddress).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("shutdown")
	}
	conf.Unload()
}
