package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/config"
	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/logging"
	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/notify"
	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/pipeline"
	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/publish"
	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/render"
	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/report"
	"github.com/CityOfPhiladelphia/AcceptedRCOsReport/internal/repository"
)

func main() {
	// One run per invocation; an interrupt cancels whichever stage is
	// blocked on I/O.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.Log)

	publisher, err := publish.New(cfg.S3)
	if err != nil {
		logger.Error("failed to configure publisher", "error", err.Error())
		os.Exit(1)
	}

	// Every dependency is constructed here and passed in explicitly;
	// nothing holds a connection open across stages.
	run := pipeline.New(
		repository.NewRegistrationRepository(cfg.Database),
		report.NewBuilder(),
		render.NewRenderer(cfg.Render),
		render.NewSofficeConverter(cfg.Converter),
		publisher,
		notify.NewMailer(cfg.SMTP),
		logger,
		cfg.Pipeline,
	)

	result := run.Run(ctx)
	os.Exit(result.ExitCode())
}
