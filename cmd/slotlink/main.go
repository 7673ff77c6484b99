package main

import (
	"context"

	availabilityhandler "slotlink/internal/availability/handler"
	availabilityrepository "slotlink/internal/availability/repository"
	availabilityservice "slotlink/internal/availability/service"
	bookingshandler "slotlink/internal/bookings/handler"
	bookingsrepository "slotlink/internal/bookings/repository"
	bookingsservice "slotlink/internal/bookings/service"
	"slotlink/internal/events"
	linkshandler "slotlink/internal/links/handler"
	linksrepository "slotlink/internal/links/repository"
	linksservice "slotlink/internal/links/service"
	"slotlink/pkg/app"
	"slotlink/pkg/config"
	"slotlink/pkg/telemetry"
	"slotlink/pkg/validation"
)

const ServiceName = "slotlink"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Connect()

	shutdownTracing, err := telemetry.Setup(context.Background(), telemetry.Config{
		Enabled:      cfg.OtelEnabled,
		ServiceName:  ServiceName,
		OTLPEndpoint: cfg.OtelEndpoint,
		SampleRatio:  cfg.OtelSamplingRatio,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to set up tracing", "error", err)
	}

	cfg.Log.Info("Starting slotlink service", "store_driver", cfg.StoreDriver)
	serverApp := app.NewApplication(cfg)
	serverApp.SetTracing(shutdownTracing)
	serverApp.SetApp(initHandlers(cfg)...)
	serverApp.Run()
}

func initHandlers(cfg *config.Config) []app.Handler {
	validator := validation.MustNew()
	publisher := initPublisher(cfg)

	availabilityRepo := availabilityrepository.New(cfg)
	linkRepo := linksrepository.New(cfg)
	bookingRepo := bookingsrepository.New(cfg)

	availabilityService := availabilityservice.NewAvailabilityService(availabilityRepo, validator, publisher, cfg)
	linkService := linksservice.NewLinkService(linkRepo, validator, publisher, cfg)
	bookingService := bookingsservice.NewBookingService(
		availabilityRepo,
		bookingRepo,
		linkRepo,
		validator,
		publisher,
		cfg,
	)

	cfg.Log.Info("Services initialized", "store_driver", cfg.StoreDriver)
	return []app.Handler{
		availabilityhandler.NewAvailabilityHandler(availabilityService, cfg.Log),
		linkshandler.NewLinkHandler(linkService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
	}
}

func initPublisher(cfg *config.Config) events.Publisher {
	if cfg.Client.Kafka == nil {
		cfg.Log.Info("Kafka disabled, domain events are dropped")
		return events.Noop()
	}
	cfg.Log.Info("Publishing domain events to Kafka", "topic", cfg.Kafka.Topic)
	return events.NewKafkaPublisher(cfg.Client.Kafka, cfg.Kafka.PublishTimeout, cfg.Log)
}
