package main

import (
	"context"
	"log"
	"time"

	"library-membership-be/internal/config"
	"library-membership-be/internal/pkg/logger"
	"library-membership-be/internal/pkg/mailer"
	"library-membership-be/internal/repository/unitofwork"
	"library-membership-be/internal/service"
	"library-membership-be/pkg/database"
	pktNats "library-membership-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Periodically moves active memberships past their end date to expired.
func main() {
	cfg := config.Load()

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}

	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewStdLogger(false, false))
	publisherService := service.NewPublisherService(pubSub, cfg.App.MailTopic)
	consumerService := service.NewConsumerService(pubSub, cfg.App.MailTopic, emailService)

	ctx := context.Background()
	go func() {
		if err := consumerService.Consume(ctx); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	expiryService := service.NewExpiryService(uowFactory, natsPub, publisherService, sysLogger)

	interval := time.Hour
	log.Printf("✅ Expiry sweeper running (interval: %s)", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Run one sweep immediately, then on every tick.
	for ; ; <-ticker.C {
		expired, err := expiryService.SweepExpired(ctx, time.Now())
		if err != nil {
			log.Printf("Sweep failed: %v", err)
			continue
		}
		if expired > 0 {
			log.Printf("Sweep complete: %d membership(s) expired", expired)
		}
	}
}
