package bootstrap

import (
	"context"
	"log"

	"library-membership-be/internal/config"
	"library-membership-be/internal/controller"
	"library-membership-be/internal/handler"
	"library-membership-be/internal/pkg/logger"
	"library-membership-be/internal/pkg/mailer"
	"library-membership-be/internal/repository/implementation"
	"library-membership-be/internal/repository/memory"
	"library-membership-be/internal/repository/unitofwork"
	"library-membership-be/internal/service"
	"library-membership-be/internal/websocket"
	"library-membership-be/pkg/admin/dashboard"

	pktNats "library-membership-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	OAuthController      controller.IOAuthController
	MembershipController controller.IMembershipController
	AdminController      controller.IAdminController
	PaymentController    controller.IPaymentController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService
	ExpiryService   service.IExpiryService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.App.ClientURL,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Services
	publisherService := service.NewPublisherService(pubSub, cfg.App.MailTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.MailTopic,
		emailService,
	)

	stateStore := memory.NewStateStore()

	authService := service.NewAuthService(uowFactory)
	oauthService := service.NewOAuthService(uowFactory, stateStore, sysLogger)

	membershipService := service.NewMembershipService(uowFactory, natsPub, sysLogger)
	paymentService := service.NewPaymentService(uowFactory, natsPub, publisherService, sysLogger)
	expiryService := service.NewExpiryService(uowFactory, natsPub, publisherService, sysLogger)

	dashboardAggregator := dashboard.NewAggregator(sysLogger)
	adminService := service.NewAdminService(
		uowFactory,
		dashboardAggregator,
		natsPub,
		publisherService,
		sysLogger,
	)

	// 3.5 Notification System
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, wsLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler:  notifHandler,
		WebSocketHub:         wsHub,
		AuthController:       controller.NewAuthController(authService),
		OAuthController:      controller.NewOAuthController(oauthService),
		MembershipController: controller.NewMembershipController(membershipService),
		AdminController:      controller.NewAdminController(adminService, membershipService),
		PaymentController:    controller.NewPaymentController(paymentService),

		ConsumerService: consumerService,
		ExpiryService:   expiryService,
	}
}
