package bootstrap

import (
	"context"
	"log"
	"time"

	"agentcraft-be/internal/config"
	"agentcraft-be/internal/controller"
	"agentcraft-be/internal/handler"
	"agentcraft-be/internal/pkg/logger"
	"agentcraft-be/internal/pkg/mailer"
	"agentcraft-be/internal/repository/implementation"
	"agentcraft-be/internal/repository/memory"
	"agentcraft-be/internal/repository/unitofwork"
	"agentcraft-be/internal/service"
	"agentcraft-be/internal/websocket"
	"agentcraft-be/pkg/llm/factory"

	pktNats "agentcraft-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// loginAttemptWindow controls how long failed login counters survive.
const loginAttemptWindow = 15 * time.Minute

type Container struct {
	// Controllers
	AuthController         controller.IAuthController
	OAuthController        controller.IOAuthController
	UserController         controller.IUserController
	OnboardingController   controller.IOnboardingController
	TemplateController     controller.ITemplateController
	AgentController        controller.IAgentController
	ConversationController controller.IConversationController
	DashboardController    controller.IDashboardController
	PaymentController      controller.IPaymentController

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

	// 2. Event Bus (in-process job queue for email delivery)
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	emailWorker := service.NewEmailWorker(pubSub, emailService, cfg.App.WelcomeEmailTopic)
	if err := emailWorker.Start(context.Background()); err != nil {
		log.Printf("[WARN] Failed to start email worker: %v", err)
	}

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(cfg.Ai)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s", cfg.Ai.Provider)

	// In-memory login throttle storage
	loginAttempts := memory.NewLoginAttemptRepository(loginAttemptWindow)

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
	authService := service.NewAuthService(uowFactory, loginAttempts, natsPub, pubSub, cfg.App.WelcomeEmailTopic)
	oauthService := service.NewOAuthService(uowFactory, cfg)
	userService := service.NewUserService(uowFactory, natsPub)
	onboardingService := service.NewOnboardingService(uowFactory, natsPub)
	agentService := service.NewAgentService(uowFactory, natsPub)
	chatService := service.NewChatService(uowFactory, llmProvider)
	conversationService := service.NewConversationService(uowFactory)
	analyticsService := service.NewAnalyticsService(uowFactory)
	paymentService := service.NewPaymentService(uowFactory, natsPub, cfg.Payment)

	// 3.5 Notification System Infrastructure
	notifRepo := implementation.NewNotificationRepository(db)
	notifService := service.NewNotificationService(notifRepo, natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	// Start Service (Worker)
	if natsSub != nil {
		go notifService.Start()
	}

	// Handler
	notifHandler := handler.NewNotificationHandler(notifService, natsPub, wsHub, sysLogger)

	// 4. Controllers
	return &Container{
		NotificationHandler:    notifHandler,
		WebSocketHub:           wsHub,
		AuthController:         controller.NewAuthController(authService),
		OAuthController:        controller.NewOAuthController(oauthService),
		UserController:         controller.NewUserController(userService),
		OnboardingController:   controller.NewOnboardingController(onboardingService),
		TemplateController:     controller.NewTemplateController(),
		AgentController:        controller.NewAgentController(agentService, chatService),
		ConversationController: controller.NewConversationController(conversationService),
		DashboardController:    controller.NewDashboardController(analyticsService),
		PaymentController:      controller.NewPaymentController(paymentService),
	}
}
