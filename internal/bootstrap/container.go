package bootstrap

import (
	"context"
	"log"
	"os"
	"strings"
	"time"

	"aqua-support-be/internal/config"
	"aqua-support-be/internal/controller"
	"aqua-support-be/internal/handler"
	"aqua-support-be/internal/pkg/logger"
	"aqua-support-be/internal/pkg/mailer"
	"aqua-support-be/internal/pkg/serverutils"
	"aqua-support-be/internal/repository/memory"
	"aqua-support-be/internal/repository/unitofwork"
	"aqua-support-be/internal/service"
	"aqua-support-be/internal/websocket"
	"aqua-support-be/pkg/agent"
	"aqua-support-be/pkg/agent/answer"
	"aqua-support-be/pkg/agent/augment"
	"aqua-support-be/pkg/agent/direct"
	"aqua-support-be/pkg/agent/eval"
	"aqua-support-be/pkg/agent/intent"
	"aqua-support-be/pkg/agent/query"
	"aqua-support-be/pkg/agent/retrieval"
	"aqua-support-be/pkg/embedding"
	"aqua-support-be/pkg/embedding/jina"
	"aqua-support-be/pkg/llm/factory"
	pkgNats "aqua-support-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SupportController   controller.ISupportController
	KnowledgeController controller.IKnowledgeController
	InquiryController   controller.IInquiryController
	AuthController      controller.IAuthController
	AdminController     controller.IAdminController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets
	EscalationHandler *handler.EscalationHandler
	WebSocketHub      *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)

	sysLogger, err := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment != "production")
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize logger: %v", err)
	}
	agentLogger, err := logger.NewIsolatedLogger("logs/agent.log")
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize agent logger: %v", err)
	}

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
		cfg.Support.BrandName,
	)

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding provider
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else if cfg.Ai.EmbeddingProvider == "jina" {
		embeddingProvider = jina.NewJinaProvider(cfg.Keys.Jina)
		log.Printf("[INFO] Using Embedding Provider: JINA AI")
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	// LLM provider
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL(cfg),
		cfg.Keys.HuggingFace,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 2.5 Infrastructure
	natsPub, err := pkgNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

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
		rdb = nil
	}

	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run()

	// 3. Agent assembly
	oracleLog := log.New(os.Stdout, "", log.LstdFlags)

	classifier := intent.NewClassifier(llmProvider, strings.Split(cfg.Agent.IntentPrecedence, ","), oracleLog)
	responder := direct.NewResponder(cfg.Support.BrandName, cfg.Support.ContactPhone, cfg.Support.ContactEmail, oracleLog)
	reformulator := query.NewReformulator(llmProvider, oracleLog)
	searchAdapter := service.NewVectorSearchAdapter(uowFactory)
	gateway := retrieval.NewGateway(embeddingProvider, searchAdapter, cfg.Agent.RetrievalBaseTopK, cfg.Agent.RetrievalStepTopK, oracleLog)
	scorer := eval.NewScorer(llmProvider, oracleLog)
	augmenter := augment.NewAugmenter(llmProvider, cfg.Support.ContactPhone, cfg.Support.ContactEmail, oracleLog)
	synthesizer := answer.NewSynthesizer(llmProvider, cfg.Support.ContactPhone, cfg.Support.ContactEmail, oracleLog)

	supportAgent := agent.NewAgent(
		classifier,
		responder,
		reformulator,
		gateway,
		scorer,
		augmenter,
		synthesizer,
		cfg.Agent.MaxAttempts,
		time.Duration(cfg.Ai.OracleTimeout)*time.Second,
		oracleLog,
	)

	answerMemo := memory.NewAnswerMemoRepository(time.Duration(cfg.Agent.MemoExpiryMinutes) * time.Minute)

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Keys.EmbedTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Keys.EmbedTopic,
		uowFactory,
		embeddingProvider,
		natsPub,
	)

	supportService := service.NewSupportService(
		supportAgent,
		uowFactory,
		answerMemo,
		natsPub,
		emailService,
		cfg.Support.EscalationTo,
		wsHub,
		sysLogger,
	)
	knowledgeService := service.NewKnowledgeService(uowFactory, publisherService)
	inquiryService := service.NewInquiryService(uowFactory)
	authService := service.NewAuthService(uowFactory, cfg.Auth.JWTSecret, cfg.Auth.JWTExpiryHour)

	// Public ask endpoint gets a per-IP cap; admin routes are JWT-gated
	// instead. The middleware verifies with the same secret the auth
	// service signs with.
	askRateLimiter := serverutils.RateLimiter(rdb, 30, time.Minute)
	jwtMiddleware := serverutils.NewJwtMiddleware(cfg.Auth.JWTSecret)

	escalationHandler := handler.NewEscalationHandler(wsHub, cfg.Auth.JWTSecret, sysLogger)

	// 5. Controllers
	return &Container{
		SupportController:   controller.NewSupportController(supportService, askRateLimiter),
		KnowledgeController: controller.NewKnowledgeController(knowledgeService, jwtMiddleware),
		InquiryController:   controller.NewInquiryController(inquiryService, jwtMiddleware),
		AuthController:      controller.NewAuthController(authService),
		AdminController:     controller.NewAdminController(sysLogger, agentLogger, jwtMiddleware),

		ConsumerService: consumerService,

		EscalationHandler: escalationHandler,
		WebSocketHub:      wsHub,
	}
}

func llmBaseURL(cfg *config.Config) string {
	if cfg.Ai.LLMBaseURL != "" {
		return cfg.Ai.LLMBaseURL
	}
	return cfg.Ai.OllamaBaseURL
}
