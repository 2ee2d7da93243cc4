package bootstrap

import (
	"context"
	"log"
	"os"

	"hr-assistant-be/internal/config"
	"hr-assistant-be/internal/controller"
	"hr-assistant-be/internal/pkg/logger"
	"hr-assistant-be/internal/repository/unitofwork"
	"hr-assistant-be/internal/service"
	"hr-assistant-be/pkg/agent"
	"hr-assistant-be/pkg/agent/access"
	embeddingfactory "hr-assistant-be/pkg/embedding/factory"
	llmfactory "hr-assistant-be/pkg/llm/factory"
	"hr-assistant-be/pkg/memory"
	"hr-assistant-be/pkg/records"
	"hr-assistant-be/pkg/retrieval"

	pktNats "hr-assistant-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController   controller.IChatController
	PolicyController controller.IPolicyController

	// Background services (exposed for main.go to run)
	ConsumerService service.IConsumerService

	SysLogger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI providers
	embeddingProvider, err := embeddingfactory.NewEmbeddingProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.EmbeddingModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GoogleGeminiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize embedding provider: %v", err)
	}
	log.Printf("[INFO] Using embedding provider: %s", cfg.Ai.EmbeddingProvider)

	llmBaseURL := cfg.Ai.OllamaBaseURL
	llmApiKey := ""
	if cfg.Ai.LLMProvider == "openai" {
		llmBaseURL = cfg.Ai.OpenAIBaseURL
		llmApiKey = cfg.Ai.OpenAIKey
	}
	llmProvider, err := llmfactory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		llmBaseURL,
		llmApiKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM provider: %v", err)
	}
	log.Printf("[INFO] Using LLM provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	// auditPub stays a nil interface when NATS is unreachable so the
	// services' nil checks short-circuit.
	var auditPub service.IAuditPublisher
	if natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL); err != nil {
		log.Printf("[WARN] Failed to connect to NATS publisher: %v", err)
	} else {
		auditPub = natsPub
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

	// 5. Agent core
	agentLogger := log.New(os.Stdout, "[agent] ", log.LstdFlags)

	planner := agent.NewPlannerService(llmProvider)
	synthesizer := agent.NewSynthesizerService(llmProvider)
	recordResolver := records.NewResolver(records.NewRouter(llmProvider), uowFactory)
	searcher := retrieval.NewSearcher(embeddingProvider, uowFactory, retrieval.DefaultConfig(), agentLogger)
	conversationStore := memory.NewStore(uowFactory)

	agentConfig := agent.Config{
		PlanTimeout:       cfg.Agent.PlanTimeout,
		CapabilityTimeout: cfg.Agent.CapabilityTimeout,
		SynthesisTimeout:  cfg.Agent.SynthesisTimeout,
		MemoryTimeout:     cfg.Agent.MemoryTimeout,
		WindowSize:        cfg.Agent.WindowSize,
	}
	agentCore := agent.NewAgent(
		planner,
		synthesizer,
		recordResolver,
		searcher,
		conversationStore,
		agentConfig,
		agentLogger,
	)

	accessVerifier := access.NewVerifier(rdb, cfg.Agent.DailyMessageLimit)

	// 6. Services
	publisherService := service.NewPublisherService(cfg.App.IngestionTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.IngestionTopic,
		uowFactory,
		embeddingProvider,
	)

	assistantService := service.NewAssistantService(agentCore, accessVerifier, uowFactory, auditPub, sysLogger)
	policyService := service.NewPolicyService(publisherService, auditPub, sysLogger)

	// 7. Controllers
	return &Container{
		ChatController:   controller.NewChatController(assistantService),
		PolicyController: controller.NewPolicyController(policyService),
		ConsumerService:  consumerService,
		SysLogger:        sysLogger,
	}
}
