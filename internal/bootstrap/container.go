package bootstrap

import (
	"log"
	"time"

	"ai-lessonplan-be/internal/config"
	"ai-lessonplan-be/internal/constant"
	"ai-lessonplan-be/internal/controller"
	"ai-lessonplan-be/internal/pkg/logger"
	"ai-lessonplan-be/internal/repository/implementation"
	"ai-lessonplan-be/internal/service"
	"ai-lessonplan-be/pkg/agent"
	"ai-lessonplan-be/pkg/embedding"
	"ai-lessonplan-be/pkg/llm"
	"ai-lessonplan-be/pkg/llm/factory"
	"ai-lessonplan-be/pkg/pipeline"
	"ai-lessonplan-be/pkg/retrieval"
	"ai-lessonplan-be/pkg/search"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PipelineController controller.IPipelineController
	SessionController  controller.ISessionController
	FeedbackController controller.IFeedbackController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider, err := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Keys.GoogleGemini,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OllamaEmbedModel,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Embedding Provider: %v", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s", cfg.Ai.EmbeddingProvider)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	gateway := llm.NewGateway(llmProvider)

	// 4. Retrieval and Enrichment
	retriever := retrieval.NewRetriever(
		embeddingProvider,
		cfg.Pipeline.CurriculumDir,
		cfg.Pipeline.ChunkSize,
		cfg.Pipeline.ChunkOverlap,
		cfg.Pipeline.SubjectThreshold,
	)

	registry := constant.NewPromptRegistry()
	searchClient := search.NewSerperClient(cfg.Keys.Serper)
	searchAgent := agent.NewSearchAgent(gateway, searchClient, registry, sysLogger)

	lessonPipeline := pipeline.NewLessonPipeline(
		gateway,
		retriever,
		registry,
		searchAgent,
		sysLogger,
		cfg.Pipeline.RetrievalTopK,
	)

	// 5. Repositories
	sessionRepo := implementation.NewSessionRepository(db)
	finetuneRepo := implementation.NewFinetuneRepository(db)

	// 6. Services
	publisherService := service.NewPublisherService(pubSub, cfg.Pipeline.StageEventTopic)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Pipeline.StageEventTopic,
		finetuneRepo,
		sysLogger,
	)

	pipelineService := service.NewPipelineService(
		lessonPipeline,
		sessionRepo,
		publisherService,
		sysLogger,
		cfg.Pipeline.MaxAttempts,
		time.Duration(cfg.Pipeline.BaseDelayMs)*time.Millisecond,
		searchClient.Available(),
	)
	sessionService := service.NewSessionService(sessionRepo)
	feedbackService := service.NewFeedbackService(sessionRepo, finetuneRepo)

	// 7. Controllers
	return &Container{
		PipelineController: controller.NewPipelineController(pipelineService),
		SessionController:  controller.NewSessionController(sessionService),
		FeedbackController: controller.NewFeedbackController(feedbackService),

		ConsumerService: consumerService,
		Logger:          sysLogger,
	}
}
