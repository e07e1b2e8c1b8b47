package bootstrap

import (
	"context"
	"log"

	"supercharged-notes-be/internal/config"
	"supercharged-notes-be/internal/constant"
	"supercharged-notes-be/internal/controller"
	"supercharged-notes-be/internal/pkg/logger"
	"supercharged-notes-be/internal/pkg/serverutils"
	"supercharged-notes-be/internal/repository/cache"
	"supercharged-notes-be/internal/repository/store"
	"supercharged-notes-be/internal/repository/unitofwork"
	"supercharged-notes-be/internal/service"
	"supercharged-notes-be/internal/websocket"
	"supercharged-notes-be/pkg/ai/pipeline"
	"supercharged-notes-be/pkg/ai/router"
	"supercharged-notes-be/pkg/events"
	"supercharged-notes-be/pkg/llm/factory"
	pktNats "supercharged-notes-be/pkg/nats"
	ragcontext "supercharged-notes-be/pkg/rag/context"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatbotController controller.IChatbotController
	ChatHandler       *websocket.ChatHandler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	llmLogger := logger.NewIsolatedLogger(cfg.App.LLMLogFilePath)

	c := &Container{Logger: sysLogger}

	// 2. Event Bus
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	// NATS is optional; without it usage events stop at the log.
	var eventPublisher events.Publisher
	if cfg.App.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			eventPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 3. Context resolution
	documentStore := store.NewDocumentStore(uowFactory)
	contextCache := newContextCache(cfg, sysLogger, c)
	resolver := ragcontext.NewResolver(documentStore, contextCache, sysLogger)

	// 4. LLM
	llmProvider, err := factory.NewLLMProvider(factory.Params{
		Provider:      cfg.Ai.LLMProvider,
		DefaultModel:  cfg.Ai.QuickModel,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
		OpenRouterURL: cfg.Ai.OpenRouterBaseURL,
		OpenRouterKey: cfg.Ai.OpenRouterAPIKey,
		SiteURL:       cfg.App.AppURL,
		SiteName:      cfg.App.AppName,
		Timeout:       cfg.Ai.RequestTimeout,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (quick=%s, detailed=%s)", cfg.Ai.LLMProvider, cfg.Ai.QuickModel, cfg.Ai.DetailedModel)

	modelRouter := router.NewModelRouter(cfg.Ai.QuickModel, cfg.Ai.DetailedModel)
	chatPipeline := pipeline.NewChatPipeline(llmProvider, modelRouter, llmLogger)

	// 5. Services
	publisherService := service.NewPublisherService(constant.ChatUsageTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(pubSub, constant.ChatUsageTopic, eventPublisher, sysLogger)
	chatbotService := service.NewChatbotService(resolver, chatPipeline, publisherService, sysLogger)

	// 6. Transports
	auth := serverutils.NewAuthMiddleware(cfg.Auth.Mode, cfg.Auth.JWTSecret, cfg.Auth.UserIDHeader)
	c.ChatbotController = controller.NewChatbotController(chatbotService, auth)
	c.ChatHandler = websocket.NewChatHandler(chatbotService, auth, sysLogger)

	c.closers = append(c.closers, func() {
		_ = llmLogger.Sync()
		_ = sysLogger.Sync()
	})
	return c
}

// newContextCache builds the per-process general context cache. The redis
// driver falls back to memory when the server cannot be reached at startup.
func newContextCache(cfg *config.Config, sysLogger logger.ILogger, c *Container) ragcontext.Cache {
	if cfg.Cache.Driver != "redis" {
		return cache.NewMemoryContextCache(cfg.Cache.TTL)
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
		log.Printf("[WARN] Failed to connect to Redis: %v. Using in-memory context cache", err)
		_ = rdb.Close()
		return cache.NewMemoryContextCache(cfg.Cache.TTL)
	}
	c.closers = append(c.closers, func() { _ = rdb.Close() })
	return cache.NewRedisContextCache(rdb, cfg.Cache.TTL, sysLogger)
}

// Close releases connections in reverse order of creation.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
}
