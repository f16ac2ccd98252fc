package bootstrap

import (
	"context"
	"log"
	"time"

	"talentbridge-ai/internal/config"
	"talentbridge-ai/internal/pkg/logger"
	"talentbridge-ai/internal/repository/implementation"
	cachekv "talentbridge-ai/internal/repository/memory"
	"talentbridge-ai/pkg/agent"
	"talentbridge-ai/pkg/dialogue"
	"talentbridge-ai/pkg/embedding"
	"talentbridge-ai/pkg/events"
	"talentbridge-ai/pkg/knowledge"
	"talentbridge-ai/pkg/llm"
	"talentbridge-ai/pkg/llm/glm"
	"talentbridge-ai/pkg/memory"
	"talentbridge-ai/pkg/rag"
	"talentbridge-ai/pkg/store"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const engineEventsTopic = "engine.events"

// Container wires the engine together. The host application builds one
// and calls into Orchestrator (full turns), Knowledge (indexing and
// stats), Tracker (slot state), and Memory (window management) directly.
type Container struct {
	Orchestrator *agent.Orchestrator
	Assembler    *rag.Assembler
	Knowledge    *knowledge.Store
	Memory       *memory.WindowStore
	Tracker      *dialogue.Tracker
	Embeddings   *embedding.Client
	Logger       logger.ILogger
	PubSub       *gochannel.GoChannel
}

// NewContainer builds the full engine. The job searcher is host-owned;
// passing nil wires the tools to an empty searcher so the engine still
// answers, it just never finds jobs.
func NewContainer(db *gorm.DB, cfg *config.Config, searcher agent.JobSearcher) *Container {
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	requestTimeout := time.Duration(cfg.Ai.RequestTimeoutSec) * time.Second
	contextTTL := time.Duration(cfg.Engine.ContextTTLSec) * time.Second

	// Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermillLogger)
	publisher := events.NewWatermillPublisher(pubSub, engineEventsTopic, sysLogger)

	// Embedding provider
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "openai" {
		embeddingProvider = embedding.NewOpenAIProvider(cfg.Ai.APIKey, cfg.Ai.EmbeddingURL, cfg.Ai.EmbeddingModel)
		log.Printf("[INFO] Using Embedding Provider: OPENAI (%s)", cfg.Ai.EmbeddingModel)
	} else {
		embeddingProvider = embedding.NewZhipuProvider(cfg.Ai.APIKey, cfg.Ai.EmbeddingURL, cfg.Ai.EmbeddingModel, requestTimeout)
		log.Printf("[INFO] Using Embedding Provider: ZHIPU (%s)", cfg.Ai.EmbeddingModel)
	}
	embeddingClient := embedding.NewClient(embeddingProvider, cfg.Engine.EmbeddingCacheSize, requestTimeout, sysLogger)

	// Chat provider
	var chatProvider llm.Provider = glm.NewProvider(cfg.Ai.APIKey, cfg.Ai.ChatBaseURL, cfg.Ai.ChatModel, requestTimeout)
	log.Printf("[INFO] Using Chat Provider: GLM (%s)", cfg.Ai.ChatModel)

	// Storage tiers
	primaryKV, err := store.NewRedisKV(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("[FATAL] Failed to configure Redis: %v", err)
	}
	if !primaryKV.Available(context.Background()) {
		log.Printf("[WARN] Redis unreachable at startup, in-process tier will serve until it recovers")
	}
	fallbackKV := cachekv.NewCacheKV(contextTTL)

	// Repositories
	knowledgeRepo := implementation.NewKnowledgeRepository(db)
	memoryLogRepo := implementation.NewMemoryLogRepository(db)

	// Engine components
	windowStore := memory.NewWindowStore(primaryKV, fallbackKV, memoryLogRepo, contextTTL, cfg.Engine.MaxWindowMessages, sysLogger)
	knowledgeStore := knowledge.NewStore(knowledgeRepo, embeddingClient, publisher, cfg.Engine.SearchTopK, cfg.Engine.SimilarityThreshold, cfg.Engine.DedupThreshold, sysLogger)
	tracker := dialogue.NewTracker(primaryKV, fallbackKV, contextTTL, sysLogger)
	assembler := rag.NewAssembler(windowStore, knowledgeStore, tracker)

	if searcher == nil {
		searcher = emptySearcher{}
	}
	orchestrator := agent.NewOrchestrator(chatProvider, assembler, tracker, windowStore, searcher, publisher, sysLogger)

	return &Container{
		Orchestrator: orchestrator,
		Assembler:    assembler,
		Knowledge:    knowledgeStore,
		Memory:       windowStore,
		Tracker:      tracker,
		Embeddings:   embeddingClient,
		Logger:       sysLogger,
		PubSub:       pubSub,
	}
}

// emptySearcher stands in when the host has not wired a real search
// backend yet.
type emptySearcher struct{}

func (emptySearcher) SearchJobs(context.Context, string, []string, string, string, int) ([]agent.JobRecord, error) {
	return nil, nil
}

func (emptySearcher) SearchByCompany(context.Context, string, int) ([]agent.JobRecord, error) {
	return nil, nil
}

func (emptySearcher) Recommend(context.Context, string, string, string, []string, int) ([]agent.JobRecord, error) {
	return nil, nil
}
