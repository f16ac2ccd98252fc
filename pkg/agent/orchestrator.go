package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"talentbridge-ai/internal/pkg/logger"
	"talentbridge-ai/pkg/dialogue"
	"talentbridge-ai/pkg/events"
	"talentbridge-ai/pkg/llm"
	"talentbridge-ai/pkg/memory"
	"talentbridge-ai/pkg/rag"
	"talentbridge-ai/pkg/store"
)

// Phase tracks where one turn is in the two-phase tool-calling flow.
type Phase int

const (
	PhaseAwaitingModel Phase = iota
	PhaseExecutingTools
	PhaseAwaitingFinal
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseAwaitingModel:
		return "awaiting_model"
	case PhaseExecutingTools:
		return "executing_tools"
	case PhaseAwaitingFinal:
		return "awaiting_final"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Reply is the outcome of one conversational turn.
type Reply struct {
	Text      string
	Stage     string
	UsedRAG   bool
	UsedTools bool
	Fallback  bool
}

// Orchestrator runs one turn end to end: assemble context, call the
// model with tools, execute requested tools sequentially, ask for the
// final answer, and record the exchange in short-term memory. A provider
// failure at any phase degrades to the canned-response table instead of
// surfacing an error.
type Orchestrator struct {
	provider  llm.Provider
	assembler *rag.Assembler
	tracker   *dialogue.Tracker
	window    *memory.WindowStore
	searcher  JobSearcher
	publisher events.Publisher
	jobLimit  int
	logger    logger.ILogger
}

func NewOrchestrator(provider llm.Provider, assembler *rag.Assembler, tracker *dialogue.Tracker, window *memory.WindowStore, searcher JobSearcher, publisher events.Publisher, lg logger.ILogger) *Orchestrator {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if lg == nil {
		lg = logger.NewNopLogger()
	}
	return &Orchestrator{
		provider:  provider,
		assembler: assembler,
		tracker:   tracker,
		window:    window,
		searcher:  searcher,
		publisher: publisher,
		jobLimit:  defaultJobLimit,
		logger:    lg,
	}
}

// Respond handles one user message and returns the assistant's reply.
// Slot extraction happens here, once per turn, before the read-only
// context assembly.
func (o *Orchestrator) Respond(ctx context.Context, sessionKey, userID, message string) *Reply {
	o.tracker.Observe(ctx, userID, message)
	assembled := o.assembler.Assemble(ctx, sessionKey, userID, message, "")
	stage := assembled.SlotState.DeriveStage()
	registry := JobToolset(o.searcher, assembled.SlotState, o.jobLimit)

	history := o.buildHistory(assembled, message)

	phase := PhaseAwaitingModel
	reply := &Reply{Stage: string(stage), UsedRAG: assembled.RAGContext != ""}

	result, err := o.provider.ChatWithTools(ctx, history, registry.Specs())
	if err != nil {
		o.logger.Warn("agent", "model call failed, answering from canned table", map[string]interface{}{
			"session_key": sessionKey,
			"phase":       phase.String(),
			"error":       err.Error(),
		})
		reply.Text = FallbackResponse(message)
		reply.Fallback = true
		o.finish(ctx, sessionKey, userID, message, reply)
		return reply
	}

	if result.WantsTools() {
		phase = PhaseExecutingTools
		reply.UsedTools = true
		history = append(history, llm.Message{
			Role:      store.RoleAssistant,
			Content:   result.Content,
			ToolCalls: result.ToolCalls,
		})
		for _, call := range result.ToolCalls {
			output := o.executeTool(ctx, registry, call)
			history = append(history, llm.Message{
				Role:       store.RoleTool,
				Content:    output,
				ToolCallID: call.ID,
			})
		}

		phase = PhaseAwaitingFinal
		final, err := o.provider.Chat(ctx, history)
		if err != nil {
			o.logger.Warn("agent", "final generation failed, answering from canned table", map[string]interface{}{
				"session_key": sessionKey,
				"phase":       phase.String(),
				"error":       err.Error(),
			})
			reply.Text = FallbackResponse(message)
			reply.Fallback = true
			o.finish(ctx, sessionKey, userID, message, reply)
			return reply
		}
		reply.Text = final
	} else {
		reply.Text = result.Content
	}

	phase = PhaseDone
	o.logger.Debug("agent", "turn complete", map[string]interface{}{
		"session_key": sessionKey,
		"phase":       phase.String(),
		"stage":       reply.Stage,
		"used_tools":  reply.UsedTools,
	})
	o.finish(ctx, sessionKey, userID, message, reply)
	return reply
}

func (o *Orchestrator) buildHistory(assembled *rag.Context, message string) []llm.Message {
	history := []llm.Message{{
		Role:    store.RoleSystem,
		Content: BuildSystemPrompt(assembled.RAGContext, assembled.SlotSummary, assembled.SlotState.DeriveStage()),
	}}
	for _, msg := range assembled.ShortTerm {
		history = append(history, llm.Message{Role: msg.Role, Content: msg.Content})
	}
	history = append(history, llm.Message{Role: store.RoleUser, Content: message})
	return history
}

// executeTool runs one requested tool. Unknown tools, malformed
// arguments, and handler errors all become descriptive result strings so
// the model can explain the failure instead of the turn dying.
func (o *Orchestrator) executeTool(ctx context.Context, registry *Registry, call llm.ToolCall) string {
	tool, ok := registry.Get(call.Name)
	if !ok {
		return fmt.Sprintf("unknown tool %q", call.Name)
	}

	args := map[string]interface{}{}
	if call.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
			return fmt.Sprintf("invalid arguments for tool %q: %v", call.Name, err)
		}
	}

	output, err := tool.Handler(ctx, args)
	if err != nil {
		o.logger.Warn("agent", "tool execution failed", map[string]interface{}{
			"tool":  call.Name,
			"error": err.Error(),
		})
		return fmt.Sprintf("tool %q failed: %v", call.Name, err)
	}
	return output
}

func (o *Orchestrator) finish(ctx context.Context, sessionKey, userID, message string, reply *Reply) {
	o.window.Append(ctx, sessionKey, store.NewMessage(store.RoleUser, message))
	o.window.Append(ctx, sessionKey, store.NewMessage(store.RoleAssistant, reply.Text))
	o.window.RefreshTTL(ctx, sessionKey)
	o.publisher.Publish(events.NewConversationTurn(sessionKey, reply.UsedRAG, reply.UsedTools, reply.Fallback))
}
