package rag

import (
	"context"

	"talentbridge-ai/pkg/dialogue"
	"talentbridge-ai/pkg/knowledge"
	"talentbridge-ai/pkg/memory"
	"talentbridge-ai/pkg/store"
)

// Context is everything the orchestrator needs to ground one turn.
type Context struct {
	ShortTerm   []store.Message
	RAGContext  string
	SlotState   *dialogue.State
	SlotSummary string
}

// Assembler composes the three context sources into a single view of one
// turn. It owns no state of its own and never writes slot state; the only
// mutation happening here is the hit bookkeeping inside the knowledge
// search.
type Assembler struct {
	window    *memory.WindowStore
	knowledge *knowledge.Store
	tracker   *dialogue.Tracker
}

func NewAssembler(window *memory.WindowStore, kb *knowledge.Store, tracker *dialogue.Tracker) *Assembler {
	return &Assembler{
		window:    window,
		knowledge: kb,
		tracker:   tracker,
	}
}

// Assemble gathers the short-term window, retrieved knowledge, and a
// read-only snapshot of the slot state. Folding the query into the slot
// state is the caller's job; assembling the same turn twice yields the
// same view.
func (a *Assembler) Assemble(ctx context.Context, sessionKey, userID, query, category string) *Context {
	shortTerm := a.window.Window(ctx, sessionKey)
	ragContext := a.knowledge.SearchContext(ctx, query, category)
	state := a.tracker.State(ctx, userID)

	return &Context{
		ShortTerm:   shortTerm,
		RAGContext:  ragContext,
		SlotState:   state,
		SlotSummary: state.Summary(),
	}
}
