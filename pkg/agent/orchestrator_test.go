package agent

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"talentbridge-ai/internal/entity"
	"talentbridge-ai/internal/repository/specification"
	"talentbridge-ai/pkg/dialogue"
	"talentbridge-ai/pkg/knowledge"
	"talentbridge-ai/pkg/llm"
	"talentbridge-ai/pkg/memory"
	"talentbridge-ai/pkg/rag"
	"talentbridge-ai/pkg/store"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeKV() *fakeKV { return &fakeKV{data: map[string][]byte{}} }

func (f *fakeKV) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (f *fakeKV) SetJSON(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = raw
	return nil
}

func (f *fakeKV) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, key)
	return nil
}

func (f *fakeKV) Expire(_ context.Context, _ string, _ time.Duration) error { return nil }
func (f *fakeKV) Available(_ context.Context) bool                          { return true }

type fakeRepo struct{}

func (fakeRepo) Create(_ context.Context, _ *entity.KnowledgeRecord) error { return nil }
func (fakeRepo) UpdateAnswer(_ context.Context, _ uuid.UUID, _ string, _ time.Time) error {
	return nil
}
func (fakeRepo) FindOne(_ context.Context, _ ...specification.Specification) (*entity.KnowledgeRecord, error) {
	return nil, nil
}
func (fakeRepo) FindAll(_ context.Context, _ ...specification.Specification) ([]*entity.KnowledgeRecord, error) {
	return nil, nil
}
func (fakeRepo) Count(_ context.Context, _ ...specification.Specification) (int64, error) {
	return 0, nil
}
func (fakeRepo) RecordHits(_ context.Context, _ []uuid.UUID, _ time.Time) error { return nil }

type nilEmbedder struct{}

func (nilEmbedder) GetEmbedding(_ context.Context, _ string) []float32 { return nil }

// scriptedProvider replays canned results for the two phases and records
// what it was asked.
type scriptedProvider struct {
	toolResult *llm.Result
	toolErr    error
	finalText  string
	finalErr   error

	toolHistory  []llm.Message
	finalHistory []llm.Message
	sentTools    []llm.ToolSpec
}

func (p *scriptedProvider) Chat(_ context.Context, history []llm.Message, _ ...llm.Option) (string, error) {
	p.finalHistory = history
	return p.finalText, p.finalErr
}

func (p *scriptedProvider) ChatWithTools(_ context.Context, history []llm.Message, tools []llm.ToolSpec, _ ...llm.Option) (*llm.Result, error) {
	p.toolHistory = history
	p.sentTools = tools
	return p.toolResult, p.toolErr
}

type fakeSearcher struct {
	jobs        []JobRecord
	companyArgs []string
	recommends  int
	lastSkills  []string
	lastJobType string
}

func (f *fakeSearcher) SearchJobs(_ context.Context, _ string, skills []string, _ string, _ string, _ int) ([]JobRecord, error) {
	f.lastSkills = skills
	return f.jobs, nil
}

func (f *fakeSearcher) SearchByCompany(_ context.Context, company string, _ int) ([]JobRecord, error) {
	f.companyArgs = append(f.companyArgs, company)
	return f.jobs, nil
}

func (f *fakeSearcher) Recommend(_ context.Context, jobType, _ string, _ string, skills []string, _ int) ([]JobRecord, error) {
	f.recommends++
	f.lastJobType = jobType
	f.lastSkills = skills
	return f.jobs, nil
}

func newTestOrchestrator(provider llm.Provider, searcher JobSearcher) (*Orchestrator, *memory.WindowStore, *dialogue.Tracker) {
	window := memory.NewWindowStore(newFakeKV(), nil, nil, time.Hour, 20, nil)
	kb := knowledge.NewStore(fakeRepo{}, nilEmbedder{}, nil, 3, 0.7, 0.95, nil)
	tracker := dialogue.NewTracker(newFakeKV(), nil, time.Hour, nil)
	assembler := rag.NewAssembler(window, kb, tracker)
	return NewOrchestrator(provider, assembler, tracker, window, searcher, nil, nil), window, tracker
}

func TestRespond_PlainAnswerWithoutTools(t *testing.T) {
	provider := &scriptedProvider{toolResult: &llm.Result{Content: "Hello! How can I help?"}}
	o, window, _ := newTestOrchestrator(provider, &fakeSearcher{})

	reply := o.Respond(context.Background(), "sess", "user", "hi there")
	assert.Equal(t, "Hello! How can I help?", reply.Text)
	assert.False(t, reply.UsedTools)
	assert.False(t, reply.Fallback)

	// Both sides of the exchange land in short-term memory.
	msgs := window.Window(context.Background(), "sess")
	require.Len(t, msgs, 2)
	assert.Equal(t, store.RoleUser, msgs[0].Role)
	assert.Equal(t, store.RoleAssistant, msgs[1].Role)
}

func TestRespond_AdvancesTurnCountExactlyOnce(t *testing.T) {
	provider := &scriptedProvider{toolResult: &llm.Result{Content: "sure"}}
	o, _, tracker := newTestOrchestrator(provider, &fakeSearcher{})
	ctx := context.Background()

	o.Respond(ctx, "sess", "user", "I want to find a job in beijing")

	state := tracker.State(ctx, "user")
	assert.Equal(t, 1, state.TurnCount)
	assert.Equal(t, "job_search", state.Intent)
	assert.Equal(t, "beijing", state.Location)

	o.Respond(ctx, "sess", "user", "thanks")
	assert.Equal(t, 2, tracker.State(ctx, "user").TurnCount)
}

func TestRespond_CompanySearchWithNoResults(t *testing.T) {
	provider := &scriptedProvider{
		toolResult: &llm.Result{ToolCalls: []llm.ToolCall{{
			ID:        "call-1",
			Name:      "search_jobs_by_company",
			Arguments: `{"company":"Acme Robotics"}`,
		}}},
		finalText: "I checked, but Acme Robotics has no open positions right now.",
	}
	searcher := &fakeSearcher{jobs: nil}
	o, _, _ := newTestOrchestrator(provider, searcher)

	reply := o.Respond(context.Background(), "sess", "user", "any openings at Acme Robotics?")
	require.True(t, reply.UsedTools)
	assert.Equal(t, []string{"Acme Robotics"}, searcher.companyArgs)

	// The tool result passed to the second phase states the miss
	// literally so the model cannot invent listings.
	var toolMsg *llm.Message
	for i := range provider.finalHistory {
		if provider.finalHistory[i].Role == store.RoleTool {
			toolMsg = &provider.finalHistory[i]
		}
	}
	require.NotNil(t, toolMsg)
	assert.Equal(t, `no jobs found for company "Acme Robotics"`, toolMsg.Content)
	assert.Equal(t, "call-1", toolMsg.ToolCallID)
	assert.Equal(t, "I checked, but Acme Robotics has no open positions right now.", reply.Text)
}

func TestRespond_ToolArgumentsBackfilledFromSlots(t *testing.T) {
	provider := &scriptedProvider{
		toolResult: &llm.Result{ToolCalls: []llm.ToolCall{{
			ID:        "call-1",
			Name:      "recommend_jobs",
			Arguments: `{}`,
		}}},
		finalText: "Here are some matches.",
	}
	searcher := &fakeSearcher{jobs: []JobRecord{{Title: "ML Engineer", Company: "Acme"}}}
	o, _, _ := newTestOrchestrator(provider, searcher)

	o.Respond(context.Background(), "sess", "user",
		"I'm skilled in Python and machine learning, looking for an algorithm role, recommend jobs for me")

	require.Equal(t, 1, searcher.recommends)
	assert.Equal(t, "algorithm engineer", searcher.lastJobType)
	assert.ElementsMatch(t, []string{"python", "machine learning"}, searcher.lastSkills)
}

func TestRespond_MalformedToolArgumentsBecomeResultText(t *testing.T) {
	provider := &scriptedProvider{
		toolResult: &llm.Result{ToolCalls: []llm.ToolCall{{
			ID:        "call-1",
			Name:      "search_jobs",
			Arguments: `{not json`,
		}}},
		finalText: "Sorry, I could not run that search.",
	}
	o, _, _ := newTestOrchestrator(provider, &fakeSearcher{})

	reply := o.Respond(context.Background(), "sess", "user", "find me jobs")
	require.True(t, reply.UsedTools)

	var toolMsg string
	for _, msg := range provider.finalHistory {
		if msg.Role == store.RoleTool {
			toolMsg = msg.Content
		}
	}
	assert.Contains(t, toolMsg, `invalid arguments for tool "search_jobs"`)
	assert.Equal(t, "Sorry, I could not run that search.", reply.Text)
}

func TestRespond_ProviderFailureFallsBackToCannedTable(t *testing.T) {
	provider := &scriptedProvider{toolErr: errors.New("connection refused")}
	o, window, _ := newTestOrchestrator(provider, &fakeSearcher{})

	reply := o.Respond(context.Background(), "sess", "user", "how do I register?")
	assert.True(t, reply.Fallback)
	assert.Contains(t, reply.Text, "Register button")

	// Even a degraded turn is recorded in memory.
	assert.Len(t, window.Window(context.Background(), "sess"), 2)
}

func TestRespond_SecondPhaseFailureAlsoFallsBack(t *testing.T) {
	provider := &scriptedProvider{
		toolResult: &llm.Result{ToolCalls: []llm.ToolCall{{
			ID: "call-1", Name: "search_jobs", Arguments: `{}`,
		}}},
		finalErr: errors.New("timeout"),
	}
	o, _, _ := newTestOrchestrator(provider, &fakeSearcher{jobs: []JobRecord{{Title: "Dev", Company: "Acme"}}})

	reply := o.Respond(context.Background(), "sess", "user", "something unrelated")
	assert.True(t, reply.Fallback)
	assert.Equal(t, genericFallback, reply.Text)
}

func TestRespond_SendsToolSpecsInRegistrationOrder(t *testing.T) {
	provider := &scriptedProvider{toolResult: &llm.Result{Content: "ok"}}
	o, _, _ := newTestOrchestrator(provider, &fakeSearcher{})

	o.Respond(context.Background(), "sess", "user", "hello")
	require.Len(t, provider.sentTools, 3)
	assert.Equal(t, "search_jobs", provider.sentTools[0].Name)
	assert.Equal(t, "search_jobs_by_company", provider.sentTools[1].Name)
	assert.Equal(t, "recommend_jobs", provider.sentTools[2].Name)
}

func TestFallbackResponse_FirstMatchWins(t *testing.T) {
	// "register" precedes "login" in the table, so a message containing
	// both takes the register answer.
	text := FallbackResponse("how do I register and then log in?")
	assert.Contains(t, text, "Register button")

	assert.Contains(t, FallbackResponse("我想登录"), "Login button")
	assert.Equal(t, genericFallback, FallbackResponse("completely unrelated"))
}

func TestJobToolset_FormatsResults(t *testing.T) {
	searcher := &fakeSearcher{jobs: []JobRecord{
		{Title: "Backend Engineer", Company: "Acme", Salary: "25k", Location: "beijing", Experience: "1-3 years", Tags: []string{"golang", "redis"}},
	}}
	registry := JobToolset(searcher, dialogue.NewState(), 5)

	tool, ok := registry.Get("search_jobs")
	require.True(t, ok)
	out, err := tool.Handler(context.Background(), map[string]interface{}{"keywords": "backend"})
	require.NoError(t, err)
	assert.Contains(t, out, "found 1 jobs")
	assert.Contains(t, out, "Backend Engineer - Acme")
	assert.Contains(t, out, "salary: 25k | location: beijing | experience: 1-3 years")
	assert.Contains(t, out, "tags: golang, redis")
}

func TestJobToolset_CompanyToolRequiresCompany(t *testing.T) {
	registry := JobToolset(&fakeSearcher{}, dialogue.NewState(), 5)
	tool, ok := registry.Get("search_jobs_by_company")
	require.True(t, ok)

	_, err := tool.Handler(context.Background(), map[string]interface{}{})
	assert.Error(t, err)
}
