package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_FirstMessageFillsProfile(t *testing.T) {
	state := Extract("I'm skilled in Python and machine learning, looking for an algorithm role", NewState())

	assert.Equal(t, IntentJobSearch, state.Intent)
	assert.Equal(t, "algorithm engineer", state.JobType)
	assert.ElementsMatch(t, []string{"python", "machine learning"}, state.Skills)
	assert.Equal(t, 1, state.TurnCount)
}

func TestExtract_FilledSlotsAreNeverOverwritten(t *testing.T) {
	state := Extract("looking for a backend role in Beijing", NewState())
	require.Equal(t, "backend developer", state.JobType)
	require.Equal(t, "beijing", state.Location)

	state = Extract("actually maybe a frontend role in Shanghai", state)
	assert.Equal(t, "backend developer", state.JobType)
	assert.Equal(t, "beijing", state.Location)
	assert.Equal(t, 2, state.TurnCount)
}

func TestExtract_IntentIsReevaluatedEachTurn(t *testing.T) {
	state := Extract("looking for a job", NewState())
	require.Equal(t, IntentJobSearch, state.Intent)

	state = Extract("how do I reset my password", state)
	assert.Equal(t, IntentQuestion, state.Intent)

	// A message with no intent trigger keeps the previous intent.
	state = Extract("thanks", state)
	assert.Equal(t, IntentQuestion, state.Intent)
}

func TestExtract_SkillsAccumulateWithoutDuplicates(t *testing.T) {
	state := Extract("I'm skilled in python", NewState())
	require.Equal(t, []string{"python"}, state.Skills)

	state = Extract("also experienced with docker and python", state)
	assert.ElementsMatch(t, []string{"python", "docker"}, state.Skills)
}

func TestExtract_ShortSkillTriggerNeedsIndicator(t *testing.T) {
	// "ml" alone is too ambiguous without a skill phrase around it.
	state := Extract("ml", NewState())
	assert.Empty(t, state.Skills)

	state = Extract("I am skilled in ml", NewState())
	assert.Equal(t, []string{"machine learning"}, state.Skills)
}

func TestExtract_TurnCountAdvancesOnEveryMessage(t *testing.T) {
	state := NewState()
	for i := 0; i < 3; i++ {
		state = Extract("hello there", state)
	}
	assert.Equal(t, 3, state.TurnCount)
}

func TestFillRate_MonotonicallyNonDecreasing(t *testing.T) {
	messages := []string{
		"hi",
		"looking for a backend role",
		"I prefer Shenzhen",
		"actually make that Beijing",
		"I'm a recent graduate",
	}

	state := NewState()
	prev := 0.0
	for _, msg := range messages {
		state = Extract(msg, state)
		rate := state.FillRate()
		assert.GreaterOrEqual(t, rate, prev, "fill rate dropped after %q", msg)
		prev = rate
	}
	// job_type, location, experience filled out of five profile slots.
	assert.InDelta(t, 0.6, state.FillRate(), 1e-9)
}

func TestDeriveStage(t *testing.T) {
	tests := []struct {
		name     string
		state    *State
		expected Stage
	}{
		{
			name:     "first turn greets regardless of intent",
			state:    &State{Intent: IntentJobSearch, TurnCount: 1},
			expected: StageGreeting,
		},
		{
			name:     "job search with empty profile collects basics",
			state:    &State{Intent: IntentJobSearch, TurnCount: 2},
			expected: StageCollectingBasic,
		},
		{
			name:     "two slots filled moves to detail",
			state:    &State{Intent: IntentJobSearch, TurnCount: 3, JobType: "backend developer", Location: "beijing"},
			expected: StageCollectingDetail,
		},
		{
			name:     "three slots filled unlocks recommendation",
			state:    &State{Intent: IntentJobSearch, TurnCount: 4, JobType: "backend developer", Location: "beijing", Experience: "entry level"},
			expected: StageRecommendation,
		},
		{
			name:     "non-search intent answers questions",
			state:    &State{Intent: IntentQuestion, TurnCount: 5},
			expected: StageQA,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.state.DeriveStage())
		})
	}
}

func TestSummary_DeterministicOrdering(t *testing.T) {
	state := &State{
		Intent:    IntentJobSearch,
		JobType:   "algorithm engineer",
		Skills:    []string{"python", "machine learning"},
		TurnCount: 2,
	}

	expected := "intent: job_search\n" +
		"skills: python, machine learning\n" +
		"known user profile:\n- target role: algorithm engineer\n" +
		"still to collect: preferred location, experience\n" +
		"turn 2 of the conversation"
	assert.Equal(t, expected, state.Summary())
}

func TestFollowUpQuestion_PriorityLadder(t *testing.T) {
	state := &State{Intent: IntentJobSearch}
	assert.Contains(t, state.FollowUpQuestion(), "type of role")

	state.JobType = "backend developer"
	assert.Contains(t, state.FollowUpQuestion(), "city")

	state.Location = "beijing"
	assert.Contains(t, state.FollowUpQuestion(), "experience")

	state.Experience = "entry level"
	assert.Empty(t, state.FollowUpQuestion())

	assert.Empty(t, (&State{Intent: IntentQuestion}).FollowUpQuestion())
}
