package dialogue

import (
	"fmt"
	"strings"
	"time"
)

// Stage is the derived phase of the conversation. It is never stored,
// only computed from the current slot state.
type Stage string

const (
	StageGreeting         Stage = "greeting"
	StageCollectingBasic  Stage = "collecting_basic"
	StageCollectingDetail Stage = "collecting_detail"
	StageRecommendation   Stage = "recommendation"
	StageQA               Stage = "qa"
)

// State holds everything the tracker knows about one user's session.
// Profile slots fill once and stay until an explicit clear; only the
// intent is re-evaluated on every message.
type State struct {
	Intent            string    `json:"user_intent,omitempty"`
	JobType           string    `json:"job_type,omitempty"`
	Location          string    `json:"location,omitempty"`
	Experience        string    `json:"experience,omitempty"`
	Major             string    `json:"major,omitempty"`
	SalaryExpectation string    `json:"salary_expectation,omitempty"`
	Skills            []string  `json:"skills"`
	CollectedInfo     []string  `json:"collected_info"`
	LastTopic         string    `json:"last_topic,omitempty"`
	TurnCount         int       `json:"turn_count"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func NewState() *State {
	now := time.Now()
	return &State{
		Skills:        []string{},
		CollectedInfo: []string{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (s *State) HasSkill(skill string) bool {
	for _, existing := range s.Skills {
		if existing == skill {
			return true
		}
	}
	return false
}

// Extract folds one user message into the state. The intent is always
// re-evaluated; filled profile slots are never overwritten; the turn
// counter advances whether or not anything matched.
func Extract(message string, state *State) *State {
	next := *state
	next.Skills = append([]string(nil), state.Skills...)
	next.CollectedInfo = append([]string(nil), state.CollectedInfo...)

	lower := strings.ToLower(message)
	var newlyFilled []string

	if value, ok := matchSlot(lower, intentDef); ok {
		intentDef.Set(&next, value)
	}

	for _, def := range profileSlots {
		if def.Get(&next) != "" {
			continue
		}
		if value, ok := matchSlot(lower, def); ok {
			def.Set(&next, value)
			newlyFilled = append(newlyFilled, fmt.Sprintf("%s: %s", def.Description, value))
		}
	}

	if added := extractSkills(lower, &next); len(added) > 0 {
		newlyFilled = append(newlyFilled, "skills: "+strings.Join(added, ", "))
	}

	for _, info := range newlyFilled {
		if !containsString(next.CollectedInfo, info) {
			next.CollectedInfo = append(next.CollectedInfo, info)
		}
	}

	next.TurnCount = state.TurnCount + 1
	next.UpdatedAt = time.Now()
	return &next
}

func matchSlot(lower string, def SlotDef) (string, bool) {
	for _, sv := range def.Values {
		for _, kw := range sv.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return sv.Value, true
			}
		}
	}
	return "", false
}

func extractSkills(lower string, state *State) []string {
	hasIndicator := false
	for _, ind := range skillIndicators {
		if strings.Contains(lower, strings.ToLower(ind)) {
			hasIndicator = true
			break
		}
	}

	var added []string
	for _, entry := range skillVocabulary {
		if state.HasSkill(entry.Skill) {
			continue
		}
		for _, kw := range entry.Keywords {
			if !strings.Contains(lower, strings.ToLower(kw)) {
				continue
			}
			// Short triggers are too ambiguous without an explicit
			// "skilled in"-style phrase around them.
			if hasIndicator || len([]rune(kw)) >= 3 {
				state.Skills = append(state.Skills, entry.Skill)
				added = append(added, entry.Skill)
				break
			}
		}
	}
	return added
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// FillRate is filled profile slots over the total profile slot count.
// The intent is tracked but not counted: it gates the stage machine and
// would otherwise push a profile with zero facts into the detail band.
func (s *State) FillRate() float64 {
	filled := 0
	for _, def := range profileSlots {
		if def.Get(s) != "" {
			filled++
		}
	}
	return float64(filled) / float64(len(profileSlots))
}

// DeriveStage maps the state onto the conversation phase.
func (s *State) DeriveStage() Stage {
	if s.TurnCount <= 1 {
		return StageGreeting
	}
	if s.Intent == IntentJobSearch {
		switch rate := s.FillRate(); {
		case rate < 0.3:
			return StageCollectingBasic
		case rate < 0.6:
			return StageCollectingDetail
		default:
			return StageRecommendation
		}
	}
	return StageQA
}

// Summary renders the state for the model prompt in a fixed order so
// identical states always produce identical text.
func (s *State) Summary() string {
	var parts []string

	if s.Intent != "" {
		parts = append(parts, "intent: "+s.Intent)
	}
	if len(s.Skills) > 0 {
		parts = append(parts, "skills: "+strings.Join(s.Skills, ", "))
	}

	var profile []string
	for _, def := range profileSlots {
		if value := def.Get(s); value != "" {
			profile = append(profile, fmt.Sprintf("%s: %s", def.Description, value))
		}
	}
	if len(profile) > 0 {
		parts = append(parts, "known user profile:\n- "+strings.Join(profile, "\n- "))
	}

	if s.Intent == IntentJobSearch {
		var missing []string
		if s.JobType == "" {
			missing = append(missing, "target role")
		}
		if s.Location == "" {
			missing = append(missing, "preferred location")
		}
		if s.Experience == "" {
			missing = append(missing, "experience")
		}
		if len(missing) > 0 {
			parts = append(parts, "still to collect: "+strings.Join(missing, ", "))
		}
	}

	if s.TurnCount > 0 {
		parts = append(parts, fmt.Sprintf("turn %d of the conversation", s.TurnCount))
	}

	return strings.Join(parts, "\n")
}

// FollowUpQuestion picks the next profile question by priority, or ""
// when nothing useful is missing.
func (s *State) FollowUpQuestion() string {
	if s.Intent != IntentJobSearch {
		return ""
	}
	if s.JobType == "" {
		return "What type of role are you looking for? For example frontend, backend, algorithms, or product?"
	}
	if s.Location == "" {
		return "Which city would you prefer to work in?"
	}
	if s.Experience == "" {
		return "How much work experience do you have? Are you a recent graduate?"
	}
	return ""
}
