package knowledge

import (
	"context"

	"talentbridge-ai/internal/pkg/logger"
)

// SeedPair is one preset Q&A shipped with the platform.
type SeedPair struct {
	Question string
	Answer   string
	Category string
	Keywords []string
}

var presetPairs = []SeedPair{
	{
		Question: "How do I register an account?",
		Answer: "Click the Register button in the top right corner, choose your " +
			"account type (student or company), fill in your details, and set a " +
			"password. Students add their school and major, companies add their " +
			"company name and role.",
		Category: "account",
		Keywords: []string{"register", "sign up", "account"},
	},
	{
		Question: "How do I log in?",
		Answer: "Click Login in the top right corner and enter the email and " +
			"password you registered with. Contact the platform administrator if " +
			"you need a password reset.",
		Category: "account",
		Keywords: []string{"login", "password"},
	},
	{
		Question: "How do I browse and apply for jobs?",
		Answer: "Open the Jobs page to see all open positions. Filter by city or " +
			"keyword, open a position, and click Chat Now to talk to the recruiter " +
			"directly.",
		Category: "jobs",
		Keywords: []string{"jobs", "browse", "apply"},
	},
	{
		Question: "How do companies post a job?",
		Answer: "Log in with a company account, open Job Management, click Post " +
			"Job, fill in the title, salary, location, and description, then " +
			"publish.",
		Category: "jobs",
		Keywords: []string{"post job", "recruiting"},
	},
	{
		Question: "How do I contact a recruiter?",
		Answer: "Open the job you are interested in and click the Chat Now button. " +
			"A green dot means the recruiter is online. When they are offline the " +
			"assistant replies automatically and the recruiter is notified of your " +
			"message.",
		Category: "chat",
		Keywords: []string{"chat", "recruiter", "contact"},
	},
	{
		Question: "What is the resource center?",
		Answer: "The resource center lists industry-academia collaboration " +
			"resources: project cooperation, internship openings, research " +
			"projects, and partnerships. Company accounts can publish new " +
			"resources there.",
		Category: "resources",
		Keywords: []string{"resources", "cooperation"},
	},
	{
		Question: "What can this platform do?",
		Answer: "The platform connects universities and companies: a job board, " +
			"live chat with recruiters, automatic assistant replies, a resource " +
			"center for collaboration projects, and an always-on assistant for " +
			"platform questions.",
		Category: "platform",
		Keywords: []string{"features", "platform"},
	},
}

// SeedPresets indexes the built-in Q&A pairs through the normal Index
// path, so re-running it updates answers in place instead of
// duplicating rows. Returns how many pairs were stored.
func SeedPresets(ctx context.Context, s *Store, lg logger.ILogger) int {
	if lg == nil {
		lg = logger.NewNopLogger()
	}
	stored := 0
	for _, pair := range presetPairs {
		ok := s.Index(ctx, pair.Question, pair.Answer, Meta{
			Category: pair.Category,
			Keywords: pair.Keywords,
			IsPreset: true,
		})
		if ok {
			stored++
		} else {
			lg.Warn("knowledge", "preset pair not stored", map[string]interface{}{
				"question": pair.Question,
			})
		}
	}
	lg.Info("knowledge", "preset knowledge seeded", map[string]interface{}{
		"stored": stored,
		"total":  len(presetPairs),
	})
	return stored
}
