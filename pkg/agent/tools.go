package agent

import (
	"context"
	"fmt"
	"strings"

	"talentbridge-ai/pkg/dialogue"
	"talentbridge-ai/pkg/llm"
)

// JobRecord is one opaque search result supplied by the host platform.
type JobRecord struct {
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	Salary     string   `json:"salary"`
	Location   string   `json:"location"`
	Experience string   `json:"experience"`
	Tags       []string `json:"tags"`
}

// JobSearcher is the host-owned search surface the tools call into.
type JobSearcher interface {
	SearchJobs(ctx context.Context, keywords string, skills []string, location, experience string, limit int) ([]JobRecord, error)
	SearchByCompany(ctx context.Context, company string, limit int) ([]JobRecord, error)
	Recommend(ctx context.Context, jobType, location, experience string, skills []string, limit int) ([]JobRecord, error)
}

// Tool is one model-invocable function.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
	Handler     func(ctx context.Context, args map[string]interface{}) (string, error)
}

// Registry holds tools in registration order so specs are sent to the
// model deterministically.
type Registry struct {
	tools []Tool
}

func NewRegistry(tools ...Tool) *Registry {
	return &Registry{tools: tools}
}

func (r *Registry) Register(t Tool) {
	r.tools = append(r.tools, t)
}

func (r *Registry) Get(name string) (Tool, bool) {
	for _, t := range r.tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

func (r *Registry) Specs() []llm.ToolSpec {
	specs := make([]llm.ToolSpec, 0, len(r.tools))
	for _, t := range r.tools {
		specs = append(specs, llm.ToolSpec{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.Parameters,
		})
	}
	return specs
}

const defaultJobLimit = 5

// JobToolset builds the three job tools bound to the current slot state.
// Arguments the model omits are backfilled from what the tracker already
// knows about the user.
func JobToolset(searcher JobSearcher, state *dialogue.State, limit int) *Registry {
	if limit <= 0 {
		limit = defaultJobLimit
	}

	return NewRegistry(
		Tool{
			Name:        "search_jobs",
			Description: "Search open jobs by keywords, skills, location, and experience level.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"keywords":   map[string]interface{}{"type": "string", "description": "free-text keywords matched against title and description"},
					"skills":     map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}, "description": "skill names to match"},
					"location":   map[string]interface{}{"type": "string", "description": "preferred city"},
					"experience": map[string]interface{}{"type": "string", "description": "experience level"},
				},
			},
			Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
				keywords := stringArg(args, "keywords")
				skills := stringSliceArg(args, "skills")
				if len(skills) == 0 {
					skills = state.Skills
				}
				location := stringArg(args, "location")
				if location == "" {
					location = state.Location
				}
				experience := stringArg(args, "experience")
				if experience == "" {
					experience = state.Experience
				}

				jobs, err := searcher.SearchJobs(ctx, keywords, skills, location, experience, limit)
				if err != nil {
					return "", fmt.Errorf("search jobs: %w", err)
				}
				if len(jobs) == 0 {
					label := keywords
					if label == "" {
						label = strings.Join(skills, ", ")
					}
					return fmt.Sprintf("no jobs found for %q", label), nil
				}
				return formatJobs(jobs), nil
			},
		},
		Tool{
			Name:        "search_jobs_by_company",
			Description: "List open jobs at a specific company.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"company": map[string]interface{}{"type": "string", "description": "company name"},
				},
				"required": []string{"company"},
			},
			Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
				company := stringArg(args, "company")
				if company == "" {
					return "", fmt.Errorf("missing required argument %q", "company")
				}
				jobs, err := searcher.SearchByCompany(ctx, company, limit)
				if err != nil {
					return "", fmt.Errorf("search jobs by company: %w", err)
				}
				if len(jobs) == 0 {
					return fmt.Sprintf("no jobs found for company %q", company), nil
				}
				return fmt.Sprintf("%d jobs at %s:\n\n%s", len(jobs), company, formatJobs(jobs)), nil
			},
		},
		Tool{
			Name:        "recommend_jobs",
			Description: "Recommend jobs matching the user's profile of role, location, experience, and skills.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"job_type":   map[string]interface{}{"type": "string", "description": "target role"},
					"location":   map[string]interface{}{"type": "string", "description": "preferred city"},
					"experience": map[string]interface{}{"type": "string", "description": "experience level"},
					"skills":     map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}, "description": "skill names"},
				},
			},
			Handler: func(ctx context.Context, args map[string]interface{}) (string, error) {
				jobType := stringArg(args, "job_type")
				if jobType == "" {
					jobType = state.JobType
				}
				location := stringArg(args, "location")
				if location == "" {
					location = state.Location
				}
				experience := stringArg(args, "experience")
				if experience == "" {
					experience = state.Experience
				}
				skills := stringSliceArg(args, "skills")
				if len(skills) == 0 {
					skills = state.Skills
				}

				jobs, err := searcher.Recommend(ctx, jobType, location, experience, skills, limit)
				if err != nil {
					return "", fmt.Errorf("recommend jobs: %w", err)
				}
				if len(jobs) == 0 {
					label := jobType
					if label == "" {
						label = "your profile"
					}
					return fmt.Sprintf("no jobs found matching %s", label), nil
				}
				return formatJobs(jobs), nil
			},
		},
	)
}

func formatJobs(jobs []JobRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "found %d jobs:\n", len(jobs))
	for i, job := range jobs {
		fmt.Fprintf(&b, "\n%d. %s - %s\n", i+1, job.Title, job.Company)
		fmt.Fprintf(&b, "   salary: %s | location: %s | experience: %s\n",
			orUnspecified(job.Salary), orUnspecified(job.Location), orUnspecified(job.Experience))
		if len(job.Tags) > 0 {
			fmt.Fprintf(&b, "   tags: %s\n", strings.Join(job.Tags, ", "))
		}
	}
	return b.String()
}

func orUnspecified(s string) string {
	if s == "" {
		return "unspecified"
	}
	return s
}

func stringArg(args map[string]interface{}, key string) string {
	if v, ok := args[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func stringSliceArg(args map[string]interface{}, key string) []string {
	raw, ok := args[key].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
