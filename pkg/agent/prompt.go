package agent

import (
	"strings"

	"talentbridge-ai/pkg/dialogue"
)

const platformDescription = `You are the assistant of an industry-academia talent platform that connects
university students, researchers, and companies. Students browse jobs and
chat with recruiters; companies post positions and collaboration resources.

Your duties:
1. Answer questions about the platform accurately and concisely.
2. Help students describe what they are looking for and recommend jobs.
3. Prefer knowledge-base references over your own guesses when they are
   relevant, and keep answers consistent with them.
4. Never invent job listings. When a search tool reports that no jobs were
   found, say so plainly.`

var stageGuidance = map[dialogue.Stage]string{
	dialogue.StageGreeting:         "This is the start of the conversation. Greet the user briefly and ask what they need.",
	dialogue.StageCollectingBasic:  "The user wants job help but their profile is mostly empty. Ask for the basics: target role and preferred city.",
	dialogue.StageCollectingDetail: "Some profile facts are known. Fill in what is still missing before recommending, one question at a time.",
	dialogue.StageRecommendation:   "Enough of the profile is known. Use the job tools to search or recommend concrete positions.",
	dialogue.StageQA:               "Answer the user's question directly, using the knowledge references when relevant.",
}

// BuildSystemPrompt assembles the system message for one turn: platform
// role, retrieved knowledge, slot summary, and stage guidance, in that
// order.
func BuildSystemPrompt(ragContext, slotSummary string, stage dialogue.Stage) string {
	var b strings.Builder
	b.WriteString(platformDescription)

	if ragContext != "" {
		b.WriteString("\n\n## Knowledge base references\n")
		b.WriteString(ragContext)
		b.WriteString("\nWhen a reference closely matches the question, reuse or lightly adapt its answer.")
	} else {
		b.WriteString("\n\nNo knowledge base references matched this question. Answer from the conversation and platform facts only, and say so when you are unsure.")
	}

	if slotSummary != "" {
		b.WriteString("\n\n## What is known about the user\n")
		b.WriteString(slotSummary)
	}

	if guidance, ok := stageGuidance[stage]; ok {
		b.WriteString("\n\n## Conversation stage\n")
		b.WriteString(guidance)
	}

	return b.String()
}
