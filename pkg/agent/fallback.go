package agent

import "strings"

// cannedResponse is one entry in the ordered fallback table used when the
// model provider is unreachable. First matching entry wins, so entries
// are scanned in declaration order.
type cannedResponse struct {
	Topic    string
	Keywords []string
	Response string
}

var cannedResponses = []cannedResponse{
	{
		Topic:    "register",
		Keywords: []string{"register", "sign up", "signup", "create account", "注册"},
		Response: "Registering is simple:\n\n" +
			"1. Click the Register button in the top right corner\n" +
			"2. Choose your account type (student or company)\n" +
			"3. Fill in your basic details (name, email, phone)\n" +
			"4. Students add their school and major, companies add their company and role\n" +
			"5. Set a password and confirm\n\n" +
			"Once registered you can log in and use all platform features.",
	},
	{
		Topic:    "login",
		Keywords: []string{"login", "log in", "sign in", "password", "登录", "密码"},
		Response: "To log in:\n\n" +
			"1. Click the Login button in the top right corner\n" +
			"2. Enter the email you registered with\n" +
			"3. Enter your password\n\n" +
			"If you forgot your password, contact the platform administrator to reset it.",
	},
	{
		Topic:    "jobs",
		Keywords: []string{"job", "position", "vacancy", "recruit", "岗位", "招聘", "职位"},
		Response: "About jobs:\n\n" +
			"Students: open the Jobs page to browse all positions, filter by city or\n" +
			"keyword, and click Chat Now to talk to the recruiter.\n\n" +
			"Companies: log in, open Job Management, click Post Job, fill in the\n" +
			"title, salary, location, and description, then publish.",
	},
	{
		Topic:    "chat",
		Keywords: []string{"chat", "message", "contact hr", "recruiter", "沟通", "聊天", "联系"},
		Response: "Chatting with recruiters:\n\n" +
			"1. Browse the job list and open a position you like\n" +
			"2. Click the Chat Now button\n" +
			"3. Send your message in the chat window\n\n" +
			"A green dot means the recruiter is online. When they are offline the\n" +
			"assistant replies automatically and the recruiter is notified.",
	},
	{
		Topic:    "resources",
		Keywords: []string{"resource", "cooperation", "collaboration", "project", "资源", "合作"},
		Response: "The resource center:\n\n" +
			"Browse collaboration resources by type: project cooperation, internship\n" +
			"openings, research projects, and industry-academia partnerships.\n\n" +
			"Company accounts can publish resources from the resource center page.",
	},
	{
		Topic:    "features",
		Keywords: []string{"feature", "function", "what can", "功能"},
		Response: "Main platform features:\n\n" +
			"1. Job board: companies post positions, students apply\n" +
			"2. Live chat between students and recruiters\n" +
			"3. Automatic assistant replies when recruiters are offline\n" +
			"4. Resource center for collaboration projects\n" +
			"5. Around-the-clock assistant for platform questions\n" +
			"6. Personal center for profile and history",
	},
	{
		Topic:    "platform",
		Keywords: []string{"platform", "about", "introduction", "平台", "介绍"},
		Response: "This platform connects universities and companies:\n\n" +
			"- Helps students find quality internships and jobs\n" +
			"- Helps companies reach university talent and research resources\n" +
			"- Promotes industry-academia cooperation\n\n" +
			"Highlights: live chat, assisted replies, and an always-on assistant.",
	},
}

const genericFallback = "Hello! I'm the platform assistant.\n\n" +
	"I can help you with:\n" +
	"- Registering and logging in\n" +
	"- Browsing and posting jobs\n" +
	"- Chatting with recruiters\n" +
	"- Using the resource center\n" +
	"- Platform features\n\n" +
	"What would you like to know?"

// FallbackResponse answers from the canned table when the model is
// unavailable. Matching is case-insensitive substring, first match wins.
func FallbackResponse(message string) string {
	lower := strings.ToLower(message)
	for _, entry := range cannedResponses {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return entry.Response
			}
		}
	}
	return genericFallback
}
