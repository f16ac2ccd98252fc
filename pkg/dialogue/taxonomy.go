package dialogue

// SlotValue pairs a canonical slot value with the phrases that trigger it.
// Matching is first-match in declaration order, so more specific values
// must be listed before broader ones.
type SlotValue struct {
	Value    string
	Keywords []string
}

// SlotDef describes one categorical slot. Get and Set bind the definition
// to its State field so extraction can walk the table generically.
type SlotDef struct {
	Name        string
	Description string
	Values      []SlotValue
	Get         func(*State) string
	Set         func(*State, string)
}

const (
	IntentJobSearch    = "job_search"
	IntentPlatformInfo = "platform_info"
	IntentQuestion     = "question"
	IntentPostJob      = "post_job"
	IntentPostResource = "post_resource"
)

// intentDef is re-evaluated on every message, unlike the profile slots
// below which fill once and stay.
var intentDef = SlotDef{
	Name:        "user_intent",
	Description: "intent",
	Values: []SlotValue{
		{Value: IntentJobSearch, Keywords: []string{"find a job", "job search", "looking for", "job hunting", "internship", "hiring", "employment", "recommend jobs", "job opportunities", "找工作", "求职", "推荐岗位", "招聘", "实习", "工作机会", "就业", "帮我找"}},
		{Value: IntentPlatformInfo, Keywords: []string{"platform", "features", "how to use", "what is this", "introduction", "平台", "功能", "怎么用", "介绍", "是什么"}},
		{Value: IntentQuestion, Keywords: []string{"how do", "how can", "why", "question", "help", "怎么", "如何", "为什么", "问题", "帮助"}},
		{Value: IntentPostJob, Keywords: []string{"post a job", "post job", "recruiting", "发布岗位", "招人", "招聘信息"}},
		{Value: IntentPostResource, Keywords: []string{"post a resource", "partnership", "collaboration project", "发布资源", "合作", "项目"}},
	},
	Get: func(s *State) string { return s.Intent },
	Set: func(s *State, v string) { s.Intent = v },
}

// profileSlots are the categorical slots that describe the user, in a
// fixed scan order. Single programming-language names are deliberately
// absent from the role triggers: "python" alone says skill, not role.
var profileSlots = []SlotDef{
	{
		Name:        "job_type",
		Description: "target role",
		Values: []SlotValue{
			{Value: "algorithm engineer", Keywords: []string{"algorithm", "machine learning", "deep learning", "artificial intelligence", "算法", "机器学习", "深度学习", "人工智能"}},
			{Value: "frontend developer", Keywords: []string{"frontend", "front-end", "vue", "react", "前端", "web前端"}},
			{Value: "backend developer", Keywords: []string{"backend", "back-end", "server-side", "后端", "服务端", "服务器"}},
			{Value: "data analyst", Keywords: []string{"data analysis", "data analyst", "tableau", "数据分析", "数据"}},
			{Value: "product manager", Keywords: []string{"product manager", "product role", "产品", "产品经理", "需求"}},
			{Value: "qa engineer", Keywords: []string{"qa", "testing", "quality assurance", "测试", "质量"}},
			{Value: "embedded engineer", Keywords: []string{"embedded", "hardware", "microcontroller", "嵌入式", "硬件", "单片机"}},
			{Value: "ui designer", Keywords: []string{"designer", "ui design", "ux", "visual design", "设计", "美工", "视觉"}},
		},
		Get: func(s *State) string { return s.JobType },
		Set: func(s *State, v string) { s.JobType = v },
	},
	{
		Name:        "location",
		Description: "preferred location",
		Values: []SlotValue{
			{Value: "beijing", Keywords: []string{"beijing", "北京", "帝都"}},
			{Value: "shanghai", Keywords: []string{"shanghai", "上海", "魔都"}},
			{Value: "shenzhen", Keywords: []string{"shenzhen", "深圳"}},
			{Value: "hangzhou", Keywords: []string{"hangzhou", "杭州"}},
			{Value: "guangzhou", Keywords: []string{"guangzhou", "广州"}},
			{Value: "chengdu", Keywords: []string{"chengdu", "成都"}},
			{Value: "wuhan", Keywords: []string{"wuhan", "武汉"}},
			{Value: "nanjing", Keywords: []string{"nanjing", "南京"}},
		},
		Get: func(s *State) string { return s.Location },
		Set: func(s *State, v string) { s.Location = v },
	},
	{
		Name:        "experience",
		Description: "experience",
		Values: []SlotValue{
			{Value: "entry level", Keywords: []string{"new grad", "recent graduate", "fresh graduate", "entry level", "student", "应届", "毕业生", "在校", "学生", "大四", "研三"}},
			{Value: "1-3 years", Keywords: []string{"1 year", "2 years", "3 years", "one year", "two years", "three years", "1年", "2年", "3年", "一年", "两年", "三年"}},
			{Value: "3-5 years", Keywords: []string{"4 years", "5 years", "four years", "five years", "4年", "5年", "四年", "五年"}},
			{Value: "5+ years", Keywords: []string{"over 5 years", "more than 5 years", "senior", "5年以上", "资深", "高级"}},
		},
		Get: func(s *State) string { return s.Experience },
		Set: func(s *State, v string) { s.Experience = v },
	},
	{
		Name:        "major",
		Description: "major",
		Values: []SlotValue{
			{Value: "computer science", Keywords: []string{"computer science", "comp sci", "计算机", "计科"}},
			{Value: "software engineering", Keywords: []string{"software engineering", "软件", "软工"}},
			{Value: "electronics", Keywords: []string{"electronic", "electrical", "电子", "电信", "电气"}},
			{Value: "communications", Keywords: []string{"communications major", "telecom", "通信", "通讯"}},
			{Value: "mathematics", Keywords: []string{"mathematics", "math major", "statistics", "数学", "统计", "应数"}},
			{Value: "physics", Keywords: []string{"physics", "物理"}},
			{Value: "finance", Keywords: []string{"finance", "economics", "金融", "经济", "财务"}},
			{Value: "management", Keywords: []string{"management major", "business admin", "mba", "管理", "工商"}},
		},
		Get: func(s *State) string { return s.Major },
		Set: func(s *State, v string) { s.Major = v },
	},
	{
		Name:        "salary_expectation",
		Description: "salary expectation",
		Values: []SlotValue{
			{Value: "under 10k", Keywords: []string{"under 10k", "below 10k", "8k", "9k", "10k以下", "1万以下"}},
			{Value: "10-15k", Keywords: []string{"10k", "12k", "15k", "1万", "1.2万", "1.5万"}},
			{Value: "15-20k", Keywords: []string{"18k", "20k", "1.8万", "2万"}},
			{Value: "20-30k", Keywords: []string{"25k", "30k", "2.5万", "3万"}},
			{Value: "30k+", Keywords: []string{"over 30k", "above 30k", "30k以上", "3万以上", "高薪"}},
		},
		Get: func(s *State) string { return s.SalaryExpectation },
		Set: func(s *State, v string) { s.SalaryExpectation = v },
	},
}

// skillVocabulary maps canonical skill names to their trigger phrases.
// Short triggers (under three characters) only count when the message
// carries an explicit skill indicator.
type skillEntry struct {
	Skill    string
	Keywords []string
}

var skillVocabulary = []skillEntry{
	{Skill: "ai", Keywords: []string{"artificial intelligence", "人工智能", "ai"}},
	{Skill: "machine learning", Keywords: []string{"machine learning", "机器学习", "ml"}},
	{Skill: "deep learning", Keywords: []string{"deep learning", "深度学习", "dl"}},
	{Skill: "nlp", Keywords: []string{"nlp", "natural language processing", "自然语言处理", "自然语言"}},
	{Skill: "computer vision", Keywords: []string{"computer vision", "计算机视觉", "图像识别"}},
	{Skill: "pytorch", Keywords: []string{"pytorch", "torch"}},
	{Skill: "tensorflow", Keywords: []string{"tensorflow"}},
	{Skill: "python", Keywords: []string{"python"}},
	{Skill: "java", Keywords: []string{"java"}},
	{Skill: "javascript", Keywords: []string{"javascript", "es6"}},
	{Skill: "typescript", Keywords: []string{"typescript"}},
	{Skill: "golang", Keywords: []string{"golang", "go语言"}},
	{Skill: "c++", Keywords: []string{"c++", "cpp"}},
	{Skill: "rust", Keywords: []string{"rust"}},
	{Skill: "react", Keywords: []string{"react", "reactjs"}},
	{Skill: "vue", Keywords: []string{"vue", "vuejs", "vue.js"}},
	{Skill: "angular", Keywords: []string{"angular"}},
	{Skill: "frontend", Keywords: []string{"frontend", "前端", "web前端"}},
	{Skill: "backend", Keywords: []string{"backend", "后端", "服务端"}},
	{Skill: "spring", Keywords: []string{"spring", "springboot"}},
	{Skill: "django", Keywords: []string{"django"}},
	{Skill: "fastapi", Keywords: []string{"fastapi"}},
	{Skill: "nodejs", Keywords: []string{"nodejs", "node.js"}},
	{Skill: "mysql", Keywords: []string{"mysql"}},
	{Skill: "postgresql", Keywords: []string{"postgresql", "postgres"}},
	{Skill: "mongodb", Keywords: []string{"mongodb", "mongo"}},
	{Skill: "redis", Keywords: []string{"redis"}},
	{Skill: "docker", Keywords: []string{"docker", "容器"}},
	{Skill: "kubernetes", Keywords: []string{"kubernetes", "k8s"}},
	{Skill: "aws", Keywords: []string{"aws", "亚马逊云"}},
	{Skill: "linux", Keywords: []string{"linux"}},
	{Skill: "data analysis", Keywords: []string{"data analysis", "数据分析"}},
	{Skill: "sql", Keywords: []string{"sql"}},
	{Skill: "tableau", Keywords: []string{"tableau"}},
	{Skill: "pandas", Keywords: []string{"pandas"}},
}

// skillIndicators are phrases that mark a message as describing the
// user's own abilities.
var skillIndicators = []string{
	"skilled", "proficient", "familiar with", "experienced", "good at",
	"worked with", "i know", "i can", "i use",
	"精通", "擅长", "熟悉", "掌握", "会", "懂", "做过", "经验",
}
