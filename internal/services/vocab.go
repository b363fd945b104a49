package services

// Fixed skill vocabularies. Membership in a profile's skill lists is
// decided by lookup against these, never inferred; the canonical casing
// here is what ends up in the profile.

var technicalVocabulary = []string{
	"Python",
	"JavaScript",
	"TypeScript",
	"Java",
	"Golang",
	"C++",
	"C#",
	"Ruby",
	"PHP",
	"Swift",
	"Kotlin",
	"Rust",
	"SQL",
	"NoSQL",
	"HTML",
	"CSS",
	"React",
	"Angular",
	"Vue.js",
	"Node.js",
	"Express",
	"Django",
	"Flask",
	"Spring Boot",
	".NET",
	"GraphQL",
	"REST API",
	"Microservices",
	"Machine Learning",
	"Deep Learning",
	"TensorFlow",
	"PyTorch",
	"NLP",
	"Computer Vision",
	"Data Science",
	"Data Analysis",
	"AWS",
	"Azure",
	"Google Cloud",
	"Docker",
	"Kubernetes",
	"Terraform",
	"CI/CD",
	"Linux",
}

var softVocabulary = []string{
	"Leadership",
	"Communication",
	"Teamwork",
	"Problem Solving",
	"Project Management",
	"Agile",
	"Scrum",
	"Mentoring",
	"Collaboration",
	"Time Management",
	"Critical Thinking",
	"Adaptability",
	"Stakeholder Management",
}

var toolsVocabulary = []string{
	"Git",
	"GitHub",
	"GitLab",
	"Jira",
	"Confluence",
	"Jenkins",
	"VS Code",
	"IntelliJ",
	"Figma",
	"Postman",
	"Tableau",
	"Power BI",
	"Excel",
	"Slack",
	"Grafana",
	"Prometheus",
	"Elasticsearch",
}
