// Package extraction implements the keyword-based skill extraction stub. It is
// a case-insensitive substring matcher against a fixed vocabulary; there is no
// model inference behind it.
package extraction

// Category groups vocabulary entries for downstream gap records.
type Category string

// Skill categories.
const (
	CategoryProgramming Category = "programming"
	CategoryWeb         Category = "web_development"
	CategoryDatabases   Category = "databases"
	CategoryCloud       Category = "cloud_platforms"
	CategoryDevOps      Category = "devops_tools"
	CategoryDataScience Category = "data_science"
	CategoryTools       Category = "tools"
	CategorySoftSkills  Category = "soft_skills"
)

// VocabularyEntry is one known skill keyword.
type VocabularyEntry struct {
	Name     string
	Category Category
}

// Vocabulary is the fixed skill keyword list, in match-priority order. Matches
// are reported in this order regardless of where they occur in the input.
var Vocabulary = []VocabularyEntry{
	{"Python", CategoryProgramming},
	{"JavaScript", CategoryProgramming},
	{"TypeScript", CategoryProgramming},
	{"Java", CategoryProgramming},
	{"Go", CategoryProgramming},
	{"Rust", CategoryProgramming},
	{"C++", CategoryProgramming},
	{"C#", CategoryProgramming},
	{"Ruby", CategoryProgramming},
	{"Kotlin", CategoryProgramming},
	{"Swift", CategoryProgramming},
	{"SQL", CategoryDatabases},
	{"HTML", CategoryWeb},
	{"CSS", CategoryWeb},
	{"React", CategoryWeb},
	{"Angular", CategoryWeb},
	{"Vue.js", CategoryWeb},
	{"Node.js", CategoryWeb},
	{"Next.js", CategoryWeb},
	{"Django", CategoryWeb},
	{"Flask", CategoryWeb},
	{"Spring Boot", CategoryWeb},
	{"PostgreSQL", CategoryDatabases},
	{"MySQL", CategoryDatabases},
	{"MongoDB", CategoryDatabases},
	{"Redis", CategoryDatabases},
	{"Elasticsearch", CategoryDatabases},
	{"AWS", CategoryCloud},
	{"Azure", CategoryCloud},
	{"Google Cloud", CategoryCloud},
	{"Docker", CategoryDevOps},
	{"Kubernetes", CategoryDevOps},
	{"Terraform", CategoryDevOps},
	{"Jenkins", CategoryDevOps},
	{"GitHub Actions", CategoryDevOps},
	{"CI/CD", CategoryDevOps},
	{"Machine Learning", CategoryDataScience},
	{"Deep Learning", CategoryDataScience},
	{"Data Analysis", CategoryDataScience},
	{"Statistics", CategoryDataScience},
	{"Pandas", CategoryDataScience},
	{"NumPy", CategoryDataScience},
	{"TensorFlow", CategoryDataScience},
	{"PyTorch", CategoryDataScience},
	{"Scikit-learn", CategoryDataScience},
	{"Git", CategoryTools},
	{"Linux", CategoryTools},
	{"REST API", CategoryTools},
	{"GraphQL", CategoryTools},
	{"Microservices", CategoryTools},
	{"System Design", CategoryTools},
	{"Agile", CategorySoftSkills},
	{"Scrum", CategorySoftSkills},
	{"Leadership", CategorySoftSkills},
	{"Communication", CategorySoftSkills},
	{"Problem Solving", CategorySoftSkills},
	{"Project Management", CategorySoftSkills},
	{"Mentoring", CategorySoftSkills},
}

// CategoryOf returns the category for a vocabulary skill name, or the empty
// string if the skill is not in the vocabulary.
func CategoryOf(skill string) Category {
	for _, entry := range Vocabulary {
		if entry.Name == skill {
			return entry.Category
		}
	}
	return ""
}
