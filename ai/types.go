package ai

// Clusters defines the preferred category labels for extracted skills.
// The oracle is steered toward these; anything else falls back to
// core.DefaultCluster at the boundary.
var Clusters = []string{
	"Programming Languages",
	"Frameworks & Libraries",
	"Databases",
	"Cloud & Infrastructure",
	"DevOps & Tooling",
	"Data & Machine Learning",
	"Design & UX",
	"Product & Business",
	"Leadership & Collaboration",
	"Communication",
	"Other",
}

// Priorities are the valid urgency labels for missing skills in a gap
// report, ordered from most to least urgent.
var Priorities = []string{"critical", "high", "medium"}

// DefaultPriority is applied when the oracle omits or invents a priority.
const DefaultPriority = "medium"

// GapReport is the normalized result of comparing a skill set against a
// target role.
type GapReport struct {
	// TargetRole echoes the role the analysis was run against.
	TargetRole string

	// MatchScore is the overall fit in [0,100].
	MatchScore int

	// MatchingSkills lists profile skill names relevant to the role.
	// Only names actually present on the profile appear here.
	MatchingSkills []string

	// MissingSkills lists skills the role expects but the profile lacks.
	MissingSkills []MissingSkill

	// Summary is a short free-text assessment.
	Summary string
}

// MissingSkill is one gap entry in a GapReport.
type MissingSkill struct {
	Name       string
	Cluster    string
	Priority   string // One of Priorities
	Suggestion string // How to close the gap
}

// Suggestion is one CV bullet rewrite proposed by the story writer.
type Suggestion struct {
	// SkillName is the profile skill the rewrite showcases.
	SkillName string

	// Original is the flat phrasing being improved.
	Original string

	// Rewrite is the suggested replacement bullet.
	Rewrite string

	// Rationale explains why the rewrite lands better.
	Rationale string
}
