package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veyra/skillmap/core"
)

func candidate(name string, conf float64, source string) core.Candidate {
	return core.Candidate{
		Name:       name,
		Kind:       core.KindExplicit,
		Confidence: conf,
		Cluster:    "Programming Languages",
		Unlock:     core.UnlockUnlocked,
		Source:     source,
	}
}

func TestMerge_Empty(t *testing.T) {
	skills := Merge(nil)
	require.NotNil(t, skills)
	assert.Empty(t, skills)

	skills = Merge([]core.Candidate{})
	assert.Empty(t, skills)
}

func TestMerge_SingleCandidatePassthrough(t *testing.T) {
	c := candidate("Python", 0.8, "Text")
	c.Evidence = []string{"wrote data pipelines"}
	c.Narrative = "Backbone of the ETL work."

	skills := Merge([]core.Candidate{c})
	require.Len(t, skills, 1)

	got := skills[0]
	assert.Equal(t, "Python", got.Name)
	assert.Equal(t, core.KindExplicit, got.Kind)
	assert.InDelta(t, 0.8, got.Confidence, 1e-9)
	assert.Equal(t, []string{"wrote data pipelines"}, got.Evidence)
	assert.Equal(t, "Backbone of the ETL work.", got.Narrative)
	assert.Equal(t, "Text", got.Source)
}

func TestMerge_CaseAndWhitespaceVariants(t *testing.T) {
	skills := Merge([]core.Candidate{
		candidate("Python", 0.8, "Text"),
		candidate("python", 0.6, "GitHub"),
	})
	require.Len(t, skills, 1)

	got := skills[0]
	assert.Equal(t, "Python", got.Name, "first-seen name wins")
	assert.InDelta(t, 0.7, got.Confidence, 1e-9)
	assert.Equal(t, "Text, GitHub", got.Source)
}

func TestMerge_WhitespaceVariant(t *testing.T) {
	skills := Merge([]core.Candidate{
		candidate("  Go ", 0.9, "Document"),
		candidate("go", 0.5, "GitHub"),
	})
	require.Len(t, skills, 1)
	assert.Equal(t, "  Go ", skills[0].Name)
	assert.InDelta(t, 0.7, skills[0].Confidence, 1e-9)
}

func TestMerge_RunningPairwiseMean(t *testing.T) {
	// Three contributors: ((0.9+0.5)/2+0.1)/2 = 0.4, not the true mean 0.5.
	skills := Merge([]core.Candidate{
		candidate("Rust", 0.9, "Document"),
		candidate("rust", 0.5, "Text"),
		candidate("RUST", 0.1, "GitHub"),
	})
	require.Len(t, skills, 1)
	assert.InDelta(t, 0.4, skills[0].Confidence, 1e-9)
	assert.Equal(t, "Document, Text, GitHub", skills[0].Source)
}

func TestMerge_ConfidenceWithinContributorBounds(t *testing.T) {
	inputs := [][]float64{
		{0.1, 0.9},
		{0.9, 0.1, 0.5},
		{0.3, 0.3, 0.3, 0.3},
		{1, 0, 1, 0},
	}

	for _, confs := range inputs {
		candidates := make([]core.Candidate, len(confs))
		lo, hi := confs[0], confs[0]
		for i, conf := range confs {
			candidates[i] = candidate("Kubernetes", conf, "Text")
			if conf < lo {
				lo = conf
			}
			if conf > hi {
				hi = conf
			}
		}

		skills := Merge(candidates)
		require.Len(t, skills, 1)
		assert.GreaterOrEqual(t, skills[0].Confidence, lo)
		assert.LessOrEqual(t, skills[0].Confidence, hi)
	}
}

func TestMerge_EvidenceSetUnion(t *testing.T) {
	a := candidate("SQL", 0.7, "Document")
	a.Evidence = []string{"wrote migrations", "tuned slow queries"}
	b := candidate("sql", 0.7, "Text")
	b.Evidence = []string{"tuned slow queries", "designed the schema"}

	skills := Merge([]core.Candidate{a, b})
	require.Len(t, skills, 1)
	assert.Equal(t,
		[]string{"wrote migrations", "tuned slow queries", "designed the schema"},
		skills[0].Evidence)
}

func TestMerge_FirstWriterWinsScalars(t *testing.T) {
	a := candidate("Terraform", 0.6, "Text")
	a.Kind = core.KindImplicit
	a.Cluster = "Infrastructure"
	a.Narrative = "Inferred from IaC repos."
	a.Unlock = core.UnlockLocked

	b := candidate("terraform", 0.8, "GitHub")
	b.Kind = core.KindExplicit
	b.Cluster = "DevOps"
	b.Narrative = "Stated outright."
	b.Unlock = core.UnlockUnlocked

	skills := Merge([]core.Candidate{a, b})
	require.Len(t, skills, 1)

	got := skills[0]
	assert.Equal(t, core.KindImplicit, got.Kind)
	assert.Equal(t, "Infrastructure", got.Cluster)
	assert.Equal(t, "Inferred from IaC repos.", got.Narrative)
	assert.Equal(t, core.UnlockLocked, got.Unlock)
}

func TestMerge_DuplicateSourceLabelNotRepeated(t *testing.T) {
	skills := Merge([]core.Candidate{
		candidate("Docker", 0.5, "Text"),
		candidate("docker", 0.7, "Text"),
	})
	require.Len(t, skills, 1)
	assert.Equal(t, "Text", skills[0].Source)
}

func TestMerge_OutputBounds(t *testing.T) {
	candidates := []core.Candidate{
		candidate("Python", 0.8, "Text"),
		candidate("Go", 0.7, "Text"),
		candidate("python", 0.6, "GitHub"),
		candidate("Rust", 0.9, "GitHub"),
		candidate("GO", 0.5, "Document"),
	}

	skills := Merge(candidates)
	assert.LessOrEqual(t, len(skills), len(candidates))
	assert.GreaterOrEqual(t, len(skills), 1)
	assert.Len(t, skills, 3)
}

func TestMerge_FirstSeenKeyOrder(t *testing.T) {
	skills := Merge([]core.Candidate{
		candidate("Python", 0.8, "Text"),
		candidate("Go", 0.7, "Text"),
		candidate("python", 0.6, "GitHub"),
		candidate("Rust", 0.9, "GitHub"),
	})
	require.Len(t, skills, 3)
	assert.Equal(t, "Python", skills[0].Name)
	assert.Equal(t, "Go", skills[1].Name)
	assert.Equal(t, "Rust", skills[2].Name)
}

func TestMerge_Deterministic(t *testing.T) {
	candidates := []core.Candidate{
		candidate("Python", 0.8, "Text"),
		candidate("python", 0.6, "GitHub"),
		candidate("Go", 0.7, "Document"),
	}

	first := Merge(candidates)
	second := Merge(candidates)
	assert.Equal(t, first, second)
}

func TestMerge_BlankNamesDropped(t *testing.T) {
	skills := Merge([]core.Candidate{
		candidate("  ", 0.8, "Text"),
		candidate("Python", 0.6, "Text"),
	})
	require.Len(t, skills, 1)
	assert.Equal(t, "Python", skills[0].Name)
}
