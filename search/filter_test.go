package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyra/skillmap/core"
)

func testSkills() []*core.Skill {
	return []*core.Skill{
		{Name: "Go", Confidence: 0.9, Cluster: "Backend", Unlock: core.UnlockUnlocked,
			Narrative: "Ships production services in Go."},
		{Name: "Kubernetes", Confidence: 0.6, Cluster: "DevOps / Infrastructure", Unlock: core.UnlockLocked,
			Narrative: "Operates clusters with Helm."},
		{Name: "PostgreSQL", Confidence: 0.75, Cluster: "Data", Unlock: core.UnlockUnlocked,
			Narrative: "Designs schemas and tunes queries."},
		{Name: "Ansible", Confidence: 0.6, Cluster: "DevOps / Infrastructure", Unlock: core.UnlockUnlocked,
			Narrative: "Automates provisioning."},
	}
}

func TestFilter_EmptyQueryReturnsAllSorted(t *testing.T) {
	results := Filter(testSkills(), Query{})
	require.Len(t, results, 4)

	assert.Equal(t, "Go", results[0].Name)
	assert.Equal(t, "PostgreSQL", results[1].Name)
	// Equal confidence ties break by name
	assert.Equal(t, "Ansible", results[2].Name)
	assert.Equal(t, "Kubernetes", results[3].Name)
}

func TestFilter_TextMatchesNameAndNarrative(t *testing.T) {
	results := Filter(testSkills(), Query{Text: "go"})
	require.Len(t, results, 1)
	assert.Equal(t, "Go", results[0].Name)

	results = Filter(testSkills(), Query{Text: "helm clusters"})
	require.Len(t, results, 1)
	assert.Equal(t, "Kubernetes", results[0].Name)

	results = Filter(testSkills(), Query{Text: "quantum"})
	assert.Empty(t, results)
}

func TestFilter_ClusterExactMatch(t *testing.T) {
	results := Filter(testSkills(), Query{Cluster: "DevOps / Infrastructure"})
	require.Len(t, results, 2)

	results = Filter(testSkills(), Query{Cluster: "devops"})
	assert.Empty(t, results, "cluster match is exact, not fuzzy")
}

func TestFilter_State(t *testing.T) {
	locked := Filter(testSkills(), Query{State: "locked"})
	require.Len(t, locked, 1)
	assert.Equal(t, "Kubernetes", locked[0].Name)

	unlocked := Filter(testSkills(), Query{State: "unlocked"})
	assert.Len(t, unlocked, 3)

	bogus := Filter(testSkills(), Query{State: "haunted"})
	assert.Empty(t, bogus)
}

func TestFilter_CombinedFilters(t *testing.T) {
	results := Filter(testSkills(), Query{Cluster: "DevOps / Infrastructure", State: "unlocked"})
	require.Len(t, results, 1)
	assert.Equal(t, "Ansible", results[0].Name)
}

func TestTokenizeAndFilter(t *testing.T) {
	tokens := tokenizeAndFilter("The quick (brown) fox, and a dog!")
	assert.Equal(t, []string{"quick", "brown", "fox", "dog"}, tokens)

	// Symbolic skill names keep their symbols
	tokens = tokenizeAndFilter("C++, C# and Go")
	assert.Equal(t, []string{"c++", "c#", "go"}, tokens)
}

func TestContainsAllQueryWords(t *testing.T) {
	assert.True(t, containsAllQueryWords("Ships production services in Go", "go services"))
	assert.False(t, containsAllQueryWords("Ships production services in Go", "go rust"))
	assert.False(t, containsAllQueryWords("anything", "the a an"), "stop-word-only query matches nothing")
}
