package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/storage"
)

func sampleSkills() []*core.Skill {
	return []*core.Skill{
		{Name: "Go", Kind: core.KindExplicit, Confidence: 0.9, Cluster: "Backend", Unlock: core.UnlockUnlocked, Source: "Text"},
		{Name: "Kubernetes", Kind: core.KindImplicit, Confidence: 0.6, Cluster: "DevOps / Infrastructure", Unlock: core.UnlockLocked, Source: "GitHub"},
		{Name: "PostgreSQL", Kind: core.KindExplicit, Confidence: 0.75, Cluster: "Data", Unlock: core.UnlockUnlocked, Source: "Document"},
	}
}

func TestSkillRepository_ReplaceAndList(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	err := repos.Skills.ReplaceSkills(ctx, "p1", sampleSkills())
	require.NoError(t, err)

	skills, err := repos.Skills.ListSkills(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, skills, 3)

	for _, skill := range skills {
		assert.Equal(t, "p1", skill.ProfileID)
		assert.NotZero(t, skill.Id)
		assert.False(t, skill.InsertedAt.IsZero())
	}
}

func TestSkillRepository_ReplaceOverwrites(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Skills.ReplaceSkills(ctx, "p1", sampleSkills()))

	replacement := []*core.Skill{
		{Name: "Rust", Kind: core.KindExplicit, Confidence: 0.8, Cluster: "Backend", Unlock: core.UnlockUnlocked, Source: "Text"},
	}
	require.NoError(t, repos.Skills.ReplaceSkills(ctx, "p1", replacement))

	skills, err := repos.Skills.ListSkills(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, skills, 1)
	assert.Equal(t, "Rust", skills[0].Name)
}

func TestSkillRepository_ProfileScoping(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Skills.ReplaceSkills(ctx, "p1", sampleSkills()))
	require.NoError(t, repos.Skills.ReplaceSkills(ctx, "p2", []*core.Skill{
		{Name: "Go", Kind: core.KindExplicit, Confidence: 0.5, Cluster: "Backend", Unlock: core.UnlockLocked, Source: "Text"},
	}))

	p1Skills, err := repos.Skills.ListSkills(ctx, "p1")
	require.NoError(t, err)
	assert.Len(t, p1Skills, 3)

	p2Skills, err := repos.Skills.ListSkills(ctx, "p2")
	require.NoError(t, err)
	assert.Len(t, p2Skills, 1)

	count, err := repos.Skills.CountByProfile(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestSkillRepository_GetSkill(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Skills.ReplaceSkills(ctx, "p1", sampleSkills()))

	id := core.SkillID("p1", "Go")
	skill, err := repos.Skills.GetSkill(ctx, "p1", id)
	require.NoError(t, err)
	assert.Equal(t, "Go", skill.Name)

	// Same skill name under another profile has a different ID
	_, err = repos.Skills.GetSkill(ctx, "p2", id)
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSkillRepository_UpdateSkill(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Skills.ReplaceSkills(ctx, "p1", sampleSkills()))

	skill, err := repos.Skills.GetSkill(ctx, "p1", core.SkillID("p1", "Kubernetes"))
	require.NoError(t, err)
	require.Equal(t, core.UnlockLocked, skill.Unlock)

	skill.Unlock = core.UnlockUnlocked
	updated, err := repos.Skills.UpdateSkill(ctx, skill)
	require.NoError(t, err)
	assert.Equal(t, core.UnlockUnlocked, updated.Unlock)

	got, err := repos.Skills.GetSkill(ctx, "p1", skill.Id)
	require.NoError(t, err)
	assert.Equal(t, core.UnlockUnlocked, got.Unlock)
}

func TestSkillRepository_UpdateMissing(t *testing.T) {
	repos := newTestRepos(t)

	_, err := repos.Skills.UpdateSkill(context.Background(), &core.Skill{
		Id:        core.SkillID("p1", "Ghost"),
		ProfileID: "p1",
		Name:      "Ghost",
	})
	require.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSkillRepository_EmptyReplace(t *testing.T) {
	repos := newTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Skills.ReplaceSkills(ctx, "p1", sampleSkills()))
	require.NoError(t, repos.Skills.ReplaceSkills(ctx, "p1", nil))

	skills, err := repos.Skills.ListSkills(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, skills)
}
