package quest

import (
	"context"
	"log/slog"

	"github.com/veyra/skillmap/core"
	"github.com/veyra/skillmap/storage"
)

// Service manages quest lifecycle: generating quests for locked skills and
// completing them, which unlocks the underlying skill.
type Service struct {
	skills    storage.SkillRepository
	quests    storage.QuestRepository
	threshold float64
	logger    *slog.Logger
}

// NewService creates a quest service. threshold is the unlock confidence
// threshold used to scale quest XP.
func NewService(skills storage.SkillRepository, quests storage.QuestRepository, threshold float64) *Service {
	return &Service{
		skills:    skills,
		quests:    quests,
		threshold: threshold,
		logger:    slog.Default().With("component", "quest-service"),
	}
}

// Sync regenerates the profile's quest set from its current skills.
// Called after every extraction run.
func (s *Service) Sync(ctx context.Context, profileID string) ([]*core.Quest, error) {
	skills, err := s.skills.ListSkills(ctx, profileID)
	if err != nil {
		return nil, err
	}

	desired := Build(profileID, skills, s.threshold)
	synced, err := s.quests.SyncQuests(ctx, profileID, desired)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("quests synced", "profile_id", profileID, "quests", len(synced))
	return synced, nil
}

// List returns the profile's quests.
func (s *Service) List(ctx context.Context, profileID string) ([]*core.Quest, error) {
	return s.quests.ListQuests(ctx, profileID)
}

// Complete marks a quest done and unlocks its skill. The two updates form
// one logical operation. Completing an already-done quest returns
// ErrQuestDone and changes nothing.
func (s *Service) Complete(ctx context.Context, profileID string, questID core.ID) (*core.Quest, error) {
	quest, err := s.quests.GetQuest(ctx, profileID, questID)
	if err != nil {
		return nil, err
	}
	if quest.Done {
		return quest, ErrQuestDone
	}

	unlocked := false
	skill, err := s.skills.GetSkill(ctx, profileID, quest.SkillId)
	if err == nil && skill.Unlock != core.UnlockUnlocked {
		skill.Unlock = core.UnlockUnlocked
		if _, err := s.skills.UpdateSkill(ctx, skill); err != nil {
			return nil, err
		}
		unlocked = true
	} else if err != nil {
		// The skill may have been replaced by a later extraction run;
		// the quest still completes and keeps its XP.
		s.logger.Warn("completing quest without backing skill",
			"profile_id", profileID, "quest_id", uint64(questID), "err", err)
	}

	quest.Done = true
	if _, err := s.quests.UpdateQuest(ctx, quest); err != nil {
		quest.Done = false
		if unlocked {
			// Re-lock so a failed completion leaves both records as they
			// were and the caller can retry.
			skill.Unlock = core.UnlockLocked
			if _, relockErr := s.skills.UpdateSkill(ctx, skill); relockErr != nil {
				s.logger.Error("re-locking skill after quest update failure",
					"profile_id", profileID, "skill", quest.SkillName, "err", relockErr)
			}
		}
		return nil, err
	}

	s.logger.Info("quest completed",
		"profile_id", profileID, "skill", quest.SkillName, "xp", quest.XP)
	return quest, nil
}
