// Package quest turns locked skills into completable quests.
//
// A quest is generated for every skill whose unlock state is locked: the
// oracle saw weak evidence, and the quest asks the user to prove the skill.
// Completing a quest flips the skill to unlocked and awards the quest's XP.
// Quest IDs are content-derived, so regenerating quests for the same profile
// and skill set is idempotent.
package quest
