package quest

import "errors"

var (
	// ErrQuestDone indicates the quest was already completed.
	ErrQuestDone = errors.New("quest already completed")
)
