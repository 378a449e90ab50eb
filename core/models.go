package core

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that re-extraction
// converges on the same row.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// MergeKey returns the case-folded, whitespace-trimmed identity key for a
// skill name. Two candidates whose names differ only by case or surrounding
// whitespace share a merge key and collapse into one skill.
func MergeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// SkillID generates the deterministic ID for a skill owned by a profile.
func SkillID(profileID, name string) ID {
	return IDFromContent(profileID + "/skill/" + MergeKey(name))
}

// QuestID generates the deterministic ID for the quest gating a skill.
func QuestID(profileID, skillName string) ID {
	return IDFromContent(profileID + "/quest/" + MergeKey(skillName))
}

// Kind identifies how a skill observation was produced.
type Kind int

const (
	// KindExplicit means the skill was directly stated in the source.
	KindExplicit Kind = iota + 1
	// KindImplicit means the skill was inferred from surrounding signals.
	KindImplicit
)

// String returns the wire form of the kind.
func (k Kind) String() string {
	switch k {
	case KindExplicit:
		return "explicit"
	case KindImplicit:
		return "implicit"
	default:
		return "unknown"
	}
}

// ParseKind parses the wire form of a kind. Unrecognized values return
// zero and false.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "explicit":
		return KindExplicit, true
	case "implicit":
		return KindImplicit, true
	default:
		return 0, false
	}
}

// UnlockState is the gamification flag controlling whether a skill is quest-gated.
type UnlockState int

const (
	// UnlockLocked means the skill still has an open quest.
	UnlockLocked UnlockState = iota + 1
	// UnlockUnlocked means the skill is fully earned.
	UnlockUnlocked
)

// String returns the wire form of the unlock state.
func (u UnlockState) String() string {
	switch u {
	case UnlockLocked:
		return "locked"
	case UnlockUnlocked:
		return "unlocked"
	default:
		return "unknown"
	}
}

// ParseUnlockState parses the wire form of an unlock state.
func ParseUnlockState(s string) (UnlockState, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "locked":
		return UnlockLocked, true
	case "unlocked":
		return UnlockUnlocked, true
	default:
		return 0, false
	}
}

// DefaultCluster is the fallback category label when the oracle omits one.
const DefaultCluster = "Other"

// Candidate is one oracle-produced observation of a skill from a single
// source. Candidates are transient: created per extraction call, consumed
// by the merge engine, then discarded.
type Candidate struct {
	Name       string
	Kind       Kind
	Confidence float64  // In [0,1]
	Evidence   []string // Short snippets supporting the claim
	Cluster    string
	Narrative  string // Optional short explanation ("microstory")
	Unlock     UnlockState
	Source     string // Label of the producing adapter
}

// Skill is the merged, persisted unit. Within one aggregation run at most
// one Skill exists per merge key.
type Skill struct {
	Id         ID
	ProfileID  string
	Name       string
	Kind       Kind
	Confidence float64
	Evidence   []string
	Cluster    string
	Narrative  string
	Unlock     UnlockState
	Source     string // ", "-joined distinct contributing source labels
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// SourceState tracks the lifecycle of a single extraction source.
type SourceState int

const (
	// StatePending means the source has been accepted but not started.
	StatePending SourceState = iota + 1
	// StateProcessing means the adapter is running.
	StateProcessing
	// StateCompleted is terminal: the adapter produced candidates.
	StateCompleted
	// StateError is terminal: the adapter failed.
	StateError
)

// String returns the wire form of the source state.
func (s SourceState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateProcessing:
		return "processing"
	case StateCompleted:
		return "completed"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// SourceStatus is the per-adapter progress record used for caller feedback.
type SourceStatus struct {
	State SourceState
	Count int    // Candidates produced (0 on error)
	Err   string // Short message, only in the error state
}

// Profile is the owning entity for skills and quests.
type Profile struct {
	ID          string // UUID string
	DisplayName string
	Headline    string
	ShareSlug   string // Empty until first published; reserved afterwards
	Shared      bool
	InsertedAt  time.Time
	UpdatedAt   time.Time
}

// Quest is the gamified unlock task generated for a locked skill.
type Quest struct {
	Id          ID
	ProfileID   string
	SkillId     ID
	SkillName   string
	Title       string
	Description string
	XP          int
	Done        bool
	InsertedAt  time.Time
	UpdatedAt   time.Time
}
