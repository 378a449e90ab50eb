package badger

import (
	"encoding/binary"

	"github.com/veyra/skillmap/core"
)

// Key prefixes for different data types
const (
	profileRecordPrefix = "prorec"
	profileSlugPrefix   = "proslug"
	skillRecordPrefix   = "skirec"
	questRecordPrefix   = "querec"
)

// makeProfileKey generates a key for a profile by ID.
func makeProfileKey(id string) []byte {
	return []byte(profileRecordPrefix + ":" + id)
}

// makeProfileSlugKey generates a key for the share-slug index.
// The value stored under it is the owning profile's ID.
func makeProfileSlugKey(slug string) []byte {
	return []byte(profileSlugPrefix + ":" + slug)
}

// makeSkillKey generates a composite key for a skill record.
// Format: prefix:profileID:skillID with the ID in BigEndian so skills of a
// profile sort stably under prefix iteration.
func makeSkillKey(profileID string, id core.ID) []byte {
	prefix := skillRecordPrefix + ":" + profileID + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeSkillPrefix generates the iteration prefix for a profile's skills.
func makeSkillPrefix(profileID string) []byte {
	return []byte(skillRecordPrefix + ":" + profileID + ":")
}

// makeQuestKey generates a composite key for a quest record.
// Format: prefix:profileID:questID, BigEndian ID suffix.
func makeQuestKey(profileID string, id core.ID) []byte {
	prefix := questRecordPrefix + ":" + profileID + ":"
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

// makeQuestPrefix generates the iteration prefix for a profile's quests.
func makeQuestPrefix(profileID string) []byte {
	return []byte(questRecordPrefix + ":" + profileID + ":")
}
