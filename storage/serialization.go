// Copyright 2025 Veyra Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"

	"github.com/veyra/skillmap/core"
)

// Hand-written MUS serializers for the stored record types. Field order is
// the wire format; changing it breaks existing databases.

var stringSliceSer = ord.NewSliceSer[string](ord.String)

// Timestamps are stored as Unix microseconds. The zero time maps to 0 so a
// never-set timestamp round-trips as zero.

func marshalTime(t time.Time, bs []byte) (n int) {
	var micros int64
	if !t.IsZero() {
		micros = t.UnixMicro()
	}
	return varint.Int64.Marshal(micros, bs)
}

func unmarshalTime(bs []byte) (time.Time, int, error) {
	micros, n, err := varint.Int64.Unmarshal(bs)
	if err != nil || micros == 0 {
		return time.Time{}, n, err
	}
	return time.UnixMicro(micros).UTC(), n, nil
}

func sizeTime(t time.Time) int {
	var micros int64
	if !t.IsZero() {
		micros = t.UnixMicro()
	}
	return varint.Int64.Size(micros)
}

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, varint.Uint64.Size(uint64(id)))
	varint.Uint64.Marshal(uint64(id), buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	v, _, err := varint.Uint64.Unmarshal(data)
	return core.ID(v), err
}

// MarshalProfile serializes a Profile to bytes.
func MarshalProfile(profile *core.Profile) []byte {
	buf := make([]byte, sizeProfile(profile))
	n := ord.String.Marshal(profile.ID, buf)
	n += ord.String.Marshal(profile.DisplayName, buf[n:])
	n += ord.String.Marshal(profile.Headline, buf[n:])
	n += ord.String.Marshal(profile.ShareSlug, buf[n:])
	n += ord.Bool.Marshal(profile.Shared, buf[n:])
	n += marshalTime(profile.InsertedAt, buf[n:])
	marshalTime(profile.UpdatedAt, buf[n:])
	return buf
}

func sizeProfile(profile *core.Profile) int {
	return ord.String.Size(profile.ID) +
		ord.String.Size(profile.DisplayName) +
		ord.String.Size(profile.Headline) +
		ord.String.Size(profile.ShareSlug) +
		ord.Bool.Size(profile.Shared) +
		sizeTime(profile.InsertedAt) +
		sizeTime(profile.UpdatedAt)
}

// UnmarshalProfile deserializes a Profile from bytes.
func UnmarshalProfile(data []byte) (*core.Profile, error) {
	var (
		profile core.Profile
		n       int
		err     error
	)
	off := 0

	if profile.ID, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if profile.DisplayName, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if profile.Headline, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if profile.ShareSlug, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if profile.Shared, n, err = ord.Bool.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if profile.InsertedAt, n, err = unmarshalTime(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if profile.UpdatedAt, _, err = unmarshalTime(data[off:]); err != nil {
		return nil, err
	}
	return &profile, nil
}

// MarshalSkill serializes a Skill to bytes.
func MarshalSkill(skill *core.Skill) []byte {
	buf := make([]byte, sizeSkill(skill))
	n := varint.Uint64.Marshal(uint64(skill.Id), buf)
	n += ord.String.Marshal(skill.ProfileID, buf[n:])
	n += ord.String.Marshal(skill.Name, buf[n:])
	n += varint.Int.Marshal(int(skill.Kind), buf[n:])
	n += raw.Float64.Marshal(skill.Confidence, buf[n:])
	n += stringSliceSer.Marshal(skill.Evidence, buf[n:])
	n += ord.String.Marshal(skill.Cluster, buf[n:])
	n += ord.String.Marshal(skill.Narrative, buf[n:])
	n += varint.Int.Marshal(int(skill.Unlock), buf[n:])
	n += ord.String.Marshal(skill.Source, buf[n:])
	n += marshalTime(skill.InsertedAt, buf[n:])
	marshalTime(skill.UpdatedAt, buf[n:])
	return buf
}

func sizeSkill(skill *core.Skill) int {
	return varint.Uint64.Size(uint64(skill.Id)) +
		ord.String.Size(skill.ProfileID) +
		ord.String.Size(skill.Name) +
		varint.Int.Size(int(skill.Kind)) +
		raw.Float64.Size(skill.Confidence) +
		stringSliceSer.Size(skill.Evidence) +
		ord.String.Size(skill.Cluster) +
		ord.String.Size(skill.Narrative) +
		varint.Int.Size(int(skill.Unlock)) +
		ord.String.Size(skill.Source) +
		sizeTime(skill.InsertedAt) +
		sizeTime(skill.UpdatedAt)
}

// UnmarshalSkill deserializes a Skill from bytes.
func UnmarshalSkill(data []byte) (*core.Skill, error) {
	var (
		skill core.Skill
		n     int
		err   error
	)
	off := 0

	id, n, err := varint.Uint64.Unmarshal(data[off:])
	if err != nil {
		return nil, err
	}
	skill.Id = core.ID(id)
	off += n

	if skill.ProfileID, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if skill.Name, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n

	kind, n, err := varint.Int.Unmarshal(data[off:])
	if err != nil {
		return nil, err
	}
	skill.Kind = core.Kind(kind)
	off += n

	if skill.Confidence, n, err = raw.Float64.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if skill.Evidence, n, err = stringSliceSer.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if skill.Cluster, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if skill.Narrative, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n

	unlock, n, err := varint.Int.Unmarshal(data[off:])
	if err != nil {
		return nil, err
	}
	skill.Unlock = core.UnlockState(unlock)
	off += n

	if skill.Source, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if skill.InsertedAt, n, err = unmarshalTime(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if skill.UpdatedAt, _, err = unmarshalTime(data[off:]); err != nil {
		return nil, err
	}
	return &skill, nil
}

// MarshalQuest serializes a Quest to bytes.
func MarshalQuest(quest *core.Quest) []byte {
	buf := make([]byte, sizeQuest(quest))
	n := varint.Uint64.Marshal(uint64(quest.Id), buf)
	n += ord.String.Marshal(quest.ProfileID, buf[n:])
	n += varint.Uint64.Marshal(uint64(quest.SkillId), buf[n:])
	n += ord.String.Marshal(quest.SkillName, buf[n:])
	n += ord.String.Marshal(quest.Title, buf[n:])
	n += ord.String.Marshal(quest.Description, buf[n:])
	n += varint.Int.Marshal(quest.XP, buf[n:])
	n += ord.Bool.Marshal(quest.Done, buf[n:])
	n += marshalTime(quest.InsertedAt, buf[n:])
	marshalTime(quest.UpdatedAt, buf[n:])
	return buf
}

func sizeQuest(quest *core.Quest) int {
	return varint.Uint64.Size(uint64(quest.Id)) +
		ord.String.Size(quest.ProfileID) +
		varint.Uint64.Size(uint64(quest.SkillId)) +
		ord.String.Size(quest.SkillName) +
		ord.String.Size(quest.Title) +
		ord.String.Size(quest.Description) +
		varint.Int.Size(quest.XP) +
		ord.Bool.Size(quest.Done) +
		sizeTime(quest.InsertedAt) +
		sizeTime(quest.UpdatedAt)
}

// UnmarshalQuest deserializes a Quest from bytes.
func UnmarshalQuest(data []byte) (*core.Quest, error) {
	var (
		quest core.Quest
		n     int
		err   error
	)
	off := 0

	id, n, err := varint.Uint64.Unmarshal(data[off:])
	if err != nil {
		return nil, err
	}
	quest.Id = core.ID(id)
	off += n

	if quest.ProfileID, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n

	skillID, n, err := varint.Uint64.Unmarshal(data[off:])
	if err != nil {
		return nil, err
	}
	quest.SkillId = core.ID(skillID)
	off += n

	if quest.SkillName, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if quest.Title, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if quest.Description, n, err = ord.String.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if quest.XP, n, err = varint.Int.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if quest.Done, n, err = ord.Bool.Unmarshal(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if quest.InsertedAt, n, err = unmarshalTime(data[off:]); err != nil {
		return nil, err
	}
	off += n
	if quest.UpdatedAt, _, err = unmarshalTime(data[off:]); err != nil {
		return nil, err
	}
	return &quest, nil
}
