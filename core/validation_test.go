package core

import (
	"errors"
	"testing"
)

func validCandidate() *Candidate {
	return &Candidate{
		Name:       "Python",
		Kind:       KindExplicit,
		Confidence: 0.8,
		Evidence:   []string{"built a REST API in Flask"},
		Cluster:    "Programming Languages",
		Unlock:     UnlockUnlocked,
		Source:     "Text",
	}
}

func TestValidateCandidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Candidate)
		wantErr error
	}{
		{
			name:    "valid candidate",
			mutate:  func(c *Candidate) {},
			wantErr: nil,
		},
		{
			name:    "empty name",
			mutate:  func(c *Candidate) { c.Name = "" },
			wantErr: ErrEmptyName,
		},
		{
			name:    "whitespace-only name",
			mutate:  func(c *Candidate) { c.Name = "   " },
			wantErr: ErrEmptyName,
		},
		{
			name:    "confidence above range",
			mutate:  func(c *Candidate) { c.Confidence = 1.2 },
			wantErr: ErrConfidenceOutOfRange,
		},
		{
			name:    "confidence below range",
			mutate:  func(c *Candidate) { c.Confidence = -0.1 },
			wantErr: ErrConfidenceOutOfRange,
		},
		{
			name:    "invalid kind",
			mutate:  func(c *Candidate) { c.Kind = 0 },
			wantErr: ErrInvalidKind,
		},
		{
			name:    "invalid unlock state",
			mutate:  func(c *Candidate) { c.Unlock = 99 },
			wantErr: ErrInvalidUnlockState,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := validCandidate()
			tt.mutate(candidate)

			err := ValidateCandidate(candidate)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateCandidate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateCandidate() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidCandidate) {
				t.Errorf("ValidateCandidate() error not wrapped in ErrInvalidCandidate: %v", err)
			}
		})
	}
}

func TestValidateCandidate_Nil(t *testing.T) {
	if err := ValidateCandidate(nil); !errors.Is(err, ErrInvalidCandidate) {
		t.Errorf("ValidateCandidate(nil) = %v, want ErrInvalidCandidate", err)
	}
}

func TestValidateSkill(t *testing.T) {
	skill := &Skill{
		Name:       "Go",
		Kind:       KindImplicit,
		Confidence: 0.5,
		Cluster:    DefaultCluster,
		Unlock:     UnlockLocked,
		Source:     "GitHub",
	}
	if err := ValidateSkill(skill); err != nil {
		t.Errorf("ValidateSkill() unexpected error: %v", err)
	}

	skill.Confidence = 2
	if err := ValidateSkill(skill); !errors.Is(err, ErrConfidenceOutOfRange) {
		t.Errorf("ValidateSkill() error = %v, want ErrConfidenceOutOfRange", err)
	}
}

func TestValidateProfile(t *testing.T) {
	if err := ValidateProfile(&Profile{DisplayName: "Ada"}); err != nil {
		t.Errorf("ValidateProfile() unexpected error: %v", err)
	}

	if err := ValidateProfile(&Profile{}); !errors.Is(err, ErrEmptyDisplayName) {
		t.Errorf("ValidateProfile() error = %v, want ErrEmptyDisplayName", err)
	}

	if err := ValidateProfile(nil); !errors.Is(err, ErrInvalidProfile) {
		t.Errorf("ValidateProfile(nil) = %v, want ErrInvalidProfile", err)
	}
}
