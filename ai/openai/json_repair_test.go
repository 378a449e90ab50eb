package openai

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepairJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "valid passes through",
			in:   `{"skills": [{"name": "Go"}]}`,
			want: `{"skills": [{"name": "Go"}]}`,
		},
		{
			name: "unquoted key",
			in:   `{name: "Go"}`,
			want: `{"name": "Go"}`,
		},
		{
			name: "half-quoted key",
			in:   `{"name": "Go", kind": "explicit"}`,
			want: `{"name": "Go", "kind": "explicit"}`,
		},
		{
			name: "trailing comma in object",
			in:   `{"name": "Go",}`,
			want: `{"name": "Go"}`,
		},
		{
			name: "trailing comma in array",
			in:   `{"skills": ["a", "b",]}`,
			want: `{"skills": ["a", "b"]}`,
		},
		{
			name: "colon inside string untouched",
			in:   `{"evidence": "repo: infra-tools"}`,
			want: `{"evidence": "repo: infra-tools"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := repairJSON(tt.in)
			assert.Equal(t, tt.want, got)

			var v any
			require.NoError(t, json.Unmarshal([]byte(got), &v), "repaired JSON must parse")
		})
	}
}

func TestStripFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripFences(`{"a":1}`))
}
