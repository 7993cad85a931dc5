package llm

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairSchema() *Schema {
	return &Schema{
		Name:        "test-pair",
		Description: "A category pair",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"category":    map[string]any{"type": "string", "enum": []string{"Tourism", "Health", "Other"}},
				"subCategory": map[string]any{"type": "string"},
				"confidence":  map[string]any{"type": "integer", "minimum": 0},
			},
			"required": []string{"category", "subCategory"},
		},
	}
}

func TestCheckJSON(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{"valid", `{"category":"Health","subCategory":"Caregiving"}`, `{"category":"Health","subCategory":"Caregiving"}`, false},
		{"optional field", `{"category":"Other","subCategory":"Other","confidence":3}`, `{"category":"Other","subCategory":"Other","confidence":3}`, false},
		{"fenced", "```json\n{\"category\":\"Tourism\",\"subCategory\":\"Nature\"}\n```", `{"category":"Tourism","subCategory":"Nature"}`, false},
		{"prose around", `Sure: {"category":"Tourism","subCategory":"Event"} Hope that helps.`, `{"category":"Tourism","subCategory":"Event"}`, false},
		{"missing required", `{"category":"Health"}`, "", true},
		{"wrong type", `{"category":"Health","subCategory":"Caregiving","confidence":"high"}`, "", true},
		{"not in enum", `{"category":"Sports","subCategory":"Other"}`, "", true},
		{"malformed", `{not json}`, "", true},
		{"empty", ``, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := checkJSON(pairSchema(), json.RawMessage(tt.raw))
			if tt.wantErr {
				var inv *ErrInvalidResponse
				require.True(t, errors.As(err, &inv), "expected *ErrInvalidResponse, got %v", err)
				assert.Equal(t, tt.raw, string(inv.Content))
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestCheckJSON_NilSchemaPassesThrough(t *testing.T) {
	raw := json.RawMessage("plain advice text")
	got, err := checkJSON(nil, raw)
	require.NoError(t, err)
	assert.Equal(t, raw, got)
}

func TestCheckJSON_NestedArray(t *testing.T) {
	schema := &Schema{
		Name: "test-questions",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"questions": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []string{"options"},
						"properties": map[string]any{
							"options": map[string]any{
								"type":     "array",
								"items":    map[string]any{"type": "string"},
								"minItems": 4,
								"maxItems": 4,
							},
						},
					},
				},
			},
			"required": []string{"questions"},
		},
	}

	_, err := checkJSON(schema, json.RawMessage(`{"questions":[{"options":["a","b","c","d"]}]}`))
	assert.NoError(t, err)

	_, err = checkJSON(schema, json.RawMessage(`{"questions":[{"options":["a","b"]}]}`))
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	var out struct {
		Category string `json:"category"`
	}
	err := Decode(&Response{Content: json.RawMessage("```json\n{\"category\":\"Health\"}\n```")}, &out)
	require.NoError(t, err)
	assert.Equal(t, "Health", out.Category)

	err = Decode(&Response{Content: json.RawMessage(`[1,2]`)}, &out)
	var inv *ErrInvalidResponse
	assert.True(t, errors.As(err, &inv))

	assert.Error(t, Decode(nil, &out))
}
