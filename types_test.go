package gemini

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateContentRequest_Marshal(t *testing.T) {
	body := generateContentRequest{
		Contents: []Content{
			{Role: RoleUser, Parts: []Part{TextPart("Hello, world!")}},
		},
		GenerationConfig: ptr(Defaults()),
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"contents":[{"parts":[{"text":"Hello, world!"}],"role":"user"}],"generationConfig":{"responseMimeType":"text/plain","maxOutputTokens":8192,"temperature":1,"topP":0.95,"topK":64}}`,
		string(raw))
}

func TestGenerationConfig_ZeroOmitsEverything(t *testing.T) {
	raw, err := json.Marshal(GenerationConfig{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(raw))

	var back GenerationConfig
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.True(t, back.isZero())
}

func TestGenerationConfig_RoundTrip(t *testing.T) {
	cfg := Defaults()
	cfg.CandidateCount = ptr(2)
	cfg.StopSequences = []string{"END"}

	raw, err := json.Marshal(cfg)
	require.NoError(t, err)
	var back GenerationConfig
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, cfg, back)
}

func TestPart_WireShapes(t *testing.T) {
	raw, err := json.Marshal(TextPart("hi"))
	require.NoError(t, err)
	assert.Equal(t, `{"text":"hi"}`, string(raw))

	raw, err = json.Marshal(DataPart("image/png", "aGVsbG8="))
	require.NoError(t, err)
	assert.Equal(t, `{"inlineData":{"mimeType":"image/png","data":"aGVsbG8="}}`, string(raw))
}

func TestSystemInstruction_HasNoRole(t *testing.T) {
	body := generateContentRequest{
		Contents:          []Content{{Role: RoleUser, Parts: []Part{TextPart("hi")}}},
		SystemInstruction: &Content{Parts: []Part{TextPart("be brief")}},
	}
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	instr, ok := decoded["systemInstruction"].(map[string]any)
	require.True(t, ok)
	assert.NotContains(t, instr, "role")
}

func TestHarmCategory_UnknownToken(t *testing.T) {
	var cat HarmCategory
	err := json.Unmarshal([]byte(`"HARM_CATEGORY_BANANA"`), &cat)
	assert.Error(t, err)
}

func TestRole_UnknownToken(t *testing.T) {
	var role Role
	err := json.Unmarshal([]byte(`"tool"`), &role)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown role")
}

func TestRole_RoundTrip(t *testing.T) {
	for role := range roles {
		raw, err := json.Marshal(role)
		require.NoError(t, err)
		var back Role
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.Equal(t, role, back)
	}
}

func TestHarmBlockThreshold_UnknownToken(t *testing.T) {
	var threshold HarmBlockThreshold
	err := json.Unmarshal([]byte(`"BLOCK_EVERYTHING"`), &threshold)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown harm block threshold")
}

func TestHarmBlockThreshold_RoundTrip(t *testing.T) {
	for threshold := range harmBlockThresholds {
		raw, err := json.Marshal(threshold)
		require.NoError(t, err)
		var back HarmBlockThreshold
		require.NoError(t, json.Unmarshal(raw, &back))
		assert.Equal(t, threshold, back)
	}
}
