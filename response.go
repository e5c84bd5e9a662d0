package gemini

import (
	"encoding/json"
	"fmt"
)

// GenerateContentResponse is the body returned by {model}:generateContent.
// The API returns either all requested candidates or none of them; an empty
// candidate list means the prompt itself was rejected (see PromptFeedback).
type GenerateContentResponse struct {
	Candidates     []Candidate     `json:"candidates"`
	PromptFeedback *PromptFeedback `json:"promptFeedback,omitempty"`
	UsageMetadata  *UsageMetadata  `json:"usageMetadata,omitempty"`
}

// Candidate is one generated response alternative.
type Candidate struct {
	Content          Content           `json:"content"`
	FinishReason     FinishReason      `json:"finishReason,omitempty"`
	SafetyRatings    []SafetyRating    `json:"safetyRatings,omitempty"`
	CitationMetadata *CitationMetadata `json:"citationMetadata,omitempty"`
	TokenCount       *int              `json:"tokenCount,omitempty"`
	Index            *int              `json:"index,omitempty"`
	AvgLogprobs      *float64          `json:"avgLogprobs,omitempty"`
}

// FinishReason is the model's stated cause for ending generation.
type FinishReason string

const (
	FinishReasonUnspecified           FinishReason = "FINISH_REASON_UNSPECIFIED"
	FinishReasonStop                  FinishReason = "STOP"
	FinishReasonMaxTokens             FinishReason = "MAX_TOKENS"
	FinishReasonSafety                FinishReason = "SAFETY"
	FinishReasonRecitation            FinishReason = "RECITATION"
	FinishReasonLanguage              FinishReason = "LANGUAGE"
	FinishReasonOther                 FinishReason = "OTHER"
	FinishReasonBlocklist             FinishReason = "BLOCKLIST"
	FinishReasonProhibitedContent     FinishReason = "PROHIBITED_CONTENT"
	FinishReasonSpii                  FinishReason = "SPII"
	FinishReasonMalformedFunctionCall FinishReason = "MALFORMED_FUNCTION_CALL"
)

var finishReasons = map[FinishReason]bool{
	FinishReasonUnspecified:           true,
	FinishReasonStop:                  true,
	FinishReasonMaxTokens:             true,
	FinishReasonSafety:                true,
	FinishReasonRecitation:            true,
	FinishReasonLanguage:              true,
	FinishReasonOther:                 true,
	FinishReasonBlocklist:             true,
	FinishReasonProhibitedContent:     true,
	FinishReasonSpii:                  true,
	FinishReasonMalformedFunctionCall: true,
}

// UnmarshalJSON rejects tokens outside the published vocabulary.
func (r *FinishReason) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if !finishReasons[FinishReason(s)] {
		return fmt.Errorf("gemini: unknown finish reason %q", s)
	}
	*r = FinishReason(s)
	return nil
}

// SafetyRating is the harm probability assessed for one category. There is
// at most one rating per category.
type SafetyRating struct {
	Category    HarmCategory    `json:"category"`
	Probability HarmProbability `json:"probability"`
	Blocked     *bool           `json:"blocked,omitempty"`
}

// HarmProbability is the assessed likelihood that content is harmful.
type HarmProbability string

const (
	HarmProbabilityUnspecified HarmProbability = "HARM_PROBABILITY_UNSPECIFIED"
	HarmProbabilityNegligible  HarmProbability = "NEGLIGIBLE"
	HarmProbabilityLow         HarmProbability = "LOW"
	HarmProbabilityMedium      HarmProbability = "MEDIUM"
	HarmProbabilityHigh        HarmProbability = "HIGH"
)

var harmProbabilities = map[HarmProbability]bool{
	HarmProbabilityUnspecified: true,
	HarmProbabilityNegligible:  true,
	HarmProbabilityLow:         true,
	HarmProbabilityMedium:      true,
	HarmProbabilityHigh:        true,
}

// UnmarshalJSON rejects tokens outside the published vocabulary.
func (p *HarmProbability) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if !harmProbabilities[HarmProbability(s)] {
		return fmt.Errorf("gemini: unknown harm probability %q", s)
	}
	*p = HarmProbability(s)
	return nil
}

// CitationMetadata collects source attributions for generated content.
type CitationMetadata struct {
	CitationSources []CitationSource `json:"citationSources"`
}

// CitationSource attributes a byte range of the response to a source.
type CitationSource struct {
	StartIndex *int   `json:"startIndex,omitempty"`
	EndIndex   *int   `json:"endIndex,omitempty"`
	URI        string `json:"uri,omitempty"`
	License    string `json:"license,omitempty"`
}

// PromptFeedback reports content filtering applied to the prompt itself.
type PromptFeedback struct {
	BlockReason   BlockReason    `json:"blockReason,omitempty"`
	SafetyRatings []SafetyRating `json:"safetyRatings,omitempty"`
}

// BlockReason says why the prompt was blocked.
type BlockReason string

const (
	BlockReasonUnspecified       BlockReason = "BLOCK_REASON_UNSPECIFIED"
	BlockReasonSafety            BlockReason = "SAFETY"
	BlockReasonOther             BlockReason = "OTHER"
	BlockReasonBlocklist         BlockReason = "BLOCKLIST"
	BlockReasonProhibitedContent BlockReason = "PROHIBITED_CONTENT"
)

var blockReasons = map[BlockReason]bool{
	BlockReasonUnspecified:       true,
	BlockReasonSafety:            true,
	BlockReasonOther:             true,
	BlockReasonBlocklist:         true,
	BlockReasonProhibitedContent: true,
}

// UnmarshalJSON rejects tokens outside the published vocabulary.
func (r *BlockReason) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if !blockReasons[BlockReason(s)] {
		return fmt.Errorf("gemini: unknown block reason %q", s)
	}
	*r = BlockReason(s)
	return nil
}

// UsageMetadata reports token usage for the whole request.
type UsageMetadata struct {
	PromptTokenCount        int  `json:"promptTokenCount"`
	CachedContentTokenCount *int `json:"cachedContentTokenCount,omitempty"`
	CandidatesTokenCount    int  `json:"candidatesTokenCount"`
	TotalTokenCount         int  `json:"totalTokenCount"`
}

// ModelList is the paginated envelope returned by GET /models. NextPageToken
// is empty on the last page; following it is the caller's responsibility.
type ModelList struct {
	Models        []ModelInfo `json:"models"`
	NextPageToken string      `json:"nextPageToken,omitempty"`
}

// ModelInfo describes one model exposed by the API.
type ModelInfo struct {
	Name                       string   `json:"name"`
	BaseModelID                string   `json:"baseModelId,omitempty"`
	Version                    string   `json:"version"`
	DisplayName                string   `json:"displayName"`
	Description                string   `json:"description"`
	InputTokenLimit            int      `json:"inputTokenLimit"`
	OutputTokenLimit           int      `json:"outputTokenLimit"`
	SupportedGenerationMethods []string `json:"supportedGenerationMethods"`
	Temperature                *float64 `json:"temperature,omitempty"`
	MaxTemperature             *float64 `json:"maxTemperature,omitempty"`
	TopP                       *float64 `json:"topP,omitempty"`
	TopK                       *int     `json:"topK,omitempty"`
}
