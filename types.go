package gemini

import (
	"encoding/json"
	"fmt"
)

// Role identifies who produced a turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

var roles = map[Role]bool{
	RoleUser:  true,
	RoleModel: true,
}

// UnmarshalJSON rejects tokens outside the published vocabulary.
func (r *Role) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if !roles[Role(s)] {
		return fmt.Errorf("gemini: unknown role %q", s)
	}
	*r = Role(s)
	return nil
}

// Content is one turn in a conversation: an ordered list of parts plus an
// optional role. The system instruction is a Content with no role.
type Content struct {
	Parts []Part `json:"parts"`
	Role  Role   `json:"role,omitempty"`
}

// Part is an atomic unit of a turn's payload. Exactly one field is set:
// Text for plain text, InlineData for base64-encoded binary data.
type Part struct {
	Text       string `json:"text,omitempty"`
	InlineData *Blob  `json:"inlineData,omitempty"`
}

// Blob carries inline binary data, base64-encoded.
type Blob struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// DataPart builds an inline-data part from an already base64-encoded payload.
func DataPart(mimeType, data string) Part {
	return Part{InlineData: &Blob{MIMEType: mimeType, Data: data}}
}

// GenerationConfig holds the generation options for a request. Unset fields
// are omitted from the wire so the API applies its own defaults.
type GenerationConfig struct {
	ResponseMIMEType string   `json:"responseMimeType,omitempty"`
	CandidateCount   *int     `json:"candidateCount,omitempty"`
	StopSequences    []string `json:"stopSequences,omitempty"`
	MaxOutputTokens  *int     `json:"maxOutputTokens,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	TopP             *float64 `json:"topP,omitempty"`
	TopK             *int     `json:"topK,omitempty"`
}

// Defaults returns a GenerationConfig populated with the API's documented
// defaults, spelled out explicitly for callers who want to send them.
func Defaults() GenerationConfig {
	return GenerationConfig{
		ResponseMIMEType: "text/plain",
		MaxOutputTokens:  ptr(8192),
		Temperature:      ptr(1.0),
		TopP:             ptr(0.95),
		TopK:             ptr(64),
	}
}

func ptr[T any](v T) *T { return &v }

func (c *GenerationConfig) isZero() bool {
	return c.ResponseMIMEType == "" &&
		c.CandidateCount == nil &&
		len(c.StopSequences) == 0 &&
		c.MaxOutputTokens == nil &&
		c.Temperature == nil &&
		c.TopP == nil &&
		c.TopK == nil
}

// SafetySetting adjusts the blocking threshold for one harm category.
type SafetySetting struct {
	Category  HarmCategory       `json:"category"`
	Threshold HarmBlockThreshold `json:"threshold"`
}

// HarmCategory is the category of a safety rating or setting.
type HarmCategory string

const (
	HarmCategoryUnspecified      HarmCategory = "HARM_CATEGORY_UNSPECIFIED"
	HarmCategoryDerogatory       HarmCategory = "HARM_CATEGORY_DEROGATORY"
	HarmCategoryToxicity         HarmCategory = "HARM_CATEGORY_TOXICITY"
	HarmCategoryViolence         HarmCategory = "HARM_CATEGORY_VIOLENCE"
	HarmCategorySexual           HarmCategory = "HARM_CATEGORY_SEXUAL"
	HarmCategoryMedical          HarmCategory = "HARM_CATEGORY_MEDICAL"
	HarmCategoryDangerous        HarmCategory = "HARM_CATEGORY_DANGEROUS"
	HarmCategoryHarassment       HarmCategory = "HARM_CATEGORY_HARASSMENT"
	HarmCategoryHateSpeech       HarmCategory = "HARM_CATEGORY_HATE_SPEECH"
	HarmCategorySexuallyExplicit HarmCategory = "HARM_CATEGORY_SEXUALLY_EXPLICIT"
	HarmCategoryDangerousContent HarmCategory = "HARM_CATEGORY_DANGEROUS_CONTENT"
	HarmCategoryCivicIntegrity   HarmCategory = "HARM_CATEGORY_CIVIC_INTEGRITY"
)

var harmCategories = map[HarmCategory]bool{
	HarmCategoryUnspecified:      true,
	HarmCategoryDerogatory:       true,
	HarmCategoryToxicity:         true,
	HarmCategoryViolence:         true,
	HarmCategorySexual:           true,
	HarmCategoryMedical:          true,
	HarmCategoryDangerous:        true,
	HarmCategoryHarassment:       true,
	HarmCategoryHateSpeech:       true,
	HarmCategorySexuallyExplicit: true,
	HarmCategoryDangerousContent: true,
	HarmCategoryCivicIntegrity:   true,
}

// UnmarshalJSON rejects tokens outside the published vocabulary.
func (h *HarmCategory) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if !harmCategories[HarmCategory(s)] {
		return fmt.Errorf("gemini: unknown harm category %q", s)
	}
	*h = HarmCategory(s)
	return nil
}

// HarmBlockThreshold sets the probability level at which content is blocked.
type HarmBlockThreshold string

const (
	HarmBlockUnspecified    HarmBlockThreshold = "HARM_BLOCK_THRESHOLD_UNSPECIFIED"
	HarmBlockLowAndAbove    HarmBlockThreshold = "BLOCK_LOW_AND_ABOVE"
	HarmBlockMediumAndAbove HarmBlockThreshold = "BLOCK_MEDIUM_AND_ABOVE"
	HarmBlockOnlyHigh       HarmBlockThreshold = "BLOCK_ONLY_HIGH"
	HarmBlockNone           HarmBlockThreshold = "BLOCK_NONE"
)

var harmBlockThresholds = map[HarmBlockThreshold]bool{
	HarmBlockUnspecified:    true,
	HarmBlockLowAndAbove:    true,
	HarmBlockMediumAndAbove: true,
	HarmBlockOnlyHigh:       true,
	HarmBlockNone:           true,
}

// UnmarshalJSON rejects tokens outside the published vocabulary.
func (t *HarmBlockThreshold) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if !harmBlockThresholds[HarmBlockThreshold(s)] {
		return fmt.Errorf("gemini: unknown harm block threshold %q", s)
	}
	*t = HarmBlockThreshold(s)
	return nil
}

// generateContentRequest is the body sent to POST {model}:generateContent.
type generateContentRequest struct {
	Contents          []Content         `json:"contents"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
	SafetySettings    []SafetySetting   `json:"safetySettings,omitempty"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
}
