// Package gemini is a client for the Google Generative Language REST API.
// It covers single-shot and multi-turn text generation, image-attachment
// messages and model listing. A Session is not safe for concurrent use;
// callers sharing one across goroutines must serialize access.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultBaseURL is the production endpoint of the Generative Language API.
const DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/"

// Session talks to the generateContent endpoint for one model. With the
// conversation flag set it resends the accumulated history on every call;
// otherwise each call is an independent exchange.
type Session struct {
	key     string
	model   Model
	baseURL string
	hc      *http.Client
	log     zerolog.Logger

	conversation bool
	history      []Content
	config       GenerationConfig
	safety       []SafetySetting
	system       string
}

// Option configures a Session at construction time.
type Option func(*Session)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Session) { s.hc = hc }
}

// WithBaseURL points the session at a different API endpoint.
func WithBaseURL(base string) Option {
	return func(s *Session) { s.baseURL = strings.TrimRight(base, "/") + "/" }
}

// WithTimeout sets a round-trip timeout on the HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.hc.Timeout = d }
}

// WithProxy routes requests through the given HTTP/HTTPS proxy URL.
// An unparseable URL leaves the default environment proxy in place.
func WithProxy(proxyURL string) Option {
	return func(s *Session) {
		parsed, err := url.Parse(proxyURL)
		if err != nil {
			return
		}
		s.hc.Transport = &http.Transport{Proxy: http.ProxyURL(parsed)}
	}
}

// WithLogger attaches a logger for per-request debug events.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithConversation sets the conversation flag: prior turns are resent with
// each request to preserve context.
func WithConversation(on bool) Option {
	return func(s *Session) { s.conversation = on }
}

// WithSystemInstruction sets the system instruction text.
func WithSystemInstruction(text string) Option {
	return func(s *Session) { s.system = text }
}

// WithGenerationConfig sets the generation options sent with every request.
func WithGenerationConfig(cfg GenerationConfig) Option {
	return func(s *Session) { s.config = cfg }
}

// WithSafetySettings sets the safety thresholds sent with every request.
func WithSafetySettings(settings []SafetySetting) Option {
	return func(s *Session) { s.safety = settings }
}

// New creates a Session for the given API key and model.
func New(key string, model Model, opts ...Option) *Session {
	s := &Session{
		key:     key,
		model:   model,
		baseURL: DefaultBaseURL,
		hc:      &http.Client{Transport: &http.Transport{Proxy: http.ProxyFromEnvironment}},
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rebuild restores a Session from a persisted key/model/history/options
// tuple. Serializing the history for storage is the caller's business.
func Rebuild(key string, model Model, history []Content, cfg GenerationConfig, opts ...Option) *Session {
	s := New(key, model, opts...)
	s.history = append(s.history, history...)
	s.config = cfg
	return s
}

// SetConversation switches conversation mode on or off. Turning it off does
// not clear the accumulated history.
func (s *Session) SetConversation(on bool) { s.conversation = on }

// SetSystemInstruction sets the system instruction text.
func (s *Session) SetSystemInstruction(text string) { s.system = text }

// SetGenerationConfig replaces the generation options.
func (s *Session) SetGenerationConfig(cfg GenerationConfig) { s.config = cfg }

// SetSafetySettings replaces the safety thresholds.
func (s *Session) SetSafetySettings(settings []SafetySetting) { s.safety = settings }

// Model returns the model this session targets.
func (s *Session) Model() Model { return s.model }

// History returns a copy of the accumulated conversation. It only ever
// contains turns whose request received a successful reply.
func (s *Session) History() []Content {
	out := make([]Content, len(s.history))
	copy(out, s.history)
	return out
}

// SendMessage sends a text turn and returns the model's text reply. In
// conversation mode the turn and the reply are appended to the history;
// on any failure the pending user turn is rolled back first.
func (s *Session) SendMessage(ctx context.Context, text string) (string, error) {
	return s.send(ctx, Content{Role: RoleUser, Parts: []Part{TextPart(text)}})
}

// SendImageMessage sends a text turn with an image attached. The source is
// either a local file path or an http(s) URL; its format is sniffed from
// the magic bytes. The text part precedes the inline-data part.
func (s *Session) SendImageMessage(ctx context.Context, source, text string) (string, error) {
	mime, data, err := resolveImage(ctx, s.hc, source)
	if err != nil {
		return "", err
	}
	return s.send(ctx, Content{
		Role:  RoleUser,
		Parts: []Part{TextPart(text), DataPart(mime, data)},
	})
}

func (s *Session) send(ctx context.Context, turn Content) (string, error) {
	contents := []Content{turn}
	if s.conversation {
		s.history = append(s.history, turn)
		contents = make([]Content, len(s.history))
		copy(contents, s.history)
	}

	reply, err := s.generate(ctx, contents)
	if err != nil {
		if s.conversation {
			s.history = s.history[:len(s.history)-1]
		}
		return "", err
	}
	if s.conversation {
		s.history = append(s.history, Content{Role: RoleModel, Parts: []Part{TextPart(reply)}})
	}
	return reply, nil
}

// generate performs one generateContent round trip and extracts the first
// candidate's text.
func (s *Session) generate(ctx context.Context, contents []Content) (string, error) {
	reqBody := generateContentRequest{Contents: contents}
	if !s.config.isZero() {
		cfg := s.config
		reqBody.GenerationConfig = &cfg
	}
	if len(s.safety) > 0 {
		reqBody.SafetySettings = s.safety
	}
	if s.system != "" {
		reqBody.SystemInstruction = &Content{Parts: []Part{TextPart(s.system)}}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	endpoint := s.baseURL + s.model.String() + ":generateContent?key=" + url.QueryEscape(s.key)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	s.log.Debug().
		Str("model", s.model.String()).
		Int("contents", len(contents)).
		Msg("sending generateContent request")

	resp, err := s.hc.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", s.decodeError(resp)
	}

	var result GenerateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	return firstText(&result)
}

// decodeError parses the remote error envelope from a non-2xx response.
func (s *Session) decodeError(resp *http.Response) error {
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error response: %w", err)
	}
	var envelope errorResponse
	if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Error == nil {
		return fmt.Errorf("gemini %d: %s", resp.StatusCode, string(raw))
	}
	s.log.Debug().
		Int("code", envelope.Error.Code).
		Str("status", envelope.Error.Status).
		Msg("gemini returned an error")
	return envelope.Error
}

// firstText extracts the first candidate's first part, which must be text.
func firstText(resp *GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: no candidates, prompt blocked (%s)",
				ErrUnexpectedFormat, resp.PromptFeedback.BlockReason)
		}
		return "", fmt.Errorf("%w: empty candidate list", ErrUnexpectedFormat)
	}
	parts := resp.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: candidate has no parts", ErrUnexpectedFormat)
	}
	// A part carrying neither text nor inline data is some shape outside
	// the schema (unknown JSON keys decode to a zero Part).
	if parts[0].InlineData != nil || parts[0].Text == "" {
		return "", fmt.Errorf("%w: first part is not text", ErrUnexpectedFormat)
	}
	return parts[0].Text, nil
}

// ListModels fetches one page of the model catalog. Pass an empty token for
// the first page; NextPageToken on the result is not followed automatically.
func (s *Session) ListModels(ctx context.Context, pageToken string) (*ModelList, error) {
	query := url.Values{"key": {s.key}}
	if pageToken != "" {
		query.Set("pageToken", pageToken)
	}
	endpoint := s.baseURL + "models?" + query.Encode()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("gemini request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, s.decodeError(resp)
	}

	var result ModelList
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &result, nil
}

// ListModels fetches the first page of the model catalog with a throwaway
// session, for callers who only have a key.
func ListModels(ctx context.Context, key string, opts ...Option) (*ModelList, error) {
	return New(key, ModelGemini15Flash, opts...).ListModels(ctx, "")
}
