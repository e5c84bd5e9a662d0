package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/mux"
)

// MockGemini is an httptest.Server that simulates the generateContent and
// model-listing endpoints of the Generative Language API.
type MockGemini struct {
	Server *httptest.Server

	// Configurable response fields.
	ReplyText    string
	StatusCode   int    // non-zero and non-2xx makes generateContent fail
	ErrorMessage string // message in the error envelope for failed calls
	ErrorStatus  string // status token in the error envelope

	// RawResponse, when set, is written verbatim as the generateContent
	// body instead of the assembled reply. Lets tests return malformed or
	// unexpected shapes.
	RawResponse string

	// Models served by the list endpoint.
	Models        []map[string]any
	NextPageToken string

	// LastRequest captures the most recent generateContent body parsed.
	LastRequest map[string]any
	// LastModel is the model path segment of the most recent request.
	LastModel string
	// LastKey is the key query parameter of the most recent request.
	LastKey string
	// Generates counts generateContent calls.
	Generates int
}

// NewMockGemini creates and starts a mock server replying with the given text.
func NewMockGemini(reply string) *MockGemini {
	m := &MockGemini{ReplyText: reply}
	r := mux.NewRouter()
	r.HandleFunc("/v1beta/models", m.handleList).Methods(http.MethodGet)
	r.HandleFunc("/v1beta/{model:.+}:generateContent", m.handleGenerate).Methods(http.MethodPost)
	m.Server = httptest.NewServer(r)
	return m
}

// Close shuts down the mock server.
func (m *MockGemini) Close() {
	m.Server.Close()
}

// BaseURL returns the value to pass to gemini.WithBaseURL.
func (m *MockGemini) BaseURL() string {
	return m.Server.URL + "/v1beta/"
}

func (m *MockGemini) handleGenerate(w http.ResponseWriter, r *http.Request) {
	m.Generates++
	m.LastModel = mux.Vars(r)["model"]
	m.LastKey = r.URL.Query().Get("key")

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	m.LastRequest = body

	w.Header().Set("Content-Type", "application/json")

	if m.StatusCode >= 300 {
		w.WriteHeader(m.StatusCode)
		envelope := map[string]any{
			"error": map[string]any{
				"code":    m.StatusCode,
				"message": m.ErrorMessage,
				"status":  m.ErrorStatus,
			},
		}
		_ = json.NewEncoder(w).Encode(envelope)
		return
	}

	if m.RawResponse != "" {
		_, _ = w.Write([]byte(m.RawResponse))
		return
	}

	resp := map[string]any{
		"candidates": []any{
			map[string]any{
				"content": map[string]any{
					"parts": []any{map[string]any{"text": m.ReplyText}},
					"role":  "model",
				},
				"finishReason": "STOP",
				"index":        0,
			},
		},
		"usageMetadata": map[string]any{
			"promptTokenCount":     7,
			"candidatesTokenCount": 12,
			"totalTokenCount":      19,
		},
	}
	_ = json.NewEncoder(w).Encode(resp)
}

func (m *MockGemini) handleList(w http.ResponseWriter, r *http.Request) {
	m.LastKey = r.URL.Query().Get("key")

	models := m.Models
	if models == nil {
		models = []map[string]any{
			{
				"name":                       "models/gemini-1.5-flash",
				"version":                    "001",
				"displayName":                "Gemini 1.5 Flash",
				"description":                "Fast multimodal model",
				"inputTokenLimit":            1000000,
				"outputTokenLimit":           8192,
				"supportedGenerationMethods": []string{"generateContent"},
			},
		}
	}
	resp := map[string]any{"models": models}
	if m.NextPageToken != "" {
		resp["nextPageToken"] = m.NextPageToken
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
