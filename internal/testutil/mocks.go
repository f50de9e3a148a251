// Package testutil holds helpers shared by the package tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// MockServer imitates a model provider endpoint, answering every request
// whose path ends in the given suffix with a fixed status and body
type MockServer struct {
	*httptest.Server

	hits     int32
	status   int
	body     string
	lastAuth atomic.Value
}

func newMockServer(t *testing.T, pathSuffix string, status int, body string) *MockServer {
	t.Helper()

	m := &MockServer{status: status, body: body}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&m.hits, 1)

		auth := r.Header.Get("Authorization")
		if key := r.Header.Get("x-goog-api-key"); key != "" {
			auth = key
		}
		m.lastAuth.Store(auth)

		if !strings.HasSuffix(r.URL.Path, pathSuffix) {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(m.status)
		w.Write([]byte(m.body))
	}))
	t.Cleanup(m.Close)

	return m
}

// NewMockChatServer starts an OpenAI chat completions endpoint. It is closed
// when the test ends.
func NewMockChatServer(t *testing.T, status int, body string) *MockServer {
	t.Helper()
	return newMockServer(t, "/chat/completions", status, body)
}

// NewMockChatReply starts an OpenAI endpoint replying with a successful
// completion whose message content is content
func NewMockChatReply(t *testing.T, content string) *MockServer {
	t.Helper()
	return NewMockChatServer(t, http.StatusOK, ChatCompletion(content))
}

// NewMockGeminiServer starts a Gemini generateContent endpoint
func NewMockGeminiServer(t *testing.T, status int, body string) *MockServer {
	t.Helper()
	return newMockServer(t, ":generateContent", status, body)
}

// NewMockGeminiReply starts a Gemini endpoint replying with one candidate
// whose text is content
func NewMockGeminiReply(t *testing.T, content string) *MockServer {
	t.Helper()
	return NewMockGeminiServer(t, http.StatusOK, GeminiResponse(content))
}

// Hits returns the number of requests served
func (m *MockServer) Hits() int {
	return int(atomic.LoadInt32(&m.hits))
}

// LastAuthorization returns the credentials sent with the last request:
// the Authorization header, or the Gemini API key header
func (m *MockServer) LastAuthorization() string {
	auth, _ := m.lastAuth.Load().(string)
	return auth
}

// ChatCompletion returns a chat completion response body with one choice
func ChatCompletion(content string) string {
	return mustJSON(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": "stop",
		}},
	})
}

// ChatError returns an OpenAI style error response body
func ChatError(message string) string {
	return mustJSON(map[string]any{
		"error": map[string]any{"message": message, "type": "server_error"},
	})
}

// GeminiResponse returns a generateContent response body with one candidate
func GeminiResponse(content string) string {
	return mustJSON(map[string]any{
		"candidates": []map[string]any{{
			"content": map[string]any{
				"role":  "model",
				"parts": []map[string]any{{"text": content}},
			},
			"finishReason": "STOP",
		}},
	})
}

// GeminiError returns a Google API style error response body
func GeminiError(code int, message string) string {
	return mustJSON(map[string]any{
		"error": map[string]any{"code": code, "message": message, "status": "INTERNAL"},
	})
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(data)
}
