package testutil

import (
	"encoding/json"
	"testing"
)

func TestResponseBodiesAreValidJSON(t *testing.T) {
	// Control characters and quotes must survive as JSON escapes
	content := "/ˈkæt/\a\x01 \"quoted\" \\"

	var chat struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal([]byte(ChatCompletion(content)), &chat); err != nil {
		t.Fatalf("ChatCompletion produced invalid JSON: %v", err)
	}
	if len(chat.Choices) != 1 || chat.Choices[0].Message.Content != content {
		t.Errorf("ChatCompletion content = %+v, want %q", chat.Choices, content)
	}

	var gemini struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.Unmarshal([]byte(GeminiResponse(content)), &gemini); err != nil {
		t.Fatalf("GeminiResponse produced invalid JSON: %v", err)
	}
	if len(gemini.Candidates) != 1 || gemini.Candidates[0].Content.Parts[0].Text != content {
		t.Errorf("GeminiResponse content = %+v, want %q", gemini.Candidates, content)
	}

	for name, body := range map[string]string{
		"ChatError":   ChatError("bad \x02 request"),
		"GeminiError": GeminiError(500, "bad \x02 request"),
	} {
		if !json.Valid([]byte(body)) {
			t.Errorf("%s produced invalid JSON: %s", name, body)
		}
	}
}
