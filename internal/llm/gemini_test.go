package llm

import (
	"testing"

	"google.golang.org/genai"
)

func TestMapGeminiStopReason(t *testing.T) {
	stopped := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: "STOP"}},
	}
	if got := mapGeminiStopReason(stopped); got != "end" {
		t.Errorf("expected 'end' for STOP, got %q", got)
	}

	truncated := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: "MAX_TOKENS"}},
	}
	if got := mapGeminiStopReason(truncated); got != "max_tokens" {
		t.Errorf("expected 'max_tokens' for MAX_TOKENS, got %q", got)
	}

	empty := &genai.GenerateContentResponse{}
	if got := mapGeminiStopReason(empty); got != "end" {
		t.Errorf("expected 'end' for no candidates, got %q", got)
	}
}

func TestGeminiModelMapping(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"gemini-flash", "gemini-2.0-flash"},
		{"gemini-pro", "gemini-2.5-pro"},
		{"gemini-2.0-flash", "gemini-2.0-flash"}, // Pass-through
	}
	for _, tt := range tests {
		got := resolveModel(tt.input, geminiModels)
		if got != tt.expected {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestBuildGeminiSchema(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"score_level": map[string]any{
				"type": "string",
				"enum": []any{"poor", "adequate", "excellent"},
			},
			"confidence": map[string]any{"type": "number"},
			"rationale":  map[string]any{"type": "string"},
			"citations": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"score_level", "confidence", "rationale"},
	}

	schema := buildGeminiSchema(def)

	if schema.Type != "OBJECT" {
		t.Fatalf("expected OBJECT type, got %s", schema.Type)
	}
	if len(schema.Properties) != 4 {
		t.Fatalf("expected 4 properties, got %d", len(schema.Properties))
	}
	if schema.Properties["confidence"].Type != "NUMBER" {
		t.Fatalf("expected NUMBER for confidence, got %s", schema.Properties["confidence"].Type)
	}
	if schema.Properties["rationale"].Type != "STRING" {
		t.Fatalf("expected STRING for rationale, got %s", schema.Properties["rationale"].Type)
	}
	if len(schema.Properties["score_level"].Enum) != 3 {
		t.Fatalf("expected 3 enum values, got %d", len(schema.Properties["score_level"].Enum))
	}
	if schema.Properties["citations"].Type != "ARRAY" {
		t.Fatalf("expected ARRAY for citations, got %s", schema.Properties["citations"].Type)
	}
	if schema.Properties["citations"].Items.Type != "STRING" {
		t.Fatalf("expected STRING for citations items, got %s", schema.Properties["citations"].Items.Type)
	}
	if len(schema.Required) != 3 {
		t.Fatalf("expected 3 required fields, got %d", len(schema.Required))
	}
}

func TestBuildGeminiSchema_NestedObjects(t *testing.T) {
	def := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"rubric": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"criteria": map[string]any{"type": "string"},
					"example":  map[string]any{"type": "string"},
				},
				"required": []any{"criteria", "example"},
			},
		},
		"required": []any{"rubric"},
	}

	schema := buildGeminiSchema(def)

	rubric := schema.Properties["rubric"]
	if rubric == nil {
		t.Fatal("expected rubric property")
	}
	if rubric.Type != "OBJECT" {
		t.Fatalf("expected OBJECT for rubric, got %s", rubric.Type)
	}
	if len(rubric.Properties) != 2 {
		t.Fatalf("expected 2 nested properties, got %d", len(rubric.Properties))
	}
	if len(rubric.Required) != 2 {
		t.Fatalf("expected 2 nested required fields, got %d", len(rubric.Required))
	}
}
