package formatting_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/superclaims/pkg/formatting"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
		wantErr error
	}{
		{
			name:    "bare object",
			content: `{"a":1}`,
			want:    `{"a":1}`,
		},
		{
			name:    "leading and trailing prose",
			content: "Sure! Here is the JSON:\n{\"doctype\":\"bill\"}\nLet me know if you need more.",
			want:    `{"doctype":"bill"}`,
		},
		{
			name:    "markdown fence",
			content: "```json\n{\"valid\":true}\n```",
			want:    `{"valid":true}`,
		},
		{
			name:    "nested objects",
			content: `result: {"a":{"b":{"c":1}},"d":2} done`,
			want:    `{"a":{"b":{"c":1}},"d":2}`,
		},
		{
			name:    "braces inside string literal",
			content: `{"note":"use {curly} braces","n":1}`,
			want:    `{"note":"use {curly} braces","n":1}`,
		},
		{
			name:    "escaped quote before brace in string",
			content: `{"note":"say \"}\" loudly"} tail`,
			want:    `{"note":"say \"}\" loudly"}`,
		},
		{
			name:    "first of two objects",
			content: `{"first":1} and then {"second":2}`,
			want:    `{"first":1}`,
		},
		{
			name:    "no braces",
			content: "I could not read the document.",
			wantErr: formatting.ErrNoJSONObject,
		},
		{
			name:    "empty",
			content: "",
			wantErr: formatting.ErrNoJSONObject,
		},
		{
			name:    "unterminated",
			content: `{"a":[1,2`,
			wantErr: formatting.ErrNoJSONObject,
		},
		{
			name:    "unclosed brace in prose",
			content: `Use {field names as keys. {"doctype":"bill","confidence":0.7}`,
			want:    `{"doctype":"bill","confidence":0.7}`,
		},
		{
			name:    "unterminated outer object",
			content: `{"a":{"b":1}`,
			want:    `{"b":1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ExtractObject(tt.content)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractObject error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExtractObject = %q, want %q", got, tt.want)
			}
		})
	}
}

type verdict struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

func TestParse(t *testing.T) {
	t.Run("wrapped object", func(t *testing.T) {
		got, err := formatting.Parse[verdict]("Result:\n{\"valid\":false,\"issues\":[\"missing idcard\"]}\nThanks")
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got.Valid || len(got.Issues) != 1 || got.Issues[0] != "missing idcard" {
			t.Errorf("Parse = %+v", got)
		}
	})

	t.Run("parses into map", func(t *testing.T) {
		got, err := formatting.Parse[map[string]any](`ok {"key":"value"}`)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if got["key"] != "value" {
			t.Errorf("got[key] = %v, want value", got["key"])
		}
	})

	t.Run("no object returns ErrNoJSONObject", func(t *testing.T) {
		_, err := formatting.Parse[verdict]("garbage")
		if !errors.Is(err, formatting.ErrNoJSONObject) {
			t.Errorf("error = %v, want ErrNoJSONObject", err)
		}
	})

	t.Run("invalid object returns ErrParseFailed", func(t *testing.T) {
		_, err := formatting.Parse[verdict](`{valid: yes}`)
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("skips undecodable candidate", func(t *testing.T) {
		got, err := formatting.Parse[verdict](`Fields are {valid, issues}: {"valid":true,"issues":[]}`)
		if err != nil {
			t.Fatalf("Parse error: %v", err)
		}
		if !got.Valid || len(got.Issues) != 0 {
			t.Errorf("Parse = %+v", got)
		}
	})

	t.Run("does not fall back to nested object", func(t *testing.T) {
		_, err := formatting.Parse[map[string]any](`{"a": bad, "b": {"c": 1}}`)
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}
	})

	t.Run("type mismatch returns ErrParseFailed", func(t *testing.T) {
		_, err := formatting.Parse[verdict](`{"valid":"maybe"}`)
		if !errors.Is(err, formatting.ErrParseFailed) {
			t.Errorf("error = %v, want ErrParseFailed", err)
		}
	})
}
