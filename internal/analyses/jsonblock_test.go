package analyses

import (
	"errors"
	"testing"
)

func TestExtractJSONBlockFencedBlock(t *testing.T) {
	raw := "여기 결과입니다.\n```json\n{\"overallScore\": 80}\n```\n감사합니다."
	got, err := ExtractJSONBlock(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"overallScore": 80}` {
		t.Fatalf("got %q", got)
	}
}

func TestExtractJSONBlockFencedWithoutTag(t *testing.T) {
	raw := "```\n{\"a\": 1}\n```"
	got, err := ExtractJSONBlock(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"a": 1}` {
		t.Fatalf("got %q", got)
	}
}

func TestExtractJSONBlockBareObject(t *testing.T) {
	raw := "prefix text {\"a\": {\"b\": 2}} suffix"
	got, err := ExtractJSONBlock(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"a": {"b": 2}}` {
		t.Fatalf("got %q", got)
	}
}

func TestExtractJSONBlockBracesInsideStrings(t *testing.T) {
	raw := `{"content": "중괄호 { 포함 } 문자열", "quote": "escaped \" here"}`
	got, err := ExtractJSONBlock(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != raw {
		t.Fatalf("got %q", got)
	}
}

func TestExtractJSONBlockNoObject(t *testing.T) {
	_, err := ExtractJSONBlock("죄송합니다. 분석할 수 없습니다.")
	if !errors.Is(err, ErrNoJSONBlock) {
		t.Fatalf("expected ErrNoJSONBlock, got %v", err)
	}
}

func TestExtractJSONBlockUnbalanced(t *testing.T) {
	_, err := ExtractJSONBlock(`{"a": 1`)
	if !errors.Is(err, ErrNoJSONBlock) {
		t.Fatalf("expected ErrNoJSONBlock, got %v", err)
	}
}

func TestExtractJSONBlockAmbiguous(t *testing.T) {
	_, err := ExtractJSONBlock(`{"a": 1} and also {"b": 2}`)
	if !errors.Is(err, ErrAmbiguousJSON) {
		t.Fatalf("expected ErrAmbiguousJSON, got %v", err)
	}
}

func TestExtractJSONBlockFencedWinsOverBare(t *testing.T) {
	raw := "{\"outside\": true}\n```json\n{\"inside\": true}\n```"
	got, err := ExtractJSONBlock(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"inside": true}` {
		t.Fatalf("got %q", got)
	}
}
