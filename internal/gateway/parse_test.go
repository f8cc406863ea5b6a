package gateway

import (
	"errors"
	"testing"
)

func TestRecoverResultDirectParse(t *testing.T) {
	result, errRecover := recoverResult(`{"language":"python","commentedCode":"x=1"}`)
	if errRecover != nil {
		t.Fatalf("expected no error, got %v", errRecover)
	}
	if result.Language != "python" {
		t.Fatalf("expected language=python, got %q", result.Language)
	}
	if result.CommentedCode != "x=1" {
		t.Fatalf("expected commentedCode=x=1, got %q", result.CommentedCode)
	}
}

func TestRecoverResultExtractsFromProse(t *testing.T) {
	raw := "Sure! Here is the annotated snippet:\n" +
		`{"language":"go","commentedCode":"// add\nx := 1"}` +
		"\nHope that helps!"

	result, errRecover := recoverResult(raw)
	if errRecover != nil {
		t.Fatalf("expected no error, got %v", errRecover)
	}
	if result.Language != "go" {
		t.Fatalf("expected language=go, got %q", result.Language)
	}
	if result.CommentedCode != "// add\nx := 1" {
		t.Fatalf("unexpected commentedCode: %q", result.CommentedCode)
	}
}

func TestRecoverResultRepairsRawNewlines(t *testing.T) {
	raw := "{\"language\":\"go\",\"commentedCode\":\"x := 1\n// done\"}"

	result, errRecover := recoverResult(raw)
	if errRecover != nil {
		t.Fatalf("expected repair pass to recover, got %v", errRecover)
	}
	if result.CommentedCode != "x := 1\n// done" {
		t.Fatalf("unexpected commentedCode: %q", result.CommentedCode)
	}
}

func TestRecoverResultRepairsWhenCommentedCodeComesFirst(t *testing.T) {
	raw := "{\"commentedCode\":\"x := 1\n// done\",\"language\":\"go\"}"

	result, errRecover := recoverResult(raw)
	if errRecover != nil {
		t.Fatalf("expected repair pass to recover, got %v", errRecover)
	}
	if result.CommentedCode != "x := 1\n// done" {
		t.Fatalf("unexpected commentedCode: %q", result.CommentedCode)
	}
	if result.Language != "go" {
		t.Fatalf("expected language=go, got %q", result.Language)
	}
}

func TestRecoverResultRepairsValuesContainingQuotes(t *testing.T) {
	raw := "{\"commentedCode\":\"printf(\\\"hi\\\");\n// greet\",\"language\":\"c\"}"

	result, errRecover := recoverResult(raw)
	if errRecover != nil {
		t.Fatalf("expected repair pass to recover, got %v", errRecover)
	}
	if result.CommentedCode != "printf(\"hi\");\n// greet" {
		t.Fatalf("unexpected commentedCode: %q", result.CommentedCode)
	}
	if result.Language != "c" {
		t.Fatalf("expected language=c, got %q", result.Language)
	}
}

func TestRecoverResultStripsMarkdownFences(t *testing.T) {
	raw := "```json\n{\"language\":\"js\",\"commentedCode\":\"// hi\"}\n```"

	result, errRecover := recoverResult(raw)
	if errRecover != nil {
		t.Fatalf("expected no error, got %v", errRecover)
	}
	if result.Language != "js" {
		t.Fatalf("expected language=js, got %q", result.Language)
	}
}

func TestRecoverResultDefaultsLanguage(t *testing.T) {
	cases := map[string]string{
		"missing":    `{"commentedCode":"x"}`,
		"null":       `{"language":null,"commentedCode":"x"}`,
		"non-string": `{"language":42,"commentedCode":"x"}`,
	}
	for name, raw := range cases {
		result, errRecover := recoverResult(raw)
		if errRecover != nil {
			t.Fatalf("%s: expected no error, got %v", name, errRecover)
		}
		if result.Language != "plaintext" {
			t.Fatalf("%s: expected plaintext default, got %q", name, result.Language)
		}
	}
}

func TestRecoverResultUnescapesDoubleEncodedCode(t *testing.T) {
	result, errRecover := recoverResult(`{"language":"go","commentedCode":"a := 1\\n// b"}`)
	if errRecover != nil {
		t.Fatalf("expected no error, got %v", errRecover)
	}
	if result.CommentedCode != "a := 1\n// b" {
		t.Fatalf("expected double-encoded newline unescaped, got %q", result.CommentedCode)
	}
}

func TestRecoverResultKeepsEscapesWhenRealNewlinesPresent(t *testing.T) {
	result, errRecover := recoverResult(`{"language":"c","commentedCode":"printf(\"\\n\");\n// prints newline"}`)
	if errRecover != nil {
		t.Fatalf("expected no error, got %v", errRecover)
	}
	if result.CommentedCode != "printf(\"\\n\");\n// prints newline" {
		t.Fatalf("expected escape sequence preserved, got %q", result.CommentedCode)
	}
}

func TestRecoverResultRejectsEmptyCommentedCode(t *testing.T) {
	_, errRecover := recoverResult(`{"language":"go","commentedCode":""}`)
	if !errors.Is(errRecover, ErrMalformedResponse) {
		t.Fatalf("expected malformed response error, got %v", errRecover)
	}
}

func TestRecoverResultRejectsUnrecoverableOutput(t *testing.T) {
	_, errRecover := recoverResult("I cannot annotate that snippet.")
	if !errors.Is(errRecover, ErrMalformedResponse) {
		t.Fatalf("expected malformed response error, got %v", errRecover)
	}
}
