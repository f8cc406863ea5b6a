package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
)

// payload mirrors the expected upstream object. Language is kept raw so a
// missing or non-string value degrades to the default instead of failing the
// whole decode.
type payload struct {
	Language      json.RawMessage `json:"language"`
	CommentedCode string          `json:"commentedCode"`
}

const defaultLanguage = "plaintext"

// parseStrategy attempts to decode one raw upstream output. A strategy
// succeeds only when it yields a non-empty commentedCode.
type parseStrategy struct {
	name  string
	apply func(raw string) (payload, error)
}

// strategies are tried in order, short-circuiting on first success.
var strategies = []parseStrategy{
	{name: "direct", apply: parseDirect},
	{name: "extract", apply: parseExtracted},
	{name: "repair", apply: parseRepaired},
}

// recoverResult extracts a Result from the raw upstream text, applying the
// fallback strategies in sequence.
func recoverResult(raw string) (Result, error) {
	raw = stripFences(strings.TrimSpace(raw))

	var lastErr error
	for _, strategy := range strategies {
		decoded, errApply := strategy.apply(raw)
		if errApply != nil {
			lastErr = fmt.Errorf("%s: %w", strategy.name, errApply)
			continue
		}
		if decoded.CommentedCode == "" {
			lastErr = fmt.Errorf("%s: empty commentedCode", strategy.name)
			continue
		}
		return Result{
			Language:      languageOrDefault(decoded.Language),
			CommentedCode: unescapeDoubleEncoded(decoded.CommentedCode),
		}, nil
	}
	return Result{}, fmt.Errorf("%w: %v", ErrMalformedResponse, lastErr)
}

func parseDirect(raw string) (payload, error) {
	var decoded payload
	if errUnmarshal := json.Unmarshal([]byte(raw), &decoded); errUnmarshal != nil {
		return payload{}, errUnmarshal
	}
	return decoded, nil
}

// parseExtracted parses the substring between the first '{' and the last
// '}', recovering objects wrapped in explanatory prose.
func parseExtracted(raw string) (payload, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return payload{}, fmt.Errorf("no JSON object found")
	}
	return parseDirect(raw[start : end+1])
}

// parseRepaired re-escapes unescaped control characters and lone backslashes
// inside the commentedCode string value, then re-parses. This recovers the
// common upstream failure of emitting raw newlines inside the value.
func parseRepaired(raw string) (payload, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return payload{}, fmt.Errorf("no JSON object found")
	}
	for _, candidate := range repairCandidates(raw[start : end+1]) {
		decoded, errParse := parseDirect(candidate)
		if errParse == nil && decoded.CommentedCode != "" {
			return decoded, nil
		}
	}
	return payload{}, fmt.Errorf("commentedCode value not recoverable")
}

// repairCandidates yields repaired copies of the object, one per plausible
// end of the commentedCode string value. Key order is not guaranteed, so the
// value may close right before the final brace or at a quote followed by the
// next key; every quote with such a suffix is a candidate, and the caller
// keeps the first copy that decodes.
func repairCandidates(raw string) []string {
	keyIdx := strings.Index(raw, `"commentedCode"`)
	if keyIdx < 0 {
		return nil
	}
	rest := raw[keyIdx+len(`"commentedCode"`):]
	colonIdx := strings.Index(rest, ":")
	if colonIdx < 0 {
		return nil
	}
	openIdx := strings.Index(rest[colonIdx:], `"`)
	if openIdx < 0 {
		return nil
	}
	valueStart := keyIdx + len(`"commentedCode"`) + colonIdx + openIdx + 1

	closeBrace := strings.LastIndex(raw, "}")
	if closeBrace <= valueStart {
		return nil
	}

	var candidates []string
	for i := valueStart; i < closeBrace; i++ {
		if raw[i] != '"' {
			continue
		}
		suffix := strings.TrimSpace(raw[i+1 : closeBrace])
		if suffix != "" && !strings.HasPrefix(suffix, `,"`) {
			continue
		}
		var sb strings.Builder
		sb.WriteString(raw[:valueStart])
		sb.WriteString(escapeStringValue(raw[valueStart:i]))
		sb.WriteString(raw[i:])
		candidates = append(candidates, sb.String())
	}
	return candidates
}

// escapeStringValue makes the inner bytes of a JSON string value legal:
// valid escape sequences pass through, everything else gets escaped.
func escapeStringValue(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '\\':
			if i+1 < len(s) && isEscapeChar(s[i+1]) {
				sb.WriteByte(c)
				i++
				sb.WriteByte(s[i])
			} else {
				sb.WriteString(`\\`)
			}
		case c == '"':
			sb.WriteString(`\"`)
		case c == '\n':
			sb.WriteString(`\n`)
		case c == '\r':
			sb.WriteString(`\r`)
		case c == '\t':
			sb.WriteString(`\t`)
		case c < 0x20:
			fmt.Fprintf(&sb, `\u%04x`, c)
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func isEscapeChar(c byte) bool {
	switch c {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't', 'u':
		return true
	}
	return false
}

// stripFences removes a surrounding markdown code fence, with or without a
// language tag.
func stripFences(raw string) string {
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	body := raw[3:]
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	}
	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, "```")
	return strings.TrimSpace(body)
}

// languageOrDefault coerces the raw language value to a string, defaulting
// when it is absent, null, or not a string.
func languageOrDefault(raw json.RawMessage) string {
	if len(raw) == 0 {
		return defaultLanguage
	}
	var lang string
	if errUnmarshal := json.Unmarshal(raw, &lang); errUnmarshal != nil {
		return defaultLanguage
	}
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return defaultLanguage
	}
	return lang
}

// unescapeDoubleEncoded undoes one level of backslash escaping when the
// upstream double-encoded the value: literal \n or \t sequences with no real
// newline anywhere is the telltale. Code that legitimately contains escape
// sequences alongside real newlines is left untouched.
func unescapeDoubleEncoded(code string) string {
	if strings.ContainsRune(code, '\n') {
		return code
	}
	if !strings.Contains(code, `\n`) && !strings.Contains(code, `\t`) {
		return code
	}
	var sb strings.Builder
	sb.Grow(len(code))
	for i := 0; i < len(code); i++ {
		if code[i] == '\\' && i+1 < len(code) {
			switch code[i+1] {
			case 'n':
				sb.WriteByte('\n')
				i++
				continue
			case 't':
				sb.WriteByte('\t')
				i++
				continue
			case '"':
				sb.WriteByte('"')
				i++
				continue
			case '\\':
				sb.WriteByte('\\')
				i++
				continue
			}
		}
		sb.WriteByte(code[i])
	}
	return sb.String()
}
