// Package extract normalizes tool-call payloads. Servers in the wild disagree
// on response shape: some wrap results in a content list whose entries carry a
// text field (itself often JSON-encoded), some return a flat object, some a
// bare string. Extraction tries an explicit ordered list of strategies and
// uses the first that matches. The result is a lossy, advisory view; it never
// changes the outcome of the call that produced the payload.
package extract

import (
	"encoding/json"
	"fmt"

	"github.com/mcpcall/mcpcall/internal/errors"
)

// Media is one decoded binary blob found embedded in a payload.
type Media struct {
	// MediaType is taken from the data URL when present, otherwise sniffed
	// from the decoded bytes.
	MediaType string

	// Data is the decoded blob.
	Data []byte
}

// Payload is the normalized view of a successful tool-call response.
type Payload struct {
	// PrimaryText is the best-effort textual result. Empty when no strategy
	// matched a text value.
	PrimaryText string

	// Media holds decoded embedded blobs in encounter order.
	Media []Media
}

// strategy attempts to locate the primary text in a decoded payload.
// Each strategy returns a definite match-or-no-match; no strategy may panic
// or guess.
type strategy struct {
	name  string
	apply func(v any) (string, bool)
}

// Strategies are tried in order; the first match wins. The content wrapper
// must run before the flat-object fallback, which matches any object.
var strategies = []strategy{
	{name: "content-wrapper", apply: contentText},
	{name: "flat-object", apply: flatText},
	{name: "bare-string", apply: bareString},
}

// FromPayload normalizes a successful call payload.
// A body that is not valid JSON yields ErrMalformedResponse: the call itself
// already succeeded at the transport level, and retrying cannot fix malformed
// content, so this error is terminal and surfaced only here.
func FromPayload(raw []byte) (*Payload, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrMalformedResponse, err)
	}

	p := &Payload{
		Media: ScanMedia(raw),
	}

	for _, s := range strategies {
		if text, ok := s.apply(v); ok {
			p.PrimaryText = text
			break
		}
	}

	return p, nil
}

// contentText matches the wrapper shape {"content": obj-or-list} where the
// first entry carries a "text" string. The text value is returned verbatim;
// it is frequently JSON-encoded itself and the caller decides whether to
// decode it further.
func contentText(v any) (string, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return "", false
	}

	content, ok := obj["content"]
	if !ok {
		return "", false
	}

	var entry map[string]any
	switch c := content.(type) {
	case []any:
		if len(c) == 0 {
			return "", false
		}
		entry, ok = c[0].(map[string]any)
		if !ok {
			return "", false
		}
	case map[string]any:
		entry = c
	default:
		return "", false
	}

	text, ok := entry["text"].(string)
	return text, ok
}

// flatText matches a flat object carrying its data at the top level. A
// conventional text-bearing field is preferred; otherwise the whole object is
// re-encoded so the caller still gets a faithful textual view.
func flatText(v any) (string, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return "", false
	}

	for _, key := range []string{"text", "message", "result"} {
		if s, ok := obj[key].(string); ok {
			return s, true
		}
	}

	encoded, err := json.Marshal(obj)
	if err != nil {
		return "", false
	}
	return string(encoded), true
}

// bareString matches a payload that is a single JSON string.
func bareString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}
