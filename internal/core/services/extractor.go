package services

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
	"github.com/stitchworks/techpack-cli/internal/logger"
)

// editBlockPattern matches a fenced block tagged as an edit-action
// payload in completion output.
var editBlockPattern = regexp.MustCompile("(?s)```techpack-edit\\s*\n(.*?)```")

// ParseError reports a malformed edit-action payload. Callers convert it
// into "no edit proposed" explicitly; it must never propagate as an
// application error, since absence of a valid edit is a normal outcome of
// free-text generation.
type ParseError struct {
	// Reason describes what was malformed.
	Reason string

	// Err is the underlying error, if any.
	Err error
}

// Error implements error.
func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("edit action parse: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("edit action parse: %s", e.Reason)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error { return e.Err }

// editPayload is the wire format of the fenced edit-action block.
type editPayload struct {
	Type        string `json:"type"`
	Section     string `json:"section"`
	Field       string `json:"field,omitempty"`
	Value       any    `json:"value"`
	Description string `json:"description,omitempty"`
}

// Extractor parses edit actions out of completion-service responses.
type Extractor struct{}

// NewExtractor creates an edit-action extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract locates the fenced edit-action block in completion text and
// parses it into a validated, coerced EditAction.
//
// A response without a block returns (nil, nil): no edit was proposed,
// which is not an error. A malformed block returns (nil, *ParseError).
func (e *Extractor) Extract(completionText string) (*domain.EditAction, error) {
	m := editBlockPattern.FindStringSubmatch(completionText)
	if m == nil {
		return nil, nil
	}

	var payload editPayload
	if err := json.Unmarshal([]byte(m[1]), &payload); err != nil {
		return nil, &ParseError{Reason: "malformed payload", Err: err}
	}

	if payload.Type != "edit" {
		return nil, &ParseError{Reason: fmt.Sprintf("unexpected type %q", payload.Type)}
	}
	if !domain.KnownSection(payload.Section) {
		return nil, &ParseError{Reason: fmt.Sprintf("unknown section %q", payload.Section)}
	}
	if payload.Value == nil {
		return nil, &ParseError{Reason: "missing value"}
	}

	value := domain.Coerce(payload.Section, payload.Field, payload.Value)
	logger.Debug("extractor: parsed edit for %s (field=%q)", payload.Section, payload.Field)

	return &domain.EditAction{
		Section:     payload.Section,
		Field:       payload.Field,
		Value:       value,
		Description: payload.Description,
	}, nil
}

// StripEditBlock removes the fenced edit-action block from completion
// text, leaving the conversational reply for the transcript.
func StripEditBlock(completionText string) string {
	stripped := editBlockPattern.ReplaceAllString(completionText, "")
	return strings.TrimSpace(stripped)
}
