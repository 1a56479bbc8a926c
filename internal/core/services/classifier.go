package services

import (
	"regexp"
	"strings"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
	"github.com/stitchworks/techpack-cli/internal/core/ports/driving"
)

// Ensure RuleClassifier implements the interface.
var _ driving.IntentClassifier = (*RuleClassifier)(nil)

// editPatterns match utterances that request a change to the tech pack.
// They are evaluated before question patterns so that an edit phrased as
// a question ("can you change X to Y?") still classifies as an edit.
var editPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(change|update|modify|set|replace|rename|adjust|revise)\b`),
	regexp.MustCompile(`(?i)\b(add|remove|delete|insert)\b.*\b(to|from|in)\b`),
	regexp.MustCompile(`(?i)\b(make|switch)\b.*\b(to|into)\b`),
	regexp.MustCompile(`(?i)\bshould be\b`),
	regexp.MustCompile(`(?i)\binstead of\b`),
}

// questionPatterns match interrogative utterances.
var questionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(what|which|who|where|when|why|how|is|are|was|were|do|does|did|can|could|would|will|should)\b`),
	regexp.MustCompile(`\?\s*$`),
}

// RuleClassifier classifies utterances with an ordered, deterministic
// rule list. First match wins; the default is chat.
type RuleClassifier struct{}

// NewRuleClassifier creates the pattern-based intent classifier.
func NewRuleClassifier() *RuleClassifier {
	return &RuleClassifier{}
}

// Classify returns the intent of the utterance.
func (c *RuleClassifier) Classify(utterance string) domain.Intent {
	trimmed := strings.TrimSpace(utterance)
	if trimmed == "" {
		return domain.IntentChat
	}

	for _, p := range editPatterns {
		if p.MatchString(trimmed) {
			return domain.IntentEdit
		}
	}
	for _, p := range questionPatterns {
		if p.MatchString(trimmed) {
			return domain.IntentQuestion
		}
	}
	return domain.IntentChat
}
