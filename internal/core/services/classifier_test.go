package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stitchworks/techpack-cli/internal/core/domain"
)

func TestRuleClassifier_Classify(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		expected  domain.Intent
	}{
		{
			name:      "change verb is an edit",
			utterance: "change the product name to Aria",
			expected:  domain.IntentEdit,
		},
		{
			name:      "update verb is an edit",
			utterance: "update the price",
			expected:  domain.IntentEdit,
		},
		{
			name:      "add-to is an edit",
			utterance: "add leather to the materials",
			expected:  domain.IntentEdit,
		},
		{
			name:      "remove-from is an edit",
			utterance: "remove the zipper from hardware",
			expected:  domain.IntentEdit,
		},
		{
			name:      "make-into is an edit",
			utterance: "make the packaging into a gift box",
			expected:  domain.IntentEdit,
		},
		{
			name:      "should be is an edit",
			utterance: "the lead time should be 6 weeks",
			expected:  domain.IntentEdit,
		},
		{
			name:      "edit phrased as question stays an edit",
			utterance: "Can you change the product name to Aria?",
			expected:  domain.IntentEdit,
		},
		{
			name:      "what question",
			utterance: "what is the retail price",
			expected:  domain.IntentQuestion,
		},
		{
			name:      "trailing question mark",
			utterance: "the materials look right to you?",
			expected:  domain.IntentQuestion,
		},
		{
			name:      "how question",
			utterance: "How are the dimensions measured",
			expected:  domain.IntentQuestion,
		},
		{
			name:      "greeting is chat",
			utterance: "hello there",
			expected:  domain.IntentChat,
		},
		{
			name:      "statement is chat",
			utterance: "nice work on the overview",
			expected:  domain.IntentChat,
		},
		{
			name:      "empty is chat",
			utterance: "   ",
			expected:  domain.IntentChat,
		},
	}

	c := NewRuleClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, c.Classify(tt.utterance))
		})
	}
}
