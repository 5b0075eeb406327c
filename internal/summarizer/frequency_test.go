package summarizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize_PicksFrequentSentencesInOrder(t *testing.T) {
	text := "My sister stole my wedding dress. The weather was nice. " +
		"The wedding dress was my grandmother's. Birds sang outside."

	got, err := NewFrequencySummarizer().Summarize(text, 2)
	require.NoError(t, err)
	assert.Equal(t, "My sister stole my wedding dress. The wedding dress was my grandmother's.", got)
}

func TestSummarize_NoPunctuation(t *testing.T) {
	got, err := NewFrequencySummarizer().Summarize("  just words here  ", 2)
	require.NoError(t, err)
	assert.Equal(t, "just words here", got)
}

func TestSummarize_FewerSentencesThanRequested(t *testing.T) {
	got, err := NewFrequencySummarizer().Summarize("One sentence only!", 5)
	require.NoError(t, err)
	assert.Equal(t, "One sentence only!", got)
}

func TestSummarize_DefaultLength(t *testing.T) {
	got, err := NewFrequencySummarizer().Summarize("A b c. D e f. G h i.", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}
