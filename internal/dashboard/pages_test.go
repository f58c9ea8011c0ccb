package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPages_Order(t *testing.T) {
	pages := Pages()
	require.Len(t, pages, 5)

	titles := make([]string, len(pages))
	for i, p := range pages {
		titles[i] = p.Title
		assert.NotEmpty(t, p.Sections, p.Slug)
	}
	assert.Equal(t, []string{
		"Project Summary", "Data Study", "Price & Trade Predictor", "Hypothesis Validation", "Technical Overview",
	}, titles)
}

func TestFind(t *testing.T) {
	p, ok := Find(SlugTechnical)
	require.True(t, ok)
	assert.Equal(t, "Technical Overview", p.Title)

	_, ok = Find("nope")
	assert.False(t, ok)
}

func TestNewShell(t *testing.T) {
	shell := NewShell()
	assert.Equal(t, "TradeCare - Bitcoin ML Prediction Tool", shell.AppName)
	assert.Contains(t, shell.Banner, "EDUCATIONAL ONLY")
	require.Len(t, shell.Pages, 5)
	assert.Equal(t, SlugSummary, shell.Pages[0].Slug)
}

func TestStudyPage_Correlations(t *testing.T) {
	p, ok := Find(SlugStudy)
	require.True(t, ok)
	require.Len(t, p.Tables, 1)
	assert.Len(t, p.Tables[0].Rows, 14)
	assert.Equal(t, "+0.27", p.Metrics[0].Value)
}
