package document

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildIndex(t *testing.T) {
	idx := BuildIndex([]TemplateRow{
		{Section: SectionFeatures, FieldName: "Big", SortOrder: math.MaxInt},
		{Section: SectionFeatures, FieldName: "Small", SortOrder: -5},
		{Section: SectionFeatures, FieldName: "Least", SortOrder: math.MinInt},
		{Section: SectionFeatures, FieldName: "Tie", SortOrder: -5},
		{Section: "colours", FieldName: "Red", SortOrder: 0},
	})

	assert.Len(t, idx, len(Sections), "unknown sections are dropped")
	assert.Equal(t, []TemplateEntry{
		{FieldName: "Least", SortOrder: math.MinInt},
		{FieldName: "Small", SortOrder: -5},
		{FieldName: "Tie", SortOrder: -5},
		{FieldName: "Big", SortOrder: math.MaxInt},
	}, idx.Template(SectionFeatures))
	assert.Empty(t, idx.Template(SectionUserGuide))
	assert.NotNil(t, idx.Template(SectionUserGuide))
}
