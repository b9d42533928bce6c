package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mytheresa/catalog-editor/document"
)

func TestEqual(t *testing.T) {
	one, otherOne, two := int64(1), int64(1), int64(2)
	price := 49.5

	t.Run("Scalars and pointers", func(t *testing.T) {
		assert.True(t, Equal("x", "x"))
		assert.False(t, Equal("x", "y"))
		assert.True(t, Equal(&one, &otherOne), "pointers compare by target")
		assert.False(t, Equal(&one, &two))
		assert.True(t, Equal[*int64](nil, nil))
		assert.False(t, Equal[*int64](nil, &one))
		assert.False(t, Equal[*float64](nil, &price), "null is not a number")
	})

	t.Run("Values behind any", func(t *testing.T) {
		assert.True(t, Equal[any]("x", "x"))
		assert.False(t, Equal[any](nil, ""), "null is not the empty string")
		assert.False(t, Equal[any](nil, false), "null is not false")
	})

	t.Run("Slices", func(t *testing.T) {
		assert.True(t, Equal([]int64{1, 2}, []int64{1, 2}))
		assert.False(t, Equal([]int64{1, 2}, []int64{2, 1}), "order sensitive")
		assert.False(t, Equal([]int64{1}, []int64{1, 1}))
		assert.True(t, Equal([]string{}, []string{}))
	})

	t.Run("Maps ignore insertion order", func(t *testing.T) {
		a := map[string]int{"a": 1, "b": 2}
		b := map[string]int{"b": 2, "a": 1}
		assert.True(t, Equal(a, b))
		assert.False(t, Equal(map[string]int{"a": 1}, map[string]int{"b": 1}))
	})

	t.Run("Structs compare field by field", func(t *testing.T) {
		a := document.AttributeEntry{Name: "Depth", Value: "12 inch", IsActive: boolPtr(true)}
		b := document.AttributeEntry{Name: "Depth", Value: "12 inch", IsActive: boolPtr(true)}
		assert.True(t, Equal(a, b))
		b.IsActive = nil
		assert.False(t, Equal(a, b), "pointer field nil versus set")
	})
}

func TestEqualIsReflexive(t *testing.T) {
	p := sampleProduct()
	assert.True(t, Equal(p, p))
	assert.True(t, Equal(*p, *p))
	assert.True(t, Equal(p, p.Clone()))
	v := BuildVariantPayload(&p.Variants[0])
	assert.True(t, Equal(v, v))
}

func TestCloneSharesNoMemory(t *testing.T) {
	p := sampleProduct()
	c := p.Clone()
	assert.True(t, Equal(p, c))

	*c.ID = 999
	c.MarketingOffers[0] = "changed"
	c.Variants[0].Images[0].URL = "other.jpg"
	c.Variants[0].Specifications[0].Name = "Renamed"
	*c.Variants[0].IsActive = !*c.Variants[0].IsActive

	assert.NotEqual(t, int64(999), *p.ID)
	assert.NotEqual(t, "changed", p.MarketingOffers[0])
	assert.NotEqual(t, "other.jpg", p.Variants[0].Images[0].URL)
	assert.NotEqual(t, "Renamed", p.Variants[0].Specifications[0].Name)
	assert.False(t, Equal(p, c))

	var nilProduct *Product
	assert.Nil(t, nilProduct.Clone())
}
