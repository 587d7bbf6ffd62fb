package product

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID)
	}
	return out
}

func TestApply_Search(t *testing.T) {
	catalog := DemoCatalog()

	t.Run("CaseInsensitive", func(t *testing.T) {
		upper := Apply(catalog, Query{Search: "SILK"})
		lower := Apply(catalog, Query{Search: "silk"})

		assert.Equal(t, ids(lower), ids(upper))
		assert.Equal(t, []string{"1"}, ids(lower))
	})

	t.Run("MatchesDescription", func(t *testing.T) {
		got := Apply(catalog, Query{Search: "floral"})
		assert.Equal(t, []string{"2"}, ids(got))
	})

	t.Run("MatchesTag", func(t *testing.T) {
		got := Apply(catalog, Query{Search: "home-decor", Sort: SortPriceAsc})
		assert.Equal(t, []string{"5", "2"}, ids(got))
	})

	t.Run("NoMatch", func(t *testing.T) {
		assert.Empty(t, Apply(catalog, Query{Search: "bicycle"}))
	})
}

func TestApply_CategoryAndPrice(t *testing.T) {
	catalog := DemoCatalog()

	t.Run("Category", func(t *testing.T) {
		got := Apply(catalog, Query{Category: "Textiles"})
		assert.ElementsMatch(t, []string{"1", "5"}, ids(got))
	})

	t.Run("InclusiveBounds", func(t *testing.T) {
		got := Apply(catalog, Query{MinPrice: ptr(1800.0), MaxPrice: ptr(2800.0), Sort: SortPriceAsc})
		assert.Equal(t, []string{"3", "2", "6"}, ids(got))
	})

	t.Run("MinOnly", func(t *testing.T) {
		got := Apply(catalog, Query{MinPrice: ptr(3200.0)})
		assert.ElementsMatch(t, []string{"1", "4"}, ids(got))
	})

	t.Run("MaxOnly", func(t *testing.T) {
		got := Apply(catalog, Query{MaxPrice: ptr(1200.0)})
		assert.Equal(t, []string{"5"}, ids(got))
	})

	t.Run("StagesCompose", func(t *testing.T) {
		got := Apply(catalog, Query{Search: "traditional", Category: "Textiles", MaxPrice: ptr(9000.0)})
		assert.Equal(t, []string{"1"}, ids(got))
	})
}

func TestApply_Sort(t *testing.T) {
	catalog := DemoCatalog()

	t.Run("DefaultIsNewest", func(t *testing.T) {
		got := Apply(catalog, Query{})
		assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(got))
	})

	t.Run("AscendingIsReverseOfDescending", func(t *testing.T) {
		asc := ids(Apply(catalog, Query{Sort: SortPriceAsc}))
		desc := ids(Apply(catalog, Query{Sort: SortPriceDesc}))

		reversed := make([]string, len(desc))
		for i, id := range desc {
			reversed[len(desc)-1-i] = id
		}
		assert.Equal(t, asc, reversed)
		assert.Equal(t, []string{"5", "3", "2", "6", "4", "1"}, asc)
	})

	t.Run("RatingKeepsOriginalOrderOnTies", func(t *testing.T) {
		got := Apply(catalog, Query{Sort: SortRating})
		// 1 and 6 are both rated 4.8; 1 comes first in the input.
		assert.Equal(t, []string{"3", "1", "6", "4", "2", "5"}, ids(got))
	})

	t.Run("NewestUsesCreatedAt", func(t *testing.T) {
		older := Product{ID: "a", CreatedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}
		newer := Product{ID: "b", CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}

		got := Apply([]Product{older, newer}, Query{Sort: SortNewest})
		assert.Equal(t, []string{"b", "a"}, ids(got))
	})
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	catalog := DemoCatalog()
	before := ids(catalog)

	got := Apply(catalog, Query{Sort: SortPriceAsc})
	got[0].Tags[0] = "changed"

	assert.Equal(t, before, ids(catalog))
	assert.NotEqual(t, "changed", catalog[4].Tags[0])
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortPriceAsc, ParseSort("price-low"))
	assert.Equal(t, SortPriceAsc, ParseSort("PRICE_ASC"))
	assert.Equal(t, SortPriceDesc, ParseSort("price-high"))
	assert.Equal(t, SortRating, ParseSort("rating"))
	assert.Equal(t, SortNewest, ParseSort(""))
	assert.Equal(t, SortNewest, ParseSort("bogus"))
}
