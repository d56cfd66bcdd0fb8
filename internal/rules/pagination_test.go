package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginateBelowThresholdReturnsEverything(t *testing.T) {
	items := seq(49)

	for _, size := range []int{1, 10, 25} {
		page := Paginate(items, 1, PageOptions{PageSize: size})
		assert.Len(t, page.Items, 49)
		assert.Equal(t, 1, page.TotalPages)
		assert.False(t, page.Paginated)
	}
}

func TestPaginateSixtyPlayersThirdPage(t *testing.T) {
	page := Paginate(seq(60), 3, PageOptions{})

	require.True(t, page.Paginated)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, []int{50, 51, 52, 53, 54, 55, 56, 57, 58, 59}, page.Items)
	assert.False(t, page.HasNext())
	assert.True(t, page.HasPrev())
}

func TestPaginateAtThreshold(t *testing.T) {
	page := Paginate(seq(50), 1, PageOptions{})

	assert.True(t, page.Paginated)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Items, 25)
}

func TestPaginateNeverReturnsEmptyPageInRange(t *testing.T) {
	for total := 50; total <= 140; total++ {
		items := seq(total)
		first := Paginate(items, 1, PageOptions{})
		for p := 1; p <= first.TotalPages; p++ {
			page := Paginate(items, p, PageOptions{})
			require.NotEmpty(t, page.Items, "total=%d page=%d", total, p)
		}
	}
}

func TestPaginateClampsOutOfRange(t *testing.T) {
	items := seq(60)

	assert.Equal(t, 1, Paginate(items, 0, PageOptions{}).Page)
	assert.Equal(t, 1, Paginate(items, -4, PageOptions{}).Page)
	assert.Equal(t, 3, Paginate(items, 9, PageOptions{}).Page)
}

func TestPaginateCustomOptions(t *testing.T) {
	page := Paginate(seq(12), 2, PageOptions{PageSize: 5, Threshold: 10})

	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, []int{5, 6, 7, 8, 9}, page.Items)
}
