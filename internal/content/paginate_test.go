package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func seq(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

func TestPaginate(t *testing.T) {
	items := seq(12)

	p := Paginate(items, 1, 5)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, p.Items)
	assert.Equal(t, 3, p.TotalPages)
	assert.False(t, p.HasPrev())
	assert.True(t, p.HasNext())

	p = Paginate(items, 3, 5)
	assert.Equal(t, []int{10, 11}, p.Items)
	assert.True(t, p.HasPrev())
	assert.False(t, p.HasNext())
	assert.Equal(t, 2, p.Prev())
}

func TestPaginate_OutOfRangeIsEmpty(t *testing.T) {
	items := seq(7)

	for _, page := range []int{-1, 0, 3, 100} {
		p := Paginate(items, page, 5)
		assert.NotNil(t, p.Items)
		assert.Empty(t, p.Items, "page %d", page)
		assert.Equal(t, 2, p.TotalPages)
	}
}

func TestPaginate_HugePageDoesNotWrap(t *testing.T) {
	p := Paginate([]int{1, 2, 3}, (1<<61)+1, 5)
	assert.NotNil(t, p.Items)
	assert.Empty(t, p.Items)

	p = Paginate(seq(8), (1<<62)+1, 4)
	assert.Empty(t, p.Items)
	assert.Equal(t, 2, p.TotalPages)
}

func TestPaginate_PagesPartitionInput(t *testing.T) {
	for n := 1; n <= 23; n++ {
		for size := 1; size <= 7; size++ {
			items := seq(n)
			total := TotalPages(n, size)

			var joined []int
			for page := 1; page <= total; page++ {
				p := Paginate(items, page, size)
				assert.NotEmpty(t, p.Items)
				assert.LessOrEqual(t, len(p.Items), size)
				joined = append(joined, p.Items...)
			}
			assert.Equal(t, items, joined, "n=%d size=%d", n, size)
		}
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 5))
	assert.Equal(t, 1, TotalPages(5, 5))
	assert.Equal(t, 2, TotalPages(6, 5))
	assert.Equal(t, 0, TotalPages(6, 0))
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 1, ClampPage(-4, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 3, ClampPage(9, 3))
	assert.Equal(t, 1, ClampPage(5, 0))
}
