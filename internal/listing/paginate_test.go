package listing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	items := numberedMembers(13)

	page1, total := Paginate(items, 6, 1)
	assert.Equal(t, 3, total)
	assert.Len(t, page1, 6)
	assert.Equal(t, "m01", page1[0].ID)

	page3, _ := Paginate(items, 6, 3)
	assert.Len(t, page3, 1)
	assert.Equal(t, "m13", page3[0].ID)

	page4, total := Paginate(items, 6, 4)
	assert.Empty(t, page4)
	assert.Equal(t, 3, total)

	page0, _ := Paginate(items, 6, 0)
	assert.Empty(t, page0)
}

func TestPaginateHugeValues(t *testing.T) {
	items := numberedMembers(7)

	page, total := Paginate(items, 2, math.MaxInt)
	assert.Empty(t, page)
	assert.Equal(t, 4, total)

	page, total = Paginate(items, math.MaxInt, 1)
	assert.Len(t, page, 7)
	assert.Equal(t, 1, total)

	page, _ = Paginate(items, math.MaxInt, 3)
	assert.Empty(t, page)

	page, _ = Paginate(items, 6, math.MaxInt/6+2)
	assert.Empty(t, page)

	page, _ = Paginate(items, 3, math.MinInt)
	assert.Empty(t, page)
}

func TestPaginateEmpty(t *testing.T) {
	page, total := Paginate([]Member{}, 6, 1)
	assert.Empty(t, page)
	assert.Equal(t, 1, total)

	page, total = Paginate[Member](nil, 5, 1)
	assert.NotNil(t, page)
	assert.Equal(t, 1, total)
}

func TestPaginateNonPositivePageSize(t *testing.T) {
	page, total := Paginate(numberedMembers(3), 0, 2)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"m02"}, ids(page, memberID))
}

func TestPaginateCoverage(t *testing.T) {
	for n := 0; n <= 20; n++ {
		items := numberedMembers(n)
		for _, size := range []int{1, 4, 5, 6, 7} {
			_, total := Paginate(items, size, 1)
			var joined []string
			for p := 1; p <= total; p++ {
				page, _ := Paginate(items, size, p)
				joined = append(joined, ids(page, memberID)...)
			}
			if n == 0 {
				assert.Empty(t, joined)
				continue
			}
			assert.Equal(t, ids(items, memberID), joined, "n=%d size=%d", n, size)
		}
	}
}

func TestPaginatePageCannotGrowIntoSource(t *testing.T) {
	items := numberedMembers(4)
	page, _ := Paginate(items, 2, 1)
	page = append(page, Member{ID: "intruder"})
	assert.Equal(t, "m03", items[2].ID)
	assert.Len(t, page, 3)
}
