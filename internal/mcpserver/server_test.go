package mcpserver

import (
	"errors"
	"math"
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
	five := seq(5)
	tests := []struct {
		name          string
		items         []int
		offset, limit int
		want          []int
	}{
		{"zero limit uses default", five, 0, 0, five},
		{"negative limit uses default", five, 0, -3, five},
		{"first page", five, 0, 2, []int{0, 1}},
		{"middle page", five, 2, 2, []int{2, 3}},
		{"short last page", five, 3, 10, []int{3, 4}},
		{"offset past end", five, 5, 1, nil},
		{"negative offset", five, -1, 1, nil},
		{"no items", nil, 0, 1, nil},
		{"limit near max int", five, 1, math.MaxInt, []int{1, 2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, paginate(tt.items, tt.offset, tt.limit))
		})
	}
}

func TestPaginate_Bounds(t *testing.T) {
	items := seq(cfg.MaxLimit + 50)
	assert.Len(t, paginate(items, 0, 0), cfg.ResultLimit)
	assert.Len(t, paginate(items, 0, cfg.MaxLimit+50), cfg.MaxLimit)
}

func TestSanitizeError(t *testing.T) {
	assert.Empty(t, sanitizeError(nil))
	assert.Equal(t, "unexpected token at line 3",
		sanitizeError(errors.New("unexpected token at line 3")))
	assert.Equal(t, "document: failed to read file <path>: permission denied",
		sanitizeError(errors.New("document: failed to read file /srv/specs/api.yaml: permission denied")))
	assert.Equal(t, "cannot compare <path> and <path>",
		sanitizeError(errors.New("cannot compare /tmp/one.json and /home/me/two.json")))
}

func TestValidateGroupBy(t *testing.T) {
	assert.NoError(t, validateGroupBy("", groupByValues))
	assert.NoError(t, validateGroupBy("rule", groupByValues))

	err := validateGroupBy("path", groupByValues)
	assert.EqualError(t, err, `invalid group_by value "path"; valid values: code, rule, severity`)
}

func TestGroupAndSort(t *testing.T) {
	got := groupAndSort([]string{"b", "a", "b", "c", "a", "b"}, func(s string) []string {
		return []string{s}
	})
	assert.Equal(t, []groupCount{
		{Key: "b", Count: 3},
		{Key: "a", Count: 2},
		{Key: "c", Count: 1},
	}, got)
}
