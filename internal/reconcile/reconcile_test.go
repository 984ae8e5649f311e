package reconcile

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestColumns(t *testing.T) {
	testCases := []struct {
		expected []string
		actual   []string
		// if Link.Similarity == 0
		// the test will not assert the similarity to be equal
		links []Link
	}{
		{
			expected: []string{"Bank Name", "Market Cap (US$ Billion)"},
			actual:   []string{"Rank", "Bank name", "Market cap(US$ billion)"},
			links: []Link{
				{Expected: "Bank Name", Actual: "Bank name", Similarity: 1},
				{Expected: "Market Cap (US$ Billion)", Actual: "Market cap(US$ billion)", Similarity: 1},
			},
		},
		{
			expected: []string{"Bank"},
			actual:   []string{"Bank name"},
			links: []Link{
				{Expected: "Bank", Actual: "Bank name"},
			},
		},
		{
			expected: []string{"Name", "Market cap(US$ billion)"},
			actual:   []string{"Name", "Market cap(US$ billion)"},
			links: []Link{
				{Expected: "Name", Actual: "Name", Similarity: 1},
				{Expected: "Market cap(US$ billion)", Actual: "Market cap(US$ billion)", Similarity: 1},
			},
		},
		{
			expected: []string{"Name"},
			actual:   []string{},
			links:    nil,
		},
	}

	for _, test := range testCases {
		links := Columns(test.expected, test.actual)
		diff := cmp.Diff(
			test.links,
			links,
			cmpopts.SortSlices(func(a, b Link) bool {
				return a.Expected < b.Expected
			}),
			cmp.Comparer(func(a, b float64) bool {
				return a == 0 || b == 0 || a == b
			}),
		)
		if diff != "" {
			t.Fatal(diff)
		}
	}
}

func TestUnmatched(t *testing.T) {
	actual := []string{"Rank", "Bank name", "Market cap(US$ billion)"}
	links := []Link{{Expected: "Name", Actual: "Bank name"}}
	require.Equal(t, []string{"Rank", "Market cap(US$ billion)"}, Unmatched(links, actual))
}
