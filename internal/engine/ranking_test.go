package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRank(t *testing.T) {
	cases := []struct {
		name   string
		health []int
		want   []int
	}{
		{"ties share rank", []int{30, 30, 10, 0}, []int{1, 1, 3, 4}},
		{"all distinct", []int{5, 20, 10}, []int{3, 1, 2}},
		{"all tied", []int{7, 7, 7}, []int{1, 1, 1}},
		{"tie in the middle", []int{9, 4, 4, -2}, []int{1, 2, 2, 4}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := make([]Standing, len(tc.health))
			for i, h := range tc.health {
				in[i] = Standing{ID: string(rune('a' + i)), Health: h}
			}
			got := map[string]int{}
			for _, s := range Rank(in) {
				got[s.ID] = s.Rank
			}
			for i, s := range in {
				assert.Equal(t, tc.want[i], got[s.ID], "health %d", s.Health)
			}
		})
	}
}
