package batch

import (
	"fmt"
	"testing"

	"recruitflow/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func items(n int) []models.ResumeRef {
	out := make([]models.ResumeRef, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, models.ResumeRef{Ref: fmt.Sprintf("resume-%d.pdf", i+1)})
	}
	return out
}

func TestCount(t *testing.T) {
	assert.Equal(t, 3, Count(12, 5))
	assert.Equal(t, 1, Count(5, 5))
	assert.Equal(t, 1, Count(3, 5))
	assert.Equal(t, 12, Count(12, 1))
	assert.Equal(t, 0, Count(0, 5))
	assert.Equal(t, 0, Count(5, 0))
}

func TestPlan_SizesCoverAllItems(t *testing.T) {

	for n := 1; n <= 25; n++ {
		for size := 1; size <= 7; size++ {
			plan := Plan(items(n), size)

			require.Len(t, plan, Count(n, size), "n=%d size=%d", n, size)

			covered := 0
			for i, b := range plan {
				if i < len(plan)-1 {
					assert.Len(t, b, size)
				} else {
					assert.LessOrEqual(t, len(b), size)
					assert.NotEmpty(t, b)
				}
				covered += len(b)
			}
			assert.Equal(t, n, covered, "n=%d size=%d", n, size)
		}
	}
}

func TestPlan_KeepsInputOrder(t *testing.T) {

	plan := Plan(items(12), 5)

	require.Len(t, plan, 3)
	assert.Len(t, plan[0], 5)
	assert.Len(t, plan[1], 5)
	assert.Len(t, plan[2], 2)
	assert.Equal(t, "resume-1.pdf", plan[0][0].Ref)
	assert.Equal(t, "resume-6.pdf", plan[1][0].Ref)
	assert.Equal(t, "resume-12.pdf", plan[2][1].Ref)
}

func TestPlan_SizeLargerThanInput(t *testing.T) {

	plan := Plan(items(3), 10)

	require.Len(t, plan, 1)
	assert.Len(t, plan[0], 3)
}

func TestPlan_EmptyInput(t *testing.T) {
	assert.Nil(t, Plan(nil, 5))
	assert.Nil(t, Plan(items(5), 0))
}
