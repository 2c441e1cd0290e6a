package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	r := New()
	r.Add(StageRead, 2*time.Millisecond)
	r.Add(StageRead, 4*time.Millisecond)
	r.Add(StageExtract, time.Millisecond)
	done := r.Start(StageWalk)
	done()

	rows := r.Snapshot()
	if !Enabled {
		assert.Empty(t, rows)
		return
	}
	if assert.Len(t, rows, 3) {
		assert.Equal(t, StageRead, rows[0].Stage)
		assert.Equal(t, 2, rows[0].Count)
		assert.Equal(t, 6*time.Millisecond, rows[0].Total)
		assert.Equal(t, 3*time.Millisecond, rows[0].Mean)
		assert.Equal(t, 4*time.Millisecond, rows[0].Max)
	}
}

func TestSummarize(t *testing.T) {
	row := summarize(StageOutput, []time.Duration{time.Millisecond, 3 * time.Millisecond, 8 * time.Millisecond})
	assert.Equal(t, StageOutput, row.Stage)
	assert.Equal(t, 3, row.Count)
	assert.Equal(t, 12*time.Millisecond, row.Total)
	assert.Equal(t, 4*time.Millisecond, row.Mean)
	assert.Equal(t, 8*time.Millisecond, row.Max)
	assert.GreaterOrEqual(t, row.P95, row.P50)
	assert.LessOrEqual(t, row.P95, row.Max)
}
