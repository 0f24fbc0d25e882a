package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatElapsed(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0m 0s"},
		{59 * time.Second, "0m 59s"},
		{61 * time.Second, "1m 1s"},
		{12*time.Minute + 5*time.Second + 900*time.Millisecond, "12m 5s"},
		{-time.Second, "0m 0s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatElapsed(tt.in))
	}
}

func TestCheckpoint_Settled(t *testing.T) {
	t.Parallel()

	settled := map[Checkpoint]bool{
		CheckpointCompleted:         true,
		CheckpointError:             true,
		CheckpointUseCasesGenerated: true,
		CheckpointReportGenerated:   true,
	}
	for _, cp := range Checkpoints {
		assert.Equal(t, settled[cp], cp.Settled(), "checkpoint %s", cp)
		assert.True(t, cp.Valid())
	}
	assert.False(t, Checkpoint("bogus").Valid())
}

func TestRecord_PollingRecommended(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Record{CurrentStatus: CheckpointResearchInProgress}).PollingRecommended())
	assert.False(t, (&Record{CurrentStatus: CheckpointCompleted}).PollingRecommended())
	assert.True(t, (&Record{CurrentStatus: CheckpointUnknown}).PollingRecommended())
}
