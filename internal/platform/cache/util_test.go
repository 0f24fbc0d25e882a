package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeUntilEndOfDay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		now  time.Time
		want time.Duration
	}{
		{
			name: "start of day",
			now:  time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC),
			want: 24 * time.Hour,
		},
		{
			name: "afternoon",
			now:  time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC),
			want: 8*time.Hour + 30*time.Minute,
		},
		{
			name: "non-UTC input uses the UTC day",
			now:  time.Date(2024, 3, 10, 8, 0, 0, 0, time.FixedZone("JST", 9*60*60)),
			want: 23 * time.Hour,
		},
		{
			name: "last seconds of the day are clamped",
			now:  time.Date(2024, 3, 10, 23, 59, 50, 0, time.UTC),
			want: time.Minute,
		},
		{
			name: "month boundary",
			now:  time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC),
			want: 12 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, TimeUntilEndOfDay(tt.now))
		})
	}
}
