package cache

import (
	"time"
)

// minTTL keeps entries written in the last seconds of a day from expiring immediately.
const minTTL = time.Minute

// TimeUntilEndOfDay は now の属するUTC日の終わり（翌日0時）までの期間を返します。
func TimeUntilEndOfDay(now time.Time) time.Duration {
	now = now.UTC()

	// 翌日の0時を計算
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	return max(midnight.Sub(now), minTTL)
}
