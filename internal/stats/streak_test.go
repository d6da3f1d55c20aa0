package stats

import (
	"testing"
	"time"

	"github.com/ghabit/internal/datekey"
)

func seriesFrom(start time.Time, done ...bool) []SeriesPoint {
	keys := datekey.EnumerateRange(start, len(done))
	series := make([]SeriesPoint, len(done))
	for i := range done {
		series[i] = SeriesPoint{DateKey: keys[i], Done: done[i]}
	}
	return series
}

// 习惯在 1–5 号完成、6 号漏打卡：最长连胜 5，截至 6 号的当前连胜 0
func TestStreaksMissedDayScenario(t *testing.T) {
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.Local)
	series := seriesFrom(start, true, true, true, true, true, false)

	if got := LongestStreak(series); got != 5 {
		t.Fatalf("LongestStreak = %d, want 5", got)
	}
	if got := CurrentStreak(series, "2025-02-06"); got != 0 {
		t.Fatalf("CurrentStreak = %d, want 0", got)
	}
	if got := CurrentStreak(series, "2025-02-05"); got != 5 {
		t.Fatalf("CurrentStreak as of day 5 = %d, want 5", got)
	}
}

func TestLongestStreakMonotonicUnderAppends(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)

	prev := 0
	done := []bool{}
	for i := 0; i < 10; i++ {
		done = append(done, true)
		got := LongestStreak(seriesFrom(start, done...))
		if got < prev {
			t.Fatalf("LongestStreak decreased after append: %d -> %d", prev, got)
		}
		prev = got
	}

	// 全真序列末尾追加一个 false：最长连胜不变，当前连胜归零
	withMiss := append(append([]bool{}, done...), false)
	series := seriesFrom(start, withMiss...)
	if got := LongestStreak(series); got != prev {
		t.Fatalf("LongestStreak changed after trailing false: %d -> %d", prev, got)
	}
	if got := CurrentStreak(series, series[len(series)-1].DateKey); got != 0 {
		t.Fatalf("CurrentStreak after trailing false = %d, want 0", got)
	}
}

func TestCurrentStreakEmptySeries(t *testing.T) {
	if got := CurrentStreak(nil, "2025-06-30"); got != 0 {
		t.Fatalf("CurrentStreak on empty series = %d, want 0", got)
	}
}

func TestCurrentStreakAsOfBeyondSeries(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	series := seriesFrom(start, true, true)

	// asOf 晚于序列末尾时从末尾算起
	if got := CurrentStreak(series, "2025-12-31"); got != 2 {
		t.Fatalf("CurrentStreak = %d, want 2", got)
	}
	// asOf 早于序列起点时没有可计入的天
	if got := CurrentStreak(series, "2025-05-01"); got != 0 {
		t.Fatalf("CurrentStreak = %d, want 0", got)
	}
}

func TestLongestStreakBrokenRuns(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local)
	series := seriesFrom(start, true, false, true, true, false, true, true, true)

	if got := LongestStreak(series); got != 3 {
		t.Fatalf("LongestStreak = %d, want 3", got)
	}
}
