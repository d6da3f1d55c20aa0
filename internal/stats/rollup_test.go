package stats

import (
	"testing"
	"time"

	"github.com/ghabit/internal/datekey"
	"github.com/ghabit/internal/store"
)

func TestMonthPercentCountsAllDays(t *testing.T) {
	doc := store.EmptyMonthDocument()
	doc.Habits = []store.Habit{{ID: "h1", Name: "晨跑"}}
	doc.HabitData["h1"] = map[string]bool{}

	// 2025 年 6 月 30 天，打卡 15 天 -> 50%
	keys := datekey.MonthKeys(2025, time.June)
	for i := 0; i < 15; i++ {
		doc.HabitData["h1"][keys[i]] = true
	}

	if got := MonthPercent(doc, 2025, time.June); got != 50 {
		t.Fatalf("MonthPercent = %d, want 50", got)
	}
}

func TestMonthPercentEmptyDocument(t *testing.T) {
	if got := MonthPercent(store.EmptyMonthDocument(), 2025, time.June); got != 0 {
		t.Fatalf("MonthPercent on empty document = %d, want 0", got)
	}
}

// 新增习惯也按整月天数计应完成数（保留来源口径）
func TestMonthPercentUsesCurrentHabitCountForAllDays(t *testing.T) {
	doc := store.EmptyMonthDocument()
	doc.Habits = []store.Habit{{ID: "h1"}, {ID: "h2"}}
	doc.HabitData["h1"] = map[string]bool{"2025-06-01": true}
	doc.HabitData["h2"] = map[string]bool{}

	// 总应完成 2*30=60，实际 1 -> 2%
	if got := MonthPercent(doc, 2025, time.June); got != 2 {
		t.Fatalf("MonthPercent = %d, want 2", got)
	}
}

func TestYearRollupMissingMonthsAreZero(t *testing.T) {
	june := store.EmptyMonthDocument()
	june.Habits = []store.Habit{{ID: "h1"}}
	june.HabitData["h1"] = map[string]bool{}
	for _, key := range datekey.MonthKeys(2025, time.June) {
		june.HabitData["h1"][key] = true
	}

	load := func(year int, month time.Month) (store.MonthDocument, bool) {
		if year == 2025 && month == time.June {
			return june, true
		}
		return store.MonthDocument{}, false
	}

	rollup := YearRollup(2025, load)
	for m := 0; m < 12; m++ {
		want := 0
		if m == 5 {
			want = 100
		}
		if rollup[m] != want {
			t.Fatalf("rollup[%d] = %d, want %d", m, rollup[m], want)
		}
	}
}
