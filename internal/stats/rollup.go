package stats

import (
	"time"

	"github.com/ghabit/internal/datekey"
	"github.com/ghabit/internal/store"
)

// MonthLoader 按年月加载该周期的习惯文档，不存在时 ok 为 false
// 各周期是彼此独立的持久化单元，汇总时逐月重算，互不影响
type MonthLoader func(year int, month time.Month) (store.MonthDocument, bool)

// MonthPercent 对一份月度文档从头重算整月完成率
// 每一天的应完成数都取文档当前的习惯总数（与来源行为保持一致）
func MonthPercent(doc store.MonthDocument, year int, month time.Month) int {
	days := datekey.MonthKeys(year, month)
	total := len(doc.Habits) * len(days)

	completed := 0
	for _, habit := range doc.Habits {
		marks := doc.HabitData[habit.ID]
		for _, day := range days {
			if marks[day] {
				completed++
			}
		}
	}

	return RoundPercent(completed, total)
}

// YearRollup 返回某年 12 个月的完成率，未访问过的月份为 0
func YearRollup(year int, load MonthLoader) [12]int {
	var out [12]int
	for m := time.January; m <= time.December; m++ {
		doc, ok := load(year, m)
		if !ok {
			continue
		}
		out[int(m)-1] = MonthPercent(doc, year, m)
	}
	return out
}
