package datekey

import (
	"fmt"
	"time"
)

// Layout 是全站统一的日期键格式（YYYY-MM-DD）
// 所有按日期寻址的记录都使用该格式作为键
const Layout = "2006-01-02"

// Key 将日期转换为规范的日期键
func Key(t time.Time) string {
	return t.Format(Layout)
}

// Parse 将日期键解析回本地日历日期
func Parse(key string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date key %q: %w", key, err)
	}
	return t, nil
}

// Valid 判断字符串是否为合法日期键
func Valid(key string) bool {
	_, err := Parse(key)
	return err == nil
}

// DaysInMonth 返回指定年月的天数
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.Local).Day()
}

// FirstWeekday 返回当月 1 号是星期几（0=周日）
func FirstWeekday(year int, month time.Month) int {
	return int(time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Weekday())
}

// EnumerateRange 从 start 起（含）按升序枚举 count 个连续日期键
func EnumerateRange(start time.Time, count int) []string {
	keys := make([]string, 0, count)
	for i := 0; i < count; i++ {
		keys = append(keys, Key(start.AddDate(0, 0, i)))
	}
	return keys
}

// MonthKeys 枚举整月的日期键
func MonthKeys(year int, month time.Month) []string {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	return EnumerateRange(start, DaysInMonth(year, month))
}

// MonthWeeks 按周切分当月日期键，空字符串表示月外的填充格
// 聚合器和渲染层共用同一份周网格定义
func MonthWeeks(year int, month time.Month) [][]string {
	days := DaysInMonth(year, month)
	first := FirstWeekday(year, month)

	var weeks [][]string
	week := make([]string, 0, 7)

	for i := 0; i < first; i++ {
		week = append(week, "")
	}

	for day := 1; day <= days; day++ {
		week = append(week, Key(time.Date(year, month, day, 0, 0, 0, 0, time.Local)))
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]string, 0, 7)
		}
	}

	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, "")
		}
		weeks = append(weeks, week)
	}

	return weeks
}

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

var dayNames = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// MonthName 返回英文月份名
func MonthName(month time.Month) string {
	return monthNames[int(month)-1]
}

// DayName 返回两字母的星期缩写（0=周日）
func DayName(weekday int) string {
	return dayNames[((weekday%7)+7)%7]
}

// HabitPeriodKey 生成习惯月度文档的存储键，月份按 0 起始序号编码
func HabitPeriodKey(year int, month time.Month) string {
	return fmt.Sprintf("habits_%d_%d", year, int(month)-1)
}
