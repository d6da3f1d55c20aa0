// Package stats 实现按日期键聚合、连胜计算与视图模型投影。
// 所有函数都是快照上的纯计算：不修改输入、不做 I/O，每次统计请求全量重算。
package stats

import "sort"

// Aggregate 是一组记录的完成计数
type Aggregate struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// RoundPercent 计算整数百分比，0.5 向上取整；total 为 0 时返回 0
func RoundPercent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return (completed*200 + total) / (total * 2)
}

// Record 是聚合器的输入记录
// Done 表示完成；取消的任务计入 Total 但不计入 Completed，
// 因此取消态记录同样以 Done=false 进入聚合
type Record struct {
	DateKey  string
	Owner    string
	Category string
	Done     bool
}

// GroupBy 指定聚合维度
type GroupBy int

const (
	// GroupByDate 按日期键分组（日进度）
	GroupByDate GroupBy = iota
	// GroupByOwner 按所属集合分组（单个习惯）
	GroupByOwner
	// GroupByCategory 按象限分组（矩阵视图）
	GroupByCategory
)

// Summarize 在给定日期键集合内按维度聚合记录
// 按日期分组时每个请求的日期键都会出现在结果里，即使当天没有记录
func Summarize(records []Record, dateKeys []string, group GroupBy) map[string]Aggregate {
	inRange := make(map[string]bool, len(dateKeys))
	for _, key := range dateKeys {
		inRange[key] = true
	}

	counts := map[string]*Aggregate{}
	if group == GroupByDate {
		for _, key := range dateKeys {
			counts[key] = &Aggregate{}
		}
	}

	for _, r := range records {
		if !inRange[r.DateKey] {
			continue
		}

		var key string
		switch group {
		case GroupByDate:
			key = r.DateKey
		case GroupByOwner:
			key = r.Owner
		case GroupByCategory:
			key = r.Category
		}

		agg := counts[key]
		if agg == nil {
			agg = &Aggregate{}
			counts[key] = agg
		}
		agg.Total++
		if r.Done {
			agg.Completed++
		}
	}

	out := make(map[string]Aggregate, len(counts))
	for key, agg := range counts {
		agg.Percent = RoundPercent(agg.Completed, agg.Total)
		out[key] = *agg
	}
	return out
}

// Overall 将若干分组聚合累加为一个总聚合
func Overall(groups map[string]Aggregate) Aggregate {
	var total Aggregate
	for _, agg := range groups {
		total.Completed += agg.Completed
		total.Total += agg.Total
	}
	total.Percent = RoundPercent(total.Completed, total.Total)
	return total
}

// BestDay 返回完成率最高的日期及其百分比
// 并列时取最早的日期；没有任何记录时返回空键和 0
func BestDay(perDay map[string]Aggregate) (string, int) {
	keys := make([]string, 0, len(perDay))
	for key := range perDay {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	bestKey := ""
	bestPercent := 0
	for _, key := range keys {
		agg := perDay[key]
		if agg.Total == 0 {
			continue
		}
		if agg.Percent > bestPercent {
			bestPercent = agg.Percent
			bestKey = key
		}
	}
	return bestKey, bestPercent
}
