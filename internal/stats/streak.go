package stats

// SeriesPoint 是连胜序列中的一天
// 序列必须覆盖连续的日期区间并按日期键升序排列
type SeriesPoint struct {
	DateKey string `json:"date"`
	Done    bool   `json:"done"`
}

// LongestStreak 扫描整个序列，返回最长的连续完成天数
func LongestStreak(series []SeriesPoint) int {
	longest := 0
	run := 0
	for _, p := range series {
		if p.Done {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	return longest
}

// CurrentStreak 从 asOf（含）向前统计连续完成天数，遇到未完成即停
// asOf 晚于序列末尾时从末尾开始；早于序列起点时返回 0
func CurrentStreak(series []SeriesPoint, asOf string) int {
	streak := 0
	for i := len(series) - 1; i >= 0; i-- {
		if series[i].DateKey > asOf {
			continue
		}
		if !series[i].Done {
			break
		}
		streak++
	}
	return streak
}
