package stats

import (
	"fmt"
	"math"
	"sort"

	"github.com/ghabit/internal/datekey"
)

// 周卡片柱状条的最大高度（px），与渲染层约定一致
const maxBarHeight = 100

// ProgressBar 是进度条的渲染模型
type ProgressBar struct {
	WidthPercent int    `json:"widthPercent"`
	Label        string `json:"label"`
}

// ToProgressBar 将百分比投影为进度条模型，越界值被钳制到 [0,100]
func ToProgressBar(percent int) ProgressBar {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return ProgressBar{WidthPercent: percent, Label: fmt.Sprintf("%d%%", percent)}
}

// DayCell 是周卡片中单日柱状条的渲染模型
type DayCell struct {
	DateKey   string  `json:"date"`
	Label     string  `json:"label"`
	Value     int     `json:"value"`
	Max       int     `json:"max"`
	BarHeight float64 `json:"barHeight"`
}

// WeekCard 是单周汇总卡片的渲染模型
type WeekCard struct {
	Index     int       `json:"index"`
	Title     string    `json:"title"`
	DateRange string    `json:"dateRange"`
	Days      []DayCell `json:"days"`
	Completed int       `json:"completed"`
	Goal      int       `json:"goal"`
	Percent   int       `json:"percent"`
}

// ToWeekCards 将周网格与逐日聚合投影为周卡片序列
// weeks 中的空字符串是月外填充格，跳过不渲染
func ToWeekCards(weeks [][]string, perDay map[string]Aggregate) []WeekCard {
	cards := make([]WeekCard, 0, len(weeks))

	for i, week := range weeks {
		card := WeekCard{Index: i + 1, Title: fmt.Sprintf("WEEK %d", i+1)}

		for _, key := range week {
			if key == "" {
				continue
			}
			agg := perDay[key]

			height := 0.0
			if agg.Total > 0 {
				height = float64(agg.Completed) / float64(agg.Total) * maxBarHeight
			}

			card.Days = append(card.Days, DayCell{
				DateKey:   key,
				Label:     dayLabel(key),
				Value:     agg.Completed,
				Max:       agg.Total,
				BarHeight: height,
			})
			card.Completed += agg.Completed
			card.Goal += agg.Total
		}

		if len(card.Days) > 0 {
			first := card.Days[0]
			last := card.Days[len(card.Days)-1]
			card.DateRange = fmt.Sprintf("%s - %s", rangeLabel(first.DateKey), rangeLabel(last.DateKey))
		}
		card.Percent = RoundPercent(card.Completed, card.Goal)
		cards = append(cards, card)
	}

	return cards
}

// "Su 1" 形式的单日标签
func dayLabel(key string) string {
	t, err := datekey.Parse(key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%s %d", datekey.DayName(int(t.Weekday())), t.Day())
}

// "5T" 形式的区间端点标签：日号 + 星期首字母
func rangeLabel(key string) string {
	t, err := datekey.Parse(key)
	if err != nil {
		return key
	}
	return fmt.Sprintf("%d%s", t.Day(), datekey.DayName(int(t.Weekday()))[:1])
}

// Donut 是完成率环形图的渲染模型，百分比保留一位小数
type Donut struct {
	CompletedPercent float64 `json:"completedPercent"`
	LeftPercent      float64 `json:"leftPercent"`
}

// ToDonut 将总量聚合投影为环形图模型
func ToDonut(overall Aggregate) Donut {
	if overall.Total == 0 {
		return Donut{}
	}
	completed := math.Round(float64(overall.Completed)/float64(overall.Total)*1000) / 10
	left := math.Round(float64(overall.Total-overall.Completed)/float64(overall.Total)*1000) / 10
	return Donut{CompletedPercent: completed, LeftPercent: left}
}

// HabitRank 是排行榜中的一项
type HabitRank struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Actual  int    `json:"actual"`
	Percent int    `json:"percent"`
}

// TopHabits 按完成率降序返回前 limit 个习惯，同分按名称升序保证稳定
func TopHabits(byOwner map[string]Aggregate, names map[string]string, limit int) []HabitRank {
	ranks := make([]HabitRank, 0, len(byOwner))
	for id, agg := range byOwner {
		ranks = append(ranks, HabitRank{ID: id, Name: names[id], Actual: agg.Completed, Percent: agg.Percent})
	}

	sort.Slice(ranks, func(i, j int) bool {
		if ranks[i].Percent != ranks[j].Percent {
			return ranks[i].Percent > ranks[j].Percent
		}
		return ranks[i].Name < ranks[j].Name
	})

	if limit > 0 && len(ranks) > limit {
		ranks = ranks[:limit]
	}
	return ranks
}
