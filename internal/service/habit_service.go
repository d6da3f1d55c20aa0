package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ghabit/internal/datekey"
	"github.com/ghabit/internal/persist"
	"github.com/ghabit/internal/stats"
	"github.com/ghabit/internal/store"
)

// ErrHabitNotFound 在指定习惯不存在时返回
var ErrHabitNotFound = errors.New("habit not found")

// 排行榜默认展示的习惯数量
const topHabitLimit = 5

// HabitService 负责月度习惯文档的维护与统计口径的重算
type HabitService struct {
	provider persist.Provider
}

// NewHabitService 构造 HabitService
func NewHabitService(provider persist.Provider) *HabitService {
	return &HabitService{provider: provider}
}

// MonthView 是某个月的习惯清单与打卡标记
type MonthView struct {
	Year      int                        `json:"year"`
	Month     int                        `json:"month"`
	MonthName string                     `json:"monthName"`
	Habits    []store.Habit              `json:"habits"`
	HabitData map[string]map[string]bool `json:"habitData"`
}

// MonthStats 是某个月习惯完成情况的完整统计快照
type MonthStats struct {
	HabitCount     int                        `json:"habitCount"`
	Completed      int                        `json:"completed"`
	TotalPossible  int                        `json:"totalPossible"`
	Percent        int                        `json:"percent"`
	CurrentStreak  int                        `json:"currentStreak"`
	LongestStreak  int                        `json:"longestStreak"`
	BestDay        string                     `json:"bestDay"`
	BestDayPercent int                        `json:"bestDayPercent"`
	Daily          map[string]stats.Aggregate `json:"daily"`
	Donut          stats.Donut                `json:"donut"`
	TopHabits      []stats.HabitRank          `json:"topHabits"`
}

// 读取某个月的文档；缺失或损坏时回退为空文档
func (s *HabitService) loadMonth(year int, month time.Month) store.MonthDocument {
	key := datekey.HabitPeriodKey(year, month)
	raw, ok, err := s.provider.Load(key)
	if err != nil {
		slog.Warn("load habit month failed, starting empty", "key", key, "error", err)
		return store.EmptyMonthDocument()
	}
	if !ok {
		return store.EmptyMonthDocument()
	}

	var doc store.MonthDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		slog.Warn("habit month document malformed, starting empty", "key", key, "error", err)
		return store.EmptyMonthDocument()
	}
	if doc.Habits == nil {
		doc.Habits = []store.Habit{}
	}
	if doc.HabitData == nil {
		doc.HabitData = map[string]map[string]bool{}
	}
	return doc
}

func (s *HabitService) saveMonth(year int, month time.Month, doc store.MonthDocument) {
	key := datekey.HabitPeriodKey(year, month)
	if err := s.provider.Save(key, doc); err != nil {
		slog.Warn("save habit month failed, keeping in-memory state", "key", key, "error", err)
	}
}

// Month 返回某个月的习惯视图，习惯按显示顺序排列
func (s *HabitService) Month(year int, month time.Month) MonthView {
	hs := store.NewHabitStore(s.loadMonth(year, month))
	doc := hs.Document()
	return MonthView{
		Year:      year,
		Month:     int(month) - 1,
		MonthName: datekey.MonthName(month),
		Habits:    hs.SortedHabits(),
		HabitData: doc.HabitData,
	}
}

// CreateHabit 在某个月追加一个习惯
func (s *HabitService) CreateHabit(year int, month time.Month, name string) (store.Habit, error) {
	hs := store.NewHabitStore(s.loadMonth(year, month))
	habit, err := hs.AddHabit(name)
	if err != nil {
		if errors.Is(err, store.ErrValidation) {
			return store.Habit{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return store.Habit{}, fmt.Errorf("create habit: %w", err)
	}
	s.saveMonth(year, month, hs.Document())
	return habit, nil
}

// DeleteHabit 删除习惯及其打卡标记，目标不存在时静默成功
func (s *HabitService) DeleteHabit(year int, month time.Month, id string) {
	hs := store.NewHabitStore(s.loadMonth(year, month))
	hs.RemoveHabit(id)
	if hs.Dirty() {
		s.saveMonth(year, month, hs.Document())
	}
}

// SetMark 写入某习惯某天的打卡标记；重复写同值不触发回写
func (s *HabitService) SetMark(year int, month time.Month, habitID, dateKey string, done bool) error {
	if !datekey.Valid(dateKey) {
		return fmt.Errorf("%w: bad date key %s", ErrInvalidInput, dateKey)
	}

	hs := store.NewHabitStore(s.loadMonth(year, month))
	if err := hs.SetCompletion(habitID, dateKey, done); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrHabitNotFound, habitID)
		}
		return fmt.Errorf("set habit mark: %w", err)
	}
	if hs.Dirty() {
		s.saveMonth(year, month, hs.Document())
	}
	return nil
}

// SetOrder 按给定 id 序列重排习惯显示顺序
func (s *HabitService) SetOrder(year int, month time.Month, ids []string) {
	hs := store.NewHabitStore(s.loadMonth(year, month))
	hs.SetOrder(ids)
	if hs.Dirty() {
		s.saveMonth(year, month, hs.Document())
	}
}

// CopyPrevious 把上个月的习惯名单复制到本月，打卡标记不带过来
// 同名习惯跳过不重复建，返回实际复制的条数
func (s *HabitService) CopyPrevious(year int, month time.Month) (int, error) {
	prevYear, prevMonth := year, month-1
	if prevMonth < time.January {
		prevYear, prevMonth = year-1, time.December
	}

	prev := store.NewHabitStore(s.loadMonth(prevYear, prevMonth))
	current := store.NewHabitStore(s.loadMonth(year, month))

	copied := 0
	for _, habit := range prev.SortedHabits() {
		if current.HasHabitNamed(habit.Name) {
			continue
		}
		if _, err := current.AddHabit(habit.Name); err != nil {
			return copied, fmt.Errorf("copy habit %q: %w", habit.Name, err)
		}
		copied++
	}

	if current.Dirty() {
		s.saveMonth(year, month, current.Document())
	}
	return copied, nil
}

// Stats 重算某个月的完成率、连胜、最佳日与排行榜
func (s *HabitService) Stats(year int, month time.Month) MonthStats {
	hs := store.NewHabitStore(s.loadMonth(year, month))
	habits := hs.SortedHabits()
	days := datekey.MonthKeys(year, month)

	names := make(map[string]string, len(habits))
	records := make([]stats.Record, 0, len(habits)*len(days))
	for _, habit := range habits {
		names[habit.ID] = habit.Name
		for _, day := range days {
			records = append(records, stats.Record{
				DateKey: day,
				Owner:   habit.ID,
				Done:    hs.Completed(habit.ID, day),
			})
		}
	}

	perDay := stats.Summarize(records, days, stats.GroupByDate)
	byHabit := stats.Summarize(records, days, stats.GroupByOwner)
	overall := stats.Overall(perDay)
	bestDay, bestPercent := stats.BestDay(perDay)

	out := MonthStats{
		HabitCount:     len(habits),
		Completed:      overall.Completed,
		TotalPossible:  overall.Total,
		Percent:        overall.Percent,
		BestDay:        bestDay,
		BestDayPercent: bestPercent,
		Daily:          perDay,
		Donut:          stats.ToDonut(overall),
		TopHabits:      stats.TopHabits(byHabit, names, topHabitLimit),
	}

	// 最长连胜取所有习惯中的最大值
	for _, habit := range habits {
		series := make([]stats.SeriesPoint, len(days))
		for i, day := range days {
			series[i] = stats.SeriesPoint{DateKey: day, Done: hs.Completed(habit.ID, day)}
		}
		if got := stats.LongestStreak(series); got > out.LongestStreak {
			out.LongestStreak = got
		}
	}

	// 当前连胜从今天往回数所有习惯都完成的日子，没有习惯时恒为 0
	if len(habits) > 0 {
		series := make([]stats.SeriesPoint, len(days))
		for i, day := range days {
			allDone := true
			for _, habit := range habits {
				if !hs.Completed(habit.ID, day) {
					allDone = false
					break
				}
			}
			series[i] = stats.SeriesPoint{DateKey: day, Done: allDone}
		}
		out.CurrentStreak = stats.CurrentStreak(series, datekey.Key(time.Now()))
	}

	return out
}

// WeekCards 把某个月的逐日完成情况投影为周卡片序列
func (s *HabitService) WeekCards(year int, month time.Month) []stats.WeekCard {
	hs := store.NewHabitStore(s.loadMonth(year, month))
	habits := hs.SortedHabits()
	days := datekey.MonthKeys(year, month)

	records := make([]stats.Record, 0, len(habits)*len(days))
	for _, habit := range habits {
		for _, day := range days {
			records = append(records, stats.Record{
				DateKey: day,
				Owner:   habit.ID,
				Done:    hs.Completed(habit.ID, day),
			})
		}
	}

	perDay := stats.Summarize(records, days, stats.GroupByDate)
	return stats.ToWeekCards(datekey.MonthWeeks(year, month), perDay)
}

// YearRollup 逐月重算全年完成率，没有文档的月份为 0
func (s *HabitService) YearRollup(year int) [12]int {
	return stats.YearRollup(year, func(y int, m time.Month) (store.MonthDocument, bool) {
		key := datekey.HabitPeriodKey(y, m)
		raw, ok, err := s.provider.Load(key)
		if err != nil {
			slog.Warn("load habit month failed during rollup", "key", key, "error", err)
			return store.MonthDocument{}, false
		}
		if !ok {
			return store.MonthDocument{}, false
		}
		var doc store.MonthDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			slog.Warn("habit month document malformed during rollup", "key", key, "error", err)
			return store.MonthDocument{}, false
		}
		return doc, true
	})
}
