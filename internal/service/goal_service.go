package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghabit/internal/datekey"
	"github.com/ghabit/internal/persist"
	"github.com/ghabit/internal/store"
)

// ErrGoalNotFound 在指定目标不存在时返回
var ErrGoalNotFound = errors.New("goal not found")

const goalDocumentKey = "goals_data"

// GoalService 负责长期目标的维护与倒计时投影
type GoalService struct {
	provider persist.Provider
	now      func() time.Time
}

// NewGoalService 构造 GoalService
func NewGoalService(provider persist.Provider) *GoalService {
	return &GoalService{provider: provider, now: time.Now}
}

// GoalView 是带倒计时的目标视图
type GoalView struct {
	Goal
	DaysLeft int  `json:"daysLeft"`
	Overdue  bool `json:"overdue"`
}

// Goal 的存储形态直接复用 store 包的定义
type Goal = store.Goal

// GoalPatch 描述目标的局部更新，nil 字段表示不修改
type GoalPatch struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Deadline    *string `json:"targetDate"`
	Category    *string `json:"category"`
	Completed   *bool   `json:"completed"`
}

func (s *GoalService) loadAll() []Goal {
	raw, ok, err := s.provider.Load(goalDocumentKey)
	if err != nil {
		slog.Warn("load goals failed, starting empty", "error", err)
		return []Goal{}
	}
	if !ok {
		return []Goal{}
	}

	var goals []Goal
	if err := json.Unmarshal(raw, &goals); err != nil {
		slog.Warn("goals document malformed, starting empty", "error", err)
		return []Goal{}
	}
	if goals == nil {
		goals = []Goal{}
	}
	return goals
}

func (s *GoalService) saveAll(goals []Goal) {
	if err := s.provider.Save(goalDocumentKey, goals); err != nil {
		slog.Warn("save goals failed, keeping in-memory state", "error", err)
	}
}

// List 返回全部目标及其倒计时
func (s *GoalService) List() []GoalView {
	goals := s.loadAll()
	views := make([]GoalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, s.project(g))
	}
	return views
}

// Create 校验并追加一个目标
func (s *GoalService) Create(goal Goal) (GoalView, error) {
	if strings.TrimSpace(goal.Title) == "" {
		return GoalView{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if goal.Deadline != "" && !datekey.Valid(goal.Deadline) {
		return GoalView{}, fmt.Errorf("%w: bad target date %s", ErrInvalidInput, goal.Deadline)
	}

	goal.ID = uuid.NewString()
	goal.CreatedAt = s.now()
	goal.UpdatedAt = goal.CreatedAt

	goals := append(s.loadAll(), goal)
	s.saveAll(goals)
	return s.project(goal), nil
}

// Update 合并局部字段，目标不存在时返回 ErrGoalNotFound
func (s *GoalService) Update(id string, patch GoalPatch) (GoalView, error) {
	goals := s.loadAll()
	for i := range goals {
		if goals[i].ID != id {
			continue
		}

		g := goals[i]
		if patch.Title != nil {
			if strings.TrimSpace(*patch.Title) == "" {
				return GoalView{}, fmt.Errorf("%w: title is required", ErrInvalidInput)
			}
			g.Title = *patch.Title
		}
		if patch.Description != nil {
			g.Description = *patch.Description
		}
		if patch.Deadline != nil {
			if *patch.Deadline != "" && !datekey.Valid(*patch.Deadline) {
				return GoalView{}, fmt.Errorf("%w: bad target date %s", ErrInvalidInput, *patch.Deadline)
			}
			g.Deadline = *patch.Deadline
		}
		if patch.Category != nil {
			g.Category = *patch.Category
		}
		if patch.Completed != nil {
			g.Completed = *patch.Completed
		}
		g.UpdatedAt = s.now()

		goals[i] = g
		s.saveAll(goals)
		return s.project(g), nil
	}

	return GoalView{}, fmt.Errorf("%w: %s", ErrGoalNotFound, id)
}

// Delete 删除目标，目标不存在时静默成功
func (s *GoalService) Delete(id string) {
	goals := s.loadAll()
	kept := goals[:0]
	removed := false
	for _, g := range goals {
		if g.ID == id {
			removed = true
			continue
		}
		kept = append(kept, g)
	}
	if removed {
		s.saveAll(kept)
	}
}

// 倒计时按自然日差计算，截止日当天算 0 天
func (s *GoalService) project(g Goal) GoalView {
	view := GoalView{Goal: g}
	if g.Deadline == "" {
		return view
	}

	target, err := datekey.Parse(g.Deadline)
	if err != nil {
		return view
	}

	days := calendarDays(s.now(), target)
	view.DaysLeft = days
	view.Overdue = days < 0 && !g.Completed
	return view
}

// 按自然日数差，与时区夏令时切换无关
func calendarDays(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 12, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 12, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
