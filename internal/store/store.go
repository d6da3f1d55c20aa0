package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrValidation 在必填字段缺失或取值非法时返回
	ErrValidation = errors.New("validation failed")
	// ErrNotFound 在记录不存在时返回
	ErrNotFound = errors.New("record not found")
)

// TaskStore 持有单个日期的任务记录快照
// 所有变更都只作用于内存并置脏标记，何时持久化由调用方决定
type TaskStore struct {
	dateKey string
	tasks   []Task
	dirty   bool
}

// NewTaskStore 从已加载的快照构造任务存储
func NewTaskStore(dateKey string, tasks []Task) *TaskStore {
	copied := make([]Task, len(tasks))
	copy(copied, tasks)
	return &TaskStore{dateKey: dateKey, tasks: copied}
}

// Dirty 报告自加载以来是否发生过变更
func (s *TaskStore) Dirty() bool {
	return s.dirty
}

// DateKey 返回该存储所属的日期键
func (s *TaskStore) DateKey() string {
	return s.dateKey
}

// Add 校验并追加一条任务，返回分配的标识
func (s *TaskStore) Add(task Task) (string, error) {
	if strings.TrimSpace(task.Title) == "" {
		return "", fmt.Errorf("%w: title is required", ErrValidation)
	}

	if task.ID == "" {
		task.ID = uuid.NewString()
	}
	task.DateKey = s.dateKey
	if task.Status == "" {
		task.Status = StatusActive
	}
	if !ValidStatus(task.Status) {
		return "", fmt.Errorf("%w: unknown status %s", ErrValidation, task.Status)
	}
	if task.Category == "" {
		task.Category = DefaultCategory
	}
	if !ValidCategory(task.Category) {
		return "", fmt.Errorf("%w: unknown category %s", ErrValidation, task.Category)
	}
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	if task.TargetPomos <= 0 {
		task.TargetPomos = defaultTargetPomos(task.EstimatedHours, task.EstimatedMinutes)
	}

	s.tasks = append(s.tasks, task)
	s.dirty = true
	return task.ID, nil
}

// 估时按 25 分钟切分番茄数，无估时默认 4 个
func defaultTargetPomos(hours, minutes int) int {
	total := hours*60 + minutes
	if total <= 0 {
		return 4
	}
	pomos := (total + 24) / 25
	if pomos < 1 {
		pomos = 1
	}
	return pomos
}

// Remove 删除指定任务，目标不存在时静默成功
func (s *TaskStore) Remove(id string) {
	kept := s.tasks[:0]
	removed := false
	for _, t := range s.tasks {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	s.tasks = kept
	if removed {
		s.dirty = true
	}
}

// Update 合并局部字段，目标不存在时返回 ErrNotFound
func (s *TaskStore) Update(id string, patch TaskPatch) (Task, error) {
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}

		task := s.tasks[i]
		if patch.Title != nil {
			if strings.TrimSpace(*patch.Title) == "" {
				return Task{}, fmt.Errorf("%w: title is required", ErrValidation)
			}
			task.Title = *patch.Title
		}
		if patch.Note != nil {
			task.Note = *patch.Note
		}
		if patch.Status != nil {
			if !ValidStatus(*patch.Status) {
				return Task{}, fmt.Errorf("%w: unknown status %s", ErrValidation, *patch.Status)
			}
			if !CanTransition(task.Status, *patch.Status) {
				return Task{}, fmt.Errorf("%w: cannot transition %s -> %s", ErrValidation, task.Status, *patch.Status)
			}
			task.Status = *patch.Status
		}
		if patch.Category != nil {
			if !ValidCategory(*patch.Category) {
				return Task{}, fmt.Errorf("%w: unknown category %s", ErrValidation, *patch.Category)
			}
			task.Category = *patch.Category
		}
		if patch.EstimatedHours != nil {
			task.EstimatedHours = *patch.EstimatedHours
		}
		if patch.EstimatedMinutes != nil {
			task.EstimatedMinutes = *patch.EstimatedMinutes
		}
		if patch.PomoSessions != nil {
			task.PomoSessions = *patch.PomoSessions
		}
		if patch.TargetPomos != nil {
			task.TargetPomos = *patch.TargetPomos
		}

		s.tasks[i] = task
		s.dirty = true
		return task, nil
	}

	return Task{}, fmt.Errorf("%w: task %s", ErrNotFound, id)
}

// Snapshot 返回按插入顺序排列的当前记录副本
func (s *TaskStore) Snapshot() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// HabitStore 持有单个月度周期的习惯及其打卡标记
type HabitStore struct {
	doc   MonthDocument
	dirty bool
}

// NewHabitStore 从月度文档构造习惯存储
func NewHabitStore(doc MonthDocument) *HabitStore {
	if doc.Habits == nil {
		doc.Habits = []Habit{}
	}
	if doc.HabitData == nil {
		doc.HabitData = map[string]map[string]bool{}
	}
	return &HabitStore{doc: doc}
}

// Dirty 报告自加载以来是否发生过变更
func (s *HabitStore) Dirty() bool {
	return s.dirty
}

// AddHabit 校验并追加习惯，顺序排在末尾
func (s *HabitStore) AddHabit(name string) (Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Habit{}, fmt.Errorf("%w: habit name is required", ErrValidation)
	}

	maxOrder := -1
	for _, h := range s.doc.Habits {
		if h.Order > maxOrder {
			maxOrder = h.Order
		}
	}

	habit := Habit{ID: uuid.NewString(), Name: name, Order: maxOrder + 1}
	s.doc.Habits = append(s.doc.Habits, habit)
	s.doc.HabitData[habit.ID] = map[string]bool{}
	s.dirty = true
	return habit, nil
}

// RemoveHabit 删除习惯及其全部打卡标记，目标不存在时静默成功
func (s *HabitStore) RemoveHabit(id string) {
	kept := s.doc.Habits[:0]
	removed := false
	for _, h := range s.doc.Habits {
		if h.ID == id {
			removed = true
			continue
		}
		kept = append(kept, h)
	}
	s.doc.Habits = kept
	if _, ok := s.doc.HabitData[id]; ok {
		delete(s.doc.HabitData, id)
		removed = true
	}
	if removed {
		s.dirty = true
	}
}

// SetCompletion 幂等地写入某习惯某天的布尔打卡标记
func (s *HabitStore) SetCompletion(habitID, dateKey string, done bool) error {
	if !s.HasHabit(habitID) {
		return fmt.Errorf("%w: habit %s", ErrNotFound, habitID)
	}

	marks := s.doc.HabitData[habitID]
	if marks == nil {
		marks = map[string]bool{}
		s.doc.HabitData[habitID] = marks
	}

	if current, ok := marks[dateKey]; ok && current == done {
		return nil
	}

	marks[dateKey] = done
	s.dirty = true
	return nil
}

// Completed 查询某习惯某天是否完成
func (s *HabitStore) Completed(habitID, dateKey string) bool {
	return s.doc.HabitData[habitID][dateKey]
}

// HasHabit 判断习惯是否存在
func (s *HabitStore) HasHabit(id string) bool {
	for _, h := range s.doc.Habits {
		if h.ID == id {
			return true
		}
	}
	return false
}

// HasHabitNamed 判断同名习惯是否已存在（跨月复制时用于去重）
func (s *HabitStore) HasHabitNamed(name string) bool {
	for _, h := range s.doc.Habits {
		if h.Name == name {
			return true
		}
	}
	return false
}

// SetOrder 按给定 id 序列重排习惯显示顺序，未出现的 id 保持相对位置排在末尾
func (s *HabitStore) SetOrder(ids []string) {
	position := make(map[string]int, len(ids))
	for i, id := range ids {
		position[id] = i
	}

	changed := false
	next := len(ids)
	for i := range s.doc.Habits {
		order, ok := position[s.doc.Habits[i].ID]
		if !ok {
			order = next
			next++
		}
		if s.doc.Habits[i].Order != order {
			s.doc.Habits[i].Order = order
			changed = true
		}
	}
	if changed {
		s.dirty = true
	}
}

// SortedHabits 返回按 Order 排序的习惯副本，Order 相同时按 ID 保持稳定
func (s *HabitStore) SortedHabits() []Habit {
	out := make([]Habit, len(s.doc.Habits))
	copy(out, s.doc.Habits)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// Document 返回当前文档快照用于持久化
func (s *HabitStore) Document() MonthDocument {
	doc := MonthDocument{
		Habits:    make([]Habit, len(s.doc.Habits)),
		HabitData: make(map[string]map[string]bool, len(s.doc.HabitData)),
	}
	copy(doc.Habits, s.doc.Habits)
	for id, marks := range s.doc.HabitData {
		copied := make(map[string]bool, len(marks))
		for k, v := range marks {
			copied[k] = v
		}
		doc.HabitData[id] = copied
	}
	return doc
}
