package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ghabit/internal/persist"
	"github.com/ghabit/internal/stats"
	"github.com/ghabit/internal/store"
)

var (
	// ErrTaskNotFound 在指定任务不存在时返回
	ErrTaskNotFound = errors.New("task not found")
	// ErrDateNotFound 在该日期从未存过任务时返回
	ErrDateNotFound = errors.New("date not found")
	// ErrInvalidInput 在输入校验失败时返回
	ErrInvalidInput = errors.New("invalid input")
)

// 所有日期的任务共用一份文档，按日期键分桶
const taskDocumentKey = "tasks_data"

// TaskService 负责任务的增删改查与统计
// 每次操作都重新加载文档快照、变更后整体回写，读写失败在边界处吞掉
type TaskService struct {
	provider persist.Provider
}

// NewTaskService 构造 TaskService
func NewTaskService(provider persist.Provider) *TaskService {
	return &TaskService{provider: provider}
}

// TaskStats 汇总单日任务的状态计数与进度
type TaskStats struct {
	Total            int                        `json:"total"`
	Active           int                        `json:"active"`
	Done             int                        `json:"done"`
	Cancelled        int                        `json:"cancelled"`
	Percent          int                        `json:"percent"`
	Progress         stats.ProgressBar          `json:"progress"`
	EstimatedMinutes int                        `json:"estimatedMinutes"`
	ByCategory       map[string]stats.Aggregate `json:"byCategory"`
}

// 读取整份任务文档；缺失或损坏时回退为空文档，绝不向上抛错
func (s *TaskService) loadAll() map[string][]store.Task {
	raw, ok, err := s.provider.Load(taskDocumentKey)
	if err != nil {
		slog.Warn("load tasks failed, starting empty", "error", err)
		return map[string][]store.Task{}
	}
	if !ok {
		return map[string][]store.Task{}
	}

	var doc map[string][]store.Task
	if err := json.Unmarshal(raw, &doc); err != nil {
		// 损坏的文档整体丢弃，不做部分信任
		slog.Warn("tasks document malformed, starting empty", "error", err)
		return map[string][]store.Task{}
	}
	if doc == nil {
		doc = map[string][]store.Task{}
	}
	return doc
}

// 写回整份文档；失败记日志后继续，内存状态即为当前真相
func (s *TaskService) saveAll(doc map[string][]store.Task) {
	if err := s.provider.Save(taskDocumentKey, doc); err != nil {
		slog.Warn("save tasks failed, keeping in-memory state", "error", err)
	}
}

// List 返回某天的全部任务，保持插入顺序
func (s *TaskService) List(dateKey string) []store.Task {
	doc := s.loadAll()
	tasks := doc[dateKey]
	if tasks == nil {
		return []store.Task{}
	}
	return tasks
}

// Create 在某天追加任务，返回补全了默认值的记录
func (s *TaskService) Create(dateKey string, task store.Task) (store.Task, error) {
	doc := s.loadAll()

	ts := store.NewTaskStore(dateKey, doc[dateKey])
	id, err := ts.Add(task)
	if err != nil {
		if errors.Is(err, store.ErrValidation) {
			return store.Task{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return store.Task{}, fmt.Errorf("create task: %w", err)
	}

	doc[dateKey] = ts.Snapshot()
	if ts.Dirty() {
		s.saveAll(doc)
	}

	for _, t := range doc[dateKey] {
		if t.ID == id {
			return t, nil
		}
	}
	return store.Task{}, fmt.Errorf("create task: %w", ErrTaskNotFound)
}

// Update 合并局部字段；日期未知或任务不存在时返回对应的哨兵错误
func (s *TaskService) Update(dateKey, id string, patch store.TaskPatch) (store.Task, error) {
	doc := s.loadAll()
	tasks, ok := doc[dateKey]
	if !ok {
		return store.Task{}, fmt.Errorf("%w: %s", ErrDateNotFound, dateKey)
	}

	ts := store.NewTaskStore(dateKey, tasks)
	updated, err := ts.Update(id, patch)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
		}
		if errors.Is(err, store.ErrValidation) {
			return store.Task{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return store.Task{}, fmt.Errorf("update task: %w", err)
	}

	doc[dateKey] = ts.Snapshot()
	s.saveAll(doc)
	return updated, nil
}

// Delete 删除某天的任务；日期未知报错，任务不存在静默成功
func (s *TaskService) Delete(dateKey, id string) error {
	doc := s.loadAll()
	tasks, ok := doc[dateKey]
	if !ok {
		return fmt.Errorf("%w: %s", ErrDateNotFound, dateKey)
	}

	ts := store.NewTaskStore(dateKey, tasks)
	ts.Remove(id)
	if ts.Dirty() {
		doc[dateKey] = ts.Snapshot()
		s.saveAll(doc)
	}
	return nil
}

// Stats 重算某天的状态计数、完成进度与剩余估时
func (s *TaskService) Stats(dateKey string) TaskStats {
	tasks := s.List(dateKey)

	out := TaskStats{Total: len(tasks), ByCategory: map[string]stats.Aggregate{}}
	records := make([]stats.Record, 0, len(tasks))

	for _, t := range tasks {
		switch t.Status {
		case store.StatusActive:
			out.Active++
			out.EstimatedMinutes += t.EstimatedHours*60 + t.EstimatedMinutes
		case store.StatusDone:
			out.Done++
		case store.StatusCancelled:
			out.Cancelled++
		}
		records = append(records, stats.Record{
			DateKey:  dateKey,
			Owner:    t.ID,
			Category: t.Category,
			Done:     t.Status == store.StatusDone,
		})
	}

	out.Percent = stats.RoundPercent(out.Done, out.Total)
	out.Progress = stats.ToProgressBar(out.Percent)
	out.ByCategory = stats.Summarize(records, []string{dateKey}, stats.GroupByCategory)
	return out
}
