package store

import "time"

// Status 表示任务记录的完成状态
type Status string

const (
	StatusActive    Status = "active"
	StatusDone      Status = "done"
	StatusCancelled Status = "cancelled"
)

// ValidStatus 判断状态取值是否合法
func ValidStatus(s Status) bool {
	switch s {
	case StatusActive, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// CanTransition 校验状态迁移是否可达
// done 与 cancelled 之间不能直接互转，必须经由 active 中转
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	switch from {
	case StatusActive:
		return to == StatusDone || to == StatusCancelled
	case StatusDone, StatusCancelled:
		return to == StatusActive
	}
	return false
}

// 任务的优先级象限（艾森豪威尔矩阵）
// IU=重要且紧急 IBNU=重要不紧急 NIBU=不重要但紧急 NINU=不重要不紧急
const (
	CategoryIU   = "IU"
	CategoryIBNU = "IBNU"
	CategoryNIBU = "NIBU"
	CategoryNINU = "NINU"
)

// DefaultCategory 是新任务的默认象限
const DefaultCategory = CategoryNINU

// ValidCategory 判断象限取值是否合法
func ValidCategory(category string) bool {
	switch category {
	case CategoryIU, CategoryIBNU, CategoryNIBU, CategoryNINU:
		return true
	}
	return false
}

// Task 是按日期寻址的任务记录
// DateKey 一经聚合即视为不可变，换日期等价于删除后重建
type Task struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Note             string    `json:"note"`
	Status           Status    `json:"status"`
	Category         string    `json:"category"`
	DateKey          string    `json:"date"`
	EstimatedHours   int       `json:"estimatedHours"`
	EstimatedMinutes int       `json:"estimatedMinutes"`
	PomoSessions     int       `json:"pomoSessions"`
	TargetPomos      int       `json:"targetPomos"`
	CreatedAt        time.Time `json:"createdAt"`
}

// TaskPatch 描述任务的局部更新，nil 字段表示不修改
type TaskPatch struct {
	Title            *string `json:"title"`
	Note             *string `json:"note"`
	Status           *Status `json:"status"`
	Category         *string `json:"category"`
	EstimatedHours   *int    `json:"estimatedHours"`
	EstimatedMinutes *int    `json:"estimatedMinutes"`
	PomoSessions     *int    `json:"pomoSessions"`
	TargetPomos      *int    `json:"targetPomos"`
}

// Habit 是月度周期内被追踪的行为
// Order 决定默认展示顺序，拖拽排序后重新赋值
type Habit struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// MonthDocument 是习惯月度周期的持久化文档
// HabitData 按 habitId -> dateKey -> bool 存放稀疏的打卡标记
type MonthDocument struct {
	Habits    []Habit                    `json:"habits"`
	HabitData map[string]map[string]bool `json:"habitData"`
}

// EmptyMonthDocument 返回全新的空月度文档
func EmptyMonthDocument() MonthDocument {
	return MonthDocument{Habits: []Habit{}, HabitData: map[string]map[string]bool{}}
}

// Goal 是不分周期的长期目标
type Goal struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    string    `json:"targetDate"`
	Category    string    `json:"category"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
