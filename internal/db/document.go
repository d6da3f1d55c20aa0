package db

import (
	"time"

	"gorm.io/datatypes"
)

// PeriodDocument 以周期键存放一份 JSON 文档
// Key 即持久化契约中的 periodKey（如 habits_2025_5、tasks_data）
// Payload 保存整份文档，读写两侧只按整体替换，不做部分更新
type PeriodDocument struct {
	ID        uint           `gorm:"primarykey"`
	Key       string         `gorm:"uniqueIndex;size:128"`
	Payload   datatypes.JSON `gorm:"type:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName 固定表名，避免复数化歧义
func (PeriodDocument) TableName() string {
	return "period_documents"
}
