package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ghabit/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentStore 是基于 SQLite 的本地文档存储
type DocumentStore struct {
	db *gorm.DB
}

// NewDocumentStore 构造本地文档存储
func NewDocumentStore(gdb *gorm.DB) *DocumentStore {
	return &DocumentStore{db: gdb}
}

// Load 读取周期文档，不存在时返回 (nil, false, nil)
func (s *DocumentStore) Load(periodKey string) (json.RawMessage, bool, error) {
	var doc db.PeriodDocument
	if err := s.db.Where("key = ?", periodKey).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("%w: load document %s: %v", ErrPersistence, periodKey, err)
	}
	return json.RawMessage(doc.Payload), true, nil
}

// Save 整体覆盖写入周期文档，按 key 幂等 upsert
func (s *DocumentStore) Save(periodKey string, document any) error {
	payload, err := json.Marshal(document)
	if err != nil {
		return fmt.Errorf("%w: marshal document %s: %v", ErrPersistence, periodKey, err)
	}

	record := db.PeriodDocument{Key: periodKey, Payload: payload}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&record).Error; err != nil {
		return fmt.Errorf("%w: save document %s: %v", ErrPersistence, periodKey, err)
	}

	return nil
}

// DeleteByPrefix 删除所有以 prefix 开头的周期文档（清空数据时使用）
func (s *DocumentStore) DeleteByPrefix(prefix string) error {
	like := strings.ReplaceAll(strings.ReplaceAll(prefix, "%", `\%`), "_", `\_`) + "%"
	if err := s.db.Where(`key LIKE ? ESCAPE '\'`, like).Delete(&db.PeriodDocument{}).Error; err != nil {
		return fmt.Errorf("%w: delete documents %s*: %v", ErrPersistence, prefix, err)
	}
	return nil
}
