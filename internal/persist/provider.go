// Package persist 定义周期文档的持久化提供方契约。
// 本地键值存储与远端 API 都实现同一契约，调用方不感知差异。
package persist

import (
	"encoding/json"
	"errors"
)

// ErrPersistence 在底层读写失败时返回
var ErrPersistence = errors.New("persistence failed")

// Provider 按周期键读写 JSON 文档
// Load 第二个返回值指示文档是否存在；不存在不是错误
type Provider interface {
	Load(periodKey string) (json.RawMessage, bool, error)
	Save(periodKey string, document any) error
}
