package persist

import (
	"encoding/json"
	"log/slog"
)

// Fallback 优先走 primary（通常是远端），任何失败都透明回退到 local
// 读失败回退读本地，写失败记日志后写本地，调用方永远不会看到网络错误
type Fallback struct {
	primary Provider
	local   Provider
}

// NewFallback 构造带本地回退的提供方
func NewFallback(primary, local Provider) *Fallback {
	return &Fallback{primary: primary, local: local}
}

// Load 读取文档，primary 失败时回退本地
func (f *Fallback) Load(periodKey string) (json.RawMessage, bool, error) {
	doc, ok, err := f.primary.Load(periodKey)
	if err == nil {
		return doc, ok, nil
	}

	slog.Warn("primary load failed, falling back to local", "key", periodKey, "error", err)
	return f.local.Load(periodKey)
}

// Save 写入文档，primary 失败时写本地保住数据
func (f *Fallback) Save(periodKey string, document any) error {
	if err := f.primary.Save(periodKey, document); err != nil {
		slog.Warn("primary save failed, falling back to local", "key", periodKey, "error", err)
		return f.local.Save(periodKey, document)
	}
	return nil
}
