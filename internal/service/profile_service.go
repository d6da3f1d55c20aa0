package service

import (
	"encoding/json"
	"log/slog"

	"github.com/ghabit/internal/persist"
)

const profileDocumentKey = "profile_data"

// ProfileService 负责个人档案文档的读取与浅合并更新
type ProfileService struct {
	provider persist.Provider
}

// NewProfileService 构造 ProfileService
func NewProfileService(provider persist.Provider) *ProfileService {
	return &ProfileService{provider: provider}
}

// 默认档案：未设置过时返回这份骨架
func defaultProfile() map[string]any {
	return map[string]any{
		"name":  "User",
		"stats": map[string]any{},
	}
}

// Get 返回当前档案，缺失或损坏时回退为默认档案
func (s *ProfileService) Get() map[string]any {
	raw, ok, err := s.provider.Load(profileDocumentKey)
	if err != nil {
		slog.Warn("load profile failed, using defaults", "error", err)
		return defaultProfile()
	}
	if !ok {
		return defaultProfile()
	}

	var profile map[string]any
	if err := json.Unmarshal(raw, &profile); err != nil {
		slog.Warn("profile document malformed, using defaults", "error", err)
		return defaultProfile()
	}
	if profile == nil {
		return defaultProfile()
	}
	return profile
}

// Update 把传入字段浅合并进现有档案并回写，返回合并后的档案
func (s *ProfileService) Update(fields map[string]any) map[string]any {
	profile := s.Get()
	for key, value := range fields {
		profile[key] = value
	}

	if err := s.provider.Save(profileDocumentKey, profile); err != nil {
		slog.Warn("save profile failed, keeping in-memory state", "error", err)
	}
	return profile
}
