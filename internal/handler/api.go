package handler

import (
	"github.com/ghabit/internal/persist"
	"github.com/ghabit/internal/service"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	tasks     *service.TaskService
	habits    *service.HabitService
	goals     *service.GoalService
	profile   *service.ProfileService
	documents *persist.DocumentStore
}

// NewAPI constructs a handler set with shared services.
// provider 是读写文档的主通道，documents 是本地库直达通道，
// 供原始文档接口与清库操作使用。
func NewAPI(provider persist.Provider, documents *persist.DocumentStore) *API {
	return &API{
		tasks:     service.NewTaskService(provider),
		habits:    service.NewHabitService(provider),
		goals:     service.NewGoalService(provider),
		profile:   service.NewProfileService(provider),
		documents: documents,
	}
}
