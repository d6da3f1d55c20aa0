package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ghabit/internal/service"
	"github.com/ghabit/internal/store"
)

type taskView struct {
	store.Task
	NoteHTML string `json:"noteHtml,omitempty"`
}

// 备注按 Markdown 渲染后随任务一起返回，渲染失败时退回纯文本
func toTaskView(task store.Task) taskView {
	view := taskView{Task: task}
	if html, err := service.RenderNote(task.Note); err == nil {
		view.NoteHTML = html
	}
	return view
}

// ListTasks 返回某天的任务列表
func (a *API) ListTasks(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}

	tasks := a.tasks.List(date)
	views := make([]taskView, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, toTaskView(t))
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "tasks": views})
}

// CreateTask 在某天创建任务
func (a *API) CreateTask(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}

	var payload store.Task
	if !bindJSON(c, &payload, "invalid task payload") {
		return
	}

	created, err := a.tasks.Create(date, payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTaskView(created))
}

// UpdateTask 合并任务的局部字段
func (a *API) UpdateTask(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}

	var patch store.TaskPatch
	if !bindJSON(c, &patch, "invalid task patch") {
		return
	}

	updated, err := a.tasks.Update(date, c.Param("id"), patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskView(updated))
}

// DeleteTask 删除某天的任务
func (a *API) DeleteTask(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}

	if err := a.tasks.Delete(date, c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// TaskStats 返回某天任务的统计快照
func (a *API) TaskStats(c *gin.Context) {
	date, ok := dateParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, a.tasks.Stats(date))
}
