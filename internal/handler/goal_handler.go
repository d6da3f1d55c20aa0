package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ghabit/internal/service"
	"github.com/ghabit/internal/store"
)

type goalView struct {
	service.GoalView
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
}

func toGoalView(view service.GoalView) goalView {
	out := goalView{GoalView: view}
	if html, err := service.RenderNote(view.Description); err == nil {
		out.DescriptionHTML = html
	}
	return out
}

// ListGoals 返回全部目标及其倒计时
func (a *API) ListGoals(c *gin.Context) {
	goals := a.goals.List()
	views := make([]goalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, toGoalView(g))
	}
	c.JSON(http.StatusOK, gin.H{"goals": views})
}

// CreateGoal 创建一个目标
func (a *API) CreateGoal(c *gin.Context) {
	var payload store.Goal
	if !bindJSON(c, &payload, "invalid goal payload") {
		return
	}

	created, err := a.goals.Create(payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toGoalView(created))
}

// UpdateGoal 合并目标的局部字段
func (a *API) UpdateGoal(c *gin.Context) {
	var patch service.GoalPatch
	if !bindJSON(c, &patch, "invalid goal patch") {
		return
	}

	updated, err := a.goals.Update(c.Param("id"), patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGoalView(updated))
}

// DeleteGoal 删除目标，目标不存在时也返回成功
func (a *API) DeleteGoal(c *gin.Context) {
	a.goals.Delete(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"success": true})
}
