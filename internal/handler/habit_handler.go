package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type habitPayload struct {
	Name string `json:"name"`
}

type markPayload struct {
	HabitID string `json:"habitId"`
	Date    string `json:"date"`
	Done    bool   `json:"done"`
}

type orderPayload struct {
	IDs []string `json:"ids"`
}

// GetHabitMonth 返回某个月的习惯清单与打卡标记
func (a *API) GetHabitMonth(c *gin.Context) {
	year, month, ok := monthParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, a.habits.Month(year, month))
}

// CreateHabit 在某个月追加习惯
func (a *API) CreateHabit(c *gin.Context) {
	year, month, ok := monthParam(c)
	if !ok {
		return
	}

	var payload habitPayload
	if !bindJSON(c, &payload, "invalid habit payload") {
		return
	}

	habit, err := a.habits.CreateHabit(year, month, payload.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, habit)
}

// DeleteHabit 删除习惯及其打卡标记
func (a *API) DeleteHabit(c *gin.Context) {
	year, month, ok := monthParam(c)
	if !ok {
		return
	}

	a.habits.DeleteHabit(year, month, c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetHabitMark 写入某习惯某天的打卡标记
func (a *API) SetHabitMark(c *gin.Context) {
	year, month, ok := monthParam(c)
	if !ok {
		return
	}

	var payload markPayload
	if !bindJSON(c, &payload, "invalid mark payload") {
		return
	}

	if err := a.habits.SetMark(year, month, payload.HabitID, payload.Date, payload.Done); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SetHabitOrder 按给定 id 序列重排习惯显示顺序
func (a *API) SetHabitOrder(c *gin.Context) {
	year, month, ok := monthParam(c)
	if !ok {
		return
	}

	var payload orderPayload
	if !bindJSON(c, &payload, "invalid order payload") {
		return
	}

	a.habits.SetOrder(year, month, payload.IDs)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// CopyPreviousHabits 把上个月的习惯名单复制到本月
func (a *API) CopyPreviousHabits(c *gin.Context) {
	year, month, ok := monthParam(c)
	if !ok {
		return
	}

	copied, err := a.habits.CopyPrevious(year, month)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"copiedCount": copied})
}

// HabitMonthStats 返回某个月的完成率、连胜与排行榜
func (a *API) HabitMonthStats(c *gin.Context) {
	year, month, ok := monthParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, a.habits.Stats(year, month))
}

// HabitWeekCards 返回某个月按周拆分的完成情况卡片
func (a *API) HabitWeekCards(c *gin.Context) {
	year, month, ok := monthParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"weeks": a.habits.WeekCards(year, month)})
}

// HabitYearRollup 返回全年逐月完成率
func (a *API) HabitYearRollup(c *gin.Context) {
	year, ok := yearParam(c)
	if !ok {
		return
	}

	rollup := a.habits.YearRollup(year)
	c.JSON(http.StatusOK, gin.H{"year": year, "months": rollup[:]})
}
