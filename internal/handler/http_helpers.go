package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ghabit/internal/datekey"
	"github.com/ghabit/internal/service"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// 把服务层哨兵错误映射为 HTTP 状态码
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, service.ErrDateNotFound),
		errors.Is(err, service.ErrHabitNotFound),
		errors.Is(err, service.ErrGoalNotFound):
		respondError(c, http.StatusNotFound, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "internal error")
	}
}

// 校验并返回 :date 路径参数，非法时已写好 400 响应
// 字面量 today 在服务端解析为当前日期
func dateParam(c *gin.Context) (string, bool) {
	key := c.Param("date")
	if key == "today" {
		return datekey.Key(time.Now()), true
	}
	if !datekey.Valid(key) {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid date %q, want YYYY-MM-DD", key))
		return "", false
	}
	return key, true
}

// 解析 "YYYY-MM" 形式的 :month 路径参数
func monthParam(c *gin.Context) (int, time.Month, bool) {
	raw := c.Param("month")
	t, err := time.ParseInLocation("2006-01", raw, time.Local)
	if err != nil {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid month %q, want YYYY-MM", raw))
		return 0, 0, false
	}
	return t.Year(), t.Month(), true
}

func yearParam(c *gin.Context) (int, bool) {
	raw := c.Param("year")
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1900 || year > 2200 {
		respondError(c, http.StatusBadRequest, fmt.Sprintf("invalid year %q", raw))
		return 0, false
	}
	return year, true
}
