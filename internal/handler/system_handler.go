package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// 会话里记录用户最后停留的位置，刷新后恢复
const lastViewSessionKey = "last_view"

// Ping 是健康检查端点
func (a *API) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// ClearAll 清空任务、习惯、目标数据，档案保留
func (a *API) ClearAll(c *gin.Context) {
	prefixes := []string{"tasks_data", "goals_data", "habits_"}
	for _, prefix := range prefixes {
		if err := a.documents.DeleteByPrefix(prefix); err != nil {
			respondError(c, http.StatusInternalServerError, "clear failed")
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetDocument 按周期键返回原始文档，供备份与远端同步使用
func (a *API) GetDocument(c *gin.Context) {
	key := c.Param("key")
	raw, ok, err := a.documents.Load(key)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "load document failed")
		return
	}
	if !ok {
		respondError(c, http.StatusNotFound, "document not found")
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// PutDocument 按周期键整体覆盖原始文档
func (a *API) PutDocument(c *gin.Context) {
	var payload json.RawMessage
	if !bindJSON(c, &payload, "invalid document payload") {
		return
	}

	if err := a.documents.Save(c.Param("key"), payload); err != nil {
		respondError(c, http.StatusInternalServerError, "save document failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetState 返回会话中记录的最后浏览位置
func (a *API) GetState(c *gin.Context) {
	session := sessions.Default(c)
	view, _ := session.Get(lastViewSessionKey).(string)
	if view == "" {
		view = "tasks"
	}
	c.JSON(http.StatusOK, gin.H{"lastView": view})
}

// PutState 更新会话中的最后浏览位置
func (a *API) PutState(c *gin.Context) {
	var payload struct {
		LastView string `json:"lastView"`
	}
	if !bindJSON(c, &payload, "invalid state payload") {
		return
	}

	session := sessions.Default(c)
	session.Set(lastViewSessionKey, payload.LastView)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "save session failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
