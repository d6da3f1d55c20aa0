package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetProfile 返回个人档案，未设置过时返回默认骨架
func (a *API) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, a.profile.Get())
}

// UpdateProfile 浅合并传入字段并返回合并后的档案
func (a *API) UpdateProfile(c *gin.Context) {
	var fields map[string]any
	if !bindJSON(c, &fields, "invalid profile payload") {
		return
	}
	c.JSON(http.StatusOK, a.profile.Update(fields))
}
