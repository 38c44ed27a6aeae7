package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ShowAbout 渲染关于页面
func (a *API) ShowAbout(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "about.html", gin.H{
		"title": "关于本站",
	})
}

// ShowRules 渲染站点规则页面
func (a *API) ShowRules(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "rules.html", gin.H{
		"title": "社区规则",
	})
}

// NotFound 兜底处理未匹配的路由
func (a *API) NotFound(c *gin.Context) {
	a.renderNotFound(c)
}
