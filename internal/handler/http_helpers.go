package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/blogicum/internal/service"
	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func parseUintParam(c *gin.Context, key string) (uint, error) {
	raw := c.Param(key)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return uint(id), nil
}

// parsePage 解析页码查询参数。缺省为第一页；
// 解析失败或非正整数按无效输入处理，而不是悄悄回退。
func parsePage(c *gin.Context) (int, error) {
	raw := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 0, service.ErrInvalidPage
	}
	return page, nil
}

// renderServiceError 将服务层错误映射为对应的用户页面。
func (a *API) renderServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound),
		errors.Is(err, service.ErrCategoryNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrCommentNotFound):
		a.renderNotFound(c)
	case errors.Is(err, service.ErrNotAuthenticated):
		c.Redirect(http.StatusFound, "/auth/login/")
		c.Abort()
	case errors.Is(err, service.ErrForbidden):
		a.renderHTML(c, http.StatusForbidden, "403.html", gin.H{"title": "没有权限"})
	case errors.Is(err, service.ErrInvalidPage):
		a.renderHTML(c, http.StatusBadRequest, "400.html", gin.H{"title": "无效的页码"})
	default:
		a.renderHTML(c, http.StatusInternalServerError, "500.html", gin.H{"title": "服务器错误"})
	}
}

func (a *API) renderNotFound(c *gin.Context) {
	a.renderHTML(c, http.StatusNotFound, "404.html", gin.H{"title": "页面不存在"})
}
