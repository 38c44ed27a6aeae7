package handler

import (
	"fmt"
	"net/http"

	"github.com/blogicum/internal/service"
	"github.com/gin-gonic/gin"
)

// ShowProfileEdit 渲染当前用户的资料编辑表单
func (a *API) ShowProfileEdit(c *gin.Context) {
	viewer := currentViewer(c)
	user, err := a.profiles.GetByUsername(viewer.Username)
	if err != nil {
		a.renderServiceError(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "profile_edit.html", gin.H{
		"title":   "编辑资料",
		"profile": user,
	})
}

// UpdateProfile 处理资料编辑提交，只允许修改自己的资料。
func (a *API) UpdateProfile(c *gin.Context) {
	viewer := currentViewer(c)
	input := service.ProfileInput{
		FirstName: c.PostForm("first_name"),
		LastName:  c.PostForm("last_name"),
		Bio:       c.PostForm("bio"),
	}

	user, err := a.profiles.Update(viewer, input)
	if err != nil {
		a.renderServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", user.Username))
}
