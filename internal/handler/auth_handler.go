package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/blogicum/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// ShowLoginPage 渲染登录页面
func (a *API) ShowLoginPage(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "login.html", gin.H{
		"title": "登录",
	})
}

// Login 处理用户登录请求
func (a *API) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := a.profiles.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			a.renderHTML(c, http.StatusUnauthorized, "login.html", gin.H{
				"title": "登录",
				"error": "用户名或密码错误",
			})
			return
		}
		a.renderServiceError(c, err)
		return
	}

	// 设置会话
	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "login.html", gin.H{
			"title": "登录",
			"error": "会话保存失败",
		})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", user.Username))
}

// Logout 处理用户登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/")
}

// ShowRegistrationPage 渲染注册页面
func (a *API) ShowRegistrationPage(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "registration.html", gin.H{
		"title": "注册",
	})
}

// Register 创建新账号并自动登录
func (a *API) Register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := a.profiles.Register(username, password)
	if err != nil {
		message := "注册失败"
		switch {
		case errors.Is(err, service.ErrUsernameRequired):
			message = "用户名不能为空"
		case errors.Is(err, service.ErrPasswordRequired):
			message = "密码不能为空"
		case errors.Is(err, service.ErrUsernameTaken):
			message = "用户名已被占用"
		}
		a.renderHTML(c, http.StatusBadRequest, "registration.html", gin.H{
			"title":    "注册",
			"error":    message,
			"username": username,
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		c.Redirect(http.StatusFound, "/auth/login/")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// AuthRequired 是一个简单的认证中间件
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		userID := session.Get("user_id")
		if userID == nil {
			c.Redirect(http.StatusFound, "/auth/login/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// currentViewer 从会话中解析当前访问者，匿名访问返回零值。
func currentViewer(c *gin.Context) service.Viewer {
	session := sessions.Default(c)

	viewer := service.Viewer{}
	if id, ok := session.Get("user_id").(uint); ok {
		viewer.ID = id
	}
	if name, ok := session.Get("username").(string); ok {
		viewer.Username = name
	}
	return viewer
}
