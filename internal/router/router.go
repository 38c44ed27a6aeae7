package router

import (
	"html/template"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/db"
	"github.com/blogicum/internal/handler"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter 配置 Gin 引擎和路由
func SetupRouter(cfg config.AppConfig) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("blogicum_session", store))

	// 加载模板并添加自定义函数
	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"gt": func(a, b int) bool {
			return a > b
		},
		"lt": func(a, b int) bool {
			return a < b
		},
	})
	if cfg.TemplateGlob != "" {
		r.LoadHTMLGlob(cfg.TemplateGlob)
	}

	// 静态文件服务
	r.Static("/static", "./web/static")

	api := handler.NewAPI(db.DB, cfg.UploadDir, cfg.UploadURLPath)

	// 公开页面
	r.GET("/", api.ShowIndex)
	r.GET("/posts/:id/", api.ShowPostDetail)
	r.GET("/category/:slug/", api.ShowCategoryPosts)
	r.GET("/profile/:username/", api.ShowProfile)

	// 静态信息页
	pages := r.Group("/pages")
	{
		pages.GET("/about/", api.ShowAbout)
		pages.GET("/rules/", api.ShowRules)
	}

	// 认证
	auth := r.Group("/auth")
	{
		auth.GET("/login/", api.ShowLoginPage)
		auth.POST("/login/", api.Login)
		auth.GET("/logout/", api.Logout)
		auth.GET("/registration/", api.ShowRegistrationPage)
		auth.POST("/registration/", api.Register)
	}

	// 需要登录的写操作
	authed := r.Group("")
	authed.Use(handler.AuthRequired())
	{
		authed.GET("/posts/create/", api.ShowPostCreate)
		authed.POST("/posts/create/", api.CreatePost)
		authed.GET("/posts/:id/edit/", api.ShowPostEdit)
		authed.POST("/posts/:id/edit/", api.UpdatePost)
		authed.POST("/posts/:id/delete/", api.DeletePost)

		authed.POST("/posts/:id/comment/", api.CreateComment)
		authed.GET("/posts/:id/edit_comment/:comment_id/", api.ShowCommentEdit)
		authed.POST("/posts/:id/edit_comment/:comment_id/", api.UpdateComment)
		authed.POST("/posts/:id/delete_comment/:comment_id/", api.DeleteComment)

		authed.GET("/profile_edit/", api.ShowProfileEdit)
		authed.POST("/profile_edit/", api.UpdateProfile)

		authed.POST("/upload/image", api.UploadImage)
	}

	r.NoRoute(api.NotFound)

	return r
}
