package handler

import (
	"time"

	"github.com/blogicum/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db        *gorm.DB
	posts     *service.PostService
	comments  *service.CommentService
	profiles  *service.ProfileService
	now       func() time.Time
	uploadDir string
	uploadURL string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, uploadDir, uploadURL string) *API {
	return &API{
		db:        gdb,
		posts:     service.NewPostService(gdb),
		comments:  service.NewCommentService(gdb),
		profiles:  service.NewProfileService(gdb),
		now:       time.Now,
		uploadDir: uploadDir,
		uploadURL: uploadURL,
	}
}

// WithClock 替换当前时间来源，测试用。
func (a *API) WithClock(now func() time.Time) *API {
	a.now = now
	return a
}

// DB exposes the underlying gorm instance for legacy paths.
func (a *API) DB() *gorm.DB {
	return a.db
}

func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["viewer"]; !exists {
		viewer := currentViewer(c)
		payload["viewer"] = gin.H{
			"id":            viewer.ID,
			"username":      viewer.Username,
			"authenticated": !viewer.IsAnonymous(),
		}
	}
	if _, exists := payload["year"]; !exists {
		payload["year"] = a.now().Year()
	}

	c.HTML(status, template, payload)
}
