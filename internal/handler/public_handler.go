package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/blogicum/internal/db"
	"github.com/blogicum/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// renderMarkdown 将文章正文渲染为净化后的 HTML。
func renderMarkdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(text), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

// ShowIndex renders the public feed of visible posts.
func (a *API) ShowIndex(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		a.renderServiceError(c, err)
		return
	}

	viewer := currentViewer(c)
	result, err := a.posts.ListVisible(viewer, service.PostScope{}, page, a.now())
	if err != nil {
		a.renderServiceError(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "index.html", gin.H{
		"title":      "最新文章",
		"posts":      result.Posts,
		"page":       result.Page,
		"totalPages": result.TotalPages,
		"total":      result.Total,
	})
}

// ShowCategoryPosts renders visible posts of one published category.
func (a *API) ShowCategoryPosts(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		a.renderServiceError(c, err)
		return
	}

	viewer := currentViewer(c)
	scope := service.PostScope{CategorySlug: c.Param("slug")}
	result, err := a.posts.ListVisible(viewer, scope, page, a.now())
	if err != nil {
		a.renderServiceError(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "category.html", gin.H{
		"title":      result.Category.Title,
		"category":   result.Category,
		"posts":      result.Posts,
		"page":       result.Page,
		"totalPages": result.TotalPages,
		"total":      result.Total,
	})
}

// ShowProfile renders a user's page with their posts. The profile owner
// also sees unpublished and future-dated posts.
func (a *API) ShowProfile(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		a.renderServiceError(c, err)
		return
	}

	viewer := currentViewer(c)
	scope := service.PostScope{AuthorUsername: c.Param("username")}
	result, err := a.posts.ListVisible(viewer, scope, page, a.now())
	if err != nil {
		a.renderServiceError(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "profile.html", gin.H{
		"title":      result.Profile.DisplayName(),
		"profile":    result.Profile,
		"isOwner":    !viewer.IsAnonymous() && viewer.Username == result.Profile.Username,
		"posts":      result.Posts,
		"page":       result.Page,
		"totalPages": result.TotalPages,
		"total":      result.Total,
	})
}

// ShowPostDetail renders a single post with its comments.
func (a *API) ShowPostDetail(c *gin.Context) {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	viewer := currentViewer(c)
	detail, err := a.posts.GetDetail(viewer, postID, a.now())
	if err != nil {
		a.renderServiceError(c, err)
		return
	}

	a.renderHTML(c, http.StatusOK, "post_detail.html", gin.H{
		"title":          detail.Post.Title,
		"post":           detail.Post,
		"text":           renderMarkdown(detail.Post.Text),
		"comments":       detail.Comments,
		"canEditPost":    a.posts.CanModify(viewer, detail.Post),
		"canEditComment": commentPermissions(a.comments, viewer, detail.Comments),
	})
}

// commentPermissions 为每条评论预先算好当前访问者的修改权限。
func commentPermissions(svc *service.CommentService, viewer service.Viewer, comments []db.Comment) map[uint]bool {
	permissions := make(map[uint]bool, len(comments))
	for _, comment := range comments {
		permissions[comment.ID] = svc.CanModify(viewer, comment)
	}
	return permissions
}
