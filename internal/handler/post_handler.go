package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/blogicum/internal/db"
	"github.com/blogicum/internal/service"
	"github.com/gin-gonic/gin"
)

// postFormDateLayouts 依次尝试的发布时间格式：日期时间控件与纯日期控件。
var postFormDateLayouts = []string{"2006-01-02T15:04", "2006-01-02"}

// ShowPostCreate 渲染新文章表单
func (a *API) ShowPostCreate(c *gin.Context) {
	a.renderPostForm(c, http.StatusOK, nil, "")
}

// CreatePost 处理新文章提交，作者一律取自会话身份。
func (a *API) CreatePost(c *gin.Context) {
	input, err := a.bindPostForm(c)
	if err != nil {
		a.renderPostForm(c, http.StatusBadRequest, nil, formErrorMessage(err))
		return
	}

	post, err := a.posts.Create(currentViewer(c), input)
	if err != nil {
		if isValidationError(err) {
			a.renderPostForm(c, http.StatusBadRequest, nil, formErrorMessage(err))
			return
		}
		a.renderServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}

// ShowPostEdit 渲染文章编辑表单，仅作者可见。
func (a *API) ShowPostEdit(c *gin.Context) {
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
	if !a.posts.CanModify(viewer, detail.Post) {
		// 编辑页对非作者直接跳回文章详情。
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", postID))
		return
	}

	a.renderPostForm(c, http.StatusOK, &detail.Post, "")
}

// UpdatePost 处理文章编辑提交
func (a *API) UpdatePost(c *gin.Context) {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	input, err := a.bindPostForm(c)
	if err != nil {
		a.renderPostForm(c, http.StatusBadRequest, nil, formErrorMessage(err))
		return
	}

	post, err := a.posts.Update(currentViewer(c), postID, input)
	if err != nil {
		if isValidationError(err) {
			a.renderPostForm(c, http.StatusBadRequest, nil, formErrorMessage(err))
			return
		}
		if errors.Is(err, service.ErrForbidden) {
			c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", postID))
			return
		}
		a.renderServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", post.ID))
}

// DeletePost 处理文章删除
func (a *API) DeletePost(c *gin.Context) {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	viewer := currentViewer(c)
	if err := a.posts.Delete(viewer, postID); err != nil {
		if errors.Is(err, service.ErrForbidden) {
			c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", postID))
			return
		}
		a.renderServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/profile/%s/", viewer.Username))
}

func (a *API) renderPostForm(c *gin.Context, status int, post *db.Post, formError string) {
	var categories []db.Category
	a.db.Order("title asc").Find(&categories)

	var locations []db.Location
	a.db.Order("name asc").Find(&locations)

	data := gin.H{
		"title":      "写文章",
		"categories": categories,
		"locations":  locations,
	}
	if post != nil {
		data["title"] = "编辑文章"
		data["post"] = post
	}
	if formError != "" {
		data["error"] = formError
	}

	a.renderHTML(c, status, "post_form.html", data)
}

// bindPostForm 从表单字段构造 PostInput。注意表单里不含作者字段。
func (a *API) bindPostForm(c *gin.Context) (service.PostInput, error) {
	input := service.PostInput{
		Title:       c.PostForm("title"),
		Text:        c.PostForm("text"),
		IsPublished: c.PostForm("is_published") != "",
		ImageURL:    c.PostForm("image_url"),
	}

	rawDate := strings.TrimSpace(c.PostForm("pub_date"))
	if rawDate != "" {
		var parsed time.Time
		var err error
		for _, layout := range postFormDateLayouts {
			parsed, err = time.Parse(layout, rawDate)
			if err == nil {
				break
			}
		}
		if err != nil {
			return input, service.ErrPubDateRequired
		}
		input.PubDate = parsed
	}

	if id := parseOptionalUint(c.PostForm("category_id")); id != nil {
		input.CategoryID = id
	}
	if id := parseOptionalUint(c.PostForm("location_id")); id != nil {
		input.LocationID = id
	}

	return input, nil
}

func parseOptionalUint(raw string) *uint {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}
	parsed, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil {
		return nil
	}
	value := uint(parsed)
	return &value
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrTitleRequired) ||
		errors.Is(err, service.ErrTextRequired) ||
		errors.Is(err, service.ErrPubDateRequired) ||
		errors.Is(err, service.ErrCategoryNotFound) ||
		errors.Is(err, service.ErrLocationNotFound)
}

func formErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrTitleRequired):
		return "标题不能为空"
	case errors.Is(err, service.ErrTextRequired):
		return "正文不能为空"
	case errors.Is(err, service.ErrPubDateRequired):
		return "发布时间无效"
	case errors.Is(err, service.ErrCategoryNotFound):
		return "所选分类不存在"
	case errors.Is(err, service.ErrLocationNotFound):
		return "所选地点不存在"
	default:
		return "保存失败"
	}
}
