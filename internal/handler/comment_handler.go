package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/blogicum/internal/service"
	"github.com/gin-gonic/gin"
)

// CreateComment 在文章下新增评论，作者取自会话身份。
func (a *API) CreateComment(c *gin.Context) {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	_, err = a.comments.Create(currentViewer(c), postID, c.PostForm("text"))
	if err != nil {
		if errors.Is(err, service.ErrCommentRequired) {
			// 空评论直接回到详情页，由模板显示校验提示。
			c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", postID))
			return
		}
		a.renderServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", postID))
}

// ShowCommentEdit 渲染评论编辑表单，仅评论作者可见。
func (a *API) ShowCommentEdit(c *gin.Context) {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}
	commentID, err := parseUintParam(c, "comment_id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	comment, err := a.comments.Get(commentID)
	if err != nil {
		a.renderServiceError(c, err)
		return
	}
	if comment.PostID != postID {
		a.renderNotFound(c)
		return
	}
	if !a.comments.CanModify(currentViewer(c), *comment) {
		a.renderServiceError(c, service.ErrForbidden)
		return
	}

	a.renderHTML(c, http.StatusOK, "comment_form.html", gin.H{
		"title":   "编辑评论",
		"comment": comment,
	})
}

// UpdateComment 处理评论编辑提交
func (a *API) UpdateComment(c *gin.Context) {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}
	commentID, err := parseUintParam(c, "comment_id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	_, err = a.comments.Update(currentViewer(c), commentID, c.PostForm("text"))
	if err != nil {
		if errors.Is(err, service.ErrCommentRequired) {
			c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/edit_comment/%d/", postID, commentID))
			return
		}
		a.renderServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", postID))
}

// DeleteComment 处理评论删除
func (a *API) DeleteComment(c *gin.Context) {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		a.renderNotFound(c)
		return
	}
	commentID, err := parseUintParam(c, "comment_id")
	if err != nil {
		a.renderNotFound(c)
		return
	}

	if err := a.comments.Delete(currentViewer(c), commentID); err != nil {
		a.renderServiceError(c, err)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%d/", postID))
}
