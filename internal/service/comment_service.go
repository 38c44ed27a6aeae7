package service

import (
	"errors"
	"strings"

	"github.com/blogicum/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrCommentRequired = errors.New("comment text is required")
)

// CommentService wraps comment related database operations.
type CommentService struct {
	db *gorm.DB
}

// NewCommentService creates a CommentService instance.
func NewCommentService(gdb *gorm.DB) *CommentService {
	return &CommentService{db: gdb}
}

// Create persists a comment on an existing post. Commenting is allowed on
// any existing post, visible or not; only the target's existence is checked.
func (s *CommentService) Create(author Viewer, postID uint, text string) (*db.Comment, error) {
	if author.IsAnonymous() {
		return nil, ErrNotAuthenticated
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrCommentRequired
	}

	var count int64
	if err := s.db.Model(&db.Post{}).Where("id = ?", postID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrPostNotFound
	}

	comment := db.Comment{
		Text:   trimmed,
		PostID: postID,
		UserID: author.ID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	if err := s.db.Preload("User").First(&comment, comment.ID).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// Get fetches a comment by id with its author preloaded.
func (s *CommentService) Get(commentID uint) (*db.Comment, error) {
	var comment db.Comment
	if err := s.db.Preload("User").First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// CanModify 是纯判定：已登录且为评论作者时才允许编辑或删除。
func (s *CommentService) CanModify(viewer Viewer, comment db.Comment) bool {
	return !viewer.IsAnonymous() && viewer.ID == comment.UserID
}

// Update replaces the text of an existing comment after an ownership check.
func (s *CommentService) Update(viewer Viewer, commentID uint, text string) (*db.Comment, error) {
	comment, err := s.authorized(viewer, commentID)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrCommentRequired
	}

	comment.Text = trimmed
	if err := s.db.Save(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete removes a comment after an ownership check. The delete is hard.
func (s *CommentService) Delete(viewer Viewer, commentID uint) error {
	comment, err := s.authorized(viewer, commentID)
	if err != nil {
		return err
	}
	return s.db.Delete(&db.Comment{}, comment.ID).Error
}

func (s *CommentService) authorized(viewer Viewer, commentID uint) (*db.Comment, error) {
	var comment db.Comment
	if err := s.db.First(&comment, commentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	if viewer.IsAnonymous() {
		return nil, ErrNotAuthenticated
	}
	if !s.CanModify(viewer, comment) {
		return nil, ErrForbidden
	}
	return &comment, nil
}
