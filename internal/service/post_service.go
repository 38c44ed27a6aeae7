package service

import (
	"errors"
	"strings"
	"time"

	"github.com/blogicum/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound     = errors.New("post not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrInvalidPage      = errors.New("page must be a positive integer")
	ErrTitleRequired    = errors.New("post title is required")
	ErrTextRequired     = errors.New("post text is required")
	ErrPubDateRequired  = errors.New("post publish date is required")
)

// PageSize 是所有文章列表的固定分页大小。
const PageSize = 10

// commentCountSelect 在列表查询中聚合每篇文章的评论数，避免逐行查询。
const commentCountSelect = "posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count"

// PostService wraps post related database operations.
type PostService struct {
	db *gorm.DB
}

// PostScope restricts a listing to one dimension: everything, one
// category slug, or one author username. The zero value lists everything.
type PostScope struct {
	CategorySlug   string
	AuthorUsername string
}

// PostListResult aggregates paginated list data.
type PostListResult struct {
	Posts      []db.Post
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
	Category   *db.Category
	Profile    *db.User
}

// PostDetail bundles a post with its ordered comments.
type PostDetail struct {
	Post     db.Post
	Comments []db.Comment
}

// PostInput represents fields accepted when creating or updating a post.
// 作者永远来自会话身份，因此这里没有作者字段。
type PostInput struct {
	Title       string
	Text        string
	PubDate     time.Time
	IsPublished bool
	ImageURL    string
	CategoryID  *uint
	LocationID  *uint
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// ListVisible returns one page of posts visible to the viewer inside the
// given scope, ordered by publish date descending. The current time is
// injected so visibility stays deterministic under test.
func (s *PostService) ListVisible(viewer Viewer, scope PostScope, page int, now time.Time) (*PostListResult, error) {
	if page < 1 {
		return nil, ErrInvalidPage
	}

	result := &PostListResult{Page: page, PerPage: PageSize}

	var categoryID, authorID uint
	skipVisibility := false

	switch {
	case scope.CategorySlug != "":
		category, err := s.publishedCategory(scope.CategorySlug)
		if err != nil {
			return nil, err
		}
		result.Category = category
		categoryID = category.ID
	case scope.AuthorUsername != "":
		var author db.User
		if err := s.db.Where("username = ?", scope.AuthorUsername).First(&author).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			return nil, err
		}
		result.Profile = &author
		authorID = author.ID
		// 作者查看自己的主页时可以看到全部文章，包括草稿和未来定时发布的。
		skipVisibility = !viewer.IsAnonymous() && viewer.Username == author.Username
	}

	// Count 与数据查询各自从头构建，避免复用已执行的查询对象。
	scoped := func() *gorm.DB {
		query := s.db.Model(&db.Post{})
		if categoryID != 0 {
			query = query.Where("posts.category_id = ?", categoryID)
		}
		if authorID != 0 {
			query = query.Where("posts.user_id = ?", authorID)
		}
		if !skipVisibility {
			query = s.applyVisibility(query, now)
		}
		return query
	}

	if err := scoped().Count(&result.Total).Error; err != nil {
		return nil, err
	}

	offset := (page - 1) * PageSize

	var posts []db.Post
	if err := scoped().
		Select(commentCountSelect).
		Preload("User").
		Preload("Category").
		Preload("Location").
		Order("posts.pub_date desc, posts.id desc").
		Limit(PageSize).
		Offset(offset).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	if result.Total == 0 {
		result.TotalPages = 1
	} else {
		result.TotalPages = int((result.Total + PageSize - 1) / PageSize)
	}

	result.Posts = posts
	return result, nil
}

// GetDetail fetches one post with its comments ordered oldest first.
// An invisible post is indistinguishable from a missing one for everyone
// except its author.
func (s *PostService) GetDetail(viewer Viewer, postID uint, now time.Time) (*PostDetail, error) {
	var post db.Post
	if err := s.db.
		Preload("User").
		Preload("Category").
		Preload("Location").
		First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if post.UserID != viewer.ID && !visibleTo(post, now) {
		return nil, ErrPostNotFound
	}

	var comments []db.Comment
	if err := s.db.
		Preload("User").
		Where("post_id = ?", post.ID).
		Order("created_at asc, id asc").
		Find(&comments).Error; err != nil {
		return nil, err
	}

	post.CommentCount = int64(len(comments))
	return &PostDetail{Post: post, Comments: comments}, nil
}

// CanModify 是纯判定：已登录且为文章作者时才允许编辑或删除。
func (s *PostService) CanModify(viewer Viewer, post db.Post) bool {
	return !viewer.IsAnonymous() && viewer.ID == post.UserID
}

// Create persists a post owned by the authenticated author.
func (s *PostService) Create(author Viewer, input PostInput) (*db.Post, error) {
	if author.IsAnonymous() {
		return nil, ErrNotAuthenticated
	}

	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	post := db.Post{
		Title:       strings.TrimSpace(input.Title),
		Text:        input.Text,
		PubDate:     input.PubDate,
		IsPublished: input.IsPublished,
		ImageURL:    strings.TrimSpace(input.ImageURL),
		UserID:      author.ID,
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
	}

	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}

	return s.reload(post.ID)
}

// Update applies updates to an existing post after an ownership check.
func (s *PostService) Update(viewer Viewer, postID uint, input PostInput) (*db.Post, error) {
	existing, err := s.authorized(viewer, postID)
	if err != nil {
		return nil, err
	}

	if err := s.validateInput(&input); err != nil {
		return nil, err
	}

	existing.Title = strings.TrimSpace(input.Title)
	existing.Text = input.Text
	existing.PubDate = input.PubDate
	existing.IsPublished = input.IsPublished
	existing.ImageURL = strings.TrimSpace(input.ImageURL)
	existing.CategoryID = input.CategoryID
	existing.LocationID = input.LocationID

	if err := s.db.Save(existing).Error; err != nil {
		return nil, err
	}

	return s.reload(existing.ID)
}

// Delete removes a post after an ownership check. The delete is hard.
func (s *PostService) Delete(viewer Viewer, postID uint) error {
	existing, err := s.authorized(viewer, postID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", existing.ID).Delete(&db.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&db.Post{}, existing.ID).Error
	})
}

// authorized 加载文章并校验修改权限：匿名与非作者分别返回不同错误。
func (s *PostService) authorized(viewer Viewer, postID uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if viewer.IsAnonymous() {
		return nil, ErrNotAuthenticated
	}
	if !s.CanModify(viewer, post) {
		return nil, ErrForbidden
	}
	return &post, nil
}

// applyVisibility 应用共享的可见性谓词：已发布、发布时间已到、
// 所属分类（若有）也已发布。
func (s *PostService) applyVisibility(query *gorm.DB, now time.Time) *gorm.DB {
	publishedCategories := s.db.Model(&db.Category{}).
		Select("id").
		Where("is_published = ?", true)

	return query.
		Where("posts.is_published = ?", true).
		Where("posts.pub_date <= ?", now).
		Where("posts.category_id IS NULL OR posts.category_id IN (?)", publishedCategories)
}

// visibleTo reports whether an already loaded post passes the same
// predicate applyVisibility enforces in SQL.
func visibleTo(post db.Post, now time.Time) bool {
	if !post.IsPublished {
		return false
	}
	if post.PubDate.After(now) {
		return false
	}
	if post.Category != nil && !post.Category.IsPublished {
		return false
	}
	return true
}

func (s *PostService) publishedCategory(slug string) (*db.Category, error) {
	var category db.Category
	if err := s.db.
		Where("slug = ? AND is_published = ?", slug, true).
		First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 分类不存在与分类未发布对外不做区分。
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (s *PostService) validateInput(input *PostInput) error {
	if strings.TrimSpace(input.Title) == "" {
		return ErrTitleRequired
	}
	if strings.TrimSpace(input.Text) == "" {
		return ErrTextRequired
	}
	if input.PubDate.IsZero() {
		return ErrPubDateRequired
	}

	if input.CategoryID != nil {
		var count int64
		if err := s.db.Model(&db.Category{}).Where("id = ?", *input.CategoryID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrCategoryNotFound
		}
	}

	if input.LocationID != nil {
		var count int64
		if err := s.db.Model(&db.Location{}).Where("id = ?", *input.LocationID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrLocationNotFound
		}
	}

	return nil
}

func (s *PostService) reload(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.
		Preload("User").
		Preload("Category").
		Preload("Location").
		First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}
