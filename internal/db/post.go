package db

import "time"

// Post 定义了文章模型。
// 文章删除是硬删除，因此不携带 gorm.DeletedAt。
type Post struct {
	ID          uint `gorm:"primarykey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Title       string    `gorm:"not null"`
	Text        string    `gorm:"not null"`
	PubDate     time.Time `gorm:"index"`
	IsPublished bool      `gorm:"default:true"`
	ImageURL    string
	UserID      uint `gorm:"index;not null"`
	User        User
	CategoryID  *uint `gorm:"index"`
	Category    *Category
	LocationID  *uint `gorm:"index"`
	Location    *Location

	// CommentCount 是列表查询时聚合出的评论数，不落库。
	CommentCount int64 `gorm:"-:migration;->"`
}
