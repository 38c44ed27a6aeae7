package db

import "time"

// Comment 定义了评论模型，同样采用硬删除。
type Comment struct {
	ID        uint `gorm:"primarykey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Text      string `gorm:"not null"`
	PostID    uint   `gorm:"index;not null"`
	Post      Post
	UserID    uint `gorm:"index;not null"`
	User      User
}
