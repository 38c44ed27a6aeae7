package service

import (
	"errors"
	"testing"
	"time"

	"github.com/blogicum/internal/db"
)

func TestCreateCommentRequiresAuthentication(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCommentService(gdb)

	author := createUser(t, gdb, "author")
	post := createPost(t, gdb, author, "文章", time.Now().AddDate(0, 0, -1), true, nil)

	if _, err := svc.Create(Viewer{}, post.ID, "你好"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("expected ErrNotAuthenticated, got %v", err)
	}

	var count int64
	gdb.Model(&db.Comment{}).Count(&count)
	if count != 0 {
		t.Fatal("no comment may be persisted for an anonymous caller")
	}
}

func TestCreateCommentOnMissingPost(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCommentService(gdb)

	commenter := createUser(t, gdb, "commenter")

	if _, err := svc.Create(viewerOf(commenter), 9999, "你好"); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

// 评论不受可见性谓词限制：草稿文章也可以被评论。
func TestCreateCommentAllowedOnInvisiblePost(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCommentService(gdb)

	author := createUser(t, gdb, "author")
	commenter := createUser(t, gdb, "commenter")
	draft := createPost(t, gdb, author, "草稿", time.Now().AddDate(0, 0, -1), false, nil)

	comment, err := svc.Create(viewerOf(commenter), draft.ID, "抢先评论")
	if err != nil {
		t.Fatalf("comment on draft: %v", err)
	}
	if comment.UserID != commenter.ID {
		t.Fatalf("comment author must come from the session identity, got %d", comment.UserID)
	}
}

func TestCreateCommentRejectsEmptyText(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCommentService(gdb)

	author := createUser(t, gdb, "author")
	post := createPost(t, gdb, author, "文章", time.Now().AddDate(0, 0, -1), true, nil)

	if _, err := svc.Create(viewerOf(author), post.ID, "   "); !errors.Is(err, ErrCommentRequired) {
		t.Fatalf("expected ErrCommentRequired, got %v", err)
	}
}

func TestCommentOwnership(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCommentService(gdb)

	author := createUser(t, gdb, "author")
	commenter := createUser(t, gdb, "commenter")
	other := createUser(t, gdb, "other")
	post := createPost(t, gdb, author, "文章", time.Now().AddDate(0, 0, -1), true, nil)

	comment, err := svc.Create(viewerOf(commenter), post.ID, "原始评论")
	if err != nil {
		t.Fatalf("create comment: %v", err)
	}

	if !svc.CanModify(viewerOf(commenter), *comment) {
		t.Fatal("comment author must be allowed to modify")
	}
	if svc.CanModify(viewerOf(other), *comment) {
		t.Fatal("non-author must not modify the comment")
	}
	if svc.CanModify(Viewer{}, *comment) {
		t.Fatal("anonymous viewer must not modify the comment")
	}

	if _, err := svc.Update(viewerOf(other), comment.ID, "篡改"); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-author update: expected ErrForbidden, got %v", err)
	}
	if _, err := svc.Update(Viewer{}, comment.ID, "篡改"); !errors.Is(err, ErrNotAuthenticated) {
		t.Fatalf("anonymous update: expected ErrNotAuthenticated, got %v", err)
	}

	updated, err := svc.Update(viewerOf(commenter), comment.ID, "修改后的评论")
	if err != nil {
		t.Fatalf("author update: %v", err)
	}
	if updated.Text != "修改后的评论" {
		t.Fatalf("unexpected text %q", updated.Text)
	}

	if err := svc.Delete(viewerOf(other), comment.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("non-author delete: expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(viewerOf(commenter), comment.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}

	var count int64
	gdb.Model(&db.Comment{}).Count(&count)
	if count != 0 {
		t.Fatal("comment must be hard-deleted")
	}
}

func TestCommentUpdateMissing(t *testing.T) {
	gdb := setupServiceTestDB(t)
	svc := NewCommentService(gdb)

	user := createUser(t, gdb, "user")

	if _, err := svc.Update(viewerOf(user), 9999, "x"); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
	if err := svc.Delete(viewerOf(user), 9999); !errors.Is(err, ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}
