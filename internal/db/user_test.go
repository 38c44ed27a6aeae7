package db

import (
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupUserTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:db-user-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := gdb.AutoMigrate(&User{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	DB = gdb
}

func TestEnsureUserCreatesHashedAccount(t *testing.T) {
	setupUserTestDB(t)

	if err := EnsureUser("root", "topsecret"); err != nil {
		t.Fatalf("ensure user: %v", err)
	}

	var user User
	if err := DB.Where("username = ?", "root").First(&user).Error; err != nil {
		t.Fatalf("load user: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("topsecret")); err != nil {
		t.Fatalf("password must verify against its hash: %v", err)
	}

	// 再次调用不应重复创建
	if err := EnsureUser("root", "other"); err != nil {
		t.Fatalf("ensure user twice: %v", err)
	}
	var count int64
	DB.Model(&User{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single user, got %d", count)
	}
}

func TestEnsureUserSkipsBlankCredentials(t *testing.T) {
	setupUserTestDB(t)

	if err := EnsureUser("", ""); err != nil {
		t.Fatalf("blank credentials must be a no-op: %v", err)
	}

	var count int64
	DB.Model(&User{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no users, got %d", count)
	}
}

func TestDisplayName(t *testing.T) {
	plain := User{Username: "writer"}
	if plain.DisplayName() != "writer" {
		t.Fatalf("expected username fallback, got %q", plain.DisplayName())
	}

	named := User{Username: "writer", FirstName: "小", LastName: "王"}
	if named.DisplayName() != "小 王" {
		t.Fatalf("expected full name, got %q", named.DisplayName())
	}
}
