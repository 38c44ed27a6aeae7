package service

import (
	"errors"
	"strings"

	"github.com/blogicum/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrUsernameRequired   = errors.New("username is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// ProfileService wraps user account and profile operations.
type ProfileService struct {
	db *gorm.DB
}

// ProfileInput represents editable profile fields.
type ProfileInput struct {
	FirstName string
	LastName  string
	Bio       string
}

// NewProfileService creates a ProfileService instance.
func NewProfileService(gdb *gorm.DB) *ProfileService {
	return &ProfileService{db: gdb}
}

// GetByUsername fetches a user by unique username.
func (s *ProfileService) GetByUsername(username string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Register 创建一个 bcrypt 哈希密码的新账号。
func (s *ProfileService) Register(username, password string) (*db.User, error) {
	trimmedUser := strings.TrimSpace(username)
	if trimmedUser == "" {
		return nil, ErrUsernameRequired
	}
	if strings.TrimSpace(password) == "" {
		return nil, ErrPasswordRequired
	}

	var count int64
	if err := s.db.Model(&db.User{}).Where("username = ?", trimmedUser).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := db.User{Username: trimmedUser, Password: string(hashed)}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate 校验用户名与密码，失败时不区分两者以免泄露账号存在性。
func (s *ProfileService) Authenticate(username, password string) (*db.User, error) {
	var user db.User
	if err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Update applies profile edits on the viewer's own account.
func (s *ProfileService) Update(viewer Viewer, input ProfileInput) (*db.User, error) {
	if viewer.IsAnonymous() {
		return nil, ErrNotAuthenticated
	}

	var user db.User
	if err := s.db.First(&user, viewer.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.FirstName = strings.TrimSpace(input.FirstName)
	user.LastName = strings.TrimSpace(input.LastName)
	user.Bio = strings.TrimSpace(input.Bio)

	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
