package service

import "errors"

var (
	ErrNotAuthenticated = errors.New("authentication required")
	ErrForbidden        = errors.New("viewer is not the author")
)

// Viewer 表示当前请求的访问者身份，零值代表匿名访问。
type Viewer struct {
	ID       uint
	Username string
}

// IsAnonymous reports whether the viewer is unauthenticated.
func (v Viewer) IsAnonymous() bool {
	return v.ID == 0
}
