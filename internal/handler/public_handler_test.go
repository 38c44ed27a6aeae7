package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestRenderMarkdownSanitizesScripts(t *testing.T) {
	rendered := string(renderMarkdown("# 标题\n\n<script>alert(1)</script>正文"))

	if !strings.Contains(rendered, "<h1>") {
		t.Fatalf("expected heading markup, got %q", rendered)
	}
	if strings.Contains(rendered, "<script>") {
		t.Fatalf("script tags must be stripped, got %q", rendered)
	}
	if !strings.Contains(rendered, "正文") {
		t.Fatalf("text content must survive, got %q", rendered)
	}
}

func TestRenderMarkdownKeepsLinks(t *testing.T) {
	rendered := string(renderMarkdown("[链接](https://example.com)"))
	if !strings.Contains(rendered, `href="https://example.com"`) {
		t.Fatalf("expected link markup, got %q", rendered)
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		want    int
		wantErr bool
	}{
		{name: "default", query: "", want: 1},
		{name: "explicit", query: "page=3", want: 3},
		{name: "zero", query: "page=0", wantErr: true},
		{name: "negative", query: "page=-2", wantErr: true},
		{name: "garbage", query: "page=abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil)

			page, err := parsePage(c)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.query)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if page != tt.want {
				t.Fatalf("expected page %d, got %d", tt.want, page)
			}
		})
	}
}

func TestParseOptionalUint(t *testing.T) {
	if got := parseOptionalUint(""); got != nil {
		t.Fatalf("empty input must yield nil, got %v", got)
	}
	if got := parseOptionalUint("abc"); got != nil {
		t.Fatalf("garbage input must yield nil, got %v", got)
	}
	got := parseOptionalUint(" 42 ")
	if got == nil || *got != 42 {
		t.Fatalf("expected 42, got %v", got)
	}
}
