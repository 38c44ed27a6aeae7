package main

import (
	"fmt"
	"log"
	"time"

	"github.com/blogicum/internal/config"
	"github.com/blogicum/internal/db"
	"golang.org/x/crypto/bcrypt"
)

// 测试数据生成器
func main() {
	// 初始化数据库
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成测试数据...")

	createTestUsers()
	createTestCategories()
	createTestLocations()
	createTestPosts()

	fmt.Println("测试数据生成完成！")
	fmt.Println("用户: admin / author (密码: admin123 / author123)")
}

// 创建测试用户
func createTestUsers() {
	var count int64
	db.DB.Model(&db.User{}).Count(&count)
	if count > 0 {
		fmt.Println("用户已存在，跳过创建")
		return
	}

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := db.User{
		Username: "admin",
		Password: string(hashedPassword),
	}
	db.DB.Create(&admin)

	hashedPassword2, _ := bcrypt.GenerateFromPassword([]byte("author123"), bcrypt.DefaultCost)
	author := db.User{
		Username:  "author",
		Password:  string(hashedPassword2),
		FirstName: "测试",
		LastName:  "作者",
		Bio:       "热爱写作的测试账号。",
	}
	db.DB.Create(&author)

	fmt.Println("✅ 测试用户创建完成")
}

// 创建测试分类
func createTestCategories() {
	var count int64
	db.DB.Model(&db.Category{}).Count(&count)
	if count > 0 {
		fmt.Println("分类已存在，跳过创建")
		return
	}

	categories := []db.Category{
		{Title: "技术", Slug: "tech", Description: "工程实践与技术思考", IsPublished: true},
		{Title: "生活", Slug: "life", Description: "日常与随笔", IsPublished: true},
		{Title: "内部草稿", Slug: "internal", Description: "仅管理员可见的分类", IsPublished: false},
	}
	for i := range categories {
		db.DB.Create(&categories[i])
	}

	fmt.Println("✅ 测试分类创建完成")
}

// 创建测试地点
func createTestLocations() {
	var count int64
	db.DB.Model(&db.Location{}).Count(&count)
	if count > 0 {
		fmt.Println("地点已存在，跳过创建")
		return
	}

	locations := []db.Location{
		{Name: "上海", IsPublished: true},
		{Name: "北京", IsPublished: true},
	}
	for i := range locations {
		db.DB.Create(&locations[i])
	}

	fmt.Println("✅ 测试地点创建完成")
}

// 创建测试文章：覆盖已发布、草稿、定时发布与未发布分类四种情况
func createTestPosts() {
	var count int64
	db.DB.Model(&db.Post{}).Count(&count)
	if count > 0 {
		fmt.Println("文章已存在，跳过创建")
		return
	}

	var author db.User
	if err := db.DB.Where("username = ?", "author").First(&author).Error; err != nil {
		log.Printf("找不到测试作者: %v", err)
		return
	}

	var tech, internal db.Category
	db.DB.Where("slug = ?", "tech").First(&tech)
	db.DB.Where("slug = ?", "internal").First(&internal)

	var shanghai db.Location
	db.DB.Where("name = ?", "上海").First(&shanghai)

	now := time.Now()
	posts := []db.Post{
		{
			Title:       "第一篇测试文章",
			Text:        "## 欢迎\n\n这是一篇公开可见的文章。",
			PubDate:     now.AddDate(0, 0, -3),
			IsPublished: true,
			UserID:      author.ID,
			CategoryID:  &tech.ID,
			LocationID:  &shanghai.ID,
		},
		{
			Title:       "草稿文章",
			Text:        "还没写完。",
			PubDate:     now.AddDate(0, 0, -1),
			IsPublished: false,
			UserID:      author.ID,
			CategoryID:  &tech.ID,
		},
		{
			Title:       "定时发布的文章",
			Text:        "未来才会出现在首页。",
			PubDate:     now.AddDate(0, 0, 7),
			IsPublished: true,
			UserID:      author.ID,
		},
		{
			Title:       "未发布分类里的文章",
			Text:        "分类下架后对外不可见。",
			PubDate:     now.AddDate(0, 0, -2),
			IsPublished: true,
			UserID:      author.ID,
			CategoryID:  &internal.ID,
		},
	}
	for i := range posts {
		db.DB.Create(&posts[i])
	}

	visible := db.Comment{
		Text:   "第一条评论！",
		PostID: posts[0].ID,
		UserID: author.ID,
	}
	db.DB.Create(&visible)

	fmt.Println("✅ 测试文章创建完成")
}
