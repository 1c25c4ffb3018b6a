package models

// StringSlice is a []string stored as JSON.
type StringSlice []string

// PostModel is a blog post.
// AuthorID is set from the authenticated identity at creation and is immutable.
type PostModel struct {
	Base
	Title       string         `json:"title"       gorm:"not null"`
	Content     string         `json:"content"     gorm:"type:longtext;not null"`
	Excerpt     string         `json:"excerpt"`
	Slug        string         `json:"slug"        gorm:"uniqueIndex;not null"`
	CategoryID  *string        `json:"categoryId"  gorm:"index"`
	Category    *CategoryModel `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	AuthorID    string         `json:"authorId"    gorm:"index;not null"`
	Author      *AccountModel  `json:"author,omitempty"   gorm:"foreignKey:AuthorID"`
	Tags        StringSlice    `json:"tags"        gorm:"type:json;serializer:json"`
	IsPublished bool           `json:"isPublished" gorm:"default:false;index"`
	ViewCount   int            `json:"viewCount"   gorm:"column:view_count;default:0"`

	Comments []CommentModel `json:"comments,omitempty" gorm:"foreignKey:PostID"`
}

func (PostModel) TableName() string { return "posts" }
