package models

// CommentModel is a comment attached to a post.
// Comments are append-only and live and die with their parent post.
type CommentModel struct {
	Base
	PostID   string        `json:"postId"   gorm:"index;not null"`
	AuthorID string        `json:"authorId" gorm:"not null"`
	Author   *AccountModel `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Content  string        `json:"content"  gorm:"type:text;not null"`
}

func (CommentModel) TableName() string { return "comments" }
