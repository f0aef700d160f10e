package models

import (
	"time"
)

// PostStatus represents a post's moderation state. Authoring currently
// always produces approved posts; readers still filter on it.
type PostStatus string

const (
	PostStatusPending  PostStatus = "pending"
	PostStatusApproved PostStatus = "approved"
	PostStatusRejected PostStatus = "rejected"
)

// Post represents a feed post. Content may be empty when the post carries
// images; authoring rejects posts with neither.
type Post struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"not null;index" json:"user_id"`
	Content   *string    `gorm:"type:text" json:"content"`
	Status    PostStatus `gorm:"type:varchar(20);default:'approved';index" json:"status"`
	CreatedAt time.Time  `json:"created_at"`

	User   User        `gorm:"foreignKey:UserID" json:"-"`
	Images []PostImage `gorm:"foreignKey:PostID" json:"images,omitempty"`
	Tags   []Tag       `gorm:"many2many:post_tags" json:"tags,omitempty"`

	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likes_count"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int `gorm:"->" json:"comments_count"`
}

// TableName specifies the table name for GORM
func (Post) TableName() string {
	return "posts"
}

// PostImage is one image attached to a post.
type PostImage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	ImageURL string `gorm:"not null" json:"url"`
}

// TableName specifies the table name for GORM
func (PostImage) TableName() string {
	return "post_images"
}

// Tag is a label attachable to posts, deduplicated by exact name.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// TableName specifies the table name for GORM
func (Tag) TableName() string {
	return "tags"
}

// FeedPost is a feed entry: the post joined with its author's public
// profile, computed counts, tags and attached images.
type FeedPost struct {
	ID           uint        `json:"id"`
	Content      *string     `json:"content"`
	CreatedAt    time.Time   `json:"created_at"`
	Author       UserSummary `json:"author"`
	LikeCount    int         `json:"like_count"`
	CommentCount int         `json:"comment_count"`
	Images       []PostImage `json:"images"`
	Tags         []Tag       `json:"tags"`
}

// Feed projects the post with its preloaded author, images and tags.
func (p *Post) Feed() FeedPost {
	return FeedPost{
		ID:           p.ID,
		Content:      p.Content,
		CreatedAt:    p.CreatedAt,
		Author:       p.User.Summary(),
		LikeCount:    p.LikesCount,
		CommentCount: p.CommentsCount,
		Images:       p.Images,
		Tags:         p.Tags,
	}
}
