package data

import (
	"context"
	"time"

	"github.com/realorrender/realorrender/src/types"
	"gorm.io/gorm"
)

// PostRecord is one published article entry in the feed.
type PostRecord struct {
	ID               string    `gorm:"primaryKey;size:36"`
	VerificationID   string    `gorm:"size:36;not null;index"`
	CreatedAt        time.Time `gorm:"index:idx_posts_created"`
	PostMode         string    `gorm:"size:16;not null"`
	Decision         string    `gorm:"size:8;not null"`
	CredibilityScore float64   `gorm:"not null"`
	ArticleTitle     string    `gorm:"size:512;not null"`
	ArticleURL       string    `gorm:"size:1024;not null"`
	Publisher        *string   `gorm:"size:255"`
	Summary          string    `gorm:"type:text;not null"`
}

func (PostRecord) TableName() string {
	return "posts"
}

type Posts struct {
	db *gorm.DB
}

func NewPosts(db *gorm.DB) *Posts {
	return &Posts{db: db}
}

func (p *Posts) Save(ctx context.Context, post types.Post) error {
	created, err := time.Parse(time.RFC3339, post.CreatedAt)
	if err != nil {
		created = time.Now().UTC()
	}
	rec := PostRecord{
		ID:               post.ID,
		VerificationID:   post.VerificationID,
		CreatedAt:        created,
		PostMode:         string(post.PostMode),
		Decision:         string(post.Decision),
		CredibilityScore: post.CredibilityScore,
		ArticleTitle:     post.ArticleTitle,
		ArticleURL:       post.ArticleURL,
		Publisher:        post.Publisher,
		Summary:          post.Summary,
	}
	return p.db.WithContext(ctx).Create(&rec).Error
}

// List returns the newest posts first, capped at limit.
func (p *Posts) List(ctx context.Context, limit int) ([]types.Post, error) {
	var recs []PostRecord
	err := p.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&recs).Error
	if err != nil {
		return nil, err
	}
	posts := make([]types.Post, 0, len(recs))
	for _, rec := range recs {
		posts = append(posts, types.Post{
			ID:               rec.ID,
			VerificationID:   rec.VerificationID,
			CreatedAt:        rec.CreatedAt.UTC().Format(time.RFC3339),
			PostMode:         types.PostMode(rec.PostMode),
			Decision:         types.Decision(rec.Decision),
			CredibilityScore: rec.CredibilityScore,
			ArticleTitle:     rec.ArticleTitle,
			ArticleURL:       rec.ArticleURL,
			Publisher:        rec.Publisher,
			Summary:          rec.Summary,
		})
	}
	return posts, nil
}
