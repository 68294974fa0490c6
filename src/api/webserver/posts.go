package webserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/realorrender/realorrender/src/api/data"
	"github.com/realorrender/realorrender/src/types"
)

const postFeedLimit = 50

// PostStore persists the published-post feed.
type PostStore interface {
	Save(ctx context.Context, post types.Post) error
	List(ctx context.Context, limit int) ([]types.Post, error)
}

type Posts struct {
	reports ReportStore
	posts   PostStore
}

func NewPosts(reports ReportStore, posts PostStore) Posts {
	return Posts{reports: reports, posts: posts}
}

type reqCreatePost struct {
	VerificationID string         `json:"verification_id" binding:"required"`
	PostMode       types.PostMode `json:"post_mode" binding:"required"`
}

// Create publishes an article. The decision on the persisted report is the
// single source of truth for which post modes are permitted:
// ALLOW -> normal only, WARN -> warning_label only, BLOCK -> rejected.
func (h Posts) Create(c *gin.Context) {
	var req reqCreatePost
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if req.PostMode != types.PostModeNormal && req.PostMode != types.PostModeWarningLabel {
		c.JSON(http.StatusBadRequest, gin.H{"err": "post_mode must be 'normal' or 'warning_label'"})
		return
	}

	report, err := h.reports.Get(c.Request.Context(), req.VerificationID)
	if errors.Is(err, data.ErrReportNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"err": "verification report not found; verify the article first"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}

	switch report.Decision {
	case types.DecisionBlock:
		c.JSON(http.StatusForbidden, gin.H{"err": "cannot post: article is blocked (high-risk misinformation)"})
		return
	case types.DecisionAllow:
		if req.PostMode != types.PostModeNormal {
			c.JSON(http.StatusBadRequest, gin.H{"err": "for ALLOW decision, post_mode must be 'normal'"})
			return
		}
	case types.DecisionWarn:
		if req.PostMode != types.PostModeWarningLabel {
			c.JSON(http.StatusBadRequest, gin.H{"err": "for WARN decision, post_mode must be 'warning_label'"})
			return
		}
	}

	post := types.Post{
		ID:               uuid.NewString(),
		VerificationID:   req.VerificationID,
		CreatedAt:        time.Now().UTC().Format(time.RFC3339),
		PostMode:         req.PostMode,
		Decision:         report.Decision,
		CredibilityScore: report.CredibilityScore,
		ArticleTitle:     report.Article.Title,
		ArticleURL:       report.Article.URL,
		Publisher:        report.Article.Publisher,
		Summary:          report.Summary,
	}
	if err := h.posts.Save(c.Request.Context(), post); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h Posts) List(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context(), postFeedLimit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, posts)
}
