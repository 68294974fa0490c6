package webserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realorrender/realorrender/src/extract"
	"github.com/realorrender/realorrender/src/verify"
)

type Verify struct {
	pipeline *verify.Pipeline
}

func NewVerify(pipeline *verify.Pipeline) Verify {
	return Verify{pipeline: pipeline}
}

type reqVerify struct {
	URL     string `json:"url"`
	RawText string `json:"raw_text"`
	Comment string `json:"comment"`
}

func (h Verify) Create(c *gin.Context) {
	var req reqVerify
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"err": err.Error()})
		return
	}
	if req.URL == "" && req.RawText == "" {
		c.JSON(http.StatusBadRequest, gin.H{"err": "provide either 'url' or 'raw_text'"})
		return
	}

	report, err := h.pipeline.Run(c.Request.Context(), req.URL, req.RawText)
	if errors.Is(err, extract.ErrNoContent) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"err": "could not extract article content; check the URL or provide raw_text",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
