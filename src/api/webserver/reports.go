package webserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/realorrender/realorrender/src/api/data"
	"github.com/realorrender/realorrender/src/types"
)

// ReportStore reads persisted verification reports. Satisfied by *data.Reports.
type ReportStore interface {
	Get(ctx context.Context, id string) (*types.VerificationReport, error)
}

type Reports struct {
	store ReportStore
}

func NewReports(store ReportStore) Reports {
	return Reports{store: store}
}

func (h Reports) Get(c *gin.Context) {
	report, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if errors.Is(err, data.ErrReportNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"err": "report not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"err": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
