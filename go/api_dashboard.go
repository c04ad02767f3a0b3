package courierserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	dashboardapp "github.com/udea/couriersync/internal/domains/dashboard/application"
)

// MetricsSource computes dashboard totals.
type MetricsSource interface {
	Metrics(ctx context.Context) (dashboardapp.Metrics, error)
}

type DashboardAPI struct {
	source MetricsSource
}

func NewDashboardAPI(source MetricsSource) DashboardAPI {
	return DashboardAPI{source: source}
}

// Get /api/dashboard/metrics
func (api *DashboardAPI) GetMetrics(c *gin.Context) {
	metrics, err := api.source.Metrics(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, metricsFromDomain(metrics))
}
