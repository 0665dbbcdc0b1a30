package controllers

import (
	"context"
	"net/http"

	"github.com/kodipay/kodipay-server/internal/app"
	"github.com/kodipay/kodipay-server/internal/dtos"
	"github.com/kodipay/kodipay-server/internal/utils"
)

type HealthController struct {
	app *app.App
}

func NewHealthController(app *app.App) *HealthController {
	return &HealthController{app: app}
}

// HealthCheck -> GET /api/health
func (c *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if err := c.app.DB.Ping(context.Background()); err != nil {
		utils.Logger.WithError(err).Error("Database unreachable")
		utils.RespondErrorWithCode(
			w,
			http.StatusServiceUnavailable,
			utils.ErrCodeInternal,
			"Database unreachable",
			nil,
			err,
		)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthResponse{
		Status:   "OK",
		Database: "reachable",
	})
}
