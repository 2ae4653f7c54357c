package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/diamondgarment/backend/models"
)

// Pinger is satisfied by *mongo.Client.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

type HealthController struct {
	db Pinger
}

func NewHealthController(db Pinger) *HealthController {
	return &HealthController{db: db}
}

// Health reports whether the database answers a ping.
func (hc *HealthController) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 2*time.Second)
	defer cancel()

	if err := hc.db.Ping(ctx, readpref.Primary()); err != nil {
		return c.JSON(http.StatusServiceUnavailable, models.Response{
			Success: false,
			Message: "Database unavailable",
		})
	}
	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "API is working",
		Data:    map[string]string{"time": time.Now().UTC().Format(time.RFC3339)},
	})
}
