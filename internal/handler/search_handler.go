package handler

import (
	"net/http"
	"strconv"

	"github.com/Olocraft/propady/internal/model"
	"github.com/Olocraft/propady/internal/store"
	"github.com/Olocraft/propady/pkg/database"
	"github.com/Olocraft/propady/pkg/logger"
	"github.com/Olocraft/propady/prometheus"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// SearchProperties handles the public search endpoint. A failing search never
// errors toward the client; it reports success=false with an empty result set
// so the browse page can render a graceful empty state.
func SearchProperties(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.SearchRequestsCounter.Inc()

	filters := store.SearchFilters{
		SearchTerm: c.QueryParam("q"),
		Location:   c.QueryParam("location"),
	}
	if v := c.QueryParam("min_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MinPrice = &price
		} else {
			log.Warn("Invalid min_price parameter", zap.String("value", v), zap.Error(err))
		}
	}
	if v := c.QueryParam("max_price"); v != "" {
		if price, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MaxPrice = &price
		} else {
			log.Warn("Invalid max_price parameter", zap.String("value", v), zap.Error(err))
		}
	}

	properties, err := store.NewPropertyStore(database.GetDB()).Search(filters)
	if err != nil {
		prometheus.SearchFailuresCounter.Inc()
		log.Error("Search failed", zap.String("term", filters.SearchTerm), zap.Error(err))
		return c.JSON(http.StatusOK, echo.Map{
			"success": false,
			"data":    []model.PropertyDisplay{},
		})
	}

	displays := make([]model.PropertyDisplay, 0, len(properties))
	for _, p := range properties {
		displays = append(displays, model.MapPropertyToDisplay(p))
	}

	log.Info("Search completed",
		zap.String("term", filters.SearchTerm),
		zap.Int("results", len(displays)))
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    displays,
	})
}
