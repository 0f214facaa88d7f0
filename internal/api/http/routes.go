package httpapi

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/tickwatch/tickwatch/internal/risk"
	"github.com/tickwatch/tickwatch/internal/sighting"
)

var validate = validator.New()

// HorizonBounds limits the forecast `days` query parameter.
type HorizonBounds struct {
	Default int
	Max     int
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, service *sighting.Service, scorer *risk.Scorer, horizon HorizonBounds) {
	api := app.Group("/api")

	api.Get("/sightings/", func(c *fiber.Ctx) error {
		filter, err := parseFilterQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		records, err := service.List(c.UserContext(), filter)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return successMessage(c, "No results found for the given filters.", 0, []sighting.Record{})
		}
		return success(c, len(records), records)
	})

	api.Get("/statistics/", func(c *fiber.Ctx) error {
		filter, err := parseFilterQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		stats, err := service.Statistics(c.UserContext(), filter)
		if err != nil {
			return err
		}
		if stats.TotalSightings == 0 {
			return successMessage(c, "No results found for the given filters.", 0, nil)
		}
		return success(c, 1, stats)
	})

	api.Get("/predictions/", func(c *fiber.Ctx) error {
		filter, err := parseFilterQuery(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		days := c.QueryInt("days", horizon.Default)
		if days < 1 || days > horizon.Max {
			return fiber.NewError(fiber.StatusBadRequest,
				"days must be between 1 and "+strconv.Itoa(horizon.Max))
		}

		forecast, err := service.Forecast(c.UserContext(), filter, days)
		if err != nil {
			return err
		}
		return success(c, 1, forecast)
	})

	api.Get("/riskfactor/", func(c *fiber.Ctx) error {
		var q riskQuery
		q.Lifestyle = c.Query("lifestyle")
		q.Coat = c.Query("coat")
		q.RegionType = c.Query("region_type")

		if err := validate.Struct(q); err != nil {
			return fiber.NewError(fiber.StatusBadRequest,
				"all parameters (lifestyle, coat, region_type) must be provided")
		}

		assessment, err := scorer.Score(risk.Profile{
			Lifestyle:  strings.ToLower(q.Lifestyle),
			Coat:       strings.ToLower(q.Coat),
			RegionType: strings.ToLower(q.RegionType),
		})
		if err != nil {
			return err
		}
		return success(c, 1, assessment)
	})

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "TickWatch API",
			"endpoints": []string{
				"/api/sightings/",
				"/api/statistics/",
				"/api/predictions/",
				"/api/riskfactor/",
			},
		})
	})
}

// riskQuery holds the pet profile query parameters.
type riskQuery struct {
	Lifestyle  string `validate:"required"`
	Coat       string `validate:"required"`
	RegionType string `validate:"required"`
}

// parseFilterQuery binds the shared filter parameters. Location and
// species normalization happens inside the service, so values typed in any
// casing match stored rows.
func parseFilterQuery(c *fiber.Ctx) (sighting.Filter, error) {
	var f sighting.Filter

	if raw := c.Query("start_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return f, err
		}
		f.StartDate = &t
	}
	if raw := c.Query("end_date"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return f, err
		}
		f.EndDate = &t
	}
	if f.StartDate != nil && f.EndDate != nil && f.StartDate.After(*f.EndDate) {
		return f, errors.New("start_date must be before or equal to end_date")
	}

	f.Location = c.Query("location")
	f.Species = c.Query("species")
	return f, nil
}

// parseDate accepts plain dates or RFC3339 timestamps.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return sighting.DateOnly(t), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return sighting.DateOnly(t), nil
	}
	return time.Time{}, errors.New("invalid date format; use YYYY-MM-DD or RFC3339")
}
