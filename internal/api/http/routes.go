package httpapi

import (
	"bytes"
	"errors"
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/weather-clock/internal/dashboard"
	"github.com/i474232898/weather-clock/internal/geo"
	"github.com/i474232898/weather-clock/internal/store"
	"github.com/i474232898/weather-clock/internal/weather"
)

var validate = validator.New()

// Deps are the handlers' collaborators. Reported and Cycles may be nil.
type Deps struct {
	Dashboard *dashboard.Dashboard
	Reported  *geo.ReportedLocator
	Cycles    *store.CycleLog
	// Refresh starts a load cycle in the background.
	Refresh func()
	Logger  *slog.Logger
}

// ErrorHandler renders every error as {"error": true, "message": ...}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}
	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	logger := deps.Logger.With("component", "http")
	d := deps.Dashboard

	app.Get("/", func(c *fiber.Ctx) error {
		var buf bytes.Buffer
		if err := renderPage(&buf, d.Snapshot()); err != nil {
			logger.Error("render page", "error", err)
			return fiber.NewError(fiber.StatusInternalServerError, "failed to render dashboard")
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	})

	v1 := app.Group("/api/v1")

	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(dashboardResponse{
			State:              d.Snapshot(),
			GeolocationPending: deps.Reported != nil && deps.Reported.Pending(),
		})
	})

	v1.Post("/refresh", func(c *fiber.Ctx) error {
		if deps.Refresh == nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "refresh not available")
		}
		deps.Refresh()
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"status": "refreshing"})
	})

	v1.Get("/cycles", func(c *fiber.Ctx) error {
		if deps.Cycles == nil {
			return fiber.NewError(fiber.StatusNotFound, "cycle log disabled")
		}
		limit, err := strconv.Atoi(c.Query("limit", "20"))
		if err != nil || limit < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "limit must be a non-negative integer")
		}
		return c.JSON(fiber.Map{"cycles": deps.Cycles.Recent(limit)})
	})

	v1.Post("/geolocation", func(c *fiber.Ctx) error {
		if deps.Reported == nil {
			return fiber.NewError(fiber.StatusConflict, "position is not taken from clients")
		}
		var req geolocationRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := req.check(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Code != 0 {
			deps.Reported.ReportError(req.Code)
		} else {
			deps.Reported.Report(weather.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude})
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	v1.Post("/preference/toggle", func(c *fiber.Ctx) error {
		return c.JSON(d.Preferences.Toggle(c.UserContext()))
	})

	v1.Post("/strips/:strip/pointer", func(c *fiber.Ctx) error {
		strip, err := d.Strip(c.Params("strip"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		var req pointerRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		switch req.Type {
		case "down":
			return c.JSON(fiber.Map{"accepted": strip.Press(req.Button, req.X, req.Y, req.Offset)})
		case "move":
			return c.JSON(strip.Move(req.X, req.Y))
		default:
			return c.JSON(fiber.Map{"dragged": strip.Release()})
		}
	})

	v1.Post("/panel/summary", func(c *fiber.Ctx) error {
		opened := d.Panel.ClickSummary()
		return c.JSON(fiber.Map{"opened": opened, "panel": d.Board.Snapshot().Panel})
	})

	v1.Post("/panel/backdrop", func(c *fiber.Ctx) error {
		d.Panel.ClickBackdrop()
		return c.JSON(fiber.Map{"panel": d.Board.Snapshot().Panel})
	})

	v1.Post("/activity", func(c *fiber.Ctx) error {
		var req activityRequest
		if len(c.Body()) > 0 {
			if err := c.BodyParser(&req); err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
			}
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		switch req.Hover {
		case "enter":
			return c.JSON(d.Controls.Hover(true))
		case "leave":
			return c.JSON(d.Controls.Hover(false))
		default:
			return c.JSON(d.Controls.Activity())
		}
	})
}

type dashboardResponse struct {
	dashboard.State
	GeolocationPending bool `json:"geolocationPending"`
}

// geolocationRequest is either a fix or a failure code from the client.
type geolocationRequest struct {
	Latitude  *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Code      int      `json:"code" validate:"gte=0"`
}

func (r geolocationRequest) check() error {
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Code == 0 && (r.Latitude == nil || r.Longitude == nil) {
		return errors.New("latitude and longitude are required unless code is set")
	}
	return nil
}

type pointerRequest struct {
	Type   string  `json:"type" validate:"required,oneof=down move up"`
	Button int     `json:"button" validate:"gte=0"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Offset float64 `json:"offset" validate:"gte=0"`
}

type activityRequest struct {
	Hover string `json:"hover" validate:"omitempty,oneof=enter leave"`
}
