package httpapi

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/vincentspereira/weatherdeck/internal/geo"
	"github.com/vincentspereira/weatherdeck/internal/session"
	"github.com/vincentspereira/weatherdeck/internal/store"
	"github.com/vincentspereira/weatherdeck/internal/weather"
)

var validate = validator.New()

// sessionHeader scopes every intent to one logical session. An unknown or
// missing id transparently starts a new session; the id in effect is
// always echoed back.
const sessionHeader = "X-Session-ID"

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, sessions *store.SessionStore) {
	v1 := app.Group("/api/v1")

	v1.Post("/location", func(c *fiber.Ctx) error {
		var req cityRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		sess := sessionFor(c, sessions)
		if err := sess.SubmitCity(c.Context(), req.City); err != nil {
			if e := mapIntentError(err); e != nil {
				return e
			}
		}
		return c.JSON(sess.Snapshot())
	})

	v1.Post("/location/candidate", func(c *fiber.Ctx) error {
		var req candidateRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		sess := sessionFor(c, sessions)
		if err := sess.SelectCandidate(c.Context(), *req.Index); err != nil {
			if e := mapIntentError(err); e != nil {
				return e
			}
		}
		return c.JSON(sess.Snapshot())
	})

	v1.Post("/location/refinement", func(c *fiber.Ctx) error {
		var req refinementRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		sess := sessionFor(c, sessions)
		q := geo.StructuredQuery{City: req.City, State: req.State, Country: req.Country}
		if err := sess.SubmitRefinement(c.Context(), q); err != nil {
			if e := mapIntentError(err); e != nil {
				return e
			}
		}
		return c.JSON(sess.Snapshot())
	})

	v1.Post("/location/refinement/skip", func(c *fiber.Ctx) error {
		sess := sessionFor(c, sessions)
		if err := sess.SkipRefinement(c.Context()); err != nil {
			if e := mapIntentError(err); e != nil {
				return e
			}
		}
		return c.JSON(sess.Snapshot())
	})

	v1.Post("/location/geolocate", func(c *fiber.Ctx) error {
		var req geolocateRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		sess := sessionFor(c, sessions)
		coord := geo.Coordinate{Latitude: *req.Latitude, Longitude: *req.Longitude}
		if err := sess.SubmitCoordinate(c.Context(), coord); err != nil {
			if e := mapIntentError(err); e != nil {
				return e
			}
		}
		return c.JSON(sess.Snapshot())
	})

	v1.Post("/location/geolocate/failure", func(c *fiber.Ctx) error {
		var req geoFailureRequest
		if err := bind(c, &req); err != nil {
			return err
		}

		sess := sessionFor(c, sessions)
		if err := sess.GeolocationFailed(c.Context(), req.Code, req.Message); err != nil {
			if e := mapIntentError(err); e != nil {
				return e
			}
		}
		return c.JSON(sess.Snapshot())
	})

	v1.Get("/weather", func(c *fiber.Ctx) error {
		sess := sessionFor(c, sessions)
		return c.JSON(sess.Snapshot())
	})

	v1.Get("/weather/hourly", func(c *fiber.Ctx) error {
		dateStr := c.Query("date")
		if dateStr == "" {
			return fiber.NewError(fiber.StatusBadRequest, "date query parameter is required")
		}
		date, err := weather.ParseCivilDate(dateStr)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		sess := sessionFor(c, sessions)
		if err := sess.SelectDay(date); err != nil {
			if e := mapIntentError(err); e != nil {
				return e
			}
		}

		snap := sess.Snapshot()
		return c.JSON(fiber.Map{
			"date":  date,
			"hours": snap.SelectedHours,
		})
	})
}

// sessionFor returns the session for the request's id header, creating a
// fresh one when the header is absent or stale.
func sessionFor(c *fiber.Ctx, sessions *store.SessionStore) *session.Session {
	if id := c.Get(sessionHeader); id != "" {
		if sess, err := sessions.Get(id); err == nil {
			c.Set(sessionHeader, id)
			return sess
		}
	}
	id, sess := sessions.Create()
	c.Set(sessionHeader, id)
	return sess
}

// bind parses and validates a JSON request body.
func bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return nil
}

// mapIntentError converts orchestrator errors into HTTP errors. A nil
// return means the outcome is ordinary session state (e.g. not-found) and
// the snapshot should be served as-is.
func mapIntentError(err error) error {
	switch {
	case errors.Is(err, session.ErrLocationNotFound):
		// User-visible state, not a transport failure.
		return nil
	case errors.Is(err, session.ErrInvalidIntent):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, session.ErrHourlyWindow):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, session.ErrGeocodingFailure):
		return fiber.NewError(fiber.StatusBadGateway, "geocoding failed; please retry")
	case errors.Is(err, session.ErrSynthesisFailure):
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate weather data")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}

// cityRequest carries a free-text city submission.
type cityRequest struct {
	City string `json:"city" validate:"required"`
}

// candidateRequest picks a disambiguation candidate by list index.
type candidateRequest struct {
	Index *int `json:"index" validate:"required,gte=0"`
}

// refinementRequest narrows a pending candidate with extra detail.
type refinementRequest struct {
	City    string `json:"city" validate:"required"`
	State   string `json:"state"`
	Country string `json:"country"`
}

// geolocateRequest reports a browser geolocation fix.
type geolocateRequest struct {
	Latitude  *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
}

// geoFailureRequest reports a denied or unsupported geolocation request.
type geoFailureRequest struct {
	Code    string `json:"code" validate:"required"`
	Message string `json:"message"`
}
