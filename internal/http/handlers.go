package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"blinky/internal/core"
	"blinky/internal/events"
	"blinky/internal/metrics"
	"blinky/internal/state"
)

// registerCollection mounts the CRUD routes for one entity collection.
// Handlers are free functions because Go methods cannot carry their own
// type parameters.
func registerCollection[T state.Entity[T]](e *echo.Echo, s *Server, path, entity string, p *state.Provider[T]) {
	e.GET(path, listEntities(p))
	e.POST(path, createEntity(s, entity, p))
	e.PUT(path+"/:id", updateEntity(s, entity, p))
	e.DELETE(path+"/:id", deleteEntity(s, entity, p))
}

func listEntities[T state.Entity[T]](p *state.Provider[T]) echo.HandlerFunc {
	return func(c echo.Context) error {
		items, err := p.FetchAll(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		if items == nil {
			items = []T{}
		}
		return c.JSON(http.StatusOK, items)
	}
}

func createEntity[T state.Entity[T]](s *Server, entity string, p *state.Provider[T]) echo.HandlerFunc {
	return func(c echo.Context) error {
		var draft T
		if err := c.Bind(&draft); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed body"})
		}

		created, err := p.Create(c.Request().Context(), draft)
		metrics.CountOperation(entity, events.OpCreated, err)
		if err != nil {
			if core.IsValidationError(err) {
				return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			}
			if errors.Is(err, state.ErrDuplicateID) {
				return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}

		s.publish(c.Request().Context(), entity, events.OpCreated, created.EntityID())
		return c.JSON(http.StatusCreated, created)
	}
}

func updateEntity[T state.Entity[T]](s *Server, entity string, p *state.Provider[T]) echo.HandlerFunc {
	return func(c echo.Context) error {
		var draft T
		if err := c.Bind(&draft); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "malformed body"})
		}
		id := c.Param("id")

		// An unknown id is already consistent with the requested end
		// state, so the provider treats it as a no-op and we answer 200.
		updated, err := p.Update(c.Request().Context(), withID(draft, id))
		metrics.CountOperation(entity, events.OpUpdated, err)
		if err != nil {
			if core.IsValidationError(err) {
				return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}

		s.publish(c.Request().Context(), entity, events.OpUpdated, id)
		return c.JSON(http.StatusOK, updated)
	}
}

func deleteEntity[T state.Entity[T]](s *Server, entity string, p *state.Provider[T]) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := c.Param("id")
		return removeByID(c, s, entity, p, id)
	}
}

// deleteByBody removes the record named by an {"id": ...} payload.
func deleteByBody[T state.Entity[T]](s *Server, entity string, p *state.Provider[T]) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body struct {
			ID string `json:"id"`
		}
		if err := c.Bind(&body); err != nil || body.ID == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing id"})
		}
		return removeByID(c, s, entity, p, body.ID)
	}
}

func removeByID[T state.Entity[T]](c echo.Context, s *Server, entity string, p *state.Provider[T], id string) error {
	err := p.Delete(c.Request().Context(), id)
	metrics.CountOperation(entity, events.OpDeleted, err)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	s.publish(c.Request().Context(), entity, events.OpDeleted, id)
	return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
}

// withID forces the path id onto the decoded draft so the body cannot
// retarget another record.
func withID[T state.Entity[T]](draft T, id string) T {
	switch v := any(draft).(type) {
	case core.Project:
		v.ID = id
		return any(v).(T)
	case core.Income:
		v.ID = id
		return any(v).(T)
	case core.Expense:
		v.ID = id
		return any(v).(T)
	case core.SavingsGoal:
		v.ID = id
		return any(v).(T)
	default:
		return draft
	}
}
