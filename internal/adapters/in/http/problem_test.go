package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"orderlifecycle/internal/adapters/in/auth"
	httpadapter "orderlifecycle/internal/adapters/in/http"
	"orderlifecycle/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

type stringer string

func (s stringer) String() string { return string(s) }

func TestProblemFor(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		typ    string
	}{
		{"not_found", errs.NewObjectNotFoundError("order", "42"), http.StatusNotFound, httpadapter.TypeNotFound},
		{"forbidden", errs.NewForbiddenError("claim order", "customer"), http.StatusForbidden, httpadapter.TypeForbidden},
		{"invalid_transition", errs.NewInvalidTransitionError(stringer("DELIVERED"), stringer("PENDING")), http.StatusConflict, httpadapter.TypeInvalidTransition},
		{"conflict", errs.NewConflictError("order", "42"), http.StatusConflict, httpadapter.TypeConflict},
		{"store_unavailable", errs.NewStoreUnavailableError("get order", errors.New("dial tcp")), http.StatusServiceUnavailable, httpadapter.TypeUnavailable},
		{"required", errs.NewValueIsRequiredError("contactInfo.name"), http.StatusBadRequest, httpadapter.TypeValidation},
		{"out_of_range", errs.NewValueIsOutOfRangeError("note.length", 600, 1, 500), http.StatusBadRequest, httpadapter.TypeValidation},
		{"wrapped", fmt.Errorf("handle: %w", errs.NewConflictError("order", "42")), http.StatusConflict, httpadapter.TypeConflict},
		{"token", fmt.Errorf("%w: expired", auth.ErrInvalidToken), http.StatusUnauthorized, httpadapter.TypeUnauthorized},
		{"echo", echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), http.StatusMethodNotAllowed, httpadapter.TypeHTTP},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, httpadapter.TypeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := httpadapter.ProblemFor(tt.err)

			assert.Equal(t, tt.status, p.Status)
			assert.Equal(t, tt.typ, p.Type)
		})
	}
}

func TestProblemFor_HidesInfrastructureDetail(t *testing.T) {
	p := httpadapter.ProblemFor(errs.NewStoreUnavailableError("get order", errors.New("password authentication failed")))

	assert.Empty(t, p.Detail)
}
