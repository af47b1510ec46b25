package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"orderlifecycle/internal/adapters/in/auth"
	"orderlifecycle/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// ContentTypeProblemJSON is the media type of error responses.
const ContentTypeProblemJSON = "application/problem+json"

// ProblemDetail is an RFC 7807 error body.
type ProblemDetail struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail != "" {
		return fmt.Sprintf("%s: %s", p.Title, p.Detail)
	}
	return p.Title
}

func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

func (p ProblemDetail) WithInstance(instance string) ProblemDetail {
	p.Instance = instance
	return p
}

const (
	TypeValidation        = "/problems/validation-error"
	TypeNotFound          = "/problems/not-found"
	TypeForbidden         = "/problems/forbidden"
	TypeUnauthorized      = "/problems/unauthorized"
	TypeInvalidTransition = "/problems/invalid-transition"
	TypeConflict          = "/problems/conflict"
	TypeUnavailable       = "/problems/store-unavailable"
	TypeInternal          = "/problems/internal-error"
	TypeHTTP              = "/problems/http"
)

var (
	ProblemValidation        = ProblemDetail{Type: TypeValidation, Title: "Validation Error", Status: http.StatusBadRequest}
	ProblemNotFound          = ProblemDetail{Type: TypeNotFound, Title: "Resource Not Found", Status: http.StatusNotFound}
	ProblemForbidden         = ProblemDetail{Type: TypeForbidden, Title: "Forbidden", Status: http.StatusForbidden}
	ProblemUnauthorized      = ProblemDetail{Type: TypeUnauthorized, Title: "Unauthorized", Status: http.StatusUnauthorized}
	ProblemInvalidTransition = ProblemDetail{Type: TypeInvalidTransition, Title: "Invalid Transition", Status: http.StatusConflict}
	ProblemConflict          = ProblemDetail{Type: TypeConflict, Title: "Conflict", Status: http.StatusConflict}
	ProblemUnavailable       = ProblemDetail{Type: TypeUnavailable, Title: "Service Unavailable", Status: http.StatusServiceUnavailable}
	ProblemInternal          = ProblemDetail{Type: TypeInternal, Title: "Internal Server Error", Status: http.StatusInternalServerError}
)

// ProblemFor maps an error returned by a handler onto a problem body.
// Details of internal failures are not exposed.
func ProblemFor(err error) ProblemDetail {
	var (
		problem ProblemDetail
		httpErr *echo.HTTPError
	)
	switch {
	case errors.As(err, &problem):
		return problem
	case errors.As(err, &httpErr):
		return ProblemDetail{
			Type:   TypeHTTP,
			Title:  http.StatusText(httpErr.Code),
			Status: httpErr.Code,
			Detail: fmt.Sprint(httpErr.Message),
		}
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrMissingToken):
		return ProblemUnauthorized.WithDetail(err.Error())
	case errors.Is(err, errs.ErrObjectNotFound):
		return ProblemNotFound.WithDetail(err.Error())
	case errors.Is(err, errs.ErrForbidden):
		return ProblemForbidden.WithDetail(err.Error())
	case errors.Is(err, errs.ErrInvalidTransition):
		return ProblemInvalidTransition.WithDetail(err.Error())
	case errors.Is(err, errs.ErrConflict):
		return ProblemConflict.WithDetail(err.Error())
	case errors.Is(err, errs.ErrStoreUnavailable):
		return ProblemUnavailable
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ProblemValidation.WithDetail(err.Error())
	}
	return ProblemInternal
}

// ErrorHandler renders every error as application/problem+json.
func ErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		req := c.Request()
		problem := ProblemFor(err).WithInstance(req.URL.Path)
		if problem.Status >= http.StatusInternalServerError {
			logger.ErrorContext(req.Context(), "request failed",
				"method", req.Method,
				"path", req.URL.Path,
				"status", problem.Status,
				"error", err,
			)
		}

		c.Response().Header().Set(echo.HeaderContentType, ContentTypeProblemJSON)
		if req.Method == http.MethodHead {
			err = c.NoContent(problem.Status)
		} else {
			err = c.JSON(problem.Status, problem)
		}
		if err != nil {
			logger.ErrorContext(req.Context(), "write problem response", "error", err)
		}
	}
}
