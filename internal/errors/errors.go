package errors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

var (
	// ErrUserNotFound is returned when a user record is missing.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserExists is returned when registration hits an existing username or email.
	ErrUserExists = errors.New("user with this email or username already exists")
	// ErrInvalidCredentials is returned for both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrFavoriteExists is returned when a country is already in the favorites list.
	ErrFavoriteExists = errors.New("country already in favorites")
	// ErrInvalidSession is returned when a session token is missing, malformed,
	// expired, revoked or carries a bad signature.
	ErrInvalidSession = errors.New("invalid or expired session")
	// ErrCountryNotFound is returned when the country API has no match.
	ErrCountryNotFound = errors.New("country not found")
)

// ErrorResponse is the wire shape of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

// HTTPError pairs a domain error with its HTTP status and client message.
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors
// collapse into a generic 500 so internals never leak to the client.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrUserNotFound):
		return &HTTPError{http.StatusNotFound, "User not found"}
	case errors.Is(err, ErrUserExists):
		return &HTTPError{http.StatusConflict, "User with this email or username already exists"}
	case errors.Is(err, ErrInvalidCredentials):
		return &HTTPError{http.StatusUnauthorized, "Invalid email or password"}
	case errors.Is(err, ErrFavoriteExists):
		return &HTTPError{http.StatusConflict, "Country already in favorites"}
	case errors.Is(err, ErrInvalidSession):
		return &HTTPError{http.StatusUnauthorized, "Not authorized"}
	case errors.Is(err, ErrCountryNotFound):
		return &HTTPError{http.StatusNotFound, "Country not found"}
	default:
		return &HTTPError{http.StatusInternalServerError, "Server error"}
	}
}

// HTTPErrorHandler converts every handler fault into the structured
// {success:false, message, error?} envelope. Wire it as echo's
// HTTPErrorHandler so no raw failure ever reaches the client.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	body := ErrorResponse{Message: "Server error"}

	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		status = echoErr.Code
		if msg, ok := echoErr.Message.(string); ok {
			body.Message = msg
		} else {
			body.Message = http.StatusText(status)
		}
	} else {
		mapped := MapErrorToHTTP(err)
		status = mapped.StatusCode
		body.Message = mapped.Message
		if status == http.StatusInternalServerError {
			body.Detail = err.Error()
		}
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, body)
}
