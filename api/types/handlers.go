package types

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/killallgit/voicenotes-api/internal/logging"
	"github.com/killallgit/voicenotes-api/internal/services/providers"
	apperrors "github.com/killallgit/voicenotes-api/pkg/errors"
)

// ParseUintParam extracts and parses a URL parameter as uint
// Returns the parsed value and sends error response if parsing fails
func ParseUintParam(c *gin.Context, paramName string) (uint, bool) {
	return parseID(c, paramName, c.Param(paramName))
}

// ParseUintQuery is ParseUintParam for query string values
func ParseUintQuery(c *gin.Context, name string) (uint, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		SendError(c, apperrors.MissingFieldError(name))
		return 0, false
	}
	return parseID(c, name, raw)
}

func parseID(c *gin.Context, name, raw string) (uint, bool) {
	value, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || value == 0 {
		SendError(c, apperrors.ValidationError(name, "must be a positive integer"))
		return 0, false
	}
	return uint(value), true
}

// QueryInt reads an integer query parameter, falling back to def when absent or malformed
func QueryInt(c *gin.Context, name string, def int) int {
	raw := c.Query(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// BindJSONOrError attempts to bind JSON request body to target struct
// Returns false and sends error response if binding fails
func BindJSONOrError(c *gin.Context, target interface{}) bool {
	if err := c.ShouldBindJSON(target); err != nil {
		SendError(c, apperrors.Wrap(err, apperrors.ErrCodeInvalidInput, "Invalid request body"))
		return false
	}
	return true
}

// SendError writes err as an ErrorResponse. Provider failures get the
// provider's user message; AppErrors keep their code and details; anything
// else is a 500 with a generic message.
func SendError(c *gin.Context, err error) {
	status, body := errorBody(err)
	if status >= http.StatusInternalServerError {
		logger := logging.Component("api")
		event := logger.Error().Err(err).Str(logging.FieldRequestID, c.GetString(logging.FieldRequestID))
		if c.Request != nil {
			event = event.Str("path", c.Request.URL.Path)
		}
		event.Msg("Request failed")
	}
	c.JSON(status, body)
}

func errorBody(err error) (int, ErrorResponse) {
	if pe, ok := providers.AsError(err); ok {
		code := providerCode(pe.Kind)
		return providerStatus(pe.Kind), ErrorResponse{
			Error:   pe.UserMessage(),
			Code:    string(code),
			Details: map[string]interface{}{"provider": string(pe.Provider), "kind": string(pe.Kind)},
		}
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge, ErrorResponse{
			Error: "Request body too large",
			Code:  string(apperrors.ErrCodeFileTooLarge),
		}
	}

	if appErr, ok := apperrors.As(err); ok {
		status := appErr.GetHTTPCode()
		msg := appErr.Message
		if status >= http.StatusInternalServerError && appErr.Code != apperrors.ErrCodeProviderNotConfigured {
			msg = "Internal server error"
		}
		return status, ErrorResponse{Error: msg, Code: string(appErr.Code), Details: appErr.Details}
	}

	return http.StatusInternalServerError, ErrorResponse{
		Error: "Internal server error",
		Code:  string(apperrors.ErrCodeInternal),
	}
}

func providerCode(kind providers.ErrorKind) apperrors.ErrorCode {
	switch kind {
	case providers.ErrorAuth:
		return apperrors.ErrCodeProviderAuth
	case providers.ErrorQuota:
		return apperrors.ErrCodeProviderQuota
	case providers.ErrorNotConfigured:
		return apperrors.ErrCodeProviderNotConfigured
	case providers.ErrorTimeout:
		return apperrors.ErrCodeAPITimeout
	default:
		return apperrors.ErrCodeExternalService
	}
}

func providerStatus(kind providers.ErrorKind) int {
	switch kind {
	case providers.ErrorQuota:
		return http.StatusTooManyRequests
	case providers.ErrorNotConfigured:
		return http.StatusServiceUnavailable
	case providers.ErrorTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusBadGateway
	}
}

// SendSuccess sends a standardized success response with data
func SendSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendCreated sends a standardized created response with data
func SendCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}
