package errors

import (
	"net/http"
	"strings"

	"codeberg.org/atlasagency/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.InternalError(), errors.BadRequest(), etc. for terminal errors
//     These functions handle both logging and HTTP response automatically
//   - Use logger.ErrorErr() only for non-critical errors where processing continues
//   - Never call both logger.ErrorErr() and errors.InternalError() for the same error
//
// For services/clients/internal packages:
//   - Return wrapped errors with context using fmt.Errorf("context: %w", err)
//   - Let the caller (handler) decide how to log and respond
//   - Do not log errors in non-handler code (avoid double logging)
//
// No error triggers a retry or fallback content; every failure ends the attempt.

// standard error codes
const (
	CodeValidationError    = "validation_error"
	CodeServerError        = "server_error"
	CodeBadRequest         = "bad_request"
	CodeTooManyRequests    = "too_many_requests"
	CodeGenerationFailed   = "generation_failed"
	CodeUnparseable        = "unparseable_itinerary"
	CodeNoItinerary        = "itinerary_not_found"
	CodeLicenseInvalid     = "license_invalid"
	CodeWrongProduct       = "wrong_product"
	CodeLicenseUnavailable = "license_unavailable"
)

// shown when the generated text has no recognizable day headings
const UnparseableMessage = "The AI could not format the itinerary. Please try again."

// returns a 400 bad request error
func BadRequest(c *gin.Context, message string, err error) {
	if message == "" {
		message = "invalid request"
	}

	response := ErrorResponse{
		Error:   CodeBadRequest,
		Message: message,
	}

	if err != nil {
		response.Details = classifyError(err).sanitized
	}

	c.JSON(http.StatusBadRequest, response)
}

// returns a 400 bad request error for validation failures
func ValidationError(c *gin.Context, err error) {
	message := "validation failed"
	details := ""

	if err != nil {
		details = classifyError(err).sanitized
		if strings.Contains(err.Error(), "binding") || strings.Contains(err.Error(), "validation") {
			message = "request validation failed"
		}
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: message,
		Details: details,
	})
}

// returns a 400 listing the form fields that failed validation.
// field messages are produced by this service and shown as-is.
func InvalidFields(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   CodeValidationError,
		Message: "request validation failed",
		Details: err.Error(),
	})
}

// returns a 500 internal server error
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	info := classifyError(err)

	logger.FromContext(c.Request.Context()).Error(message,
		"error", err,
		"category", info.category,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   CodeServerError,
		Message: message,
		Details: info.sanitized,
	})
}

// returns a 429 too many requests error
func TooManyRequests(c *gin.Context, message string) {
	if message == "" {
		message = "too many requests"
	}

	c.JSON(http.StatusTooManyRequests, ErrorResponse{
		Error:   CodeTooManyRequests,
		Message: message,
	})
}

// returns a 502 when the text generation service failed
func GenerationFailed(c *gin.Context, err error) {
	info := classifyError(err)

	logger.FromContext(c.Request.Context()).Error("itinerary generation failed",
		"error", err,
		"category", info.category,
	)

	c.JSON(http.StatusBadGateway, ErrorResponse{
		Error:   CodeGenerationFailed,
		Message: "Error during generation. Please submit the form again.",
		Details: info.sanitized,
	})
}

// returns a 422 when the generated text could not be split into days
func Unparseable(c *gin.Context) {
	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   CodeUnparseable,
		Message: UnparseableMessage,
	})
}

// returns a 404 when the session holds no generated itinerary yet
func NoItinerary(c *gin.Context) {
	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:   CodeNoItinerary,
		Message: "Please fill the form to generate your preview.",
	})
}

// returns a 402 when the license service rejected the key
func LicenseRejected(c *gin.Context, code, message string) {
	if code == "" {
		code = CodeLicenseInvalid
	}

	c.JSON(http.StatusPaymentRequired, ErrorResponse{
		Error:   code,
		Message: message,
	})
}

// returns a 502 when the license service could not be reached
func LicenseUnavailable(c *gin.Context, message string) {
	c.JSON(http.StatusBadGateway, ErrorResponse{
		Error:   CodeLicenseUnavailable,
		Message: message,
	})
}
