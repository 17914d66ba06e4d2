package reply

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"git.appkode.ru/pub/go/failure"
	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"dealradar/pkg/contextx"
	"dealradar/pkg/errcodes"
	"dealradar/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// ErrorCoder is implemented by domain errors that carry a stable error code.
type ErrorCoder interface {
	error
	ErrorCode() failure.ErrorCode
}

type errorResponse struct {
	Error     string `json:"error"`
	Details   any    `json:"details,omitempty"`
	SupportID string `json:"supportId"`
}

// FieldDetail describes one schema violation in a validation error response.
type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *errorResponse) WithDefaultCode(code failure.ErrorCode) {
	if e.Error == "" {
		e.Error = code.String()
	}
}

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

func OK(w http.ResponseWriter) {
	w.WriteHeader(http.StatusOK)
}

func Created(w http.ResponseWriter) {
	w.WriteHeader(http.StatusCreated)
}

func JSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger(ctx).Error("json.Encode", logx.Error(err))
	}
}

func Error(ctx context.Context, w http.ResponseWriter, err error) {
	logger(ctx).Error("error", logx.Error(err))

	response := errorResponse{
		Error:     failure.Code(err).String(),
		Details:   nil,
		SupportID: supportID(ctx),
	}

	if description := failure.Description(err); description != "" {
		response.Details = description
	}

	// Schema violations surface as a per-field message list.
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		response.Details = fieldDetails(validationErrs)
	}

	var coded ErrorCoder
	if errors.As(err, &coded) {
		response.WithDefaultCode(coded.ErrorCode())

		if response.Details == nil {
			response.Details = coded.Error()
		}
	}

	switch {
	case failure.IsInvalidArgumentError(err):
		response.WithDefaultCode(errcodes.ValidationError)
		JSON(ctx, w, http.StatusBadRequest, response)
	case failure.IsNotFoundError(err):
		response.WithDefaultCode(errcodes.NotFound)
		JSON(ctx, w, http.StatusNotFound, response)
	case failure.IsUnauthorizedError(err):
		JSON(ctx, w, http.StatusUnauthorized, response)
	case failure.IsForbiddenError(err):
		response.WithDefaultCode(errcodes.Forbidden)
		JSON(ctx, w, http.StatusForbidden, response)
	default:
		response.WithDefaultCode(errcodes.InternalServerError)
		JSON(ctx, w, http.StatusInternalServerError, response)
	}
}

func fieldDetails(errs validator.ValidationErrors) []FieldDetail {
	details := make([]FieldDetail, 0, len(errs))

	for _, fieldErr := range errs {
		details = append(details, FieldDetail{
			Field:   fieldErr.Field(),
			Message: fmt.Sprintf("failed on the '%s' rule", fieldErr.Tag()),
		})
	}

	return details
}

func supportID(ctx context.Context) string {
	traceID, err := contextx.TraceIDFromContext(ctx)
	if err != nil {
		return "unsupported"
	}

	return traceID.String()
}
