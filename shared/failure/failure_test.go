package failure_test

import (
	"errors"
	"net/http"
	"testing"
	"villa/shared/failure"
)

func TestFailure_Error(t *testing.T) {
	f := &failure.Failure{
		Code:    http.StatusConflict,
		Message: "room is not available for the selected dates",
	}

	if f.Error() != "room is not available for the selected dates" {
		t.Errorf("expected error message to be 'room is not available for the selected dates', got %s", f.Error())
	}
}

func TestPredefinedFailures(t *testing.T) {
	tests := []struct {
		name    string
		failure *failure.Failure
		code    int
		message string
	}{
		{
			name:    "InvalidPageParam",
			failure: failure.InvalidPageParam,
			code:    http.StatusBadRequest,
			message: "invalid page parameter",
		},
		{
			name:    "InvalidLimitParam",
			failure: failure.InvalidLimitParam,
			code:    http.StatusBadRequest,
			message: "invalid limit parameter",
		},
		{
			name:    "ForbiddenError",
			failure: failure.ForbiddenError,
			code:    http.StatusForbidden,
			message: "You don't have the required permissions",
		},
		{
			name:    "ResourceRestrictedError",
			failure: failure.ResourceRestrictedError,
			code:    http.StatusForbidden,
			message: "You don't have permission to access this resource",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.failure.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, tt.failure.Code)
			}
			if tt.failure.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, tt.failure.Message)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name    string
		result  error
		code    int
		message string
	}{
		{
			name:    "BadRequest",
			result:  failure.BadRequest(errors.New("check_out must be after check_in")),
			code:    http.StatusBadRequest,
			message: "check_out must be after check_in",
		},
		{
			name:    "BadRequestFromString",
			result:  failure.BadRequestFromString("missing booking dates"),
			code:    http.StatusBadRequest,
			message: "missing booking dates",
		},
		{
			name:    "Unauthorized",
			result:  failure.Unauthorized("token expired"),
			code:    http.StatusUnauthorized,
			message: "token expired",
		},
		{
			name:    "NotFound",
			result:  failure.NotFound("room not found"),
			code:    http.StatusNotFound,
			message: "room not found",
		},
		{
			name:    "Conflict",
			result:  failure.Conflict("booking already cancelled"),
			code:    http.StatusConflict,
			message: "booking already cancelled",
		},
		{
			name:    "Forbidden",
			result:  failure.Forbidden("admin only"),
			code:    http.StatusForbidden,
			message: "admin only",
		},
		{
			name:    "InternalError",
			result:  failure.InternalError(errors.New("database connection failed")),
			code:    http.StatusInternalServerError,
			message: "database connection failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, ok := tt.result.(*failure.Failure)
			if !ok {
				t.Fatalf("expected result to be *failure.Failure, got %T", tt.result)
			}
			if f.Code != tt.code {
				t.Errorf("expected code to be %d, got %d", tt.code, f.Code)
			}
			if f.Message != tt.message {
				t.Errorf("expected message to be %s, got %s", tt.message, f.Message)
			}
		})
	}
}

func TestNilConstructors(t *testing.T) {
	if failure.BadRequest(nil) != nil {
		t.Error("expected BadRequest(nil) to be nil")
	}
	if failure.InternalError(nil) != nil {
		t.Error("expected InternalError(nil) to be nil")
	}
}

func TestGetCode(t *testing.T) {
	if code := failure.GetCode(failure.Conflict("overlap")); code != http.StatusConflict {
		t.Errorf("expected %d, got %d", http.StatusConflict, code)
	}

	if code := failure.GetCode(errors.New("plain error")); code != http.StatusInternalServerError {
		t.Errorf("expected %d for plain error, got %d", http.StatusInternalServerError, code)
	}
}

func TestIsCode(t *testing.T) {
	err := failure.NotFound("booking not found")

	if !failure.IsCode(err, http.StatusNotFound) {
		t.Error("expected IsCode to match NotFound")
	}
	if failure.IsCode(err, http.StatusConflict) {
		t.Error("expected IsCode not to match Conflict")
	}
}
