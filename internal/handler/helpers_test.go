package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"promptbox/internal/domain"
	"promptbox/internal/httputil"
)

func TestHandleError_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
	}{
		{
			name:       "validation",
			err:        fmt.Errorf("%w: name cannot be blank", domain.ErrValidation),
			wantStatus: http.StatusBadRequest,
			wantDetail: "validation failed: name cannot be blank",
		},
		{
			name:       "not found",
			err:        fmt.Errorf("prompt abc: %w", domain.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantDetail: "prompt abc: not found",
		},
		{
			name:       "precondition",
			err:        &domain.PreconditionError{Message: "reorder sequence has 2 ids, expected 3"},
			wantStatus: http.StatusUnprocessableEntity,
			wantDetail: "reorder sequence has 2 ids, expected 3",
		},
		{
			name:       "conflict",
			err:        &domain.ConflictError{Message: "category already exists", ResourceType: "category"},
			wantStatus: http.StatusConflict,
			wantDetail: "category already exists",
		},
		{
			name:       "typed http error",
			err:        &domain.ValidationError{Message: "id must be a valid UUID"},
			wantStatus: http.StatusBadRequest,
			wantDetail: "id must be a valid UUID",
		},
		{
			name:       "unknown errors are opaque",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantDetail: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
				t.Errorf("Content-Type = %q, want application/problem+json", ct)
			}

			var problem httputil.ProblemDetail
			if err := json.Unmarshal(rec.Body.Bytes(), &problem); err != nil {
				t.Fatalf("response is not valid JSON: %v", err)
			}
			if problem.Status != tt.wantStatus {
				t.Errorf("problem.Status = %d, want %d", problem.Status, tt.wantStatus)
			}
			if problem.Detail != tt.wantDetail {
				t.Errorf("problem.Detail = %q, want %q", problem.Detail, tt.wantDetail)
			}
		})
	}
}

func TestHandleError_WrappedPreconditionError(t *testing.T) {
	err := fmt.Errorf("reorder: %w", &domain.PreconditionError{Message: "unknown id"})

	rec := httptest.NewRecorder()
	handleError(rec, err)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("3b8f0a6e-2d5c-4f1a-9c7b-1e2d3f4a5b6c")
	if err != nil {
		t.Fatalf("parseID rejected a valid UUID: %v", err)
	}
	if id != "3b8f0a6e-2d5c-4f1a-9c7b-1e2d3f4a5b6c" {
		t.Errorf("parseID = %q", id)
	}

	if _, err := parseID("not-a-uuid"); err == nil {
		t.Error("parseID accepted a malformed id")
	}
}
