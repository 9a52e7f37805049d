package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/tennis-players/internal/usecase"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, "players retrieved", map[string]any{"total_players": 3})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("unexpected content type: %q", got)
	}

	body := decodeBody(t, rec)
	if got, _ := body["status"].(string); got != "success" {
		t.Fatalf("expected status=success, got %v", body["status"])
	}
	if got, _ := body["message"].(string); got != "players retrieved" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if got, _ := body["total_players"].(float64); got != 3 {
		t.Fatalf("expected payload keys at top level, got %v", body)
	}
}

func TestWriteSuccess_PayloadCannotOverrideStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(context.Background(), rec, http.StatusOK, "ok", map[string]any{"status": "hijacked"})

	body := decodeBody(t, rec)
	if got, _ := body["status"].(string); got != "success" {
		t.Fatalf("expected envelope status to win, got %v", body["status"])
	}
}

func TestWriteError_Envelope(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{name: "invalid input", err: fmt.Errorf("%w: bad payload", usecase.ErrInvalidInput), wantStatus: http.StatusBadRequest, wantMessage: "invalid input: bad payload"},
		{name: "not found", err: fmt.Errorf("%w: player=1", usecase.ErrNotFound), wantStatus: http.StatusNotFound, wantMessage: "resource not found: player=1"},
		{name: "conflict", err: fmt.Errorf("%w: player=1", usecase.ErrConflict), wantStatus: http.StatusConflict, wantMessage: "resource already exists: player=1"},
		{name: "internal", err: errors.New("pq: connection refused"), wantStatus: http.StatusInternalServerError, wantMessage: "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(context.Background(), rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			body := decodeBody(t, rec)
			if got, _ := body["status"].(string); got != "error" {
				t.Fatalf("expected status=error, got %v", body["status"])
			}
			if got, _ := body["message"].(string); got != tt.wantMessage {
				t.Fatalf("unexpected message: %q", got)
			}
		})
	}
}
