package web

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"dpui/internal/domain"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.NotFound("get", "x"), http.StatusNotFound},
		{&domain.Error{Kind: domain.KindHotkeyInUse}, http.StatusConflict},
		{&domain.Error{Kind: domain.KindHotkeyInvalid}, http.StatusUnprocessableEntity},
		{&domain.Error{Kind: domain.KindToolFailed, ExitCode: 2}, http.StatusBadGateway},
		{&domain.Error{Kind: domain.KindParse}, http.StatusBadGateway},
		{&domain.Error{Kind: domain.KindToolTimeout}, http.StatusGatewayTimeout},
		{&domain.Error{Kind: domain.KindStoreRead}, http.StatusInternalServerError},
		{fmt.Errorf("wrapped: %w", &domain.Error{Kind: domain.KindToolUnavailable}), http.StatusBadGateway},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
