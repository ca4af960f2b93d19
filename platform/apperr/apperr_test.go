package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestGetKindFollowsWrappedChain(t *testing.T) {
	base := New(KindTimeout, "request timed out")
	wrapped := fmt.Errorf("fetch catalog: %w", base)

	if got := GetKind(wrapped); got != KindTimeout {
		t.Fatalf("expected timeout kind through fmt wrap, got %s", got)
	}
	if GetKind(errors.New("plain")) != KindUnknown {
		t.Fatalf("expected unknown kind for plain error")
	}
}

func TestPropagateKeepsKindAndAddsContext(t *testing.T) {
	err := Propagate("fetch catalog for ACME", New(KindUpstream, "status 500"))

	if err.Kind != KindUpstream {
		t.Fatalf("expected upstream kind, got %s", err.Kind)
	}
	if err.Error() != "fetch catalog for ACME: status 500" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if Propagate("noop", nil) != nil {
		t.Fatalf("expected nil for nil error")
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := map[Kind]int{
		KindNotFound:        http.StatusNotFound,
		KindValidation:      http.StatusBadRequest,
		KindTimeout:         http.StatusGatewayTimeout,
		KindUpstream:        http.StatusBadGateway,
		KindUnavailable:     http.StatusBadGateway,
		KindTooManyRequests: http.StatusTooManyRequests,
		KindInternal:        http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := New(kind, "x").HTTPStatus(); got != want {
			t.Fatalf("kind %s: expected %d, got %d", kind, want, got)
		}
	}
}
