package gate

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCheckPlaintext(t *testing.T) {
	g := New("sekrit", "")
	if !g.Check("sekrit") {
		t.Fatalf("correct secret rejected")
	}
	if g.Check("wrong") {
		t.Fatalf("wrong secret accepted")
	}
	if g.Check("") {
		t.Fatalf("empty submission accepted")
	}
}

func TestCheckBcryptHashWins(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	g := New("ignored-plaintext", string(hash))
	if !g.Check("hunter2") {
		t.Fatalf("hash match rejected")
	}
	if g.Check("ignored-plaintext") {
		t.Fatalf("plaintext must be ignored when a hash is configured")
	}
}

func TestCheckNoSecretConfigured(t *testing.T) {
	g := New("", "")
	if g.Check("") || g.Check("anything") {
		t.Fatalf("unconfigured gate must reject everything")
	}
}

func TestHandler(t *testing.T) {
	g := New("sekrit", "")
	h := g.Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/password/check", strings.NewReader(`{"password":"sekrit"}`))
	rec := httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status %d", rec.Code)
	}
	if got := strings.TrimSpace(rec.Body.String()); got != `{"valid":true}` {
		t.Fatalf("unexpected body: %s", got)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/password/check", strings.NewReader(`{"password":"nope"}`))
	rec = httptest.NewRecorder()
	h(rec, req)
	if got := strings.TrimSpace(rec.Body.String()); got != `{"valid":false}` {
		t.Fatalf("unexpected body: %s", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/password/check", nil)
	rec = httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET should be rejected, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/api/password/check", strings.NewReader(`{`))
	rec = httptest.NewRecorder()
	h(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("broken body should be rejected, got %d", rec.Code)
	}
}
