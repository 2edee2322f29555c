package gate

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kapu/chess-rooms-go/internal/obslog"
)

// Gate validates the shared access secret submitted once at session
// start. It never touches room or game state. A bcrypt hash takes
// precedence over the plaintext secret when both are configured.
type Gate struct {
	secret string
	hash   string
}

func New(secret, hash string) *Gate {
	return &Gate{secret: secret, hash: strings.TrimSpace(hash)}
}

// Check reports whether the submitted secret is valid.
func (g *Gate) Check(submitted string) bool {
	if g.hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(g.hash), []byte(submitted)) == nil
	}
	if g.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(g.secret), []byte(submitted)) == 1
}

type checkRequest struct {
	Password string `json:"password"`
}

type checkResponse struct {
	Valid bool `json:"valid"`
}

// Handler serves POST /api/password/check, answering {"valid": bool}.
func (g *Gate) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req checkRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
		ok := g.Check(req.Password)
		if !ok {
			obslog.L().Warn("gate_check_failed", zap.String("remote", r.RemoteAddr))
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(checkResponse{Valid: ok})
	}
}
