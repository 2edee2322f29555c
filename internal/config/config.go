package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

type AppConfig struct {
	ListenAddr string

	// Access gate secret: plaintext, or a bcrypt hash of it. At least
	// one must be configured.
	RoomPassword     string
	RoomPasswordHash string

	HistoryLimit   int
	AllowedOrigins []string

	// Optional directory of YAML files overriding user-facing strings.
	MessagesDir string
}

func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		ListenAddr:   ":3000",
		HistoryLimit: 100,
	}

	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}
	cfg.RoomPassword = strings.TrimSpace(os.Getenv("ROOM_PASSWORD"))
	cfg.RoomPasswordHash = strings.TrimSpace(os.Getenv("ROOM_PASSWORD_HASH"))
	cfg.MessagesDir = strings.TrimSpace(os.Getenv("MESSAGES_DIR"))

	if v := strings.TrimSpace(os.Getenv("HISTORY_LIMIT")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.HistoryLimit = n
		}
	}
	if v := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); v != "" {
		for _, p := range strings.Split(v, ",") {
			if s := strings.TrimSpace(p); s != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, s)
			}
		}
	}

	if cfg.RoomPassword == "" && cfg.RoomPasswordHash == "" {
		return nil, errors.New("ROOM_PASSWORD or ROOM_PASSWORD_HASH is required")
	}

	return cfg, nil
}
