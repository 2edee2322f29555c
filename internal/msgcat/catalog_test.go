package msgcat

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaults(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	got, err := c.Render("room.user_joined", map[string]any{"Name": "alice"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "alice joined the chat" {
		t.Fatalf("unexpected render: %q", got)
	}
	if _, err := c.Render("errors.room_not_found", nil); err != nil {
		t.Fatalf("Render static: %v", err)
	}
}

func TestUnknownKey(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	if _, err := c.Render("does.not.exist", nil); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestOverrideDir(t *testing.T) {
	dir := t.TempDir()
	override := "room:\n  user_joined: \"{{.Name}} is here\"\n"
	if err := os.WriteFile(filepath.Join(dir, "override.yaml"), []byte(override), 0o644); err != nil {
		t.Fatalf("write override: %v", err)
	}
	c, err := New(dir)
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	got, err := c.Render("room.user_joined", map[string]any{"Name": "bob"})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got != "bob is here" {
		t.Fatalf("override not applied: %q", got)
	}
	// Keys the override does not touch keep their defaults.
	got, err = c.Render("room.user_left", map[string]any{"Name": "bob"})
	if err != nil {
		t.Fatalf("Render default: %v", err)
	}
	if got != "bob left the chat" {
		t.Fatalf("default lost after override: %q", got)
	}
}

func TestMissingTemplateData(t *testing.T) {
	c, err := New("")
	if err != nil {
		t.Fatalf("msgcat.New: %v", err)
	}
	if _, err := c.Render("room.user_joined", map[string]any{}); err == nil {
		t.Fatalf("missing template data should error")
	}
}
