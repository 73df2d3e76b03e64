package logger

import (
	"testing"
)

func TestInit(t *testing.T) {
	log := New()
	if log.Log == nil {
		t.Fatal("New() returned nil logger")
	}

	if err := log.Init("Info"); err != nil {
		t.Fatalf("Init() returned error: %v", err)
	}
	if !log.Log.Core().Enabled(0) { // InfoLevel
		t.Error("expected info level to be enabled")
	}
}

func TestInit_BadLevel(t *testing.T) {
	log := New()
	if err := log.Init("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}
