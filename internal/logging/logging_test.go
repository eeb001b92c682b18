package logging

import "testing"

func TestNewLevels(t *testing.T) {
	logger, err := New("debug", true)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !logger.Core().Enabled(-1) {
		t.Fatalf("expected debug enabled")
	}

	logger, err = New("", false)
	if err != nil {
		t.Fatalf("new default: %v", err)
	}
	if logger.Core().Enabled(-1) {
		t.Fatalf("expected debug disabled at default level")
	}

	if _, err := New("chatty", false); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
