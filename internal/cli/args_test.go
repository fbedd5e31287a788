package cli

import (
	"testing"
)

func TestAnalyzeRequiresFile(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", []string{"analyze"}},
		{"two files", []string{"analyze", "a.csv", "b.csv"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestServeAcceptsNoArgs(t *testing.T) {
	// serve should reject extra args
	_, err := executeCommand("serve", "extra")
	if err == nil {
		t.Fatal("expected error for extra args")
	}
}

func TestNoArgCommandsRejectArgs(t *testing.T) {
	for _, name := range []string{"history", "status", "version", "config"} {
		t.Run(name, func(t *testing.T) {
			_, err := executeCommand(name, "extra")
			if err == nil {
				t.Fatal("expected error for extra args")
			}
		})
	}
}

func TestConfigSetRequiresKeyAndValue(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", []string{"config", "set"}},
		{"key only", []string{"config", "set", "backend_url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
