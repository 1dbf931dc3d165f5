package main

import (
	"errors"
	"testing"
)

func TestCleanClipboardText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"version":1,"ops":[]}`, `{"version":1,"ops":[]}`},
		{"surrounding prose", "here you go:\n{\"version\":1}\nenjoy", `{"version":1}`},
		{"control characters", "\x00{\"version\":\x071}\x1b", `{"version":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cleanClipboardText(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if _, err := cleanClipboardText("just words"); !errors.Is(err, errNoDocument) {
		t.Errorf("plain text error = %v", err)
	}
}
