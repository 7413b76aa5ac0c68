package server

import (
	"net/url"
	"testing"
)

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		name        string
		query       string
		expected    int
		expectError bool
	}{
		{"missing uses default", "", 42, false},
		{"valid value", "frames=10", 10, false},
		{"lower bound", "frames=1", 1, false},
		{"upper bound", "frames=100", 100, false},
		{"below range", "frames=0", 0, true},
		{"above range", "frames=101", 0, true},
		{"not a number", "frames=lots", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatalf("Bad test query: %v", err)
			}

			got, err := parseIntParam(values, "frames", 42, 1, 100)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for query %q, got %d", tt.query, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("Expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestShouldStream(t *testing.T) {
	const total = 64

	// Every early frame streams, so the viewer sees rapid refinement
	for frame := 0; frame < 8; frame++ {
		if !shouldStream(frame, total) {
			t.Errorf("Frame %d should stream", frame)
		}
	}

	// Later frames batch up
	if shouldStream(12, total) {
		t.Error("Frame 12 should be skipped")
	}
	if !shouldStream(15, total) {
		t.Error("Frame 15 ends a batch and should stream")
	}

	// The final frame always streams
	if !shouldStream(total-1, total) {
		t.Error("Final frame must stream")
	}
}
