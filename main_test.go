package main

import (
	"testing"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"cornell scene", "cornell", false},
		{"scrapyard scene", "scrapyard", false},
		{"unknown scene", "nonexistent", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc, camera, err := createScene(tt.sceneType, 64, 64)

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type %q, got none", tt.sceneType)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type %q: %v", tt.sceneType, err)
			}
			if sc == nil || camera == nil {
				t.Fatalf("Scene type %q returned nil scene or camera", tt.sceneType)
			}
			if len(sc.Objects) == 0 {
				t.Errorf("Scene type %q has no objects", tt.sceneType)
			}
			if camera.Width != 64 || camera.Height != 64 {
				t.Errorf("Camera dimensions %dx%d, expected 64x64", camera.Width, camera.Height)
			}
		})
	}
}
