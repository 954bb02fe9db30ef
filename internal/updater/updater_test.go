package updater

import (
	"testing"
)

func TestIsNewer(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		candidate string
		want      bool
		wantErr   bool
	}{
		{"newer patch", "2.0.2", "2.0.3", true, false},
		{"newer minor", "1.0.0", "1.1.0", true, false},
		{"newer major", "1.0.0", "2.0.0", true, false},
		{"same version", "2.0.3", "2.0.3", false, false},
		{"older candidate", "1.1.0", "1.0.0", false, false},
		{"v prefix current", "v1.0.0", "1.0.1", true, false},
		{"v prefix candidate", "1.0.0", "v1.0.1", true, false},
		{"v prefix both", "v1.0.0", "v1.0.1", true, false},
		{"release beats prerelease", "1.0.0-beta", "1.0.0", true, false},
		{"prerelease ordering", "1.0.0-alpha", "1.0.0-beta", true, false},
		{"invalid current", "notaversion", "1.0.0", false, true},
		{"invalid candidate", "1.0.0", "notaversion", false, true},
		{"dev build", "dev", "1.0.0", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := New(tt.current)
			got, err := u.IsNewer(tt.candidate)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("IsNewer(%q) with current %q = %v, want %v", tt.candidate, tt.current, got, tt.want)
			}
		})
	}
}
