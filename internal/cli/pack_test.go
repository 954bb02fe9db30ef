package cli

import (
	"strings"
	"testing"
)

func TestResolveBundleArg_Explicit(t *testing.T) {
	got, err := resolveBundleArg([]string{"Transmutor.roboFontExt"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Transmutor.roboFontExt" {
		t.Errorf("resolveBundleArg = %q, want %q", got, "Transmutor.roboFontExt")
	}
}

func TestResolveBundleArg_Missing(t *testing.T) {
	// Point config at an empty home so no bundle.path is configured.
	t.Setenv("HOME", t.TempDir())

	_, err := resolveBundleArg(nil)
	if err == nil {
		t.Fatal("expected error when no bundle is configured")
	}
	if !strings.Contains(err.Error(), "bundle.path") {
		t.Errorf("error should mention the config key, got: %v", err)
	}
}
