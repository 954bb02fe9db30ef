package manifest

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testdataDir = "testdata"

func testPath(name string) string {
	return filepath.Join(testdataDir, name)
}

func TestLoad_Plist(t *testing.T) {
	info, err := Load(testPath("Transmutor-info.plist"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if info.Name != "Transmutor" {
		t.Errorf("Name = %q, want %q", info.Name, "Transmutor")
	}
	if info.Version != "2.0.3" {
		t.Errorf("Version = %q, want %q", info.Version, "2.0.3")
	}
	if info.Developer != "OH no Type Co" {
		t.Errorf("Developer = %q, want %q", info.Developer, "OH no Type Co")
	}
	if info.MainScript != "main.py" {
		t.Errorf("MainScript = %q, want %q", info.MainScript, "main.py")
	}
	if info.HTML {
		t.Error("HTML = true, want false")
	}
	if info.RequiresVersionMajor != "4" {
		t.Errorf("RequiresVersionMajor = %q, want %q", info.RequiresVersionMajor, "4")
	}
	if math.Abs(info.TimeStamp-1682020133.31803) > 1e-6 {
		t.Errorf("TimeStamp = %f, want 1682020133.31803", info.TimeStamp)
	}
	if len(info.AddToMenu) != 1 {
		t.Fatalf("AddToMenu len = %d, want 1", len(info.AddToMenu))
	}
	if info.AddToMenu[0].Path != "main.py" {
		t.Errorf("AddToMenu[0].Path = %q, want %q", info.AddToMenu[0].Path, "main.py")
	}
	if info.AddToMenu[0].PreferredName != "Transmutor" {
		t.Errorf("AddToMenu[0].PreferredName = %q, want %q", info.AddToMenu[0].PreferredName, "Transmutor")
	}
}

func TestLoad_YAML(t *testing.T) {
	info, err := Load(testPath("valid-info.yaml"))
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	if info.Name != "Transmutor" {
		t.Errorf("Name = %q, want %q", info.Name, "Transmutor")
	}
	if info.Version != "2.0.3" {
		t.Errorf("Version = %q, want %q", info.Version, "2.0.3")
	}
	if info.DeveloperURL != "https://ohnotype.co/" {
		t.Errorf("DeveloperURL = %q, want %q", info.DeveloperURL, "https://ohnotype.co/")
	}
	if len(info.AddToMenu) != 1 {
		t.Fatalf("AddToMenu len = %d, want 1", len(info.AddToMenu))
	}
}

func TestLoad_UnsupportedFormat(t *testing.T) {
	_, err := Load(testPath("whatever.json"))
	if err == nil {
		t.Fatal("expected error for unsupported format, got nil")
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(testPath("nonexistent.plist"))
	if err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestWritePlist_RoundTrip(t *testing.T) {
	info := &Info{
		Name:            "Transmutor",
		Version:         "2.1.0",
		Developer:       "OH no Type Co",
		MainScript:      "main.py",
		LaunchAtStartUp: true,
		TimeStamp:       1700000000,
		AddToMenu: []MenuItem{
			{Path: "main.py", PreferredName: "Transmutor", ShortKey: ""},
		},
	}

	path := filepath.Join(t.TempDir(), InfoPlistName)
	if err := WritePlist(path, info); err != nil {
		t.Fatalf("WritePlist error: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if got.Name != info.Name {
		t.Errorf("Name = %q, want %q", got.Name, info.Name)
	}
	if got.Version != info.Version {
		t.Errorf("Version = %q, want %q", got.Version, info.Version)
	}
	if !got.LaunchAtStartUp {
		t.Error("LaunchAtStartUp = false, want true")
	}
	if got.TimeStamp != info.TimeStamp {
		t.Errorf("TimeStamp = %f, want %f", got.TimeStamp, info.TimeStamp)
	}
	if len(got.AddToMenu) != 1 || got.AddToMenu[0].Path != "main.py" {
		t.Errorf("AddToMenu = %+v, want one entry with path main.py", got.AddToMenu)
	}
}

func TestWritePlist_TimeStampPlainDecimal(t *testing.T) {
	tests := []struct {
		name  string
		stamp float64
		want  string
	}{
		{"whole epoch", 1700000000, "<real>1700000000</real>"},
		{"fractional epoch", 1682020133.31803, "<real>1682020133.31803</real>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := &Info{
				Name:       "Transmutor",
				Version:    "2.0.3",
				MainScript: "main.py",
				TimeStamp:  tt.stamp,
			}
			path := filepath.Join(t.TempDir(), InfoPlistName)
			if err := WritePlist(path, info); err != nil {
				t.Fatalf("WritePlist error: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}
			if !strings.Contains(string(data), tt.want) {
				t.Errorf("manifest does not contain %s", tt.want)
			}
			// The encoder's default rendering of large floats (1.7e+09)
			// must never reach the manifest.
			if strings.Contains(string(data), "e+") {
				t.Errorf("manifest carries an exponent-form timeStamp:\n%s", data)
			}
		})
	}
}
