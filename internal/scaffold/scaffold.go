package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/ohnotype/rfext/internal/manifest"
)

//go:embed templates
var templateFS embed.FS

// Data holds all template variables available to scaffold templates.
type Data struct {
	Name         string // e.g., "Transmutor"
	Developer    string // e.g., "OHno Type Co"
	DeveloperURL string // e.g., "https://ohnotype.co"
	Version      string // Semver, e.g., "0.1.0"
	MainScript   string // Relative to lib/, e.g., "main.py"
	Year         int    // Current year
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir string
	Files     []string
	Warnings  []string
}

// NewData creates a Data with defaults populated.
func NewData(name, developer, developerURL string) *Data {
	return &Data{
		Name:         name,
		Developer:    developer,
		DeveloperURL: developerURL,
		Version:      "0.1.0",
		MainScript:   "main.py",
		Year:         time.Now().Year(),
	}
}

// Generate creates a new extension source tree from the embedded templates.
func Generate(data *Data, outputDir string) (*Result, error) {
	templatesDir := "templates/extension"

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	// Check for existing files to prevent accidental overwrites.
	existingEntries, err := os.ReadDir(outputDir)
	if err == nil && len(existingEntries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	result := &Result{
		OutputDir: outputDir,
	}

	err = fs.WalkDir(templateFS, templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(templatesDir, path)
		if err != nil {
			return err
		}
		if d.IsDir() {
			if rel == "." {
				return nil
			}
			return os.MkdirAll(filepath.Join(outputDir, rel), 0755)
		}

		tmplBytes, err := fs.ReadFile(templateFS, path)
		if err != nil {
			return fmt.Errorf("reading template %s: %w", path, err)
		}

		// Strip .tmpl extension for the output filename.
		outRel := strings.TrimSuffix(rel, ".tmpl")
		outPath := filepath.Join(outputDir, outRel)

		tmpl, err := template.New(d.Name()).Parse(string(tmplBytes))
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", d.Name(), err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return fmt.Errorf("executing template %s: %w", d.Name(), err)
		}

		if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}

		result.Files = append(result.Files, filepath.ToSlash(outRel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Validate the generated manifest against the extension schema.
	manifestFile := filepath.Join(outputDir, manifest.InfoYAMLName)
	if _, err := os.Stat(manifestFile); err == nil {
		valResult, valErr := manifest.ValidateFile(manifestFile)
		if valErr != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Could not validate manifest: %v", valErr))
		} else if !valResult.Valid {
			for _, issue := range valResult.Issues {
				msg := issue.Message
				if issue.Path != "" {
					msg = issue.Path + ": " + msg
				}
				result.Warnings = append(result.Warnings, msg)
			}
		}
	}

	return result, nil
}
