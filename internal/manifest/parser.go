package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"
	"howett.net/plist"
)

// Load reads a manifest file and decodes it by extension: .plist files are
// parsed as property lists (XML or binary), .yaml/.yml as YAML.
func Load(path string) (*Info, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".plist":
		return decodePlist(data, path)
	case ".yaml", ".yml":
		return decodeYAML(data, path)
	default:
		return nil, fmt.Errorf("unsupported manifest format %q (want .plist or .yaml)", filepath.Ext(path))
	}
}

// LoadBundle reads the info.plist manifest of a .roboFontExt bundle directory.
func LoadBundle(bundleDir string) (*Info, error) {
	return Load(filepath.Join(bundleDir, InfoPlistName))
}

// WritePlist serializes info as an XML property list to path. The
// timeStamp value is forced into plain decimal notation: the plist
// encoder renders large floats as 1.7e+09, but RoboFont manifests carry
// the full epoch number (1682020133.31803).
func WritePlist(path string, info *Info) error {
	data, err := plist.MarshalIndent(info, plist.XMLFormat, "\t")
	if err != nil {
		return fmt.Errorf("encoding plist: %w", err)
	}
	data = formatTimeStamp(data, info.TimeStamp)
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing manifest %s: %w", path, err)
	}
	return nil
}

// formatTimeStamp rewrites the marshaled timeStamp number without an
// exponent. Data without a timeStamp key is returned unchanged.
func formatTimeStamp(data []byte, stamp float64) []byte {
	m := stampRe.FindSubmatchIndex(data)
	if m == nil {
		return data
	}
	value := strconv.FormatFloat(stamp, 'f', -1, 64)
	var out bytes.Buffer
	out.Grow(len(data) + len(value))
	out.Write(data[:m[3]])
	out.WriteString(value)
	out.Write(data[m[6]:])
	return out.Bytes()
}

func decodePlist(data []byte, path string) (*Info, error) {
	var info Info
	if _, err := plist.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &info, nil
}

func decodeYAML(data []byte, path string) (*Info, error) {
	var info Info
	if err := yaml.Unmarshal(data, &info); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &info, nil
}

// readFile reads the contents of a file at the given path.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}
	return data, nil
}
