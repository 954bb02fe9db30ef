package manifest

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
)

// binaryPlistMagic is the header of a binary property list. In-place
// rewriting only works on the XML form.
var binaryPlistMagic = []byte("bplist00")

var (
	versionRe = regexp.MustCompile(`(<key>version</key>\s*<string>)([^<]*)(</string>)`)
	stampRe   = regexp.MustCompile(`(<key>timeStamp</key>\s*<(?:real|integer)>)([^<]*)(</(?:real|integer)>)`)
)

// RewriteVersionAndStamp replaces the version string and the timeStamp
// number inside an XML plist by targeted text substitution, leaving every
// other byte of the manifest untouched. This keeps diffs minimal when a
// bump is committed. Exactly one occurrence of each key must be present.
func RewriteVersionAndStamp(data []byte, version string, stamp int64) ([]byte, error) {
	if bytes.HasPrefix(data, binaryPlistMagic) {
		return nil, fmt.Errorf("manifest is a binary plist; convert it to XML before bumping")
	}

	out, err := rewriteOne(data, versionRe, "version", version)
	if err != nil {
		return nil, err
	}
	out, err = rewriteOne(out, stampRe, "timeStamp", strconv.FormatInt(stamp, 10))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Version extracts the version string from XML plist data without a full
// decode, using the same pattern the rewrite applies.
func Version(data []byte) (string, error) {
	m := versionRe.FindSubmatch(data)
	if m == nil {
		return "", fmt.Errorf("manifest has no version key")
	}
	return string(m[2]), nil
}

func rewriteOne(data []byte, re *regexp.Regexp, key, value string) ([]byte, error) {
	matches := re.FindAllSubmatchIndex(data, -1)
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("manifest has no %s key", key)
	case 1:
	default:
		return nil, fmt.Errorf("manifest has %d %s keys, want exactly 1", len(matches), key)
	}

	m := matches[0]
	var out bytes.Buffer
	out.Grow(len(data) + len(value))
	out.Write(data[:m[3]]) // everything up to and including the opening tag
	out.WriteString(value) // new value
	out.Write(data[m[6]:]) // closing tag and the rest
	return out.Bytes(), nil
}
