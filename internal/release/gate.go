package release

import (
	"regexp"
	"strings"
)

// tagPattern matches the version tags that trigger a release: vX.Y.Z with
// purely numeric components. Branch pushes and loosely-formed tags never
// release.
var tagPattern = regexp.MustCompile(`^v\d+\.\d+\.\d+$`)

// TagFromRef extracts the release tag from a triggering ref. It accepts a
// fully qualified tag ref ("refs/tags/v1.2.3") or a bare tag name
// ("v1.2.3"). The boolean is false for branch refs and for tags that do
// not match the release pattern.
func TagFromRef(ref string) (string, bool) {
	if strings.HasPrefix(ref, "refs/heads/") || strings.HasPrefix(ref, "refs/pull/") {
		return "", false
	}
	tag := strings.TrimPrefix(ref, "refs/tags/")
	if !tagPattern.MatchString(tag) {
		return "", false
	}
	return tag, true
}

// IsReleaseRef reports whether ref should trigger the release pipeline.
func IsReleaseRef(ref string) bool {
	_, ok := TagFromRef(ref)
	return ok
}
