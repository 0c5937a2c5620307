package frontmatterops

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UIDField is the front matter key holding the page uid.
const UIDField = "uid"

// Namespace scopes page uids.
var Namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://git.home.luguber.info/inful/apimd"))

// StableUID derives a name-based UUID from an anchor ID. The same anchor
// always yields the same uid.
func StableUID(anchorID string) string {
	return uuid.NewSHA1(Namespace, []byte(anchorID)).String()
}

// EnsureUID sets the uid of anchorID when fields has none. An existing uid
// is returned unchanged.
func EnsureUID(fields map[string]any, anchorID string) (uid string, changed bool, err error) {
	if fields == nil {
		return "", false, errors.New("fields map is nil")
	}
	if v, ok := fields[UIDField]; ok && v != nil {
		return strings.TrimSpace(fmt.Sprint(v)), false, nil
	}
	if strings.TrimSpace(anchorID) == "" {
		return "", false, errors.New("anchor ID is empty")
	}
	uid = StableUID(anchorID)
	fields[UIDField] = uid
	return uid, true, nil
}
