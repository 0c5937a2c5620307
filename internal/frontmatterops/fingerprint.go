package frontmatterops

import (
	"errors"
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/apimd/internal/frontmatter"
)

// ComputeFingerprint hashes a page. The fingerprint and uid fields are
// excluded; the remaining fields are serialized with sorted keys and LF
// newlines, and a single trailing newline is dropped before hashing.
func ComputeFingerprint(fields map[string]any, body []byte) (string, error) {
	if fields == nil {
		return "", errors.New("fields map is nil")
	}

	hashed := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == mdfp.FingerprintField || k == UIDField {
			continue
		}
		hashed[k] = v
	}

	fm := ""
	if len(hashed) > 0 {
		raw, err := frontmatter.SerializeYAML(hashed, "\n")
		if err != nil {
			return "", err
		}
		fm = strings.TrimSuffix(string(raw), "\n")
	}
	return mdfp.CalculateFingerprintFromParts(fm, string(body)), nil
}

// UpsertFingerprint stores the fingerprint of the page in fields and
// reports whether it differs from the one already there.
func UpsertFingerprint(fields map[string]any, body []byte) (fingerprint string, changed bool, err error) {
	fingerprint, err = ComputeFingerprint(fields, body)
	if err != nil {
		return "", false, err
	}
	if existing, ok := fields[mdfp.FingerprintField].(string); !ok || existing != fingerprint {
		fields[mdfp.FingerprintField] = fingerprint
		changed = true
	}
	return fingerprint, changed, nil
}

// Fingerprint returns the stored fingerprint, if any.
func Fingerprint(fields map[string]any) string {
	s, _ := fields[mdfp.FingerprintField].(string)
	return s
}
