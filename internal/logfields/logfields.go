package logfields

import "log/slog"

// Canonical log field names shared by every package.
const (
	KeyAnchor     = "anchor"
	KeyKind       = "kind"
	KeyItem       = "item"
	KeyPage       = "page"
	KeyPath       = "path"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyCount      = "count"
	KeyReference  = "reference"
	KeyNodeKind   = "node_kind"
	KeyResult     = "result"
	KeyError      = "error"
)

// Anchor is the anchor ID of a page.
func Anchor(id string) slog.Attr { return slog.String(KeyAnchor, id) }

// Kind is an API item kind.
func Kind(k string) slog.Attr { return slog.String(KeyKind, k) }

// Item is an item's display or scoped name.
func Item(name string) slog.Attr { return slog.String(KeyItem, name) }

// Page is a page file name.
func Page(name string) slog.Attr { return slog.String(KeyPage, name) }

// Path is a filesystem path.
func Path(p string) slog.Attr { return slog.String(KeyPath, p) }

// Stage is a pipeline stage name.
func Stage(name string) slog.Attr { return slog.String(KeyStage, name) }

// DurationMS is a duration in milliseconds.
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

// Count is a generic count.
func Count(n int) slog.Attr { return slog.Int(KeyCount, n) }

// Reference is a canonical reference that could not be resolved.
func Reference(ref string) slog.Attr { return slog.String(KeyReference, ref) }

// NodeKind is a docnode kind.
func NodeKind(k string) slog.Attr { return slog.String(KeyNodeKind, k) }

// Result is the outcome of a write.
func Result(r string) slog.Attr { return slog.String(KeyResult, r) }

// Error attaches err; a nil error yields an empty value.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
