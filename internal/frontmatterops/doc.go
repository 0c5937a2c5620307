// Package frontmatterops adds identity fields to the front matter of
// generated pages: a uid that is stable for an anchor across runs and a
// content fingerprint that changes whenever the page does.
package frontmatterops
