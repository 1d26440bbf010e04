// Package langdetect classifies files for review input collection. It tags
// each file with its programming language and filters out content that is
// pointless to send to a reviewer model (binaries, vendored or generated
// code, images).
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// langText is the fallback tag when detection fails.
const langText = "text"

// Detect returns the language tag for a file, lowercased for prompt and
// issue metadata. Falls back to "text" when enry cannot classify.
func Detect(path string, content []byte) string {
	lang := enry.GetLanguage(path, content)
	if lang == "" {
		return langText
	}
	return strings.ToLower(lang)
}

// Reviewable reports whether a file is worth sending for review, with the
// reason it was rejected for logging.
func Reviewable(path string, content []byte) (bool, string) {
	switch {
	case enry.IsBinary(content):
		return false, "binary"
	case enry.IsVendor(path):
		return false, "vendored"
	case enry.IsGenerated(path, content):
		return false, "generated"
	case enry.IsImage(path):
		return false, "image"
	case enry.IsDotFile(path):
		return false, "dotfile"
	default:
		return true, ""
	}
}
