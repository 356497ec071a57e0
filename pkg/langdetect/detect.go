// Package langdetect decides which inputs rsfmt can format. It uses go-enry
// to classify files by name, code fences by their info string, and
// unlabelled code blocks by content.
package langdetect

import (
	"bytes"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language is a language rsfmt knows how to handle.
type Language string

const (
	Unknown  Language = ""
	Rust     Language = "rust"
	Markdown Language = "markdown"
)

// enryNames maps go-enry language names to supported languages.
//
//nolint:gochecknoglobals // Read-only lookup table.
var enryNames = map[string]Language{
	"Rust":     Rust,
	"Markdown": Markdown,
}

// classifierCandidates are the languages an unlabelled code block is
// ranked against.
//
//nolint:gochecknoglobals // Read-only lookup table.
var classifierCandidates = []string{
	"Rust", "Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Java", "C", "C++", "TOML", "JSON", "YAML",
}

// ForPath returns the language of a file judged by its name.
func ForPath(path string) Language {
	for _, name := range enry.GetLanguagesByExtension(path, nil, nil) {
		if lang, ok := enryNames[name]; ok {
			return lang
		}
	}
	return Unknown
}

// ForFence returns the language of a Markdown code fence from its info
// string. Attributes after the first word, or after a comma as in
// "rust,ignore", are ignored. An empty info string falls back to Detect.
func ForFence(info string, content []byte) Language {
	word := fenceWord(info)
	if word == "" {
		return Detect(content)
	}

	name, ok := enry.GetLanguageByAlias(word)
	if !ok {
		return Unknown
	}
	return enryNames[name]
}

// Detect guesses the language of unlabelled code. It answers Rust only when
// the content carries Rust markers and the classifier ranks Rust first.
func Detect(content []byte) Language {
	if len(bytes.TrimSpace(content)) == 0 {
		return Unknown
	}

	if name, safe := enry.GetLanguageByShebang(content); safe {
		return enryNames[name]
	}

	if !hasRustMarkers(string(content)) {
		return Unknown
	}

	ranked := enry.GetLanguagesByClassifier("", content, classifierCandidates)
	if len(ranked) > 0 && ranked[0] == "Rust" {
		return Rust
	}
	return Unknown
}

// IsVendored reports whether path lies in a directory of third-party code.
func IsVendored(path string) bool {
	return enry.IsVendor(path)
}

// IsGenerated reports whether a file was produced by a tool. Besides the
// go-enry checks, an "@generated" marker in the first lines counts.
func IsGenerated(path string, content []byte) bool {
	if enry.IsGenerated(path, content) {
		return true
	}

	head := content
	for range generatedMarkerLines {
		i := bytes.IndexByte(head, '\n')
		if i < 0 {
			return bytes.Contains(content, []byte("@generated"))
		}
		head = head[i+1:]
	}
	return bytes.Contains(content[:len(content)-len(head)], []byte("@generated"))
}

const generatedMarkerLines = 5

func fenceWord(info string) string {
	info = strings.TrimSpace(info)
	info = strings.TrimPrefix(info, "{")
	info = strings.TrimPrefix(info, ".")
	if i := strings.IndexAny(info, " \t,{}"); i >= 0 {
		info = info[:i]
	}
	return strings.ToLower(info)
}

// hasRustMarkers checks for constructs that rarely appear outside Rust.
func hasRustMarkers(s string) bool {
	for _, marker := range []string{"fn ", "let mut ", "println!", "impl ", "-> ", "::"} {
		if strings.Contains(s, marker) {
			return true
		}
	}
	return false
}
