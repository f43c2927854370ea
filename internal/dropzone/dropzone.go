// Package dropzone turns the text a terminal pastes when files are dragged
// onto it into file paths.
//
// Terminals disagree on the format. macOS terminals escape spaces with
// backslashes, GNOME and KDE terminals single-quote each path or send
// file:// URIs one per line, Windows Terminal double-quotes paths. Split
// handles all of these.
package dropzone

import (
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode"
)

// Result is a parsed drop payload.
type Result struct {
	Files   []string // existing regular files, in payload order
	Skipped []string // tokens that were not readable regular files
}

// Empty reports whether the drop carried no usable file.
func (r Result) Empty() bool { return len(r.Files) == 0 }

// Parse splits payload and keeps the tokens that name existing regular files.
// Some terminals paste a path with spaces unquoted, so when no token resolves
// the whole payload and then each line are tried as a single path.
func Parse(payload string) Result {
	var res Result
	for _, tok := range Split(payload) {
		if path, ok := regularFile(tok); ok {
			res.Files = append(res.Files, path)
			continue
		}
		res.Skipped = append(res.Skipped, tok)
	}
	if !res.Empty() {
		return res
	}

	if path, ok := regularFile(strings.TrimSpace(payload)); ok {
		return Result{Files: []string{path}}
	}
	var files []string
	for _, line := range strings.Split(payload, "\n") {
		if path, ok := regularFile(strings.TrimSpace(line)); ok {
			files = append(files, path)
		}
	}
	if len(files) > 0 {
		return Result{Files: files}
	}
	return res
}

// regularFile normalizes tok and reports whether it names a regular file.
func regularFile(tok string) (string, bool) {
	if tok == "" {
		return "", false
	}
	path := Normalize(tok)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return "", false
	}
	return path, true
}

// Split breaks a payload into path tokens without touching the filesystem.
func Split(payload string) []string {
	var (
		tokens  []string
		cur     strings.Builder
		inToken bool
		quote   rune
	)
	flush := func() {
		if inToken {
			tokens = append(tokens, cur.String())
		}
		cur.Reset()
		inToken = false
	}

	runes := []rune(payload)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case r == '\\' && i+1 < len(runes) && isEscapable(runes[i+1]):
			i++
			cur.WriteRune(runes[i])
			inToken = true
		case unicode.IsSpace(r):
			flush()
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}
	flush()
	return tokens
}

// isEscapable reports whether a backslash before r is a shell escape rather
// than a Windows path separator.
func isEscapable(r rune) bool {
	if r == '\\' {
		return runtime.GOOS != "windows"
	}
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-'
}

// Normalize converts file URIs to paths and expands a leading ~/.
func Normalize(tok string) string {
	if strings.HasPrefix(tok, "file://") {
		if u, err := url.Parse(tok); err == nil && u.Path != "" {
			tok = u.Path
			if runtime.GOOS == "windows" {
				tok = strings.TrimPrefix(tok, "/")
			}
		}
	}
	if strings.HasPrefix(tok, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			tok = filepath.Join(home, tok[2:])
		}
	}
	return filepath.Clean(tok)
}
