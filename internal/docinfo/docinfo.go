// Package docinfo inspects a local document before it is uploaded: size,
// detected content type and, for PDFs, the page count.
package docinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"

	perrors "github.com/zhubert/ragdesk/internal/errors"
	"github.com/zhubert/ragdesk/internal/logger"
)

// PickerTypes is the extension filter offered by the file picker. It is a
// hint only; other files can still be dropped and uploaded.
var PickerTypes = []string{".pdf", ".txt", ".md"}

// Info describes a local document.
type Info struct {
	Name  string
	Path  string
	Size  int64
	MIME  string
	Pages int // zero unless the file is a readable PDF
}

// Inspect stats and sniffs the file at path. A PDF whose structure cannot be
// parsed is still returned, just without a page count.
func Inspect(path string) (Info, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	st, err := os.Stat(abs)
	if err != nil {
		return Info{}, perrors.FileUnreadable(abs, err)
	}
	if !st.Mode().IsRegular() {
		return Info{}, perrors.FileUnreadable(abs, fmt.Errorf("not a regular file"))
	}

	info := Info{
		Name: filepath.Base(abs),
		Path: abs,
		Size: st.Size(),
		MIME: "application/octet-stream",
	}

	mt, err := mimetype.DetectFile(abs)
	if err != nil {
		return Info{}, perrors.FileUnreadable(abs, err)
	}
	info.MIME = contentType(mt, info.Name)

	if mt.Is("application/pdf") {
		info.Pages = pageCount(abs)
	}
	return info, nil
}

// contentType prefers the sniffed type, but trusts a .md extension over a
// generic text/plain guess.
func contentType(mt *mimetype.MIME, name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".md" && mt.Is("text/plain") {
		return "text/markdown"
	}
	return mt.String()
}

func pageCount(path string) (n int) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			logger.WithComponent("docinfo").Warn("pdf parse panic", "path", path, "panic", r)
			n = 0
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		logger.WithComponent("docinfo").Debug("pdf open failed", "path", path, "error", err)
		return 0
	}
	defer f.Close()
	return r.NumPage()
}

// Summary is the one-line description shown next to the file name, e.g.
// "1.2 MB · PDF · 12 pages".
func (i Info) Summary() string {
	parts := []string{humanize.Bytes(uint64(i.Size))}
	if label := i.Kind(); label != "" {
		parts = append(parts, label)
	}
	switch {
	case i.Pages == 1:
		parts = append(parts, "1 page")
	case i.Pages > 1:
		parts = append(parts, fmt.Sprintf("%d pages", i.Pages))
	}
	return strings.Join(parts, " · ")
}

// Kind is a short label for the content type.
func (i Info) Kind() string {
	base, _, _ := strings.Cut(i.MIME, ";")
	switch base {
	case "application/pdf":
		return "PDF"
	case "text/markdown":
		return "Markdown"
	case "text/plain":
		return "Text"
	case "", "application/octet-stream":
		return ""
	default:
		return base
	}
}

// Suggested reports whether the file matches the picker filter.
func (i Info) Suggested() bool {
	ext := strings.ToLower(filepath.Ext(i.Name))
	for _, t := range PickerTypes {
		if ext == t {
			return true
		}
	}
	return false
}
