package numbering

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kpalka/fakturaapp/errs"
)

var unsafeRun = regexp.MustCompile(`[^A-Za-z0-9._-]+`)
var dashRun = regexp.MustCompile(`-+`)

const maxFilenameBytes = 255

// ToFilename implements the invoice-number-to-filename transform:
//  1. replace every '/' or '\' with '-'
//  2. replace every run of characters outside [A-Za-z0-9._-] with a single '-'
//  3. collapse consecutive '-'; strip leading/trailing '._-'
//  4. append the given extension (without a leading dot, e.g. "xml")
//
// An empty result or one longer than 255 bytes returns an
// INVALID_FILENAME-shaped *errs.Error. The absolute-path, ".." and
// containment checks are done by ResolveInDir.
func ToFilename(invoiceNumber, ext string) (string, error) {
	s := strings.NewReplacer("/", "-", "\\", "-").Replace(invoiceNumber)
	s = unsafeRun.ReplaceAllString(s, "-")
	s = dashRun.ReplaceAllString(s, "-")
	s = strings.Trim(s, "._-")

	if s == "" {
		return "", invalidFilename("empty filename derived from invoice number %q", invoiceNumber)
	}

	name := s + "." + ext
	if len(name) > maxFilenameBytes {
		return "", invalidFilename("filename %q exceeds %d bytes", name, maxFilenameBytes)
	}
	return name, nil
}

// ResolveInDir validates that filename, joined with dir, stays inside dir:
// no absolute path, no "..", and the cleaned result must remain inside
// dir. Returns the absolute path on success.
func ResolveInDir(dir, filename string) (string, error) {
	if filepath.IsAbs(filename) {
		return "", invalidFilename("filename %q must not be absolute", filename)
	}
	if strings.Contains(filename, "..") {
		return "", invalidFilename("filename %q must not contain \"..\"", filename)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", invalidFilename("cannot resolve output directory %q: %v", dir, err)
	}
	full := filepath.Join(absDir, filename)
	if !strings.HasPrefix(full, absDir+string(filepath.Separator)) {
		return "", invalidFilename("filename %q escapes output directory %q", filename, dir)
	}
	return full, nil
}

// invalidFilename builds the VALIDATION-kind error the caller sees as
// INVALID_FILENAME.
func invalidFilename(format string, args ...any) *errs.Error {
	e := errs.New(errs.Validation, "INVALID_FILENAME: "+format, args...)
	e.Issues = []errs.Issue{{Field: "filename", Message: e.Message}}
	return e
}
