package util

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
	windowsDeviceNames  = map[string]bool{
		"CON": true, "AUX": true, "COM1": true, "COM2": true, "COM3": true, "COM4": true,
		"LPT1": true, "LPT2": true, "LPT3": true, "PRN": true, "NUL": true,
	}
)

// SecureFilename reduces an uploaded filename to a flat ASCII name safe to join onto a directory.
// Returns "" when nothing usable is left.
func SecureFilename(filename string) string {
	decomposed := norm.NFKD.String(filename)
	ascii := strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, decomposed)

	for _, sep := range []string{"/", "\\"} {
		ascii = strings.ReplaceAll(ascii, sep, " ")
	}
	ascii = strings.Join(strings.Fields(ascii), "_")
	ascii = unsafeFilenameChars.ReplaceAllString(ascii, "")
	ascii = strings.Trim(ascii, "._")

	if ascii != "" && windowsDeviceNames[strings.ToUpper(strings.Split(ascii, ".")[0])] {
		ascii = "_" + ascii
	}
	return ascii
}

// CertificateFileName returns "<name>_certificate.pdf". Path separators and control characters
// are replaced so the result stays inside the output directory; the rest of the name is kept.
func CertificateFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || unicode.IsControl(r) {
			return '_'
		}
		return r
	}, strings.TrimSpace(name))

	if cleaned == "." || cleaned == ".." {
		cleaned = strings.Repeat("_", len(cleaned))
	}
	return cleaned + "_certificate.pdf"
}

// Extension returns the lower-cased extension of filename without the dot.
func Extension(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}
