package models

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

var filenameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	"\x00", "",
)

// SanitizeFilename makes a scraped title safe to use as a single path element.
func SanitizeFilename(name string) string {
	name = norm.NFC.String(name)
	name = filenameReplacer.Replace(name)
	name = strings.TrimSpace(name)
	switch name {
	case "", ".", "..":
		return "_"
	}
	return name
}
