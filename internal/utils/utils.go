// Package utils provides filename helpers and UUID generation.
//
// Functions:
//   - IsPDF: Reports whether a filename has a .pdf extension (any case).
//   - HasMarkerPrefix: Reports whether a filename starts with a marker,
//     comparing NFC-normalized forms.
//   - GenerateUUID: Returns a new UUID string.
//
// Used throughout the backend for file selection and unique IDs.
package utils

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

func IsPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// HasMarkerPrefix compares NFC forms so that names written by filesystems
// that store decomposed Unicode (macOS) still match a precomposed marker.
func HasMarkerPrefix(name, marker string) bool {
	return strings.HasPrefix(norm.NFC.String(name), norm.NFC.String(marker))
}

func GenerateUUID() string {
	return uuid.New().String()
}
