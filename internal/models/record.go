// Package models defines the pour record, the tagged photo reference and the
// snapshot wire format used for export, import and remote backup.
package models

// PourRecord is the sole persisted entity: one logged espresso pour.
type PourRecord struct {
	// ID is globally unique, assigned client-side at creation, immutable.
	ID string

	// DateTime is when the pour occurred, in milliseconds since epoch.
	// User-editable, so it is not necessarily the creation time and must
	// never drive storage order.
	DateTime int64

	// Photo references the pour photo. Local refs point into the managed
	// photo directory; remote refs are public URLs after upload.
	Photo PhotoRef

	// Rating is 1-5 inclusive.
	Rating int

	// Notes is optional free text.
	Notes string

	// Pattern is the latte-art pattern name, one of KnownPatterns or free text.
	Pattern string

	// Blurhash is a compact placeholder encoding of the photo thumbnail,
	// set by the derivation pipeline for locally sourced photos.
	Blurhash string
}

// KnownPatterns is the fixed vocabulary offered for the pattern field.
// Free text is also accepted.
var KnownPatterns = []string{
	"Heart",
	"Tulip",
	"Rosetta",
	"Swan",
	"Winged Tulip",
	"None",
}
