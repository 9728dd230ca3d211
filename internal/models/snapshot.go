package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pourlog/pourlog/internal/common"
)

// wireRecord is the canonical snapshot shape: camelCase field names,
// integer timestamps, string photo reference.
type wireRecord struct {
	ID       string `json:"id"`
	DateTime int64  `json:"dateTime"`
	PhotoURL string `json:"photoUrl,omitempty"`
	Rating   int    `json:"rating"`
	Notes    string `json:"notes,omitempty"`
	Pattern  string `json:"pattern,omitempty"`
	Blurhash string `json:"blurhash,omitempty"`
}

// EncodeSnapshot serializes records into the canonical export form.
func EncodeSnapshot(records []PourRecord) ([]byte, error) {
	wire := make([]wireRecord, 0, len(records))
	for _, r := range records {
		wire = append(wire, wireRecord{
			ID:       r.ID,
			DateTime: r.DateTime,
			PhotoURL: r.Photo.String(),
			Rating:   r.Rating,
			Notes:    r.Notes,
			Pattern:  r.Pattern,
			Blurhash: r.Blurhash,
		})
	}
	return json.Marshal(wire)
}

// flexString decodes a JSON string or number into a string. Older exports
// carried numeric ids.
type flexString string

func (s *flexString) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = flexString(v)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = flexString(n.String())
	return nil
}

// flexInt64 decodes a JSON number or a numeric string into int64. Older
// exports carried string timestamps, occasionally with a fractional part.
type flexInt64 int64

func (v *flexInt64) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*v = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*v = flexInt64(int64(f))
	return nil
}

// snapshotRecord accepts both the canonical camelCase fields and the legacy
// snake_case spellings produced by older exports.
type snapshotRecord struct {
	ID             flexString `json:"id"`
	DateTime       flexInt64  `json:"dateTime"`
	DateTimeLegacy flexInt64  `json:"date_time"`
	PhotoURL       string     `json:"photoUrl"`
	PhotoURLLegacy string     `json:"photo_url"`
	Rating         flexInt64  `json:"rating"`
	Notes          string     `json:"notes"`
	Pattern        string     `json:"pattern"`
	Blurhash       string     `json:"blurhash"`
}

// DecodeSnapshot parses a snapshot payload and normalizes it to the canonical
// record set. It is the single seam where legacy field names and string-typed
// scalars are handled. A payload that does not parse as a sequence of records
// fails with common.ErrValidation.
func DecodeSnapshot(data []byte) ([]PourRecord, error) {
	var wire []snapshotRecord
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("%w: snapshot payload is not a record sequence: %v", common.ErrValidation, err)
	}

	records := make([]PourRecord, 0, len(wire))
	for i, w := range wire {
		if w.ID == "" {
			return nil, fmt.Errorf("%w: snapshot record %d has no id", common.ErrValidation, i)
		}

		dateTime := int64(w.DateTime)
		if dateTime == 0 {
			dateTime = int64(w.DateTimeLegacy)
		}

		photoURL := w.PhotoURL
		if photoURL == "" {
			photoURL = w.PhotoURLLegacy
		}

		records = append(records, PourRecord{
			ID:       string(w.ID),
			DateTime: dateTime,
			Photo:    ParsePhotoRef(photoURL),
			Rating:   int(w.Rating),
			Notes:    w.Notes,
			Pattern:  w.Pattern,
			Blurhash: w.Blurhash,
		})
	}
	return records, nil
}
