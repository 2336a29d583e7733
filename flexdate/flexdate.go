// Package flexdate provides a date value that may arrive from the database
// either as a BSON datetime or as a pre-formatted string. Older documents in
// the portal store dates both ways, so the ambiguity is resolved once here,
// at the decoding boundary, instead of ad hoc at every render site.
package flexdate

import (
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/x/bsonx/bsoncore"
)

const (
	DayPrecision    = "2006-01-02"
	MinutePrecision = "2006-01-02 15:04"
)

// Date holds exactly one of a parsed time or a pre-formatted string.
type Date struct {
	Time *time.Time
	Text string
}

func FromTime(t time.Time) Date {
	return Date{Time: &t}
}

func FromString(s string) Date {
	return Date{Text: s}
}

func (d Date) IsZero() bool {
	return d.Time == nil && d.Text == ""
}

// FormatOr renders the structured arm using layout, passes pre-formatted text
// through unchanged, and returns fallback when neither arm is set.
func (d Date) FormatOr(layout, fallback string) string {
	if d.Time != nil {
		return d.Time.Format(layout)
	}
	if d.Text != "" {
		return d.Text
	}
	return fallback
}

func (d Date) MarshalBSONValue() (bsontype.Type, []byte, error) {
	switch {
	case d.Time != nil:
		return bson.MarshalValue(*d.Time)
	case d.Text != "":
		return bson.MarshalValue(d.Text)
	}
	return bson.TypeNull, nil, nil
}

func (d *Date) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	switch t {
	case bson.TypeDateTime:
		millis, _, ok := bsoncore.ReadDateTime(data)
		if !ok {
			return fmt.Errorf("flexdate: invalid datetime value")
		}
		parsed := time.UnixMilli(millis).UTC()
		*d = Date{Time: &parsed}
	case bson.TypeString:
		s, _, ok := bsoncore.ReadString(data)
		if !ok {
			return fmt.Errorf("flexdate: invalid string value")
		}
		*d = Date{Text: s}
	case bson.TypeNull, bson.TypeUndefined:
		*d = Date{}
	default:
		return fmt.Errorf("flexdate: cannot decode %s as a date", t)
	}
	return nil
}

func (d Date) MarshalJSON() ([]byte, error) {
	switch {
	case d.Time != nil:
		return json.Marshal(d.Time.Format(time.RFC3339))
	case d.Text != "":
		return json.Marshal(d.Text)
	}
	return []byte("null"), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*d = Date{}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if parsed, err := time.Parse(time.RFC3339, s); err == nil {
		utc := parsed.UTC()
		*d = Date{Time: &utc}
		return nil
	}
	*d = Date{Text: s}
	return nil
}
