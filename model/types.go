package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const dateLayout = "2006-01-02"

// Timestamp layouts seen in remote API payloads. The backend is not
// consistent about them, so decoding tries each in order.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	dateLayout,
}

// Date is a calendar day on the wire (tgl_pinjam, tgl_pengembalian,
// tgl_lahir). The zero value marshals to null and means "absent".
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(dateLayout))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s, ok := unquote(data)
	if !ok || s == "" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t
			return nil
		}
	}
	return errors.Errorf("invalid date %q", s)
}

// Timestamp is a createdAt/updatedAt value. Absent or unparseable values
// decode to the zero time rather than failing the whole payload, which is
// what the recency sort fallback chain relies on.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	s, ok := unquote(data)
	if !ok || s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	t.Time = time.Time{}
	return nil
}

// Amount is a non-negative money value in whole rupiah. The remote API
// sometimes sends it as a JSON number and sometimes as a quoted string
// ("7500"); it always accepts a string, so that is what we send.
type Amount int64

func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatInt(int64(a), 10))
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	s, quoted := unquote(data)
	if !quoted {
		s = string(bytes.TrimSpace(data))
	}
	if s == "" || s == "null" {
		*a = 0
		return nil
	}
	// Some rows carry decimals ("1500.00").
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return errors.Wrapf(err, "invalid amount %q", s)
	}
	*a = Amount(f)
	return nil
}

func unquote(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err == nil {
			return s, true
		}
	}
	if string(data) == "null" {
		return "", true
	}
	return string(data), false
}
