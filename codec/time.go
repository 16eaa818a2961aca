package codec

import (
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"github.com/araddon/dateparse"
)

// Date returns a Codec between calendar-date text in the given layout and
// civil.Date. Decoding accepts exactly the layout.
func Date(layout string) Codec[string, civil.Date] { return dateCodec{layout: layout} }

type dateCodec struct{ layout string }

func (c dateCodec) Decode(a string) (civil.Date, error) {
	t, err := time.Parse(c.layout, a)
	if err != nil {
		return civil.Date{}, err
	}
	return civil.DateOf(t), nil
}

func (c dateCodec) Encode(b civil.Date) (string, error) {
	return b.In(time.UTC).Format(c.layout), nil
}

// DateTime returns a Codec between datetime text and time.Time. Decoding tries
// the layout, then RFC3339, then a flexible parser; text without an offset is
// read as UTC.
func DateTime(layout string) Codec[string, time.Time] { return dateTimeCodec{layout: layout} }

type dateTimeCodec struct{ layout string }

func (c dateTimeCodec) Decode(a string) (time.Time, error) {
	return parseDateTime(c.layout, a)
}

func (c dateTimeCodec) Encode(b time.Time) (string, error) {
	return b.Format(c.layout), nil
}

// Clock returns a Codec between time-of-day text and time.Time. Only the clock
// reading and location of the decoded value are meaningful.
func Clock(layout string) Codec[string, time.Time] { return clockCodec{layout: layout} }

type clockCodec struct{ layout string }

// clockLayouts are tried after the configured layout. Fractional seconds are
// accepted after any seconds field.
var clockLayouts = []string{
	"15:04:05Z07:00",
	"15:04:05 Z07:00",
	"15:04:05 -0700",
	"15:04:05-0700",
	"15:04:05",
	"15:04Z07:00",
	"15:04",
	"3:04:05PM",
	"3:04PM",
}

func (c clockCodec) Decode(a string) (time.Time, error) {
	s := strings.TrimSpace(a)
	if t, err := time.Parse(c.layout, s); err == nil {
		return t, nil
	}
	for _, l := range clockLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return parseDateTime(c.layout, s)
}

func (c clockCodec) Encode(b time.Time) (string, error) {
	return b.Format(c.layout), nil
}

func parseDateTime(layout, a string) (time.Time, error) {
	s := strings.TrimSpace(a)
	if t, err := time.Parse(layout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return dateparse.ParseIn(s, time.UTC)
}
