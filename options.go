package inferschema

// Default layouts for textual date and time examples, equivalent to the
// "%Y-%m-%d", "%Y-%m-%d %H:%M:%S.%f %z" and "%H:%M:%S.%f %z" patterns.
const (
	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04:05.000000 -0700"
	TimeFormat     = "15:04:05.000000 -0700"
)

// Formats holds the Go layouts used to render and parse date, datetime and
// time-of-day values. Empty fields fall back to the defaults.
type Formats struct {
	Date     string
	DateTime string
	Time     string
}

// DefaultFormats returns the default layouts.
func DefaultFormats() Formats {
	return Formats{Date: DateFormat, DateTime: DateTimeFormat, Time: TimeFormat}
}

func (f Formats) withDefaults() Formats {
	d := DefaultFormats()
	if f.Date == "" {
		f.Date = d.Date
	}
	if f.DateTime == "" {
		f.DateTime = d.DateTime
	}
	if f.Time == "" {
		f.Time = d.Time
	}
	return f
}

// Option configures a Sample.
type Option func(*options)

type options struct {
	formats        Formats
	structDecoding bool
}

// WithFormats overrides the date, datetime and time layouts.
func WithFormats(f Formats) Option {
	return func(o *options) { o.formats = f }
}

// WithStructDecoding makes Deserialize decode a JSON object into a fresh value
// of the sample's struct type (json tags apply) when the sample is a struct or
// a pointer to one.
func WithStructDecoding() Option {
	return func(o *options) { o.structDecoding = true }
}
