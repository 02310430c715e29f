package sqlutil

import (
	"fmt"
	"time"
)

var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// Time returns a scan destination for a timestamp column. It accepts a
// time.Time from drivers that decode the column type and the text forms
// SQLite stores otherwise. The result is always UTC.
func Time(dst *time.Time) *TimeScanner {
	return &TimeScanner{dst: dst}
}

// TimeScanner implements sql.Scanner for timestamps.
type TimeScanner struct {
	dst *time.Time
}

func (s *TimeScanner) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*s.dst = v.UTC()
		return nil
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	case nil:
		return fmt.Errorf("timestamp is NULL")
	default:
		return fmt.Errorf("cannot scan %T into a timestamp", src)
	}
}

func (s *TimeScanner) parse(text string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			*s.dst = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", text)
}
