package util

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LocalDate is a calendar date in UK local time, used for content review
// dates.
type LocalDate struct {
	time.Time
}

const dateLayout = "2006-01-02"

var londonLocation *time.Location

func init() {
	var err error
	londonLocation, err = time.LoadLocation("Europe/London")
	if err != nil {
		londonLocation = time.UTC
	}
}

func ParseLocalDate(s string) (LocalDate, error) {
	t, err := time.ParseInLocation(dateLayout, strings.TrimSpace(s), londonLocation)
	if err != nil {
		return LocalDate{}, err
	}
	return LocalDate{Time: t}, nil
}

func (d LocalDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.In(londonLocation).Format(dateLayout)
}

func (d *LocalDate) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	parsed, err := ParseLocalDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d LocalDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`null`), nil
	}
	return []byte(`"` + d.String() + `"`), nil
}

func (d *LocalDate) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: date must be a scalar", value.Line)
	}
	if value.Value == "" {
		return nil
	}
	parsed, err := ParseLocalDate(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*d = parsed
	return nil
}

func (d LocalDate) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *LocalDate) Scan(value interface{}) error {
	if value == nil {
		d.Time = time.Time{}
		return nil
	}

	switch v := value.(type) {
	case time.Time:
		d.Time = v
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("cannot scan type %T into LocalDate", value)
	}
}

func (d *LocalDate) scanString(s string) error {
	if len(s) > len(dateLayout) {
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			d.Time = t
			return nil
		}
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseLocalDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
