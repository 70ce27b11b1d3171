package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// The admin forms post raw input values, so numbers and dates may arrive as
// strings. An empty string or null leaves the field unset.

const dateOnly = "2006-01-02"

// formText unquotes a JSON string or returns a bare literal; ok is false for
// null and "".
func formText(b []byte) (string, bool, error) {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		return "", false, nil
	}
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", false, err
		}
		raw = strings.TrimSpace(s)
	}
	return raw, raw != "", nil
}

type formFloat struct {
	value float64
	set   bool
}

func (f *formFloat) UnmarshalJSON(b []byte) error {
	raw, ok, err := formText(b)
	if err != nil || !ok {
		*f = formFloat{}
		return err
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid number %q", raw)
	}
	*f = formFloat{value: v, set: true}
	return nil
}

func (f formFloat) ptr() *float64 {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

type formInt struct {
	value int
	set   bool
}

func (f *formInt) UnmarshalJSON(b []byte) error {
	raw, ok, err := formText(b)
	if err != nil || !ok {
		*f = formInt{}
		return err
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return fmt.Errorf("invalid integer %q", raw)
	}
	*f = formInt{value: int(v), set: true}
	return nil
}

func (f formInt) ptr() *int {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

// formDate takes a date input value (YYYY-MM-DD, midnight UTC) or RFC 3339.
type formDate struct {
	value time.Time
	set   bool
}

var errInvalidDate = errors.New("invalid date")

func (f *formDate) UnmarshalJSON(b []byte) error {
	raw, ok, err := formText(b)
	if err != nil || !ok {
		*f = formDate{}
		return err
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		if t, err = time.Parse(dateOnly, raw); err != nil {
			return errInvalidDate
		}
	}
	*f = formDate{value: t, set: true}
	return nil
}

func (f formDate) ptr() *time.Time {
	if !f.set {
		return nil
	}
	v := f.value
	return &v
}

// optionalID treats a blank select value as no selection.
func optionalID(id *string) *string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	v := strings.TrimSpace(*id)
	return &v
}
