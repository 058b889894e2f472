package cmdy

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// Kind is the kind of value a value flag accepts.
type Kind string

const (
	KindString   Kind = "string"
	KindNumber   Kind = "number"
	KindBoolean  Kind = "boolean"
	KindTime     Kind = "time"
	KindDuration Kind = "duration"
)

func (k Kind) accepts(value string) bool {
	switch k {
	case KindString:
		return true
	case KindNumber:
		return isNumber(value)
	case KindBoolean:
		_, err := strconv.ParseBool(value)
		return err == nil
	case KindTime:
		_, err := dateparse.ParseAny(value)
		return err == nil
	case KindDuration:
		_, err := time.ParseDuration(value)
		return err == nil
	}
	return false
}

// isNumber accepts any number strconv can read, including ones too large for a float64. NaN and
// infinities are not numbers.
func isNumber(value string) bool {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		var nerr *strconv.NumError
		return errors.As(err, &nerr) && errors.Is(nerr.Err, strconv.ErrRange)
	}
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func (k Kind) known() bool {
	switch k {
	case KindString, KindNumber, KindBoolean, KindTime, KindDuration:
		return true
	}
	return false
}

func acceptsAny(kinds []Kind, value string) bool {
	for _, k := range kinds {
		if k.accepts(value) {
			return true
		}
	}
	return false
}

func joinKinds(kinds []Kind) string {
	s := make([]string, len(kinds))
	for i, k := range kinds {
		s[i] = string(k)
	}
	return strings.Join(s, " | ")
}

// formatDefault returns the string form of a primitive default. ok is false for nil and for any
// non-primitive value.
func formatDefault(v any) (s string, ok bool) {
	switch d := v.(type) {
	case string:
		return d, true
	case bool:
		return strconv.FormatBool(d), true
	case int:
		return strconv.Itoa(d), true
	case int8:
		return strconv.FormatInt(int64(d), 10), true
	case int16:
		return strconv.FormatInt(int64(d), 10), true
	case int32:
		return strconv.FormatInt(int64(d), 10), true
	case int64:
		return strconv.FormatInt(d, 10), true
	case uint:
		return strconv.FormatUint(uint64(d), 10), true
	case uint8:
		return strconv.FormatUint(uint64(d), 10), true
	case uint16:
		return strconv.FormatUint(uint64(d), 10), true
	case uint32:
		return strconv.FormatUint(uint64(d), 10), true
	case uint64:
		return strconv.FormatUint(d, 10), true
	case float32:
		return strconv.FormatFloat(float64(d), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(d, 'f', -1, 64), true
	}
	return "", false
}
