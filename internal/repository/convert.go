package repository

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"coopcycle-service/internal/models"

	"github.com/jackc/pgx/v5/pgtype"
)

// timestamp layouts accepted for textual date-time columns
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999-07",
	"2006-01-02 15:04:05.999999999",
}

// coerce converts a raw driver value into the Go type the column setter
// expects. Every failure wraps ErrConversion.
func coerce(kind Kind, enum []string, raw any) (any, error) {
	switch kind {
	case KindID, KindRef:
		return toID(raw)
	case KindText:
		return toText(raw)
	case KindFloat:
		return toFloat(raw)
	case KindTime:
		return toTime(raw)
	case KindEnum:
		s, err := toText(raw)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(enum, s) {
			return nil, fmt.Errorf("%w: unknown enum value %q", ErrConversion, s)
		}
		return s, nil
	}
	return nil, fmt.Errorf("%w: unsupported column kind %s", ErrConversion, kind)
}

func toID(raw any) (models.ID, error) {
	switch v := raw.(type) {
	case int64:
		return models.ID(v), nil
	case int32:
		return models.ID(v), nil
	case int16:
		return models.ID(v), nil
	case int:
		return models.ID(v), nil
	case string:
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: id %q: %v", ErrConversion, v, err)
		}
		return models.ID(id), nil
	}
	return 0, fmt.Errorf("%w: cannot read id from %T", ErrConversion, raw)
}

func toText(raw any) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	}
	return "", fmt.Errorf("%w: cannot read text from %T", ErrConversion, raw)
}

func toFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case pgtype.Numeric:
		f, err := v.Float64Value()
		if err != nil || !f.Valid {
			return 0, fmt.Errorf("%w: numeric value not representable as float", ErrConversion)
		}
		return f.Float64, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: number %q: %v", ErrConversion, v, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("%w: cannot read number from %T", ErrConversion, raw)
}

func toTime(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, v); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: timestamp %q", ErrConversion, v)
	}
	return time.Time{}, fmt.Errorf("%w: cannot read timestamp from %T", ErrConversion, raw)
}
