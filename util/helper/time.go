package helper_util

import (
	"fmt"
	"time"
)

// ParseNullableTime accepts the shapes a timestamp property comes back in from
// the graph store or a JSON payload. nil stays nil.
func ParseNullableTime(value interface{}) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}

	switch v := value.(type) {
	case time.Time:
		return &v, nil
	case string:
		if v == "" {
			return nil, nil
		}
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return nil, err
		}
		return &t, nil
	case int64:
		t := time.UnixMilli(v).UTC()
		return &t, nil
	default:
		return nil, fmt.Errorf("unsupported type for time parsing: %T", value)
	}
}
