package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonbValue marshals v for storage in a jsonb column.
func jsonbValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("jsonb value: %w", err)
	}
	return b, nil
}

// jsonbScan fills dst from whatever the driver hands back (bytes on
// postgres, text on sqlite). NULL leaves dst at its zero value.
func jsonbScan(dst any, value any) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("jsonb scan: unsupported type %T", value)
	}
}
