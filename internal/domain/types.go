package domain

import (
	"database/sql/driver"
	"fmt"

	"github.com/goccy/go-json"
)

// StringSlice is a string list stored as a JSON array column.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSlice) Scan(value interface{}) error {
	data, err := jsonBytes(value)
	if err != nil || data == nil {
		*s = nil
		return err
	}
	return json.Unmarshal(data, s)
}

// jsonBytes normalizes a JSON column value, returning nil for NULL / empty.
func jsonBytes(value interface{}) ([]byte, error) {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return nil, fmt.Errorf("unsupported JSON column type %T", value)
	}

	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	return data, nil
}
