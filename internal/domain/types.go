package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// StringList is stored as a jsonb array. Scanning normalizes legacy rows that
// hold a bare scalar instead of an array, and NULL becomes an empty list.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal([]string(l))
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err == nil {
		*l = items
		return nil
	}

	// scalar value: wrap it
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		*l = StringList{single}
		return nil
	}
	*l = StringList{string(raw)}
	return nil
}

// JSONMap is a jsonb object column.
type JSONMap map[string]interface{}

func (m JSONMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(map[string]interface{}(m))
}

func (m *JSONMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("cannot scan non-bytes into JSONMap")
	}
	return json.Unmarshal(raw, (*map[string]interface{})(m))
}
