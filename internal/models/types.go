package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringArray 以 JSON 文本存储的字符串数组（图片、标签）
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal(s)
	return string(b), err
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	return scanJSON(value, s, func() { *s = StringArray{} })
}

// OptionValue 商品可选项的一个取值
type OptionValue struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Price       Money  `json:"price"`
	Description string `json:"description,omitempty"`
}

// OptionGroups 商品选项组，key 为选项组名（如 adapter/height）
type OptionGroups map[string][]OptionValue

// Value 实现 driver.Valuer 接口
func (o OptionGroups) Value() (driver.Value, error) {
	if o == nil {
		return "{}", nil
	}
	b, err := json.Marshal(o)
	return string(b), err
}

// Scan 实现 sql.Scanner 接口
func (o *OptionGroups) Scan(value interface{}) error {
	return scanJSON(value, o, func() { *o = OptionGroups{} })
}

// StringMap 字符串键值（规格参数）
type StringMap map[string]string

// Value 实现 driver.Valuer 接口
func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	return string(b), err
}

// Scan 实现 sql.Scanner 接口
func (m *StringMap) Scan(value interface{}) error {
	return scanJSON(value, m, func() { *m = StringMap{} })
}

func scanJSON(value interface{}, dest interface{}, empty func()) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		empty()
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported json column type %T", value)
	}
	if len(raw) == 0 {
		empty()
		return nil
	}
	return json.Unmarshal(raw, dest)
}
