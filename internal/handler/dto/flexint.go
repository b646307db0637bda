package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// FlexInt принимает целое число как JSON-число или как строку с числом ("1").
// Фронтенд присылает категорию и сложность строками из <select>.
type FlexInt int

// UnmarshalJSON реализует json.Unmarshaler
func (f *FlexInt) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return nil
	}

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid integer value %s", raw)
	}
	*f = FlexInt(n)
	return nil
}

// Int возвращает значение как int
func (f FlexInt) Int() int {
	return int(f)
}
