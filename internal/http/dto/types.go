package dto

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/cesargomez89/fullstack/internal/domain"
)

// YesNo is a boolean that also accepts the strings a form checkbox or
// select sends: "y", "yes", "true", "on" and "1" are true.
type YesNo bool

func ParseYesNo(s string) YesNo {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "on", "1":
		return true
	}
	return false
}

func (b *YesNo) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case nil:
		*b = false
	case bool:
		*b = YesNo(t)
	case string:
		*b = ParseYesNo(t)
	case float64:
		*b = t != 0
	default:
		return fmt.Errorf("cannot use %s as a yes/no value", data)
	}
	return nil
}

// FlexInt is an integer that may arrive as a JSON number or a numeric
// string, as select inputs post their values as strings.
type FlexInt int

func (n *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*n = 0
			return nil
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("cannot use %q as an integer", s)
		}
		*n = FlexInt(v)
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = FlexInt(v)
	return nil
}

// RecipeInput is a recipe posted either as a single ingredient object or
// as a list of them.
type RecipeInput domain.Recipe

func (r *RecipeInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = nil
		return nil
	}
	if data[0] == '{' {
		var one domain.Ingredient
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*r = RecipeInput{one}
		return nil
	}
	var many []domain.Ingredient
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*r = RecipeInput(many)
	return nil
}
