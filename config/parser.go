package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	kjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/v2"
)

// integerKeys hold integers or integer candidate sets.
var integerKeys = []string{
	"seed",
	"break_count",
	"break_duration",
	"commercial_count",
	"commercial_duration",
	"commercial_minimum_play",
	"commercial_maximum_play",
	"price_range",
	"reach_range",
	"budget_chance",
	"reach_chance",
	"penalty",
	"competitors_count",
}

// numberJSON decodes JSON numbers as json.Number so 64-bit seeds survive
// exactly. Marshalling is left to the koanf parser.
type numberJSON struct {
	*kjson.JSON
}

func jsonParser() koanf.Parser { return numberJSON{kjson.Parser()} }

func (numberJSON) Unmarshal(b []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var out map[string]interface{}
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}

// checkIntegers reports every integer key holding a fractional or
// non-numeric value.
func checkIntegers(k *koanf.Koanf) []error {
	var errs []error
	for _, key := range integerKeys {
		if !k.Exists(key) {
			continue
		}
		if err := integral(k.Get(key)); err != nil {
			errs = append(errs, &Error{Key: key, Err: fmt.Errorf("%w: %v", ErrInvalidValue, err)})
		}
	}
	return errs
}

func integral(v any) error {
	switch x := v.(type) {
	case []any:
		for i, e := range x {
			if err := integral(e); err != nil {
				return fmt.Errorf("candidate %d: %w", i, err)
			}
		}
	case json.Number:
		if _, err := x.Int64(); err != nil {
			return fmt.Errorf("%s is not an integer", x)
		}
	case float64:
		if x != math.Trunc(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%v is not an integer", x)
		}
	case string:
		if _, err := strconv.ParseInt(x, 10, 64); err != nil {
			return fmt.Errorf("%q is not an integer", x)
		}
	}
	return nil
}
