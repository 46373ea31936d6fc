package predictor

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
)

func TestToInt(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{3, 3},
		{int64(42), 42},
		{uint8(7), 7},
		{2.9, 2},
		{-2.9, -2},
		{float32(1.5), 1},
		{json.Number("12"), 12},
		{json.Number("12.8"), 12},
		{"  19 ", 19},
		{"-4", -4},
	}

	for _, tt := range tests {
		got, err := toInt("field", tt.in)
		if err != nil {
			t.Errorf("toInt(%#v) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("toInt(%#v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestToInt_Errors(t *testing.T) {
	inputs := []any{nil, "", "1.0", "ten", math.NaN(), math.Inf(1), 1e300, true, []int{1}, json.Number("x")}

	for _, in := range inputs {
		if _, err := toInt("age", in); err == nil {
			t.Errorf("toInt(%#v) expected error, got nil", in)
		} else if !strings.HasPrefix(err.Error(), "age: ") {
			t.Errorf("toInt(%#v) error should name the field, got: %v", in, err)
		}
	}
}

func TestToFloat(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{130, 130},
		{130.5, 130.5},
		{float32(0.5), 0.5},
		{uint(9), 9},
		{json.Number("1.25"), 1.25},
		{" 2.5\t", 2.5},
		{"1e2", 100},
	}

	for _, tt := range tests {
		got, err := toFloat("field", tt.in)
		if err != nil {
			t.Errorf("toFloat(%#v) returned error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("toFloat(%#v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestToFloat_Errors(t *testing.T) {
	inputs := []any{nil, "", "abc", false, map[string]int{}}

	for _, in := range inputs {
		if _, err := toFloat("cholesterol", in); err == nil {
			t.Errorf("toFloat(%#v) expected error, got nil", in)
		}
	}

	_, err := toFloat("cholesterol", struct{}{})
	if !errors.Is(err, ErrNotNumeric) {
		t.Errorf("expected ErrNotNumeric for unsupported type, got: %v", err)
	}
}
