package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CurveType is the discriminant stored with a pool. The numeric values are
// part of the external contract.
type CurveType uint8

const (
	CurveTypeConstantProduct CurveType = 0
	CurveTypeConstantPrice   CurveType = 1
	CurveTypeStable          CurveType = 2
	CurveTypeOffset          CurveType = 3
)

var curveTypeNames = map[CurveType]string{
	CurveTypeConstantProduct: "constant_product",
	CurveTypeConstantPrice:   "constant_price",
	CurveTypeStable:          "stable",
	CurveTypeOffset:          "offset",
}

// AllCurveTypes lists every known curve type in discriminant order.
func AllCurveTypes() []CurveType {
	return []CurveType{CurveTypeConstantProduct, CurveTypeConstantPrice, CurveTypeStable, CurveTypeOffset}
}

// IsValid reports whether c is a known discriminant.
func (c CurveType) IsValid() bool {
	_, ok := curveTypeNames[c]
	return ok
}

func (c CurveType) String() string {
	if name, ok := curveTypeNames[c]; ok {
		return name
	}
	return "unknown(" + strconv.Itoa(int(c)) + ")"
}

// ParameterName describes what CurveParameters means for c.
func (c CurveType) ParameterName() string {
	switch c {
	case CurveTypeConstantPrice:
		return "token_b_price"
	case CurveTypeStable:
		return "amp"
	case CurveTypeOffset:
		return "token_b_offset"
	default:
		return ""
	}
}

// ParseCurveType accepts a curve name ("constant_product",
// "constant-product", "ConstantProduct") or its discriminant ("0").
func ParseCurveType(s string) (CurveType, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)

	if n, err := strconv.ParseUint(normalized, 10, 8); err == nil {
		c := CurveType(n)
		if !c.IsValid() {
			return 0, ErrUnsupportedCurveType.Wrapf("curve type %d", n)
		}
		return c, nil
	}

	for c, name := range curveTypeNames {
		if strings.ReplaceAll(name, "_", "") == normalized {
			return c, nil
		}
	}
	return 0, ErrUnsupportedCurveType.Wrapf("curve type %q", s)
}

// MarshalJSON encodes the curve type by name.
func (c CurveType) MarshalJSON() ([]byte, error) {
	if !c.IsValid() {
		return nil, ErrUnsupportedCurveType.Wrapf("curve type %d", uint8(c))
	}
	return json.Marshal(c.String())
}

// UnmarshalJSON accepts either the name or the numeric discriminant.
func (c *CurveType) UnmarshalJSON(bz []byte) error {
	var s string
	if err := json.Unmarshal(bz, &s); err != nil {
		var n uint8
		if err := json.Unmarshal(bz, &n); err != nil {
			return ErrUnsupportedCurveType.Wrapf("curve type %s", string(bz))
		}
		s = strconv.Itoa(int(n))
	}
	parsed, err := ParseCurveType(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML encodes the curve type by name.
func (c CurveType) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// UnmarshalYAML accepts either the name or the numeric discriminant.
func (c *CurveType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return ErrUnsupportedCurveType.Wrap(err.Error())
	}
	parsed, err := ParseCurveType(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// CurveInput is the raw curve configuration of a pool: a discriminant and
// one parameter whose meaning depends on the discriminant.
//   - constant product: unused
//   - constant price: price of one token B in token A units
//   - stable: amplification coefficient
//   - offset: virtual amount added to the token B reserve
type CurveInput struct {
	CurveType       CurveType `json:"curve_type" yaml:"curve_type"`
	CurveParameters uint64    `json:"curve_parameters" yaml:"curve_parameters"`
}
