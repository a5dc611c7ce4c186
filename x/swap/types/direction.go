package types

import (
	"fmt"
	"strings"
)

// RoundDirection selects which way a proportional conversion rounds.
// Deposits round up so the depositor pays at least the exact amount;
// withdrawals round down so the withdrawer receives at most the exact amount.
type RoundDirection int

const (
	RoundFloor RoundDirection = iota
	RoundCeiling
)

func (r RoundDirection) String() string {
	switch r {
	case RoundFloor:
		return "floor"
	case RoundCeiling:
		return "ceiling"
	default:
		return fmt.Sprintf("RoundDirection(%d)", int(r))
	}
}

// TradeDirection names which reserve is supplied. For single-sided deposits
// and withdrawals AtoB selects token A and BtoA selects token B.
type TradeDirection int

const (
	AtoB TradeDirection = iota
	BtoA
)

func (d TradeDirection) String() string {
	switch d {
	case AtoB:
		return "a_to_b"
	case BtoA:
		return "b_to_a"
	default:
		return fmt.Sprintf("TradeDirection(%d)", int(d))
	}
}

// Validate rejects values outside the two defined directions.
func (d TradeDirection) Validate() error {
	if d != AtoB && d != BtoA {
		return ErrInvalidInput.Wrapf("unknown trade direction %d", int(d))
	}
	return nil
}

// ParseTradeDirection accepts "a_to_b", "a-to-b", "atob", "a" and their B
// counterparts, case-insensitively.
func ParseTradeDirection(s string) (TradeDirection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "a_to_b", "a-to-b", "atob", "a":
		return AtoB, nil
	case "b_to_a", "b-to-a", "btoa", "b":
		return BtoA, nil
	default:
		return AtoB, ErrInvalidInput.Wrapf("unknown trade direction %q", s)
	}
}

func (d TradeDirection) MarshalText() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return []byte(d.String()), nil
}

func (d *TradeDirection) UnmarshalText(text []byte) error {
	parsed, err := ParseTradeDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
