package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestParseCurveType(t *testing.T) {
	tests := []struct {
		input   string
		want    CurveType
		wantErr bool
	}{
		{"constant_product", CurveTypeConstantProduct, false},
		{"constant-price", CurveTypeConstantPrice, false},
		{"Stable", CurveTypeStable, false},
		{"Offset", CurveTypeOffset, false},
		{"ConstantProduct", CurveTypeConstantProduct, false},
		{"2", CurveTypeStable, false},
		{"4", 0, true},
		{"256", 0, true},
		{"curved", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCurveType(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedCurveType)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestCurveTypeDiscriminants(t *testing.T) {
	require.Equal(t, []CurveType{0, 1, 2, 3}, AllCurveTypes())
	require.Equal(t, "unknown(9)", CurveType(9).String())
	require.False(t, CurveType(9).IsValid())

	require.Equal(t, "", CurveTypeConstantProduct.ParameterName())
	require.Equal(t, "token_b_price", CurveTypeConstantPrice.ParameterName())
	require.Equal(t, "amp", CurveTypeStable.ParameterName())
	require.Equal(t, "token_b_offset", CurveTypeOffset.ParameterName())
}

func TestCurveInputEncoding(t *testing.T) {
	input := CurveInput{CurveType: CurveTypeStable, CurveParameters: 100}

	bz, err := json.Marshal(input)
	require.NoError(t, err)
	require.JSONEq(t, `{"curve_type":"stable","curve_parameters":100}`, string(bz))

	var byNumber CurveInput
	require.NoError(t, json.Unmarshal([]byte(`{"curve_type":2,"curve_parameters":100}`), &byNumber))
	require.Equal(t, input, byNumber)

	_, err = json.Marshal(CurveInput{CurveType: 7})
	require.Error(t, err)
	require.Error(t, json.Unmarshal([]byte(`{"curve_type":"nope"}`), &byNumber))

	out, err := yaml.Marshal(input)
	require.NoError(t, err)
	require.Equal(t, "curve_type: stable\ncurve_parameters: 100\n", string(out))

	var fromYAML CurveInput
	require.NoError(t, yaml.Unmarshal(out, &fromYAML))
	require.Equal(t, input, fromYAML)

	require.NoError(t, yaml.Unmarshal([]byte("curve_type: 3\n"), &fromYAML))
	require.Equal(t, CurveTypeOffset, fromYAML.CurveType)
}

func TestTradeDirection(t *testing.T) {
	require.NoError(t, AtoB.Validate())
	require.ErrorIs(t, TradeDirection(5).Validate(), ErrInvalidInput)

	for _, s := range []string{"a_to_b", "A-TO-B", "atob", "a"} {
		d, err := ParseTradeDirection(s)
		require.NoError(t, err, s)
		require.Equal(t, AtoB, d, s)
	}
	for _, s := range []string{"b_to_a", "b-to-a", "BtoA", " b "} {
		d, err := ParseTradeDirection(s)
		require.NoError(t, err, s)
		require.Equal(t, BtoA, d, s)
	}
	_, err := ParseTradeDirection("c")
	require.ErrorIs(t, err, ErrInvalidInput)

	bz, err := json.Marshal(struct {
		Direction TradeDirection `json:"direction"`
	}{BtoA})
	require.NoError(t, err)
	require.JSONEq(t, `{"direction":"b_to_a"}`, string(bz))

	var decoded struct {
		Direction TradeDirection `json:"direction"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"direction":"a-to-b"}`), &decoded))
	require.Equal(t, AtoB, decoded.Direction)

	_, err = json.Marshal(TradeDirection(3))
	require.Error(t, err)

	require.Equal(t, "ceiling", RoundCeiling.String())
	require.Equal(t, "floor", RoundFloor.String())
}

func TestPoolHelpers(t *testing.T) {
	pool := Pool{
		Curve:      CurveInput{CurveType: CurveTypeConstantProduct},
		ReserveA:   100,
		ReserveB:   200,
		PoolSupply: 300,
	}
	require.NoError(t, pool.Validate())

	src, dst := pool.SwapReserves(AtoB)
	requireUint(t, 100, src)
	requireUint(t, 200, dst)

	src, dst = pool.SwapReserves(BtoA)
	requireUint(t, 200, src)
	requireUint(t, 100, dst)

	requireUint(t, 300, pool.Supply())

	updated := pool.WithBalances(1, 2, 3)
	require.Equal(t, uint64(1), updated.ReserveA)
	require.Equal(t, uint64(100), pool.ReserveA)

	pool.Curve.CurveType = 8
	require.ErrorIs(t, pool.Validate(), ErrUnsupportedCurveType)

	pool.Curve.CurveType = CurveTypeOffset
	pool.Fees.TradeFee = NewFraction(2, 1)
	require.ErrorIs(t, pool.Validate(), ErrInvalidFee)
}

func TestSwapConstraints(t *testing.T) {
	var unconstrained *SwapConstraints
	require.NoError(t, unconstrained.ValidateCurve(CurveTypeOffset))
	require.ErrorIs(t, unconstrained.ValidateCurve(CurveType(9)), ErrUnsupportedCurveType)
	require.NoError(t, unconstrained.ValidateFees(Fees{TradeFee: NewFraction(1, 2)}))
	require.NoError(t, unconstrained.ValidateOwner("anyone"))

	minimum := Fees{
		TradeFee:         NewFraction(25, 10_000),
		OwnerTradeFee:    NewFraction(5, 10_000),
		OwnerWithdrawFee: NewFraction(0, 10_000),
		HostFee:          NewFraction(20, 100),
	}
	constraints := &SwapConstraints{
		OwnerKey:        "owner",
		ValidCurveTypes: []CurveType{CurveTypeConstantProduct, CurveTypeStable},
		Fees:            &minimum,
	}

	require.NoError(t, constraints.ValidateCurve(CurveTypeStable))
	require.ErrorIs(t, constraints.ValidateCurve(CurveTypeOffset), ErrUnsupportedCurveType)

	require.NoError(t, constraints.ValidateOwner("owner"))
	require.ErrorIs(t, constraints.ValidateOwner("intruder"), ErrInvalidOwner)

	require.NoError(t, constraints.ValidateFees(minimum))

	raised := minimum
	raised.TradeFee = NewFraction(30, 10_000)
	require.NoError(t, constraints.ValidateFees(raised))

	lowered := minimum
	lowered.OwnerTradeFee = NewFraction(4, 10_000)
	require.ErrorIs(t, constraints.ValidateFees(lowered), ErrInvalidFee)

	rescaled := minimum
	rescaled.TradeFee = NewFraction(3, 1_000)
	require.ErrorIs(t, constraints.ValidateFees(rescaled), ErrInvalidFee)

	otherHost := minimum
	otherHost.HostFee = NewFraction(21, 100)
	require.ErrorIs(t, constraints.ValidateFees(otherHost), ErrInvalidFee)
}
