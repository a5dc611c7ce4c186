package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/swap/curve"
	"github.com/paw-chain/pawswap/x/swap/keeper"
	"github.com/paw-chain/pawswap/x/swap/types"
)

// TestFlagConstants verifies all flag constants are properly defined
func TestFlagConstants(t *testing.T) {
	t.Parallel()

	require.Equal(t, "curve-type", FlagCurveType)
	require.Equal(t, "reserve-a", FlagReserveA)
	require.Equal(t, "trade-fee", FlagTradeFee)
	require.Equal(t, "min-amount-out", FlagMinAmountOut)
	require.Equal(t, "max-pool-tokens", FlagMaxPoolTokens)
	require.Equal(t, "yaml", DefaultOutputFormat)

	for flag, key := range poolFlagKeys {
		require.Contains(t, key, "pool.", flag)
	}
}

// TestGetQuoteCmdStructure verifies the quote command tree structure
func TestGetQuoteCmdStructure(t *testing.T) {
	t.Parallel()

	quoteCmd := GetQuoteCmd()
	require.Equal(t, "quote", quoteCmd.Use)

	expected := map[string]int{
		"swap":             2,
		"deposit":          1,
		"withdraw":         1,
		"deposit-single":   2,
		"withdraw-single":  2,
		"normalized-value": 0,
	}
	require.Len(t, quoteCmd.Commands(), len(expected))

	for _, sub := range quoteCmd.Commands() {
		nargs, ok := expected[sub.Name()]
		require.True(t, ok, sub.Name())
		require.NotNil(t, sub.Flags().Lookup(FlagReserveA), sub.Name())

		args := make([]string, nargs+1)
		require.Error(t, sub.Args(sub, args), "%s should reject %d args", sub.Name(), nargs+1)
	}
}

func TestGetPoolCmdStructure(t *testing.T) {
	t.Parallel()

	poolCmd := GetPoolCmd()
	names := make([]string, 0)
	for _, sub := range poolCmd.Commands() {
		names = append(names, sub.Name())
	}
	require.ElementsMatch(t, []string{"init", "check"}, names)

	initCmd, _, err := poolCmd.Find([]string{"init"})
	require.NoError(t, err)
	require.NotNil(t, initCmd.Flags().Lookup(FlagFeeOwner))
	require.NotNil(t, initCmd.Flags().Lookup(FlagPoolMintSupply))
}

func TestPoolConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     PoolConfig
		want    types.Pool
		wantErr error
	}{
		{
			name: "stable with fees",
			cfg: PoolConfig{
				CurveType:      "stable",
				CurveParameter: 85,
				ReserveA:       10,
				ReserveB:       20,
				PoolSupply:     30,
				TradeFee:       "25/10000",
				OwnerTradeFee:  "5 / 10000",
				HostFee:        "0",
			},
			want: types.Pool{
				Curve: types.CurveInput{CurveType: types.CurveTypeStable, CurveParameters: 85},
				Fees: types.Fees{
					TradeFee:      types.NewFraction(25, 10_000),
					OwnerTradeFee: types.NewFraction(5, 10_000),
				},
				ReserveA:   10,
				ReserveB:   20,
				PoolSupply: 30,
			},
		},
		{
			name: "discriminant curve type",
			cfg:  PoolConfig{CurveType: "3", CurveParameter: 7},
			want: types.Pool{Curve: types.CurveInput{CurveType: types.CurveTypeOffset, CurveParameters: 7}},
		},
		{
			name:    "unknown curve",
			cfg:     PoolConfig{CurveType: "hyperbolic"},
			wantErr: types.ErrUnsupportedCurveType,
		},
		{
			name:    "fee above one",
			cfg:     PoolConfig{CurveType: "constant_product", TradeFee: "3/2"},
			wantErr: types.ErrInvalidFee,
		},
		{
			name:    "malformed fee",
			cfg:     PoolConfig{CurveType: "constant_product", HostFee: "one/two"},
			wantErr: types.ErrInvalidFee,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pool, err := tt.cfg.Pool()
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, pool)
		})
	}
}

func TestConstraintsConfig(t *testing.T) {
	t.Parallel()

	constraints, err := ConstraintsConfig{OwnerKey: "ignored"}.SwapConstraints()
	require.NoError(t, err)
	require.Nil(t, constraints)

	constraints, err = ConstraintsConfig{
		Enabled:         true,
		OwnerKey:        "owner",
		ValidCurveTypes: []string{"constant_product", "stable"},
	}.SwapConstraints()
	require.NoError(t, err)
	require.Equal(t, []types.CurveType{types.CurveTypeConstantProduct, types.CurveTypeStable}, constraints.ValidCurveTypes)
	require.Nil(t, constraints.Fees)

	constraints, err = ConstraintsConfig{
		Enabled:         true,
		ValidCurveTypes: []string{"offset"},
		TradeFee:        "25/10000",
		HostFee:         "20/100",
	}.SwapConstraints()
	require.NoError(t, err)
	require.NotNil(t, constraints.Fees)
	require.Equal(t, types.NewFraction(20, 100), constraints.Fees.HostFee)

	_, err = ConstraintsConfig{Enabled: true, ValidCurveTypes: []string{"bogus"}}.SwapConstraints()
	require.ErrorIs(t, err, types.ErrUnsupportedCurveType)
}

func TestLoadConfigDefaults(t *testing.T) {
	v := viper.New()
	SetDefaults(v)

	cfg, err := LoadConfig(v)
	require.NoError(t, err)
	require.Equal(t, DefaultOutputFormat, cfg.Output)
	require.Equal(t, curve.DefaultSolverParams(), cfg.Solver)
	require.Equal(t, "constant_product", cfg.Pool.CurveType)
	require.Equal(t, 100, cfg.Server.RateLimitRPS)
	require.False(t, cfg.Telemetry.Enabled)

	pool, err := cfg.Pool.Pool()
	require.NoError(t, err)
	require.Equal(t, types.Fees{}, pool.Fees)
}

func TestLoadConfigRejectsZeroIterations(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("solver.max_iterations", 0)

	_, err := LoadConfig(v)
	require.ErrorIs(t, err, types.ErrInvalidCurve)
}

func newTestCmd(t *testing.T, output string) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	cmd := &cobra.Command{Use: "test"}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())

	SetClientContext(cmd, ClientContext{
		Config: &Config{Output: output},
		Logger: log.NewNopLogger(),
		Keeper: keeper.NewKeeper(log.NewNopLogger(), nil, curve.DefaultSolverParams()),
	})
	return cmd, &out
}

func TestPrintObject(t *testing.T) {
	value := NormalizedValueOutput{CurveType: types.CurveTypeOffset, NormalizedValue: "42.000000000000000000"}

	cmd, out := newTestCmd(t, OutputFormatYAML)
	clientCtx, err := GetClientContext(cmd)
	require.NoError(t, err)
	require.NoError(t, clientCtx.PrintObject(cmd, value))
	require.Equal(t, "curve_type: offset\nnormalized_value: \"42.000000000000000000\"\n", out.String())

	cmd, out = newTestCmd(t, OutputFormatJSON)
	clientCtx, err = GetClientContext(cmd)
	require.NoError(t, err)
	require.NoError(t, clientCtx.PrintObject(cmd, value))

	var decoded NormalizedValueOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	require.Equal(t, value, decoded)
}

func TestGetClientContextUninitialized(t *testing.T) {
	_, err := GetClientContext(&cobra.Command{Use: "bare"})
	require.Error(t, err)
}

func TestCurvesCmd(t *testing.T) {
	cmd, out := newTestCmd(t, OutputFormatJSON)
	curvesCmd := GetCurvesCmd()
	curvesCmd.SetOut(out)
	curvesCmd.SetContext(cmd.Context())

	require.NoError(t, curvesCmd.RunE(curvesCmd, nil))

	var curves []CurveOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &curves))
	require.Len(t, curves, 4)
	require.Equal(t, "token_b_price", curves[1].Parameter)
	require.True(t, curves[2].AllowsDeposits)
	require.False(t, curves[3].AllowsDeposits)
	for _, c := range curves {
		require.True(t, c.Allowed)
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	amount, err := parseAmount("amount", "1000")
	require.NoError(t, err)
	require.Equal(t, uint64(1000), amount)

	_, err = parseAmount("amount", "ten")
	require.ErrorContains(t, err, "invalid amount")

	_, err = parseAmount("amount", "-1")
	require.Error(t, err)
}
