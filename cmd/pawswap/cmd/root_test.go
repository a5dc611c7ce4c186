package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	sdkerrors "cosmossdk.io/errors"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/paw-chain/pawswap/x/swap/client/cli"
	"github.com/paw-chain/pawswap/x/swap/types"
)

const testConfig = `log_level: error
pool:
  curve_type: constant_product
  reserve_a: 1000
  reserve_b: 1000
  pool_supply: 1000000000
solver:
  max_iterations: 32
  tolerance: 1
`

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCmdSubcommands(t *testing.T) {
	rootCmd := NewRootCmd()

	names := make([]string, 0)
	for _, sub := range rootCmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, expected := range []string{"quote", "pool", "curves", "serve", "version"} {
		require.Contains(t, names, expected)
	}

	for _, flag := range []string{cli.FlagConfig, cli.FlagLogLevel, cli.FlagLogFormat, cli.FlagOutput} {
		require.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestQuoteSwapFromConfigFile(t *testing.T) {
	config := writeConfig(t, "pawswap.yaml", testConfig)

	out, err := execute(t, "--config", config, "quote", "swap", "100", "a-to-b")
	require.NoError(t, err)

	var plan types.SwapPlan
	require.NoError(t, yaml.Unmarshal([]byte(out), &plan))
	require.Equal(t, uint64(90), plan.AmountOut)
	require.Equal(t, uint64(99), plan.AmountIn)
	require.Contains(t, out, "direction: a_to_b")
	require.Contains(t, out, "curve_type: constant_product")
}

func TestQuoteSwapJSONOutputAndFlagOverrides(t *testing.T) {
	config := writeConfig(t, "pawswap.yaml", testConfig)

	out, err := execute(t,
		"--config", config,
		"--output", "json",
		"quote", "swap", "100", "b-to-a",
		"--reserve-b", "2000",
		"--trade-fee", "1/1000",
	)
	require.NoError(t, err)

	var plan types.SwapPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	require.Equal(t, types.BtoA, plan.Direction)
	require.Equal(t, uint64(1), plan.TradeFee)
	require.Equal(t, uint64(2000)+plan.AmountIn, plan.Pool.ReserveB)
	require.Equal(t, uint64(1000)-plan.AmountOut, plan.Pool.ReserveA)
}

func TestTOMLConfig(t *testing.T) {
	config := writeConfig(t, "pawswap.toml", `log_level = "error"
output = "json"

[pool]
curve_type = "stable"
curve_parameter = 100
reserve_a = 1000000
reserve_b = 1000000
pool_supply = 1000000000
`)

	out, err := execute(t, "--config", config, "quote", "swap", "1000", "a")
	require.NoError(t, err)

	var plan types.SwapPlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	require.GreaterOrEqual(t, plan.AmountOut, uint64(990))
	require.LessOrEqual(t, plan.AmountOut, uint64(1000))
}

func TestEnvironmentOverridesConfigFile(t *testing.T) {
	config := writeConfig(t, "pawswap.yaml", testConfig)
	t.Setenv("PAWSWAP_POOL_RESERVE_B", "0")

	out, err := execute(t, "--config", config, "pool", "check")
	require.ErrorIs(t, err, cli.ErrPoolBroken)
	require.Contains(t, out, "broken: true")
}

func TestQuoteErrorsCarryRegisteredCodes(t *testing.T) {
	config := writeConfig(t, "pawswap.yaml", testConfig)

	_, err := execute(t, "--config", config, "quote", "swap", "0", "a-to-b")
	require.Error(t, err)
	require.True(t, sdkerrors.IsOf(err, types.ErrZeroTradingTokens), err.Error())

	_, err = execute(t, "--config", config, "quote", "swap", "100", "a-to-b", "--min-amount-out", "91")
	require.True(t, sdkerrors.IsOf(err, types.ErrExceededSlippage), err)

	_, err = execute(t, "--config", config, "quote", "swap", "100", "sideways")
	require.True(t, sdkerrors.IsOf(err, types.ErrInvalidInput), err)

	_, err = execute(t, "--config", config, "quote", "swap", "-5", "a-to-b")
	require.Error(t, err)
}

func TestQuoteLiquidityCommands(t *testing.T) {
	config := writeConfig(t, "pawswap.yaml", testConfig)

	out, err := execute(t, "--config", config, "-o", "json", "quote", "deposit", "100000000")
	require.NoError(t, err)
	var deposit types.DepositPlan
	require.NoError(t, json.Unmarshal([]byte(out), &deposit))
	require.Equal(t, uint64(100), deposit.TokenAAmount)
	require.Equal(t, uint64(100), deposit.TokenBAmount)

	out, err = execute(t, "--config", config, "-o", "json", "quote", "withdraw", "100000000")
	require.NoError(t, err)
	var withdraw types.WithdrawPlan
	require.NoError(t, json.Unmarshal([]byte(out), &withdraw))
	require.Equal(t, uint64(100), withdraw.TokenAAmount)

	out, err = execute(t, "--config", config, "-o", "json", "quote", "deposit-single", "100", "a")
	require.NoError(t, err)
	var single types.DepositPlan
	require.NoError(t, json.Unmarshal([]byte(out), &single))
	require.Equal(t, uint64(100), single.TokenAAmount)
	require.Zero(t, single.TokenBAmount)

	out, err = execute(t, "--config", config, "-o", "json", "quote", "withdraw-single", "100", "b")
	require.NoError(t, err)
	var singleOut types.WithdrawPlan
	require.NoError(t, json.Unmarshal([]byte(out), &singleOut))
	require.Equal(t, uint64(100), singleOut.TokenBAmount)
	require.Positive(t, singleOut.PoolTokensBurned)

	out, err = execute(t, "--config", config, "quote", "normalized-value")
	require.NoError(t, err)
	require.Contains(t, out, "normalized_value:")
}

func TestPoolInit(t *testing.T) {
	config := writeConfig(t, "pawswap.yaml", testConfig)

	out, err := execute(t, "--config", config, "-o", "json", "pool", "init",
		"--curve-type", "constant_price",
		"--curve-parameter", "2",
		"--reserve-a", "2000",
		"--reserve-b", "1000",
	)
	require.NoError(t, err)

	var plan types.InitializePlan
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	require.Equal(t, types.InitialSwapPoolAmount, plan.PoolTokensMinted)
	require.Equal(t, types.CurveTypeConstantPrice, plan.Pool.Curve.CurveType)

	_, err = execute(t, "--config", config, "pool", "init", "--pool-mint-supply", "5")
	require.True(t, sdkerrors.IsOf(err, types.ErrInvalidSupply), err)
}

func TestConstraintsSection(t *testing.T) {
	config := writeConfig(t, "pawswap.yaml", testConfig+`constraints:
  enabled: true
  owner_key: owner1
  valid_curve_types: [constant_product]
`)

	_, err := execute(t, "--config", config, "pool", "init", "--fee-owner", "owner2")
	require.True(t, sdkerrors.IsOf(err, types.ErrInvalidOwner), err)

	_, err = execute(t, "--config", config, "pool", "init", "--fee-owner", "owner1", "--curve-type", "stable", "--curve-parameter", "10")
	require.True(t, sdkerrors.IsOf(err, types.ErrUnsupportedCurveType), err)

	out, err := execute(t, "--config", config, "-o", "json", "curves")
	require.NoError(t, err)
	var curves []cli.CurveOutput
	require.NoError(t, json.Unmarshal([]byte(out), &curves))
	require.Len(t, curves, 4)
	require.True(t, curves[0].Allowed)
	require.False(t, curves[2].Allowed)
	require.False(t, curves[3].AllowsDeposits)
}

func TestInvalidSettings(t *testing.T) {
	config := writeConfig(t, "pawswap.yaml", testConfig)

	_, err := execute(t, "--config", config, "--output", "xml", "version")
	require.ErrorContains(t, err, "output format")

	_, err = execute(t, "--config", config, "--log-level", "loud", "version")
	require.ErrorContains(t, err, "log level")

	_, err = execute(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "version")
	require.ErrorContains(t, err, "failed to read config")

	_, err = execute(t, "--config", config, "quote", "swap", "1", "a", "--trade-fee", "3")
	require.ErrorContains(t, err, "invalid pool config")
}

func TestVersion(t *testing.T) {
	config := writeConfig(t, "pawswap.yaml", testConfig)

	out, err := execute(t, "--config", config, "version")
	require.NoError(t, err)
	require.Contains(t, out, "version: dev")
}
