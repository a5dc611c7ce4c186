package cli

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Global flags
	FlagConfig    = "config"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
	FlagOutput    = "output"

	// Pool snapshot flags, overriding the pool section of the config file
	FlagCurveType        = "curve-type"
	FlagCurveParameter   = "curve-parameter"
	FlagReserveA         = "reserve-a"
	FlagReserveB         = "reserve-b"
	FlagPoolSupply       = "pool-supply"
	FlagTradeFee         = "trade-fee"
	FlagOwnerTradeFee    = "owner-trade-fee"
	FlagOwnerWithdrawFee = "owner-withdraw-fee"
	FlagHostFee          = "host-fee"
	FlagFeeOwner         = "fee-owner"

	// Operation bounds
	FlagMinAmountOut   = "min-amount-out"
	FlagMaxTokenA      = "max-token-a"
	FlagMaxTokenB      = "max-token-b"
	FlagMinTokenA      = "min-token-a"
	FlagMinTokenB      = "min-token-b"
	FlagMinPoolTokens  = "min-pool-tokens"
	FlagMaxPoolTokens  = "max-pool-tokens"
	FlagHostFeeEnabled = "host-fee-enabled"
	FlagFromFeeAccount = "from-fee-account"
	FlagPoolMintSupply = "pool-mint-supply"

	OutputFormatYAML    = "yaml"
	OutputFormatJSON    = "json"
	DefaultOutputFormat = OutputFormatYAML
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "plain"

	configKeyOutput      = "output"
	configKeyLogLevel    = "log_level"
	configKeyLogFormat   = "log_format"
	configKeyPoolSection = "pool"
)

// poolFlagKeys maps each pool flag to its config key.
var poolFlagKeys = map[string]string{
	FlagCurveType:        configKeyPoolSection + ".curve_type",
	FlagCurveParameter:   configKeyPoolSection + ".curve_parameter",
	FlagReserveA:         configKeyPoolSection + ".reserve_a",
	FlagReserveB:         configKeyPoolSection + ".reserve_b",
	FlagPoolSupply:       configKeyPoolSection + ".pool_supply",
	FlagTradeFee:         configKeyPoolSection + ".trade_fee",
	FlagOwnerTradeFee:    configKeyPoolSection + ".owner_trade_fee",
	FlagOwnerWithdrawFee: configKeyPoolSection + ".owner_withdraw_fee",
	FlagHostFee:          configKeyPoolSection + ".host_fee",
	FlagFeeOwner:         configKeyPoolSection + ".fee_owner",
}

// AddGlobalFlags registers the persistent flags of the root command.
func AddGlobalFlags(flags *pflag.FlagSet) {
	flags.String(FlagConfig, "", "Path to a pawswap.yaml or pawswap.toml config file")
	flags.String(FlagLogLevel, DefaultLogLevel, "Log level (debug|info|warn|error) or module filter such as x/swap:debug,*:error")
	flags.String(FlagLogFormat, DefaultLogFormat, "Log format (plain|json)")
	flags.StringP(FlagOutput, "o", DefaultOutputFormat, "Output format (yaml|json)")
}

// BindGlobalFlags binds the persistent flags to their config keys.
func BindGlobalFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for flag, key := range map[string]string{
		FlagOutput:    configKeyOutput,
		FlagLogLevel:  configKeyLogLevel,
		FlagLogFormat: configKeyLogFormat,
	} {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			return err
		}
	}
	return nil
}

// AddPoolFlagsToCmd registers the pool snapshot flags.
func AddPoolFlagsToCmd(flags *pflag.FlagSet) {
	flags.String(FlagCurveType, "", "Curve type (constant_product|constant_price|stable|offset)")
	flags.Uint64(FlagCurveParameter, 0, "Curve parameter: token B price, amplification or token B offset")
	flags.Uint64(FlagReserveA, 0, "Token A reserve")
	flags.Uint64(FlagReserveB, 0, "Token B reserve")
	flags.Uint64(FlagPoolSupply, 0, "Pool token supply")
	flags.String(FlagTradeFee, "", "Trade fee as numerator/denominator, e.g. 25/10000")
	flags.String(FlagOwnerTradeFee, "", "Owner trade fee as numerator/denominator")
	flags.String(FlagOwnerWithdrawFee, "", "Owner withdraw fee as numerator/denominator")
	flags.String(FlagHostFee, "", "Host share of the owner trade fee as numerator/denominator")
}

// BindPoolFlags binds whichever pool flags the executing command defines.
// Only flags that were set on the command line override the config file.
func BindPoolFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for flag, key := range poolFlagKeys {
		f := flags.Lookup(flag)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return err
		}
	}
	return nil
}
