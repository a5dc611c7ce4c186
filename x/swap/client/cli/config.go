package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cosmossdk.io/log"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/api"
	"github.com/paw-chain/pawswap/app/telemetry"
	"github.com/paw-chain/pawswap/x/swap/curve"
	"github.com/paw-chain/pawswap/x/swap/keeper"
	"github.com/paw-chain/pawswap/x/swap/types"
)

const (
	// EnvPrefix prefixes every environment override, e.g. PAWSWAP_POOL_RESERVE_A.
	EnvPrefix = "PAWSWAP"

	configName = "pawswap"
)

// Config is the full pawswap configuration file.
type Config struct {
	LogLevel    string             `mapstructure:"log_level"`
	LogFormat   string             `mapstructure:"log_format"`
	Output      string             `mapstructure:"output"`
	Pool        PoolConfig         `mapstructure:"pool"`
	Solver      curve.SolverParams `mapstructure:"solver"`
	Constraints ConstraintsConfig  `mapstructure:"constraints"`
	Server      api.Config         `mapstructure:"server"`
	Telemetry   telemetry.Config   `mapstructure:"telemetry"`
}

// PoolConfig is the pool snapshot quoted against. Fees are written as
// "numerator/denominator".
type PoolConfig struct {
	CurveType        string `mapstructure:"curve_type"`
	CurveParameter   uint64 `mapstructure:"curve_parameter"`
	ReserveA         uint64 `mapstructure:"reserve_a"`
	ReserveB         uint64 `mapstructure:"reserve_b"`
	PoolSupply       uint64 `mapstructure:"pool_supply"`
	TradeFee         string `mapstructure:"trade_fee"`
	OwnerTradeFee    string `mapstructure:"owner_trade_fee"`
	OwnerWithdrawFee string `mapstructure:"owner_withdraw_fee"`
	HostFee          string `mapstructure:"host_fee"`
	FeeOwner         string `mapstructure:"fee_owner"`
}

// ConstraintsConfig is the deployment policy. Nothing is enforced unless
// Enabled is set. Leaving every minimum fee empty disables the fee check.
type ConstraintsConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	OwnerKey         string   `mapstructure:"owner_key"`
	ValidCurveTypes  []string `mapstructure:"valid_curve_types"`
	TradeFee         string   `mapstructure:"trade_fee"`
	OwnerTradeFee    string   `mapstructure:"owner_trade_fee"`
	OwnerWithdrawFee string   `mapstructure:"owner_withdraw_fee"`
	HostFee          string   `mapstructure:"host_fee"`
}

// SetDefaults registers the default value of every config key, which also
// makes every key visible to environment overrides.
func SetDefaults(v *viper.Viper) {
	server := api.DefaultConfig()
	tel := telemetry.DefaultConfig()
	solver := curve.DefaultSolverParams()

	defaults := map[string]interface{}{
		configKeyOutput:    DefaultOutputFormat,
		configKeyLogLevel:  DefaultLogLevel,
		configKeyLogFormat: DefaultLogFormat,

		"pool.curve_type":         types.CurveTypeConstantProduct.String(),
		"pool.curve_parameter":    0,
		"pool.reserve_a":          0,
		"pool.reserve_b":          0,
		"pool.pool_supply":        0,
		"pool.trade_fee":          "0",
		"pool.owner_trade_fee":    "0",
		"pool.owner_withdraw_fee": "0",
		"pool.host_fee":           "0",
		"pool.fee_owner":          "",

		"solver.max_iterations": solver.MaxIterations,
		"solver.tolerance":      solver.Tolerance,

		"constraints.enabled":            false,
		"constraints.owner_key":          "",
		"constraints.valid_curve_types":  []string{},
		"constraints.trade_fee":          "0",
		"constraints.owner_trade_fee":    "0",
		"constraints.owner_withdraw_fee": "0",
		"constraints.host_fee":           "0",

		"server.host":             server.Host,
		"server.port":             server.Port,
		"server.cors_origins":     server.CORSOrigins,
		"server.rate_limit_rps":   server.RateLimitRPS,
		"server.read_timeout":     server.ReadTimeout,
		"server.write_timeout":    server.WriteTimeout,
		"server.shutdown_timeout": server.ShutdownTimeout,

		"telemetry.enabled":            tel.Enabled,
		"telemetry.otlp_endpoint":      tel.OTLPEndpoint,
		"telemetry.sample_rate":        tel.SampleRate,
		"telemetry.environment":        tel.Environment,
		"telemetry.instance_id":        tel.InstanceID,
		"telemetry.prometheus_enabled": tel.PrometheusEnabled,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// ReadConfig loads defaults, the config file and PAWSWAP_ environment
// overrides into v. An explicit path must exist; without one, a missing
// pawswap.yaml or pawswap.toml is not an error.
func ReadConfig(v *viper.Viper, path string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, "."+configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// LoadConfig decodes the merged configuration held by v.
func LoadConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings that do not depend on a pool operation.
func (c *Config) Validate() error {
	switch c.Output {
	case OutputFormatYAML, OutputFormatJSON:
	default:
		return fmt.Errorf("unknown output format %q, expected yaml or json", c.Output)
	}
	switch c.LogFormat {
	case "plain", "json":
	default:
		return fmt.Errorf("unknown log format %q, expected plain or json", c.LogFormat)
	}
	if err := c.Solver.Validate(); err != nil {
		return err
	}
	return nil
}

// NewLogger builds the process logger from the log settings.
func (c *Config) NewLogger() (log.Logger, error) {
	filter, err := log.ParseLogLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}

	opts := []log.Option{log.FilterOption(filter)}
	if c.LogFormat == "json" {
		opts = append(opts, log.OutputJSONOption())
	}
	return log.NewLogger(os.Stderr, opts...), nil
}

// NewKeeper builds a keeper from the solver and constraints sections.
func (c *Config) NewKeeper(logger log.Logger) (*keeper.Keeper, error) {
	constraints, err := c.Constraints.SwapConstraints()
	if err != nil {
		return nil, err
	}
	return keeper.NewKeeper(logger, constraints, c.Solver), nil
}

// Pool converts the pool section into a snapshot.
func (p PoolConfig) Pool() (types.Pool, error) {
	curveType, err := types.ParseCurveType(p.CurveType)
	if err != nil {
		return types.Pool{}, err
	}
	fees, err := parseFees(p.TradeFee, p.OwnerTradeFee, p.OwnerWithdrawFee, p.HostFee)
	if err != nil {
		return types.Pool{}, err
	}

	return types.Pool{
		Curve: types.CurveInput{
			CurveType:       curveType,
			CurveParameters: p.CurveParameter,
		},
		Fees:       fees,
		ReserveA:   p.ReserveA,
		ReserveB:   p.ReserveB,
		PoolSupply: p.PoolSupply,
	}, nil
}

// SwapConstraints converts the constraints section. It returns nil when
// constraints are disabled.
func (c ConstraintsConfig) SwapConstraints() (*types.SwapConstraints, error) {
	if !c.Enabled {
		return nil, nil
	}

	curveTypes := make([]types.CurveType, 0, len(c.ValidCurveTypes))
	for _, name := range c.ValidCurveTypes {
		curveType, err := types.ParseCurveType(name)
		if err != nil {
			return nil, fmt.Errorf("constraints: %w", err)
		}
		curveTypes = append(curveTypes, curveType)
	}

	fees, err := parseFees(c.TradeFee, c.OwnerTradeFee, c.OwnerWithdrawFee, c.HostFee)
	if err != nil {
		return nil, fmt.Errorf("constraints: %w", err)
	}

	constraints := &types.SwapConstraints{
		OwnerKey:        c.OwnerKey,
		ValidCurveTypes: curveTypes,
	}
	if fees != (types.Fees{}) {
		constraints.Fees = &fees
	}
	return constraints, nil
}

func parseFees(tradeFee, ownerTradeFee, ownerWithdrawFee, hostFee string) (types.Fees, error) {
	var (
		fees types.Fees
		err  error
	)
	for _, entry := range []struct {
		raw string
		dst *types.Fraction
	}{
		{tradeFee, &fees.TradeFee},
		{ownerTradeFee, &fees.OwnerTradeFee},
		{ownerWithdrawFee, &fees.OwnerWithdrawFee},
		{hostFee, &fees.HostFee},
	} {
		if *entry.dst, err = types.ParseFraction(entry.raw); err != nil {
			return types.Fees{}, err
		}
	}
	if err := fees.Validate(); err != nil {
		return types.Fees{}, err
	}
	return fees, nil
}
