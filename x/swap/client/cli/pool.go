package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/x/swap/curve"
	"github.com/paw-chain/pawswap/x/swap/types"
)

// PoolCheckOutput is the printed result of pool check.
type PoolCheckOutput struct {
	Broken  bool   `json:"broken" yaml:"broken"`
	Message string `json:"message" yaml:"message"`
}

// CurveOutput describes one curve type for the curves command.
type CurveOutput struct {
	Name           string `json:"name" yaml:"name"`
	Discriminant   uint8  `json:"discriminant" yaml:"discriminant"`
	Parameter      string `json:"parameter,omitempty" yaml:"parameter,omitempty"`
	AllowsDeposits bool   `json:"allows_deposits" yaml:"allows_deposits"`
	Allowed        bool   `json:"allowed" yaml:"allowed"`
}

// ErrPoolBroken is returned by pool check so the process exits non-zero.
var ErrPoolBroken = errors.New("pool checks failed")

// GetPoolCmd returns the pool lifecycle commands
func GetPoolCmd() *cobra.Command {
	poolCmd := &cobra.Command{
		Use:                        "pool",
		Short:                      "Plan and check pools",
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	poolCmd.AddCommand(
		GetCmdPoolInit(),
		GetCmdPoolCheck(),
	)

	return poolCmd
}

// GetCmdPoolInit returns the command to plan the initial mint of a pool
func GetCmdPoolInit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Plan the initialization of the configured pool",
		Long: `Validate the configured curve, fees and reserves against the deployment
constraints and print the initial pool token mint.

Example:
  $ pawswap pool init --curve-type stable --curve-parameter 100 --reserve-a 1000000 --reserve-b 1000000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientCtx, pool, err := getQuoteContext(cmd)
			if err != nil {
				return err
			}
			mintSupply, err := cmd.Flags().GetUint64(FlagPoolMintSupply)
			if err != nil {
				return err
			}

			plan, err := clientCtx.Keeper.Initialize(cmd.Context(), types.InitializeRequest{
				Curve:          pool.Curve,
				Fees:           pool.Fees,
				FeeOwner:       clientCtx.Config.Pool.FeeOwner,
				ReserveA:       pool.ReserveA,
				ReserveB:       pool.ReserveB,
				PoolMintSupply: mintSupply,
			})
			if err != nil {
				return err
			}

			return clientCtx.PrintObject(cmd, plan)
		},
	}

	cmd.Flags().String(FlagFeeOwner, "", "Owner of the pool's fee account")
	cmd.Flags().Uint64(FlagPoolMintSupply, 0, "Current supply of the pool token mint")
	AddPoolFlagsToCmd(cmd.Flags())
	return cmd
}

// GetCmdPoolCheck returns the command to run the pool checks
func GetCmdPoolCheck() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check the configured pool snapshot for broken state",
		Long: `Run every static check on the configured pool snapshot. The command exits
with an error when any check fails.

Example:
  $ pawswap pool check --reserve-a 1000 --reserve-b 0 --pool-supply 1000000000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientCtx, pool, err := getQuoteContext(cmd)
			if err != nil {
				return err
			}

			msg, broken := clientCtx.Keeper.CheckPool(cmd.Context(), pool)
			if err := clientCtx.PrintObject(cmd, PoolCheckOutput{Broken: broken, Message: msg}); err != nil {
				return err
			}
			if broken {
				return ErrPoolBroken
			}
			return nil
		},
	}

	AddPoolFlagsToCmd(cmd.Flags())
	return cmd
}

// GetCurvesCmd returns the command listing the supported curve types
func GetCurvesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "curves",
		Short: "List the supported curve types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientCtx, err := GetClientContext(cmd)
			if err != nil {
				return err
			}

			constraints := clientCtx.Keeper.Constraints()
			curves := make([]CurveOutput, 0, len(types.AllCurveTypes()))
			for _, curveType := range types.AllCurveTypes() {
				curves = append(curves, CurveOutput{
					Name:           curveType.String(),
					Discriminant:   uint8(curveType),
					Parameter:      curveType.ParameterName(),
					AllowsDeposits: curve.SupportsDeposits(curveType),
					Allowed:        constraints.ValidateCurve(curveType) == nil,
				})
			}

			return clientCtx.PrintObject(cmd, curves)
		},
	}
}
