package cli

import (
	"fmt"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/x/swap/types"
)

// NormalizedValueOutput is the printed result of quote normalized-value.
type NormalizedValueOutput struct {
	CurveType       types.CurveType `json:"curve_type" yaml:"curve_type"`
	NormalizedValue string          `json:"normalized_value" yaml:"normalized_value"`
}

// GetQuoteCmd returns the quote commands. Each one plans an operation
// against the configured pool snapshot without changing anything.
func GetQuoteCmd() *cobra.Command {
	quoteCmd := &cobra.Command{
		Use:                        "quote",
		Short:                      "Quote pool operations against a pool snapshot",
		SuggestionsMinimumDistance: 2,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	quoteCmd.AddCommand(
		GetCmdQuoteSwap(),
		GetCmdQuoteDeposit(),
		GetCmdQuoteWithdraw(),
		GetCmdQuoteDepositSingle(),
		GetCmdQuoteWithdrawSingle(),
		GetCmdQuoteNormalizedValue(),
	)

	return quoteCmd
}

// GetCmdQuoteSwap returns the command to quote a swap
func GetCmdQuoteSwap() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "swap [amount] [a-to-b|b-to-a]",
		Short: "Quote a swap of an exact input amount",
		Long: `Quote a swap of an exact input amount, fees included, against the
configured pool.

Example:
  $ pawswap quote swap 1000 a-to-b --reserve-a 1000000 --reserve-b 1000000 --pool-supply 1000000000
  $ pawswap quote swap 1000 b-to-a --min-amount-out 990 --trade-fee 25/10000`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, pool, err := getQuoteContext(cmd)
			if err != nil {
				return err
			}

			amountIn, err := parseAmount("amount", args[0])
			if err != nil {
				return err
			}
			direction, err := types.ParseTradeDirection(args[1])
			if err != nil {
				return err
			}
			minAmountOut, err := cmd.Flags().GetUint64(FlagMinAmountOut)
			if err != nil {
				return err
			}
			hostFeeEnabled, err := cmd.Flags().GetBool(FlagHostFeeEnabled)
			if err != nil {
				return err
			}

			plan, err := clientCtx.Keeper.Swap(cmd.Context(), pool, types.SwapRequest{
				AmountIn:         amountIn,
				MinimumAmountOut: minAmountOut,
				Direction:        direction,
				HostFeeEnabled:   hostFeeEnabled,
			})
			if err != nil {
				return err
			}

			return clientCtx.PrintObject(cmd, plan)
		},
	}

	cmd.Flags().Uint64(FlagMinAmountOut, 0, "Minimum destination amount")
	cmd.Flags().Bool(FlagHostFeeEnabled, false, "Route the host share of the owner fee to a host account")
	AddPoolFlagsToCmd(cmd.Flags())
	return cmd
}

// GetCmdQuoteDeposit returns the command to quote a two-sided deposit
func GetCmdQuoteDeposit() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit [pool-tokens]",
		Short: "Quote the token amounts needed to mint pool tokens",
		Long: `Quote the token A and token B amounts needed to mint an exact number of
pool tokens. Amounts round up.

Example:
  $ pawswap quote deposit 1000000 --max-token-a 1000 --max-token-b 1000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, pool, err := getQuoteContext(cmd)
			if err != nil {
				return err
			}

			poolTokens, err := parseAmount("pool-tokens", args[0])
			if err != nil {
				return err
			}
			maxA, maxB, err := getBounds(cmd, FlagMaxTokenA, FlagMaxTokenB)
			if err != nil {
				return err
			}

			plan, err := clientCtx.Keeper.DepositAllTokenTypes(cmd.Context(), pool, types.DepositAllRequest{
				PoolTokenAmount:     poolTokens,
				MaximumTokenAAmount: maxA,
				MaximumTokenBAmount: maxB,
			})
			if err != nil {
				return err
			}

			return clientCtx.PrintObject(cmd, plan)
		},
	}

	cmd.Flags().Uint64(FlagMaxTokenA, ^uint64(0), "Maximum token A to deposit")
	cmd.Flags().Uint64(FlagMaxTokenB, ^uint64(0), "Maximum token B to deposit")
	AddPoolFlagsToCmd(cmd.Flags())
	return cmd
}

// GetCmdQuoteWithdraw returns the command to quote a two-sided withdrawal
func GetCmdQuoteWithdraw() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw [pool-tokens]",
		Short: "Quote the token amounts returned for burning pool tokens",
		Long: `Quote the token A and token B amounts returned for burning pool tokens,
after the owner withdraw fee. Amounts round down.

Example:
  $ pawswap quote withdraw 1000000 --min-token-a 900 --min-token-b 900`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, pool, err := getQuoteContext(cmd)
			if err != nil {
				return err
			}

			poolTokens, err := parseAmount("pool-tokens", args[0])
			if err != nil {
				return err
			}
			minA, minB, err := getBounds(cmd, FlagMinTokenA, FlagMinTokenB)
			if err != nil {
				return err
			}
			fromFeeAccount, err := cmd.Flags().GetBool(FlagFromFeeAccount)
			if err != nil {
				return err
			}

			plan, err := clientCtx.Keeper.WithdrawAllTokenTypes(cmd.Context(), pool, types.WithdrawAllRequest{
				PoolTokenAmount:     poolTokens,
				MinimumTokenAAmount: minA,
				MinimumTokenBAmount: minB,
				FromFeeAccount:      fromFeeAccount,
			})
			if err != nil {
				return err
			}

			return clientCtx.PrintObject(cmd, plan)
		},
	}

	cmd.Flags().Uint64(FlagMinTokenA, 0, "Minimum token A to receive")
	cmd.Flags().Uint64(FlagMinTokenB, 0, "Minimum token B to receive")
	cmd.Flags().Bool(FlagFromFeeAccount, false, "Withdraw from the owner fee account, which pays no withdraw fee")
	AddPoolFlagsToCmd(cmd.Flags())
	return cmd
}

// GetCmdQuoteDepositSingle returns the command to quote a single-token deposit
func GetCmdQuoteDepositSingle() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deposit-single [amount] [a|b]",
		Short: "Quote the pool tokens minted for depositing one token",
		Long: `Quote the pool tokens minted for depositing an exact amount of token A or
token B. Half of the amount is charged trading fees.

Example:
  $ pawswap quote deposit-single 1000 a --min-pool-tokens 400000`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, pool, err := getQuoteContext(cmd)
			if err != nil {
				return err
			}

			amount, err := parseAmount("amount", args[0])
			if err != nil {
				return err
			}
			token, err := types.ParseTradeDirection(args[1])
			if err != nil {
				return err
			}
			minPoolTokens, err := cmd.Flags().GetUint64(FlagMinPoolTokens)
			if err != nil {
				return err
			}

			plan, err := clientCtx.Keeper.DepositSingleTokenTypeExactAmountIn(cmd.Context(), pool, types.DepositSingleRequest{
				SourceAmount:           amount,
				MinimumPoolTokenAmount: minPoolTokens,
				Token:                  token,
			})
			if err != nil {
				return err
			}

			return clientCtx.PrintObject(cmd, plan)
		},
	}

	cmd.Flags().Uint64(FlagMinPoolTokens, 0, "Minimum pool tokens to mint")
	AddPoolFlagsToCmd(cmd.Flags())
	return cmd
}

// GetCmdQuoteWithdrawSingle returns the command to quote an exact-out
// single-token withdrawal
func GetCmdQuoteWithdrawSingle() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "withdraw-single [amount] [a|b]",
		Short: "Quote the pool tokens burned to withdraw an exact amount of one token",
		Long: `Quote the pool tokens burned, owner withdraw fee included, to withdraw
exactly the given amount of token A or token B.

Example:
  $ pawswap quote withdraw-single 1000 b --max-pool-tokens 600000`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			clientCtx, pool, err := getQuoteContext(cmd)
			if err != nil {
				return err
			}

			amount, err := parseAmount("amount", args[0])
			if err != nil {
				return err
			}
			token, err := types.ParseTradeDirection(args[1])
			if err != nil {
				return err
			}
			maxPoolTokens, err := cmd.Flags().GetUint64(FlagMaxPoolTokens)
			if err != nil {
				return err
			}
			fromFeeAccount, err := cmd.Flags().GetBool(FlagFromFeeAccount)
			if err != nil {
				return err
			}

			plan, err := clientCtx.Keeper.WithdrawSingleTokenTypeExactAmountOut(cmd.Context(), pool, types.WithdrawSingleRequest{
				DestinationAmount:      amount,
				MaximumPoolTokenAmount: maxPoolTokens,
				Token:                  token,
				FromFeeAccount:         fromFeeAccount,
			})
			if err != nil {
				return err
			}

			return clientCtx.PrintObject(cmd, plan)
		},
	}

	cmd.Flags().Uint64(FlagMaxPoolTokens, ^uint64(0), "Maximum pool tokens to burn")
	cmd.Flags().Bool(FlagFromFeeAccount, false, "Withdraw from the owner fee account, which pays no withdraw fee")
	AddPoolFlagsToCmd(cmd.Flags())
	return cmd
}

// GetCmdQuoteNormalizedValue returns the command to value the pool reserves
func GetCmdQuoteNormalizedValue() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "normalized-value",
		Short: "Value the pool reserves with the pool's curve",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientCtx, pool, err := getQuoteContext(cmd)
			if err != nil {
				return err
			}

			value, err := clientCtx.Keeper.NormalizedValue(cmd.Context(), pool)
			if err != nil {
				return err
			}

			return clientCtx.PrintObject(cmd, NormalizedValueOutput{
				CurveType:       pool.Curve.CurveType,
				NormalizedValue: value.String(),
			})
		},
	}

	AddPoolFlagsToCmd(cmd.Flags())
	return cmd
}

func getQuoteContext(cmd *cobra.Command) (ClientContext, types.Pool, error) {
	clientCtx, err := GetClientContext(cmd)
	if err != nil {
		return ClientContext{}, types.Pool{}, err
	}
	pool, err := clientCtx.Config.Pool.Pool()
	if err != nil {
		return ClientContext{}, types.Pool{}, fmt.Errorf("invalid pool config: %w", err)
	}
	return clientCtx, pool, nil
}

func getBounds(cmd *cobra.Command, flagA, flagB string) (uint64, uint64, error) {
	a, err := cmd.Flags().GetUint64(flagA)
	if err != nil {
		return 0, 0, err
	}
	b, err := cmd.Flags().GetUint64(flagB)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

// parseAmount parses a non-negative token amount argument.
func parseAmount(name, arg string) (uint64, error) {
	amount, err := cast.ToUint64E(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, arg, err)
	}
	return amount, nil
}
