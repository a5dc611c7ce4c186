package types

// SwapWithoutFeesResult is the raw output of a curve's invariant solve.
type SwapWithoutFeesResult struct {
	// SourceAmountSwapped may be less than the amount offered when the curve
	// cannot use all of it.
	SourceAmountSwapped      Uint `json:"source_amount_swapped" yaml:"source_amount_swapped"`
	DestinationAmountSwapped Uint `json:"destination_amount_swapped" yaml:"destination_amount_swapped"`
}

// SwapResult is the fee-inclusive outcome of a swap.
type SwapResult struct {
	NewSwapSourceAmount      Uint `json:"new_swap_source_amount" yaml:"new_swap_source_amount"`
	NewSwapDestinationAmount Uint `json:"new_swap_destination_amount" yaml:"new_swap_destination_amount"`
	// SourceAmountSwapped includes TradeFee and OwnerFee.
	SourceAmountSwapped      Uint `json:"source_amount_swapped" yaml:"source_amount_swapped"`
	DestinationAmountSwapped Uint `json:"destination_amount_swapped" yaml:"destination_amount_swapped"`
	TradeFee                 Uint `json:"trade_fee" yaml:"trade_fee"`
	OwnerFee                 Uint `json:"owner_fee" yaml:"owner_fee"`
}

// TotalFees returns TradeFee + OwnerFee.
func (r SwapResult) TotalFees() (Uint, error) {
	return r.TradeFee.Add(r.OwnerFee)
}

// TradingTokensResult is the pair of trading-token amounts that corresponds
// to a pool-token amount.
type TradingTokensResult struct {
	TokenAAmount Uint `json:"token_a_amount" yaml:"token_a_amount"`
	TokenBAmount Uint `json:"token_b_amount" yaml:"token_b_amount"`
}
