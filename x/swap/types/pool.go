package types

// Pool is a snapshot of a pool's configuration and balances, supplied by the
// custody layer for a single operation.
type Pool struct {
	Curve      CurveInput `json:"curve" yaml:"curve"`
	Fees       Fees       `json:"fees" yaml:"fees"`
	ReserveA   uint64     `json:"reserve_a" yaml:"reserve_a"`
	ReserveB   uint64     `json:"reserve_b" yaml:"reserve_b"`
	PoolSupply uint64     `json:"pool_supply" yaml:"pool_supply"`
}

// Validate checks the static configuration of the pool.
func (p Pool) Validate() error {
	if !p.Curve.CurveType.IsValid() {
		return ErrUnsupportedCurveType.Wrapf("curve type %d", uint8(p.Curve.CurveType))
	}
	return p.Fees.Validate()
}

// Reserves returns the reserves as checked integers.
func (p Pool) Reserves() (Uint, Uint) {
	return NewUint(p.ReserveA), NewUint(p.ReserveB)
}

// SwapReserves orders the reserves as (source, destination) for a direction.
func (p Pool) SwapReserves(direction TradeDirection) (Uint, Uint) {
	a, b := p.Reserves()
	if direction == BtoA {
		return b, a
	}
	return a, b
}

// Supply returns the pool token supply as a checked integer.
func (p Pool) Supply() Uint {
	return NewUint(p.PoolSupply)
}

// WithBalances returns a copy of p with new reserves and supply.
func (p Pool) WithBalances(reserveA, reserveB, poolSupply uint64) Pool {
	p.ReserveA = reserveA
	p.ReserveB = reserveB
	p.PoolSupply = poolSupply
	return p
}

// InitializeRequest describes a new pool.
type InitializeRequest struct {
	Curve    CurveInput `json:"curve" yaml:"curve"`
	Fees     Fees       `json:"fees" yaml:"fees"`
	FeeOwner string     `json:"fee_owner" yaml:"fee_owner"`
	ReserveA uint64     `json:"reserve_a" yaml:"reserve_a"`
	ReserveB uint64     `json:"reserve_b" yaml:"reserve_b"`
	// PoolMintSupply is the current supply of the pool token mint and must
	// be zero.
	PoolMintSupply uint64 `json:"pool_mint_supply" yaml:"pool_mint_supply"`
}

// InitializePlan is the result of initializing a pool.
type InitializePlan struct {
	PoolTokensMinted uint64 `json:"pool_tokens_minted" yaml:"pool_tokens_minted"`
	Pool             Pool   `json:"pool" yaml:"pool"`
}

// SwapRequest asks to trade AmountIn of the source token.
type SwapRequest struct {
	AmountIn         uint64         `json:"amount_in" yaml:"amount_in"`
	MinimumAmountOut uint64         `json:"minimum_amount_out" yaml:"minimum_amount_out"`
	Direction        TradeDirection `json:"direction" yaml:"direction"`
	// HostFeeEnabled routes the host share of the owner fee to a host
	// account.
	HostFeeEnabled bool `json:"host_fee_enabled" yaml:"host_fee_enabled"`
}

// SwapPlan lists every effect of a swap.
type SwapPlan struct {
	Direction TradeDirection `json:"direction" yaml:"direction"`
	// AmountIn is taken from the trader, fees included.
	AmountIn  uint64 `json:"amount_in" yaml:"amount_in"`
	AmountOut uint64 `json:"amount_out" yaml:"amount_out"`
	TradeFee  uint64 `json:"trade_fee" yaml:"trade_fee"`
	OwnerFee  uint64 `json:"owner_fee" yaml:"owner_fee"`
	// OwnerFeePoolTokens and HostFeePoolTokens are minted to the owner and
	// host fee accounts.
	OwnerFeePoolTokens uint64 `json:"owner_fee_pool_tokens" yaml:"owner_fee_pool_tokens"`
	HostFeePoolTokens  uint64 `json:"host_fee_pool_tokens" yaml:"host_fee_pool_tokens"`
	Pool               Pool   `json:"pool" yaml:"pool"`
}

// DepositAllRequest asks to mint PoolTokenAmount against both tokens.
type DepositAllRequest struct {
	PoolTokenAmount     uint64 `json:"pool_token_amount" yaml:"pool_token_amount"`
	MaximumTokenAAmount uint64 `json:"maximum_token_a_amount" yaml:"maximum_token_a_amount"`
	MaximumTokenBAmount uint64 `json:"maximum_token_b_amount" yaml:"maximum_token_b_amount"`
}

// WithdrawAllRequest asks to burn PoolTokenAmount for both tokens.
type WithdrawAllRequest struct {
	PoolTokenAmount     uint64 `json:"pool_token_amount" yaml:"pool_token_amount"`
	MinimumTokenAAmount uint64 `json:"minimum_token_a_amount" yaml:"minimum_token_a_amount"`
	MinimumTokenBAmount uint64 `json:"minimum_token_b_amount" yaml:"minimum_token_b_amount"`
	// FromFeeAccount exempts the owner's own fee account from the withdraw
	// fee.
	FromFeeAccount bool `json:"from_fee_account" yaml:"from_fee_account"`
}

// DepositSingleRequest deposits SourceAmount of one token.
type DepositSingleRequest struct {
	SourceAmount           uint64         `json:"source_amount" yaml:"source_amount"`
	MinimumPoolTokenAmount uint64         `json:"minimum_pool_token_amount" yaml:"minimum_pool_token_amount"`
	Token                  TradeDirection `json:"token" yaml:"token"`
}

// WithdrawSingleRequest withdraws exactly DestinationAmount of one token.
type WithdrawSingleRequest struct {
	DestinationAmount      uint64         `json:"destination_amount" yaml:"destination_amount"`
	MaximumPoolTokenAmount uint64         `json:"maximum_pool_token_amount" yaml:"maximum_pool_token_amount"`
	Token                  TradeDirection `json:"token" yaml:"token"`
	FromFeeAccount         bool           `json:"from_fee_account" yaml:"from_fee_account"`
}

// DepositPlan lists the effects of a deposit.
type DepositPlan struct {
	TokenAAmount     uint64 `json:"token_a_amount" yaml:"token_a_amount"`
	TokenBAmount     uint64 `json:"token_b_amount" yaml:"token_b_amount"`
	PoolTokensMinted uint64 `json:"pool_tokens_minted" yaml:"pool_tokens_minted"`
	Pool             Pool   `json:"pool" yaml:"pool"`
}

// WithdrawPlan lists the effects of a withdrawal. WithdrawFeePoolTokens
// move to the owner fee account; PoolTokensBurned leave the supply.
type WithdrawPlan struct {
	TokenAAmount          uint64 `json:"token_a_amount" yaml:"token_a_amount"`
	TokenBAmount          uint64 `json:"token_b_amount" yaml:"token_b_amount"`
	PoolTokensBurned      uint64 `json:"pool_tokens_burned" yaml:"pool_tokens_burned"`
	WithdrawFeePoolTokens uint64 `json:"withdraw_fee_pool_tokens" yaml:"withdraw_fee_pool_tokens"`
	Pool                  Pool   `json:"pool" yaml:"pool"`
}
