package types

const (
	// ModuleName defines the module name
	ModuleName = "swap"

	// InitialSwapPoolAmount is the pool token supply minted on the first
	// deposit into a pool, shared by every curve kind.
	InitialSwapPoolAmount uint64 = 1_000_000_000

	// MinAmp and MaxAmp bound the stable curve amplification coefficient.
	MinAmp uint64 = 1
	MaxAmp uint64 = 1_000_000
)
