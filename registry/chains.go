// Package registry holds the static catalog of supported chains, bridge
// protocols and their deployments, with pure lookup operations and no I/O.
package registry

import (
	"math/big"

	"github.com/chainflow/bridge-router/bridge"
)

// ChainConfig static metadata of one supported test network.
type ChainConfig struct {
	ChainID         bridge.ChainID
	Name            string
	NetworkID       uint64
	NativeSymbol    string
	WrappedNative   string
	RollupOf        bridge.ChainID // settlement chain if optimistic rollup, else empty
	ChallengeWindow uint64         // hours, only meaningful for optimistic rollups
	BlockTime       uint64         // seconds, approximate
	// DefaultGasPrice is the fallback when live fee data is unavailable.
	DefaultGasPrice *big.Int // wei
}

// IsOptimisticRollup is chain an optimistic rollup L2
func (c *ChainConfig) IsOptimisticRollup() bool {
	return c.RollupOf != ""
}

func gwei(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e9))
}

func mgwei(n int64) *big.Int { // milli-gwei
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e6))
}

var defaultChainConfigs = []*ChainConfig{
	{
		ChainID:         bridge.ChainEthereum,
		Name:            "Ethereum Sepolia",
		NetworkID:       11155111,
		NativeSymbol:    "ETH",
		WrappedNative:   "WETH",
		BlockTime:       12,
		DefaultGasPrice: gwei(10),
	},
	{
		ChainID:         bridge.ChainArbitrum,
		Name:            "Arbitrum Sepolia",
		NetworkID:       421614,
		NativeSymbol:    "ETH",
		WrappedNative:   "WETH",
		RollupOf:        bridge.ChainEthereum,
		ChallengeWindow: 7 * 24,
		BlockTime:       1,
		DefaultGasPrice: mgwei(100),
	},
	{
		ChainID:         bridge.ChainOptimism,
		Name:            "OP Sepolia",
		NetworkID:       11155420,
		NativeSymbol:    "ETH",
		WrappedNative:   "WETH",
		RollupOf:        bridge.ChainEthereum,
		ChallengeWindow: 7 * 24,
		BlockTime:       2,
		DefaultGasPrice: mgwei(50),
	},
	{
		ChainID:         bridge.ChainBase,
		Name:            "Base Sepolia",
		NetworkID:       84532,
		NativeSymbol:    "ETH",
		WrappedNative:   "WETH",
		RollupOf:        bridge.ChainEthereum,
		ChallengeWindow: 7 * 24,
		BlockTime:       2,
		DefaultGasPrice: mgwei(50),
	},
	{
		ChainID:         bridge.ChainPolygon,
		Name:            "Polygon Amoy",
		NetworkID:       80002,
		NativeSymbol:    "POL",
		WrappedNative:   "WPOL",
		BlockTime:       2,
		DefaultGasPrice: gwei(30),
	},
	{
		ChainID:         bridge.ChainAvalanche,
		Name:            "Avalanche Fuji",
		NetworkID:       43113,
		NativeSymbol:    "AVAX",
		WrappedNative:   "WAVAX",
		BlockTime:       2,
		DefaultGasPrice: gwei(25),
	},
	{
		ChainID:         bridge.ChainBSC,
		Name:            "BSC Testnet",
		NetworkID:       97,
		NativeSymbol:    "BNB",
		WrappedNative:   "WBNB",
		BlockTime:       3,
		DefaultGasPrice: gwei(10),
	},
}

// GetChainConfig get chain config of specified chain (nil if unsupported)
func (r *Registry) GetChainConfig(chainID bridge.ChainID) *ChainConfig {
	return r.chainConfigs[chainID]
}

// IsRollupToSettlement is (source, target) an optimistic rollup withdrawing
// to its own settlement chain. This is a structural property of the chain
// pair, not something inferred from events.
func (r *Registry) IsRollupToSettlement(source, target bridge.ChainID) bool {
	srcCfg := r.GetChainConfig(source)
	return srcCfg != nil && srcCfg.IsOptimisticRollup() && srcCfg.RollupOf == target
}
