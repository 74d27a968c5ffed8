// Package fees implements the bridge fee model: live per-chain gas queries
// combined with fixed per-leg gas unit estimates and protocol fee formulas.
package fees

import (
	"context"
	"math/big"

	"golang.org/x/exp/slices"

	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/log"
	"github.com/chainflow/bridge-router/registry"
)

// Urgency of the source chain deposit leg.
type Urgency string

// urgency levels
const (
	UrgencyEconomy  Urgency = "economy"
	UrgencyStandard Urgency = "standard"
	UrgencyFast     Urgency = "fast"
)

// multiplier of the source chain deposit leg cost, in percent
func (u Urgency) multiplierPercent() int64 {
	switch u {
	case UrgencyEconomy:
		return 80
	case UrgencyFast:
		return 150
	default:
		return 100
	}
}

// Fixed per-operation gas unit estimates for the bridge legs. Pre-execution
// gas estimation against a bridge contract the caller does not control is
// unreliable, so these are protocol agnostic constants, not measured per call.
const (
	depositGasUnits  = 150_000
	relayGasUnits    = 200_000
	relayerGasUnits  = 50_000
	finalizeGasUnits = 300_000
)

// EstimateArgs input of one fee estimation.
type EstimateArgs struct {
	Source   bridge.ChainID
	Target   bridge.ChainID
	Asset    string
	Amount   float64
	Protocol bridge.ProtocolID // optional, empty means the first deployed protocol
	Urgency  Urgency
}

// Result is a full estimate with the informational comparison set.
type Result struct {
	Estimate           *bridge.FeeEstimate   `json:"estimate"`
	AlternativeBridges []*bridge.FeeEstimate `json:"alternativeBridges,omitempty"`
}

// Model computes bridge transfer cost estimates.
type Model struct {
	registry *registry.Registry
	prices   bridge.PriceSource

	// ProviderFunc resolves the chain provider, swappable in tests.
	ProviderFunc func(bridge.ChainID) (bridge.EVMProvider, error)
}

// NewModel new fee model
func NewModel(reg *registry.Registry, prices bridge.PriceSource, providerFunc func(bridge.ChainID) (bridge.EVMProvider, error)) *Model {
	return &Model{
		registry:     reg,
		prices:       prices,
		ProviderFunc: providerFunc,
	}
}

type gasPriceResult struct {
	chainID  bridge.ChainID
	gasPrice *big.Int
	err      error
}

// queryGasPrice gets the live gas price of one chain, falling back to the
// chain's configured default. Only when both are unavailable it errors.
func (m *Model) queryGasPrice(ctx context.Context, chainID bridge.ChainID) gasPriceResult {
	var live *big.Int
	provider, err := m.ProviderFunc(chainID)
	if err == nil {
		feeData, errf := provider.GetFeeData(ctx)
		if errf == nil && feeData.GasPrice != nil && feeData.GasPrice.Sign() > 0 {
			live = feeData.GasPrice
		} else {
			log.Warn("query live gas price failed", "chainID", chainID, "err", errf)
		}
	}
	if live != nil {
		return gasPriceResult{chainID: chainID, gasPrice: live}
	}
	chainCfg := m.registry.GetChainConfig(chainID)
	if chainCfg != nil && chainCfg.DefaultGasPrice != nil && chainCfg.DefaultGasPrice.Sign() > 0 {
		return gasPriceResult{chainID: chainID, gasPrice: new(big.Int).Set(chainCfg.DefaultGasPrice)}
	}
	// never fabricate a zero fee
	return gasPriceResult{chainID: chainID, err: bridge.ErrFeeUnavailable}
}

// Estimate computes the fee estimate for args plus the informational
// alternative protocol comparison set sorted ascending by USD cost.
func (m *Model) Estimate(ctx context.Context, args *EstimateArgs) (*Result, error) {
	if !args.Source.IsSupported() || !args.Target.IsSupported() {
		return nil, bridge.ErrChainUnsupported
	}
	if args.Source == args.Target {
		return nil, bridge.ErrSameChain
	}

	edges := m.registry.EdgesBetween(args.Source, args.Target)

	protocol := args.Protocol
	if protocol == "" {
		if len(edges) > 0 {
			protocol = edges[0].Protocol
		} else {
			protocol = bridge.ProtocolCanonical
		}
	}

	// source and destination gas prices touch unrelated chains and have no
	// ordering dependency, query them concurrently
	srcCh := make(chan gasPriceResult, 1)
	dstCh := make(chan gasPriceResult, 1)
	go func() { srcCh <- m.queryGasPrice(ctx, args.Source) }()
	go func() { dstCh <- m.queryGasPrice(ctx, args.Target) }()
	srcRes, dstRes := <-srcCh, <-dstCh

	if srcRes.err != nil {
		return nil, srcRes.err
	}
	if dstRes.err != nil {
		return nil, dstRes.err
	}

	srcPriceUSD, err := m.prices.NativeTokenPriceUSD(ctx, args.Source)
	if err != nil {
		return nil, err
	}
	dstPriceUSD, err := m.prices.NativeTokenPriceUSD(ctx, args.Target)
	if err != nil {
		return nil, err
	}

	estimate := m.estimateWithGas(args, protocol, srcRes.gasPrice, dstRes.gasPrice, srcPriceUSD, dstPriceUSD)

	result := &Result{Estimate: estimate}
	for _, edge := range edges {
		if edge.Protocol == protocol {
			continue
		}
		alt := m.estimateWithGas(args, edge.Protocol, srcRes.gasPrice, dstRes.gasPrice, srcPriceUSD, dstPriceUSD)
		result.AlternativeBridges = append(result.AlternativeBridges, alt)
	}
	slices.SortStableFunc(result.AlternativeBridges, func(a, b *bridge.FeeEstimate) bool {
		return a.TotalFeeUSD < b.TotalFeeUSD
	})
	return result, nil
}

//nolint:funlen // fee aggregation is one linear computation
func (m *Model) estimateWithGas(args *EstimateArgs, protocol bridge.ProtocolID, srcGasPrice, dstGasPrice *big.Int, srcPriceUSD, dstPriceUSD float64) *bridge.FeeEstimate {
	urgency := args.Urgency
	if urgency == "" {
		urgency = UrgencyStandard
	}

	sourceGas := new(big.Int).Mul(srcGasPrice, big.NewInt(depositGasUnits))
	sourceGas.Mul(sourceGas, big.NewInt(urgency.multiplierPercent()))
	sourceGas.Div(sourceGas, big.NewInt(100))

	targetGas := new(big.Int).Mul(dstGasPrice, big.NewInt(relayGasUnits))
	relayerFee := new(big.Int).Mul(dstGasPrice, big.NewInt(relayerGasUnits))

	// the only asymmetric case: an optimistic rollup withdrawing to its L1
	// needs a second finalization transaction on the settlement chain
	var finalizationCost *big.Int
	if m.registry.IsRollupToSettlement(args.Source, args.Target) {
		finalizationCost = new(big.Int).Mul(dstGasPrice, big.NewInt(finalizeGasUnits))
	}

	feeStructure := m.registry.ProtocolFeeStructure(protocol, args.Source, args.Target)
	protocolFeeUSD := (feeStructure.Base + feeStructure.Percentage/100*args.Amount) * assetPriceUSD(args.Asset, srcPriceUSD)
	protocolFee := usdToWei(protocolFeeUSD, srcPriceUSD)

	totalFee := new(big.Int).Set(sourceGas)
	totalFee.Add(totalFee, convertWei(targetGas, dstPriceUSD, srcPriceUSD))
	totalFee.Add(totalFee, convertWei(relayerFee, dstPriceUSD, srcPriceUSD))
	if finalizationCost != nil {
		totalFee.Add(totalFee, convertWei(finalizationCost, dstPriceUSD, srcPriceUSD))
	}
	totalFee.Add(totalFee, protocolFee)

	return &bridge.FeeEstimate{
		Protocol:         protocol,
		SourceChainGas:   sourceGas,
		TargetChainGas:   targetGas,
		RelayerFee:       relayerFee,
		ProtocolFee:      protocolFee,
		FinalizationCost: finalizationCost,
		TotalFee:         totalFee,
		TotalFeeUSD:      weiToUSD(totalFee, srcPriceUSD),
	}
}

// assetPriceUSD approximates the transferred asset's USD price. Stable
// assets are taken at one dollar, anything else at the source chain's
// native token price (address based assets fall back to native).
func assetPriceUSD(asset string, nativePriceUSD float64) float64 {
	switch asset {
	case "USDC", "USDT", "DAI", "nUSD":
		return 1.0
	default:
		return nativePriceUSD
	}
}

var weiPerEther = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

func weiToUSD(wei *big.Int, priceUSD float64) float64 {
	f := new(big.Float).SetInt(wei)
	f.Quo(f, weiPerEther)
	f.Mul(f, big.NewFloat(priceUSD))
	result, _ := f.Float64()
	return result
}

func usdToWei(usd float64, priceUSD float64) *big.Int {
	if priceUSD <= 0 {
		return big.NewInt(0)
	}
	f := big.NewFloat(usd)
	f.Quo(f, big.NewFloat(priceUSD))
	f.Mul(f, weiPerEther)
	result, _ := f.Int(nil)
	return result
}

// convertWei converts an amount of one chain's native wei into another
// chain's native wei through their USD prices.
func convertWei(wei *big.Int, fromPriceUSD, toPriceUSD float64) *big.Int {
	if fromPriceUSD == toPriceUSD || fromPriceUSD <= 0 || toPriceUSD <= 0 {
		return new(big.Int).Set(wei)
	}
	f := new(big.Float).SetInt(wei)
	f.Mul(f, big.NewFloat(fromPriceUSD))
	f.Quo(f, big.NewFloat(toPriceUSD))
	result, _ := f.Int(nil)
	return result
}
