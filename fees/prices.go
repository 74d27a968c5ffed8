package fees

import (
	"context"
	"sync"

	"github.com/chainflow/bridge-router/bridge"
)

// test networks have no market, so USD conversion uses the mainnet price of
// the corresponding native token, overridable in config
var defaultNativePricesUSD = map[bridge.ChainID]float64{
	bridge.ChainEthereum:  2500,
	bridge.ChainArbitrum:  2500,
	bridge.ChainOptimism:  2500,
	bridge.ChainBase:      2500,
	bridge.ChainPolygon:   0.5,
	bridge.ChainAvalanche: 30,
	bridge.ChainBSC:       600,
}

// StaticPriceSource is a PriceSource backed by a configured price table.
type StaticPriceSource struct {
	mu     sync.RWMutex
	prices map[bridge.ChainID]float64
}

// ensure StaticPriceSource impl bridge.PriceSource
var _ bridge.PriceSource = &StaticPriceSource{}

// NewStaticPriceSource new static price source with default prices
func NewStaticPriceSource() *StaticPriceSource {
	prices := make(map[bridge.ChainID]float64, len(defaultNativePricesUSD))
	for chainID, price := range defaultNativePricesUSD {
		prices[chainID] = price
	}
	return &StaticPriceSource{prices: prices}
}

// SetPrice set native token price of specified chain
func (s *StaticPriceSource) SetPrice(chainID bridge.ChainID, priceUSD float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prices[chainID] = priceUSD
}

// NativeTokenPriceUSD impl
func (s *StaticPriceSource) NativeTokenPriceUSD(_ context.Context, chainID bridge.ChainID) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	price, ok := s.prices[chainID]
	if !ok {
		return 0, bridge.ErrChainUnsupported
	}
	return price, nil
}
