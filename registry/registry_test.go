package registry

import (
	"testing"

	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/common"
)

func TestEdgesBetween(t *testing.T) {
	reg := NewDefault()

	tests := []struct {
		source        bridge.ChainID
		target        bridge.ChainID
		wantProtocols []bridge.ProtocolID
	}{
		{
			source: bridge.ChainEthereum,
			target: bridge.ChainBase,
			// hop covers base in its chain set but has no deployment for
			// this pair, so it must not appear
			wantProtocols: []bridge.ProtocolID{bridge.ProtocolCanonical, bridge.ProtocolStargate, bridge.ProtocolAcross},
		},
		{
			source:        bridge.ChainAvalanche,
			target:        bridge.ChainBSC,
			wantProtocols: []bridge.ProtocolID{bridge.ProtocolSynapse, bridge.ProtocolCeler},
		},
		{
			source:        bridge.ChainBase,
			target:        bridge.ChainPolygon,
			wantProtocols: nil,
		},
	}

	for _, tt := range tests {
		edges := reg.EdgesBetween(tt.source, tt.target)
		if len(edges) != len(tt.wantProtocols) {
			t.Fatalf("EdgesBetween(%v, %v): have %v edges, want %v", tt.source, tt.target, len(edges), len(tt.wantProtocols))
		}
		for i, edge := range edges {
			if edge.Protocol != tt.wantProtocols[i] {
				t.Errorf("EdgesBetween(%v, %v)[%v]: have %v, want %v", tt.source, tt.target, i, edge.Protocol, tt.wantProtocols[i])
			}
		}
	}
}

func TestEdgesAreDirected(t *testing.T) {
	reg := NewDefault()

	// across is deployed base -> arbitrum but not arbitrum -> base
	if _, ok := reg.DeploymentAddress(bridge.ChainBase, bridge.ChainArbitrum, bridge.ProtocolAcross); !ok {
		t.Fatal("want across deployment for base -> arbitrum")
	}
	if _, ok := reg.DeploymentAddress(bridge.ChainArbitrum, bridge.ChainBase, bridge.ProtocolAcross); ok {
		t.Fatal("unexpected across deployment for arbitrum -> base")
	}

	forward := reg.EdgesBetween(bridge.ChainBase, bridge.ChainArbitrum)
	backward := reg.EdgesBetween(bridge.ChainArbitrum, bridge.ChainBase)
	if len(forward) == len(backward) {
		t.Errorf("want asymmetric edge sets, have %v edges both ways", len(forward))
	}
}

func TestSetDeployment(t *testing.T) {
	reg := NewDefault()

	address := common.HexToAddress("0x1111111111111111111111111111111111111111")
	reg.SetDeployment(bridge.ChainBase, bridge.ChainPolygon, bridge.ProtocolStargate, address)
	if have, ok := reg.DeploymentAddress(bridge.ChainBase, bridge.ChainPolygon, bridge.ProtocolStargate); !ok || have != address {
		t.Fatalf("deployment not set, have %v ok %v", have.Hex(), ok)
	}

	// a zero address removes the entry instead of storing a sentinel
	reg.SetDeployment(bridge.ChainBase, bridge.ChainPolygon, bridge.ProtocolStargate, common.Address{})
	if _, ok := reg.DeploymentAddress(bridge.ChainBase, bridge.ChainPolygon, bridge.ProtocolStargate); ok {
		t.Fatal("zero address should remove the deployment entry")
	}
}

func TestProtocolFeeStructure(t *testing.T) {
	reg := NewDefault()

	fee := reg.ProtocolFeeStructure(bridge.ProtocolHop, bridge.ChainEthereum, bridge.ChainArbitrum)
	if fee.Percentage != 0.25 {
		t.Errorf("hop default fee: have %v, want 0.25", fee.Percentage)
	}

	reg.SetFeeOverride(bridge.ChainEthereum, bridge.ChainArbitrum, bridge.ProtocolHop, FeeStructure{Base: 1, Percentage: 0.5})
	fee = reg.ProtocolFeeStructure(bridge.ProtocolHop, bridge.ChainEthereum, bridge.ChainArbitrum)
	if fee.Base != 1 || fee.Percentage != 0.5 {
		t.Errorf("hop fee override: have %+v", fee)
	}
	// override is route specific
	fee = reg.ProtocolFeeStructure(bridge.ProtocolHop, bridge.ChainArbitrum, bridge.ChainEthereum)
	if fee.Percentage != 0.25 {
		t.Errorf("reverse route fee: have %v, want 0.25", fee.Percentage)
	}

	// unknown protocols fall back to a non-trivial conservative default
	fee = reg.ProtocolFeeStructure("unknown", bridge.ChainEthereum, bridge.ChainArbitrum)
	if fee.Percentage <= 0 {
		t.Errorf("unknown protocol fee must not be free, have %+v", fee)
	}
}

func TestIsRollupToSettlement(t *testing.T) {
	reg := NewDefault()

	tests := []struct {
		source bridge.ChainID
		target bridge.ChainID
		want   bool
	}{
		{bridge.ChainArbitrum, bridge.ChainEthereum, true},
		{bridge.ChainOptimism, bridge.ChainEthereum, true},
		{bridge.ChainBase, bridge.ChainEthereum, true},
		{bridge.ChainEthereum, bridge.ChainArbitrum, false}, // deposit direction
		{bridge.ChainPolygon, bridge.ChainEthereum, false},  // not an optimistic rollup
		{bridge.ChainArbitrum, bridge.ChainOptimism, false}, // not its settlement chain
		{bridge.ChainBSC, bridge.ChainEthereum, false},
	}
	for _, tt := range tests {
		if have := reg.IsRollupToSettlement(tt.source, tt.target); have != tt.want {
			t.Errorf("IsRollupToSettlement(%v, %v): have %v, want %v", tt.source, tt.target, have, tt.want)
		}
	}
}

func TestSupportsAssetWithFallback(t *testing.T) {
	reg := NewDefault()
	canonicalArb := reg.EdgesBetween(bridge.ChainEthereum, bridge.ChainArbitrum)[0]

	tests := []struct {
		asset string
		want  bool
	}{
		{"ETH", true},
		{"USDC", true},
		{"WETH", true},
		{"DOGE", false},
		// address based assets fall back to the wrapped native asset
		{"0x7b79995e5f793A07Bc00c21412e50Ecae098E7f9", true},
	}
	for _, tt := range tests {
		if have := reg.SupportsAssetWithFallback(canonicalArb, bridge.ChainEthereum, tt.asset); have != tt.want {
			t.Errorf("SupportsAssetWithFallback(%q): have %v, want %v", tt.asset, have, tt.want)
		}
	}
}

func TestChainConfigs(t *testing.T) {
	reg := NewDefault()
	for _, chainID := range bridge.AllChainIDs {
		cfg := reg.GetChainConfig(chainID)
		if cfg == nil {
			t.Fatalf("missing chain config of %v", chainID)
		}
		if cfg.DefaultGasPrice == nil || cfg.DefaultGasPrice.Sign() <= 0 {
			t.Errorf("chain %v must have a positive default gas price", chainID)
		}
		if cfg.IsOptimisticRollup() && cfg.ChallengeWindow == 0 {
			t.Errorf("rollup %v must have a challenge window", chainID)
		}
	}
	if reg.GetChainConfig("solana") != nil {
		t.Error("unsupported chain should have no config")
	}
}
