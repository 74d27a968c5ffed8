package registry

import (
	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/common"
	"github.com/chainflow/bridge-router/log"
)

// FeeStructure per-protocol fee formula: base amount (in asset units of the
// transferred asset) plus a percentage of the transferred amount.
type FeeStructure struct {
	Base       float64
	Percentage float64
}

// conservativeFeeStructure is the explicit fallback for entirely unknown
// protocols. It must be non-trivial because downstream cost comparisons
// depend on unknown protocols not looking free.
var conservativeFeeStructure = FeeStructure{Base: 0, Percentage: 0.1}

var defaultFeeStructures = map[bridge.ProtocolID]FeeStructure{
	bridge.ProtocolCanonical: {Base: 0, Percentage: 0.05},
	bridge.ProtocolHop:       {Base: 0, Percentage: 0.25},
	bridge.ProtocolStargate:  {Base: 0, Percentage: 0.3},
	bridge.ProtocolAcross:    {Base: 0, Percentage: 0.12},
	bridge.ProtocolSynapse:   {Base: 0, Percentage: 0.2},
	bridge.ProtocolCeler:     {Base: 0, Percentage: 0.15},
}

// RouteKey identifies a directed chain pair.
type RouteKey struct {
	Source bridge.ChainID
	Target bridge.ChainID
}

// Registry is the static catalog of chains, edges and deployments.
// It is pure data with lookup operations and performs no I/O.
type Registry struct {
	chainConfigs map[bridge.ChainID]*ChainConfig
	edges        []*bridge.BridgeEdge
	deployments  map[DeploymentKey]common.Address
	feeDefaults  map[bridge.ProtocolID]FeeStructure
	feeOverrides map[DeploymentKey]FeeStructure
}

// NewDefault new registry with the built-in catalog
func NewDefault() *Registry {
	r := &Registry{
		chainConfigs: make(map[bridge.ChainID]*ChainConfig, len(defaultChainConfigs)),
		edges:        defaultEdges,
		deployments:  defaultDeployments,
		feeDefaults:  defaultFeeStructures,
		feeOverrides: make(map[DeploymentKey]FeeStructure),
	}
	for _, cfg := range defaultChainConfigs {
		r.chainConfigs[cfg.ChainID] = cfg
	}
	return r
}

// EdgesBetween returns every edge usable between chainA and chainB in fixed
// catalog order. An edge without a deployment entry for this directed pair
// is excluded. That is not an error, it means "not deployed on this network".
func (r *Registry) EdgesBetween(chainA, chainB bridge.ChainID) []*bridge.BridgeEdge {
	var result []*bridge.BridgeEdge
	for _, edge := range r.edges {
		if !edge.Connects(chainA, chainB) {
			continue
		}
		if _, deployed := r.deployments[dk(chainA, chainB, edge.Protocol)]; !deployed {
			continue
		}
		result = append(result, edge)
	}
	return result
}

// DeploymentAddress get the bridge entry contract on the source chain for a
// directed pair (ok is false when not deployed)
func (r *Registry) DeploymentAddress(source, target bridge.ChainID, protocol bridge.ProtocolID) (common.Address, bool) {
	address, ok := r.deployments[dk(source, target, protocol)]
	return address, ok
}

// ProtocolFeeStructure looks up the route specific override, falling back to
// the protocol default, falling back to a conservative non-trivial default
// for entirely unknown protocols.
func (r *Registry) ProtocolFeeStructure(protocol bridge.ProtocolID, source, target bridge.ChainID) FeeStructure {
	if fee, ok := r.feeOverrides[dk(source, target, protocol)]; ok {
		return fee
	}
	if fee, ok := r.feeDefaults[protocol]; ok {
		return fee
	}
	return conservativeFeeStructure
}

// SetFeeOverride set a route specific fee structure override
func (r *Registry) SetFeeOverride(source, target bridge.ChainID, protocol bridge.ProtocolID, fee FeeStructure) {
	if !source.IsSupported() || !target.IsSupported() {
		log.Warn("ignore fee override with unsupported chain", "source", source, "target", target, "protocol", protocol)
		return
	}
	r.feeOverrides[dk(source, target, protocol)] = fee
	log.Info("set fee override", "source", source, "target", target, "protocol", protocol, "base", fee.Base, "percentage", fee.Percentage)
}

// SetDeployment add or replace a deployment entry (config override)
func (r *Registry) SetDeployment(source, target bridge.ChainID, protocol bridge.ProtocolID, address common.Address) {
	if (address == common.Address{}) {
		// a placeholder address means "not deployed", drop the entry
		delete(r.deployments, dk(source, target, protocol))
		return
	}
	r.deployments[dk(source, target, protocol)] = address
}

// Edges all catalog edges in fixed order
func (r *Registry) Edges() []*bridge.BridgeEdge {
	return r.edges
}

// HubChains is the fixed ordered set of high-liquidity hub chains tried for
// multi-hop routes. Order is part of the planner's determinism contract.
var HubChains = []bridge.ChainID{
	bridge.ChainEthereum,
	bridge.ChainArbitrum,
	bridge.ChainPolygon,
}

// SupportsAssetWithFallback is asset accepted on edge, treating the source
// chain's native or wrapped native symbol as a fallback match.
func (r *Registry) SupportsAssetWithFallback(edge *bridge.BridgeEdge, source bridge.ChainID, asset string) bool {
	if edge.SupportsAsset(asset) {
		return true
	}
	srcCfg := r.GetChainConfig(source)
	if srcCfg == nil {
		return false
	}
	// address based assets fall back to the chain's wrapped native asset
	if common.IsHexAddress(asset) {
		return edge.SupportsAsset(srcCfg.WrappedNative) || edge.SupportsAsset(srcCfg.NativeSymbol)
	}
	if common.IsEqualIgnoreCase(asset, srcCfg.WrappedNative) {
		return edge.SupportsAsset(srcCfg.NativeSymbol)
	}
	if common.IsEqualIgnoreCase(asset, srcCfg.NativeSymbol) {
		return edge.SupportsAsset(srcCfg.WrappedNative)
	}
	return false
}
