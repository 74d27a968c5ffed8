// Package bridge defines the common types, interfaces and errors shared by
// the registry, fee model, route planner and transfer tracker.
package bridge

import (
	"math/big"

	mapset "github.com/deckarep/golang-set"
)

// ChainID identifies one of the supported test networks.
type ChainID string

// supported chains
const (
	ChainEthereum  ChainID = "ethereum"
	ChainArbitrum  ChainID = "arbitrum"
	ChainOptimism  ChainID = "optimism"
	ChainBase      ChainID = "base"
	ChainPolygon   ChainID = "polygon"
	ChainAvalanche ChainID = "avalanche"
	ChainBSC       ChainID = "bsc"
)

// AllChainIDs is the fixed enumerated set of supported networks.
// Iteration order matters for deterministic route discovery.
var AllChainIDs = []ChainID{
	ChainEthereum,
	ChainArbitrum,
	ChainOptimism,
	ChainBase,
	ChainPolygon,
	ChainAvalanche,
	ChainBSC,
}

// IsSupported is chain in the fixed enumerated set
func (c ChainID) IsSupported() bool {
	for _, chainID := range AllChainIDs {
		if c == chainID {
			return true
		}
	}
	return false
}

func (c ChainID) String() string { return string(c) }

// ProtocolID identifies a bridge protocol.
type ProtocolID string

// known protocols
const (
	ProtocolCanonical ProtocolID = "canonical"
	ProtocolHop       ProtocolID = "hop"
	ProtocolStargate  ProtocolID = "stargate"
	ProtocolAcross    ProtocolID = "across"
	ProtocolSynapse   ProtocolID = "synapse"
	ProtocolCeler     ProtocolID = "celer"
)

// AllProtocolIDs in fixed iteration order.
var AllProtocolIDs = []ProtocolID{
	ProtocolCanonical,
	ProtocolHop,
	ProtocolStargate,
	ProtocolAcross,
	ProtocolSynapse,
	ProtocolCeler,
}

func (p ProtocolID) String() string { return string(p) }

// Speed qualitative bridge speed category, not a numeric SLA.
type Speed uint8

// speed buckets, ordered fastest first
const (
	SpeedInstant Speed = iota
	SpeedFast
	SpeedStandard
	SpeedSlow
)

func (s Speed) String() string {
	switch s {
	case SpeedInstant:
		return "instant"
	case SpeedFast:
		return "fast"
	case SpeedStandard:
		return "standard"
	default:
		return "slow"
	}
}

// ParseSpeed parse speed bucket from string
func ParseSpeed(str string) (Speed, bool) {
	switch str {
	case "instant":
		return SpeedInstant, true
	case "fast":
		return SpeedFast, true
	case "standard":
		return SpeedStandard, true
	case "slow":
		return SpeedSlow, true
	}
	return SpeedStandard, false
}

// Security trust classification of a bridge.
type Security uint8

// security classes, ordered most trusted first
const (
	SecurityCanonical Security = iota
	SecurityOptimistic
	SecurityThirdParty
	SecurityMixed // aggregate of unequal hop classes
)

func (s Security) String() string {
	switch s {
	case SecurityCanonical:
		return "canonical"
	case SecurityOptimistic:
		return "optimistic"
	case SecurityThirdParty:
		return "third-party"
	default:
		return "mixed"
	}
}

// ParseSecurity parse security class from string
func ParseSecurity(str string) (Security, bool) {
	switch str {
	case "canonical":
		return SecurityCanonical, true
	case "optimistic":
		return SecurityOptimistic, true
	case "third-party":
		return SecurityThirdParty, true
	case "mixed":
		return SecurityMixed, true
	}
	return SecurityThirdParty, false
}

// Liquidity qualitative pooled liquidity class.
type Liquidity uint8

// liquidity classes
const (
	LiquidityHigh Liquidity = iota
	LiquidityMedium
	LiquidityLow
)

func (l Liquidity) String() string {
	switch l {
	case LiquidityHigh:
		return "high"
	case LiquidityMedium:
		return "medium"
	default:
		return "low"
	}
}

// BridgeEdge represents one protocol's support for transferring between
// the chains in its set. An edge is usable between any two members.
type BridgeEdge struct {
	Protocol        ProtocolID
	Chains          mapset.Set // of ChainID
	SupportedAssets mapset.Set // of asset symbol string
	Speed           Speed
	Security        Security
	Liquidity       Liquidity
	EstimatedTime   string
	FeePercent      float64
}

// Connects is the edge usable between chainA and chainB
func (e *BridgeEdge) Connects(chainA, chainB ChainID) bool {
	return chainA != chainB && e.Chains.Contains(chainA) && e.Chains.Contains(chainB)
}

// SupportsAsset is asset symbol supported (native wrapped asset accepted as fallback)
func (e *BridgeEdge) SupportsAsset(symbol string) bool {
	return e.SupportedAssets.Contains(symbol)
}

// RiskLevel flat risk classification of a route.
type RiskLevel string

// risk levels
const (
	RiskLow    RiskLevel = "lowRisk"
	RiskMedium RiskLevel = "mediumRisk"
	RiskHigh   RiskLevel = "highRisk"
)

// Route is the output of planning.
type Route struct {
	Path              []ChainID    `json:"path"`
	Bridges           []ProtocolID `json:"bridges"`
	EstimatedTime     string       `json:"estimatedTime"`
	EstimatedFeePct   float64      `json:"estimatedFeePercent"`
	Security          Security     `json:"-"`
	SecurityLabel     string       `json:"security"`
	Liquidity         Liquidity    `json:"-"`
	LiquidityLabel    string       `json:"liquidity"`
	Speed             Speed        `json:"-"`
	SpeedLabel        string       `json:"speed"`
	Risk              RiskLevel    `json:"risk"`
	Steps             []string     `json:"steps"`
	Warnings          []string     `json:"warnings,omitempty"`
}

// IsDirect is a single hop route
func (r *Route) IsDirect() bool { return len(r.Path) == 2 }

// FeeEstimate is the cost estimate of one bridge transfer.
type FeeEstimate struct {
	Protocol         ProtocolID `json:"protocol"`
	SourceChainGas   *big.Int   `json:"sourceChainGas"`
	TargetChainGas   *big.Int   `json:"targetChainGas"`
	RelayerFee       *big.Int   `json:"relayerFee"`
	ProtocolFee      *big.Int   `json:"protocolFee"`
	FinalizationCost *big.Int   `json:"finalizationCost,omitempty"`
	TotalFee         *big.Int   `json:"totalFee"`
	TotalFeeUSD      float64    `json:"totalFeeUSD"`
}
