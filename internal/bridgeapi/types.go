package bridgeapi

import (
	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/tracker"
)

// ServerInfo serverinfo
type ServerInfo struct {
	Identifier string `json:"identifier"`
	Version    string `json:"version"`
}

// phase display statuses
const (
	PhaseStatusCompleted  = "completed"
	PhaseStatusInProgress = "in_progress"
	PhaseStatusPending    = "pending"
	PhaseStatusFailed     = "failed"
)

// PhaseInfo one lifecycle phase with its display status.
type PhaseInfo struct {
	Phase   string `json:"phase"`
	Status  string `json:"status"`
	Details string `json:"details,omitempty"`
}

// TrackResult is the full tracking view returned to API callers.
type TrackResult struct {
	SourceChain   string `json:"sourceChain"`
	TargetChain   string `json:"targetChain"`
	TxHash        string `json:"txHash"`
	Protocol      string `json:"protocol,omitempty"`
	CurrentStatus string `json:"currentStatus"`

	Phases          []*PhaseInfo `json:"phases"`
	OverallProgress int          `json:"overallProgress"`

	Confirmations         uint64 `json:"confirmations"`
	RequiredConfirmations uint64 `json:"requiredConfirmations"`

	// EstimatedCompletion RFC3339, empty when unknown or not applicable
	EstimatedCompletion string `json:"estimatedCompletion,omitempty"`

	DetectedEvents []*tracker.DetectedEvent `json:"detectedEvents,omitempty"`
	NextSteps      []string                 `json:"nextSteps,omitempty"`

	DestinationError string `json:"destinationError,omitempty"`
}

// RouteResult is the planning view returned to API callers.
type RouteResult struct {
	SourceChain string `json:"sourceChain"`
	TargetChain string `json:"targetChain"`
	Asset       string `json:"asset"`

	Routes           []*bridge.Route `json:"routes"`
	RecommendedRoute *bridge.Route   `json:"recommendedRoute,omitempty"`
	FastestRoute     *bridge.Route   `json:"fastestRoute,omitempty"`
	CheapestRoute    *bridge.Route   `json:"cheapestRoute,omitempty"`

	RiskAssessment     string   `json:"riskAssessment,omitempty"`
	AlternativeOptions []string `json:"alternativeOptions,omitempty"`
}

// FeeResult is the fee estimation view returned to API callers.
type FeeResult struct {
	SourceChain string `json:"sourceChain"`
	TargetChain string `json:"targetChain"`
	Asset       string `json:"asset"`
	Protocol    string `json:"protocol"`
	Urgency     string `json:"urgency"`

	SourceChainGas   string `json:"sourceChainGas"`
	TargetChainGas   string `json:"targetChainGas"`
	RelayerFee       string `json:"relayerFee"`
	ProtocolFee      string `json:"protocolFee"`
	FinalizationCost string `json:"finalizationCost,omitempty"`
	TotalFee         string `json:"totalFee"`
	TotalFeeUSD      string `json:"totalFeeUSD"`

	AlternativeBridges []*FeeAlternative `json:"alternativeBridges,omitempty"`
}

// FeeAlternative one protocol in the comparison set.
type FeeAlternative struct {
	Protocol    string `json:"protocol"`
	TotalFee    string `json:"totalFee"`
	TotalFeeUSD string `json:"totalFeeUSD"`
}

// ChainInfo public view of one chain config.
type ChainInfo struct {
	ChainID         string `json:"chainId"`
	Name            string `json:"name"`
	NetworkID       uint64 `json:"networkId"`
	NativeSymbol    string `json:"nativeSymbol"`
	WrappedNative   string `json:"wrappedNative"`
	RollupOf        string `json:"rollupOf,omitempty"`
	ChallengeWindow uint64 `json:"challengeWindowHours,omitempty"`
	BlockTime       uint64 `json:"blockTimeSeconds"`
}

// EdgeInfo public view of one catalog edge.
type EdgeInfo struct {
	Protocol        string   `json:"protocol"`
	Chains          []string `json:"chains"`
	SupportedAssets []string `json:"supportedAssets"`
	Speed           string   `json:"speed"`
	Security        string   `json:"security"`
	Liquidity       string   `json:"liquidity"`
	EstimatedTime   string   `json:"estimatedTime"`
	FeePercent      float64  `json:"feePercent"`
}
