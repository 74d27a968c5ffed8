package bridgeapi

import (
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/fees"
	"github.com/chainflow/bridge-router/planner"
	"github.com/chainflow/bridge-router/registry"
	"github.com/chainflow/bridge-router/tracker"
)

// ConvertSessionToTrackResult convert tracker session to api result
func ConvertSessionToTrackResult(session *tracker.Session) *TrackResult {
	result := &TrackResult{
		SourceChain:           session.SourceChain.String(),
		TargetChain:           session.TargetChain.String(),
		TxHash:                session.TxHash,
		Protocol:              session.Protocol.String(),
		CurrentStatus:         string(session.Phase),
		OverallProgress:       tracker.ProgressPercent(session),
		Confirmations:         session.Confirmations,
		RequiredConfirmations: session.RequiredConfirmations,
		DetectedEvents:        session.Events,
		NextSteps:             nextSteps(session),
		DestinationError:      session.DestinationError,
	}
	if session.EstimatedCompletion > 0 {
		result.EstimatedCompletion = time.Unix(int64(session.EstimatedCompletion), 0).UTC().Format(time.RFC3339)
	}
	result.Phases = buildPhaseList(session)
	return result
}

func buildPhaseList(session *tracker.Session) []*PhaseInfo {
	sequence := tracker.PhaseSequence(session.IsRollupWithdrawal)
	current := indexOfPhase(sequence, session.Phase)

	phases := make([]*PhaseInfo, 0, len(sequence))
	for i, phase := range sequence {
		info := &PhaseInfo{Phase: string(phase)}
		switch {
		case session.Phase == tracker.PhaseFailed:
			// a reverted source tx stops the lifecycle at its first phase
			if i == 0 {
				info.Status = PhaseStatusFailed
				info.Details = "source transaction reverted"
			} else {
				info.Status = PhaseStatusPending
			}
		case i < current:
			info.Status = PhaseStatusCompleted
		case i == current:
			info.Status = PhaseStatusInProgress
			info.Details = phaseDetails(session, phase)
		default:
			info.Status = PhaseStatusPending
		}
		phases = append(phases, info)
	}
	return phases
}

func indexOfPhase(sequence []tracker.Phase, phase tracker.Phase) int {
	for i, p := range sequence {
		if p == phase {
			return i
		}
	}
	if phase == tracker.PhaseCompleted {
		return len(sequence)
	}
	return 0
}

func phaseDetails(session *tracker.Session, phase tracker.Phase) string {
	switch phase {
	case tracker.PhaseSourcePending:
		return "transaction not yet mined on the source chain"
	case tracker.PhaseSourceConfirmed:
		return "transaction mined, no bridge deposit event detected yet"
	case tracker.PhaseBridgeInitiated:
		return fmt.Sprintf("bridge deposit detected, %v of %v confirmations",
			session.Confirmations, session.RequiredConfirmations)
	case tracker.PhaseChallengePeriod:
		return fmt.Sprintf("withdrawal in the ~%v day challenge period", session.ChallengeWindowHours/24)
	case tracker.PhaseFinalization:
		return "challenge period elapsed, withdrawal awaits finalization on the settlement chain"
	case tracker.PhaseDestinationArrival:
		return "waiting for funds to arrive on the target chain"
	default:
		return ""
	}
}

func nextSteps(session *tracker.Session) []string {
	switch session.Phase {
	case tracker.PhaseSourcePending:
		return []string{"wait for the transaction to be mined, or resubmit with a higher gas price if stuck"}
	case tracker.PhaseSourceConfirmed:
		return []string{"verify the transaction actually interacted with a bridge contract"}
	case tracker.PhaseBridgeInitiated:
		return []string{"wait for source chain confirmations"}
	case tracker.PhaseChallengePeriod:
		steps := []string{"wait out the challenge period, no user action is possible before it elapses"}
		if session.EstimatedCompletion > 0 {
			steps = append(steps, fmt.Sprintf("finalization becomes possible around %v",
				time.Unix(int64(session.EstimatedCompletion), 0).UTC().Format(time.RFC3339)))
		}
		return steps
	case tracker.PhaseFinalization:
		return []string{"submit the finalization transaction on the settlement chain to claim the funds"}
	case tracker.PhaseDestinationArrival:
		return []string{"funds should arrive shortly, check the recipient balance on the target chain"}
	case tracker.PhaseFailed:
		return []string{"the source transaction reverted, funds did not leave the source chain", "retry the transfer"}
	default:
		return nil
	}
}

// ConvertPlanToRouteResult convert planner output to api result
func ConvertPlanToRouteResult(source, target bridge.ChainID, asset string, plan *planner.Plan) *RouteResult {
	result := &RouteResult{
		SourceChain:        source.String(),
		TargetChain:        target.String(),
		Asset:              asset,
		Routes:             plan.Routes,
		RecommendedRoute:   plan.SafestRoute,
		FastestRoute:       plan.FastestRoute,
		CheapestRoute:      plan.CheapestRoute,
		AlternativeOptions: plan.Alternatives,
	}
	if plan.SafestRoute != nil {
		result.RiskAssessment = riskAssessment(plan.SafestRoute)
	}
	return result
}

func riskAssessment(route *bridge.Route) string {
	switch route.Risk {
	case bridge.RiskLow:
		return "low risk: direct canonical bridge secured by the chain's own settlement"
	case bridge.RiskHigh:
		return "high risk: multi-hop route through third-party bridge contracts"
	default:
		return "medium risk: route relies on external bridge validators or multiple hops"
	}
}

// ConvertFeeResult convert fee model output to api result with display values
func ConvertFeeResult(args *fees.EstimateArgs, res *fees.Result, nativeSymbol string) *FeeResult {
	estimate := res.Estimate
	urgency := args.Urgency
	if urgency == "" {
		urgency = fees.UrgencyStandard
	}
	result := &FeeResult{
		SourceChain:    args.Source.String(),
		TargetChain:    args.Target.String(),
		Asset:          args.Asset,
		Protocol:       estimate.Protocol.String(),
		Urgency:        string(urgency),
		SourceChainGas: formatNative(estimate.SourceChainGas, nativeSymbol),
		TargetChainGas: formatNative(estimate.TargetChainGas, nativeSymbol),
		RelayerFee:     formatNative(estimate.RelayerFee, nativeSymbol),
		ProtocolFee:    formatNative(estimate.ProtocolFee, nativeSymbol),
		TotalFee:       formatNative(estimate.TotalFee, nativeSymbol),
		TotalFeeUSD:    fmt.Sprintf("%.2f", estimate.TotalFeeUSD),
	}
	if estimate.FinalizationCost != nil {
		result.FinalizationCost = formatNative(estimate.FinalizationCost, nativeSymbol)
	}
	for _, alt := range res.AlternativeBridges {
		result.AlternativeBridges = append(result.AlternativeBridges, &FeeAlternative{
			Protocol:    alt.Protocol.String(),
			TotalFee:    formatNative(alt.TotalFee, nativeSymbol),
			TotalFeeUSD: fmt.Sprintf("%.2f", alt.TotalFeeUSD),
		})
	}
	return result
}

var weiPerEther = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))

func formatNative(wei *big.Int, symbol string) string {
	if wei == nil {
		return ""
	}
	f := new(big.Float).SetInt(wei)
	f.Quo(f, weiPerEther)
	return fmt.Sprintf("%s %s", f.Text('f', 8), symbol)
}

// ConvertChainInfo convert chain config to public view
func ConvertChainInfo(cfg *registry.ChainConfig) *ChainInfo {
	return &ChainInfo{
		ChainID:         cfg.ChainID.String(),
		Name:            cfg.Name,
		NetworkID:       cfg.NetworkID,
		NativeSymbol:    cfg.NativeSymbol,
		WrappedNative:   cfg.WrappedNative,
		RollupOf:        cfg.RollupOf.String(),
		ChallengeWindow: cfg.ChallengeWindow,
		BlockTime:       cfg.BlockTime,
	}
}

// ConvertEdgeInfo convert catalog edge to public view
func ConvertEdgeInfo(edge *bridge.BridgeEdge) *EdgeInfo {
	info := &EdgeInfo{
		Protocol:      edge.Protocol.String(),
		Speed:         edge.Speed.String(),
		Security:      edge.Security.String(),
		Liquidity:     edge.Liquidity.String(),
		EstimatedTime: edge.EstimatedTime,
		FeePercent:    edge.FeePercent,
	}
	for _, chainID := range edge.Chains.ToSlice() {
		info.Chains = append(info.Chains, fmt.Sprintf("%v", chainID))
	}
	for _, asset := range edge.SupportedAssets.ToSlice() {
		info.SupportedAssets = append(info.SupportedAssets, fmt.Sprintf("%v", asset))
	}
	// set iteration order is random, keep the public view stable
	sort.Strings(info.Chains)
	sort.Strings(info.SupportedAssets)
	return info
}
