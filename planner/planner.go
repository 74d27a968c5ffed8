// Package planner implements route discovery over the bridge registry:
// direct edges plus one-hub multi-hop fallbacks, ranked deterministically.
package planner

import (
	"fmt"
	"sort"

	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/log"
	"github.com/chainflow/bridge-router/registry"
)

// multiHopFeePercent is a fixed conservative estimate reflecting compounded
// protocol fees, deliberately higher than any single hop estimate.
const multiHopFeePercent = 0.6

// Preferences filter and shape the search.
type Preferences struct {
	Speed    string `json:"speed,omitempty"`    // fastest acceptable bucket
	Security string `json:"security,omitempty"` // least trusted acceptable class
	MaxHops  int    `json:"maxHops,omitempty"`  // 1 disables hub routes, default 2
}

// Plan is the ranked output of one planning call.
type Plan struct {
	Routes        []*bridge.Route `json:"routes"`
	SafestRoute   *bridge.Route   `json:"safestRoute,omitempty"`
	FastestRoute  *bridge.Route   `json:"fastestRoute,omitempty"`
	CheapestRoute *bridge.Route   `json:"cheapestRoute,omitempty"`
	// Alternatives are actionable suggestions when no route exists.
	Alternatives []string `json:"alternativeOptions,omitempty"`
}

// Planner performs graph search over the registry. It holds no mutable
// state: every call is a pure function of its inputs and the catalog.
type Planner struct {
	registry *registry.Registry
}

// New new planner
func New(reg *registry.Registry) *Planner {
	return &Planner{registry: reg}
}

// FindRoutes discovers direct and one-hub routes from source to target for
// the given asset. Zero routes is a normal outcome, not an error.
func (p *Planner) FindRoutes(source, target bridge.ChainID, asset string, prefs *Preferences) (*Plan, error) {
	if !source.IsSupported() || !target.IsSupported() {
		return nil, bridge.ErrChainUnsupported
	}
	if source == target {
		return nil, bridge.ErrSameChain
	}
	if prefs == nil {
		prefs = &Preferences{}
	}
	maxHops := prefs.MaxHops
	if maxHops <= 0 {
		maxHops = 2
	}

	var routes []*bridge.Route
	for _, edge := range p.registry.EdgesBetween(source, target) {
		if !p.registry.SupportsAssetWithFallback(edge, source, asset) {
			continue
		}
		if !matchesPreferences(edge, prefs) {
			continue
		}
		routes = append(routes, p.directRoute(source, target, asset, edge))
	}

	if maxHops >= 2 {
		routes = append(routes, p.hubRoutes(source, target, asset, prefs)...)
	}

	rankRoutes(routes)

	plan := &Plan{Routes: routes}
	if len(routes) == 0 {
		plan.Alternatives = noRouteAlternatives(source, target, asset)
		log.Info("no bridge route found", "source", source, "target", target, "asset", asset)
		return plan, nil
	}

	plan.SafestRoute = routes[0]
	plan.FastestRoute = pickFastest(routes)
	plan.CheapestRoute = pickCheapest(routes)
	return plan, nil
}

func (p *Planner) directRoute(source, target bridge.ChainID, asset string, edge *bridge.BridgeEdge) *bridge.Route {
	route := &bridge.Route{
		Path:            []bridge.ChainID{source, target},
		Bridges:         []bridge.ProtocolID{edge.Protocol},
		EstimatedTime:   edge.EstimatedTime,
		EstimatedFeePct: edge.FeePercent,
		Security:        edge.Security,
		Liquidity:       edge.Liquidity,
		Speed:           edge.Speed,
		Steps: []string{
			fmt.Sprintf("1. Bridge %v from %v to %v via %v", asset, source, target, edge.Protocol),
			fmt.Sprintf("2. Wait for arrival on %v (%v)", target, edge.EstimatedTime),
		},
	}
	p.attachLabelsAndWarnings(route)
	return route
}

// hubRoutes is a satisficing search: first matching edge per leg, hub
// bridging is a fallback, not the primary path.
func (p *Planner) hubRoutes(source, target bridge.ChainID, asset string, prefs *Preferences) []*bridge.Route {
	var routes []*bridge.Route
	for _, hub := range registry.HubChains {
		if hub == source || hub == target {
			continue
		}
		legIn := p.firstUsableEdge(source, hub, asset, prefs)
		if legIn == nil {
			continue
		}
		legOut := p.firstUsableEdge(hub, target, asset, prefs)
		if legOut == nil {
			continue
		}
		routes = append(routes, p.combineLegs(source, hub, target, asset, legIn, legOut))
	}
	return routes
}

func (p *Planner) firstUsableEdge(from, to bridge.ChainID, asset string, prefs *Preferences) *bridge.BridgeEdge {
	for _, edge := range p.registry.EdgesBetween(from, to) {
		if !p.registry.SupportsAssetWithFallback(edge, from, asset) {
			continue
		}
		if !matchesPreferences(edge, prefs) {
			continue
		}
		return edge
	}
	return nil
}

func (p *Planner) combineLegs(source, hub, target bridge.ChainID, asset string, legIn, legOut *bridge.BridgeEdge) *bridge.Route {
	speed := bridge.SpeedSlow
	if legIn.Speed <= bridge.SpeedFast && legOut.Speed <= bridge.SpeedFast {
		speed = bridge.SpeedFast
	}
	security := legIn.Security
	if legIn.Security != legOut.Security {
		security = bridge.SecurityMixed
	}
	liquidity := legIn.Liquidity
	if legOut.Liquidity > liquidity {
		liquidity = legOut.Liquidity
	}
	estimatedTime := "30-90 minutes total"
	if speed == bridge.SpeedFast {
		estimatedTime = "10-40 minutes total"
	}

	route := &bridge.Route{
		Path:            []bridge.ChainID{source, hub, target},
		Bridges:         []bridge.ProtocolID{legIn.Protocol, legOut.Protocol},
		EstimatedTime:   estimatedTime,
		EstimatedFeePct: multiHopFeePercent,
		Security:        security,
		Liquidity:       liquidity,
		Speed:           speed,
		Steps: []string{
			fmt.Sprintf("1. Bridge %v from %v to %v via %v", asset, source, hub, legIn.Protocol),
			fmt.Sprintf("2. Wait for arrival on %v", hub),
			fmt.Sprintf("3. Bridge %v from %v to %v via %v", asset, hub, target, legOut.Protocol),
			fmt.Sprintf("4. Wait for arrival on %v", target),
		},
	}
	p.attachLabelsAndWarnings(route)
	return route
}

func (p *Planner) attachLabelsAndWarnings(route *bridge.Route) {
	route.SecurityLabel = route.Security.String()
	route.LiquidityLabel = route.Liquidity.String()
	route.SpeedLabel = route.Speed.String()
	route.Risk = classifyRisk(route)

	for i := 0; i+1 < len(route.Path); i++ {
		if route.Bridges[i] != bridge.ProtocolCanonical {
			continue
		}
		if p.registry.IsRollupToSettlement(route.Path[i], route.Path[i+1]) {
			srcCfg := p.registry.GetChainConfig(route.Path[i])
			route.Warnings = append(route.Warnings, fmt.Sprintf(
				"canonical withdrawal from %v is subject to a ~%v day challenge period",
				route.Path[i], srcCfg.ChallengeWindow/24))
		}
	}
	if route.Liquidity == bridge.LiquidityLow {
		route.Warnings = append(route.Warnings, "low liquidity, large transfers may slip or stall")
	}
}

// matchesPreferences applies speed/security preference filters. A speed
// preference sets the slowest acceptable bucket, a security preference the
// least trusted acceptable class.
func matchesPreferences(edge *bridge.BridgeEdge, prefs *Preferences) bool {
	if prefs.Speed != "" {
		if want, ok := bridge.ParseSpeed(prefs.Speed); ok && edge.Speed > want {
			return false
		}
	}
	if prefs.Security != "" {
		if want, ok := bridge.ParseSecurity(prefs.Security); ok && edge.Security > want {
			return false
		}
	}
	return true
}

func classifyRisk(route *bridge.Route) bridge.RiskLevel {
	switch {
	case route.Security == bridge.SecurityCanonical && route.IsDirect():
		return bridge.RiskLow
	case (route.Security == bridge.SecurityThirdParty || route.Security == bridge.SecurityMixed) && !route.IsDirect():
		return bridge.RiskHigh
	default:
		return bridge.RiskMedium
	}
}

// rankRoutes sorts ascending by path length, then security, then speed.
// The sort is stable so ties retain catalog discovery order.
func rankRoutes(routes []*bridge.Route) {
	sort.SliceStable(routes, func(i, j int) bool {
		a, b := routes[i], routes[j]
		if len(a.Path) != len(b.Path) {
			return len(a.Path) < len(b.Path)
		}
		if a.Security != b.Security {
			return a.Security < b.Security
		}
		return a.Speed < b.Speed
	})
}

// pickFastest is a bucket match on the already ranked list, not an
// independent re-sort, to stay consistent with the primary ranking.
func pickFastest(routes []*bridge.Route) *bridge.Route {
	for _, route := range routes {
		if route.Speed <= bridge.SpeedFast {
			return route
		}
	}
	return routes[0]
}

func pickCheapest(routes []*bridge.Route) *bridge.Route {
	cheapest := routes[0]
	for _, route := range routes[1:] {
		if route.EstimatedFeePct < cheapest.EstimatedFeePct {
			cheapest = route
		}
	}
	return cheapest
}

func noRouteAlternatives(source, target bridge.ChainID, asset string) []string {
	return []string{
		fmt.Sprintf("swap %v to a widely bridged asset (USDC, ETH) on %v first, then bridge", asset, source),
		fmt.Sprintf("bridge to a hub chain first and continue to %v from there", target),
		"use a DEX aggregator with built-in cross-chain support",
		"transfer via a centralized exchange that supports both networks",
	}
}
