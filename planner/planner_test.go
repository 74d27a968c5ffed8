package planner

import (
	"errors"
	"strings"
	"testing"

	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/registry"
)

func newTestPlanner() *Planner {
	return New(registry.NewDefault())
}

func TestFindRoutesValidation(t *testing.T) {
	p := newTestPlanner()

	if _, err := p.FindRoutes("solana", bridge.ChainBase, "ETH", nil); !errors.Is(err, bridge.ErrChainUnsupported) {
		t.Errorf("unsupported source: have %v, want ErrChainUnsupported", err)
	}
	if _, err := p.FindRoutes(bridge.ChainBase, "fantom", "ETH", nil); !errors.Is(err, bridge.ErrChainUnsupported) {
		t.Errorf("unsupported target: have %v, want ErrChainUnsupported", err)
	}
	if _, err := p.FindRoutes(bridge.ChainBase, bridge.ChainBase, "ETH", nil); !errors.Is(err, bridge.ErrSameChain) {
		t.Errorf("same chain: have %v, want ErrSameChain", err)
	}
}

func TestFindRoutesDirect(t *testing.T) {
	p := newTestPlanner()

	plan, err := p.FindRoutes(bridge.ChainEthereum, bridge.ChainBase, "ETH", nil)
	if err != nil {
		t.Fatalf("FindRoutes failed: %v", err)
	}
	if len(plan.Routes) == 0 {
		t.Fatal("want routes for ethereum -> base")
	}

	// ranked first: direct canonical
	first := plan.Routes[0]
	if !first.IsDirect() || first.Bridges[0] != bridge.ProtocolCanonical {
		t.Errorf("first route: have path %v bridges %v, want direct canonical", first.Path, first.Bridges)
	}
	if first.Risk != bridge.RiskLow {
		t.Errorf("direct canonical risk: have %v, want %v", first.Risk, bridge.RiskLow)
	}
	if plan.SafestRoute != first {
		t.Error("safest route must be the first ranked route")
	}

	for _, route := range plan.Routes {
		if len(route.Bridges) != len(route.Path)-1 {
			t.Errorf("route %v: have %v bridges for %v path entries", route.Path, len(route.Bridges), len(route.Path))
		}
		if route.SecurityLabel == "" || route.SpeedLabel == "" || route.LiquidityLabel == "" {
			t.Errorf("route %v: missing labels", route.Path)
		}
		if len(route.Steps) < 2 {
			t.Errorf("route %v: want at least 2 steps, have %v", route.Path, len(route.Steps))
		}
	}
}

func TestFindRoutesDeterministic(t *testing.T) {
	p := newTestPlanner()

	first, err := p.FindRoutes(bridge.ChainEthereum, bridge.ChainArbitrum, "USDC", nil)
	if err != nil {
		t.Fatalf("FindRoutes failed: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := p.FindRoutes(bridge.ChainEthereum, bridge.ChainArbitrum, "USDC", nil)
		if err != nil {
			t.Fatalf("FindRoutes failed: %v", err)
		}
		if len(again.Routes) != len(first.Routes) {
			t.Fatalf("route count changed between calls: %v vs %v", len(again.Routes), len(first.Routes))
		}
		for j := range again.Routes {
			if again.Routes[j].Bridges[0] != first.Routes[j].Bridges[0] {
				t.Fatalf("route order changed between calls at index %v", j)
			}
		}
	}
}

func TestFindRoutesAsymmetry(t *testing.T) {
	p := newTestPlanner()

	forward, err := p.FindRoutes(bridge.ChainBase, bridge.ChainArbitrum, "USDC", &Preferences{MaxHops: 1})
	if err != nil {
		t.Fatalf("FindRoutes failed: %v", err)
	}
	backward, err := p.FindRoutes(bridge.ChainArbitrum, bridge.ChainBase, "USDC", &Preferences{MaxHops: 1})
	if err != nil {
		t.Fatalf("FindRoutes failed: %v", err)
	}
	// deployments are directed, so reversing the pair may change the answer
	if len(forward.Routes) == len(backward.Routes) {
		t.Errorf("want asymmetric direct routes, have %v both ways", len(forward.Routes))
	}
}

func TestFindRoutesMultiHop(t *testing.T) {
	p := newTestPlanner()

	// no direct arbitrum -> base deployment, must go through a hub
	plan, err := p.FindRoutes(bridge.ChainArbitrum, bridge.ChainBase, "USDC", nil)
	if err != nil {
		t.Fatalf("FindRoutes failed: %v", err)
	}
	if len(plan.Routes) == 0 {
		t.Fatal("want hub routes for arbitrum -> base")
	}
	for _, route := range plan.Routes {
		if route.IsDirect() {
			t.Errorf("unexpected direct route %v", route.Path)
		}
		if len(route.Path) != 3 {
			t.Errorf("hub route %v: want 3 path entries", route.Path)
		}
		if route.Risk == bridge.RiskLow {
			t.Errorf("multi-hop route %v must not be low risk", route.Path)
		}
	}

	// MaxHops 1 disables hub search
	plan, err = p.FindRoutes(bridge.ChainArbitrum, bridge.ChainBase, "USDC", &Preferences{MaxHops: 1})
	if err != nil {
		t.Fatalf("FindRoutes failed: %v", err)
	}
	if len(plan.Routes) != 0 {
		t.Errorf("MaxHops 1: want no routes, have %v", len(plan.Routes))
	}
}

func TestFindRoutesNoRouteIsNotError(t *testing.T) {
	p := newTestPlanner()

	plan, err := p.FindRoutes(bridge.ChainAvalanche, bridge.ChainBase, "DOGE", nil)
	if err != nil {
		t.Fatalf("no route must not be an error, have %v", err)
	}
	if len(plan.Routes) != 0 {
		t.Fatalf("want zero routes, have %v", len(plan.Routes))
	}
	if len(plan.Alternatives) == 0 {
		t.Error("want actionable alternatives when no route exists")
	}
	if plan.SafestRoute != nil || plan.FastestRoute != nil || plan.CheapestRoute != nil {
		t.Error("no convenience routes expected without routes")
	}
}

func TestFindRoutesPreferences(t *testing.T) {
	p := newTestPlanner()

	plan, err := p.FindRoutes(bridge.ChainEthereum, bridge.ChainArbitrum, "USDC", &Preferences{Security: "canonical", MaxHops: 1})
	if err != nil {
		t.Fatalf("FindRoutes failed: %v", err)
	}
	for _, route := range plan.Routes {
		if route.Security != bridge.SecurityCanonical {
			t.Errorf("security preference violated: %v is %v", route.Bridges, route.SecurityLabel)
		}
	}

	plan, err = p.FindRoutes(bridge.ChainEthereum, bridge.ChainArbitrum, "USDC", &Preferences{Speed: "fast", MaxHops: 1})
	if err != nil {
		t.Fatalf("FindRoutes failed: %v", err)
	}
	if len(plan.Routes) == 0 {
		t.Fatal("want fast routes for ethereum -> arbitrum")
	}
	for _, route := range plan.Routes {
		if route.Speed > bridge.SpeedFast {
			t.Errorf("speed preference violated: %v is %v", route.Bridges, route.SpeedLabel)
		}
	}
}

func TestChallengePeriodWarning(t *testing.T) {
	p := newTestPlanner()

	plan, err := p.FindRoutes(bridge.ChainArbitrum, bridge.ChainEthereum, "ETH", nil)
	if err != nil {
		t.Fatalf("FindRoutes failed: %v", err)
	}

	var canonicalRoute *bridge.Route
	for _, route := range plan.Routes {
		if route.IsDirect() && route.Bridges[0] == bridge.ProtocolCanonical {
			canonicalRoute = route
			break
		}
	}
	if canonicalRoute == nil {
		t.Fatal("want a direct canonical route for arbitrum -> ethereum")
	}
	found := false
	for _, warning := range canonicalRoute.Warnings {
		if strings.Contains(warning, "challenge period") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("want challenge period warning, have %v", canonicalRoute.Warnings)
	}

	// deposit direction has no challenge period
	plan, err = p.FindRoutes(bridge.ChainEthereum, bridge.ChainArbitrum, "ETH", nil)
	if err != nil {
		t.Fatalf("FindRoutes failed: %v", err)
	}
	for _, route := range plan.Routes {
		for _, warning := range route.Warnings {
			if strings.Contains(warning, "challenge period") {
				t.Errorf("deposit route %v should not warn about challenge period", route.Path)
			}
		}
	}
}

func TestPickFastestAndCheapest(t *testing.T) {
	p := newTestPlanner()

	plan, err := p.FindRoutes(bridge.ChainEthereum, bridge.ChainArbitrum, "USDC", nil)
	if err != nil {
		t.Fatalf("FindRoutes failed: %v", err)
	}
	if plan.FastestRoute == nil || plan.FastestRoute.Speed > bridge.SpeedFast {
		t.Errorf("fastest route: have %+v", plan.FastestRoute)
	}
	if plan.CheapestRoute == nil {
		t.Fatal("want a cheapest route")
	}
	for _, route := range plan.Routes {
		if route.EstimatedFeePct < plan.CheapestRoute.EstimatedFeePct {
			t.Errorf("route %v is cheaper than the cheapest pick", route.Bridges)
		}
	}
}
