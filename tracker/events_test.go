package tracker

import (
	"testing"

	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/common"
	"github.com/chainflow/bridge-router/types"
)

func TestDecodeBridgeEvents(t *testing.T) {
	depositTopic := topic("ERC20DepositInitiated(address,address,address,address,uint256,bytes)")
	unknownTopic := topic("Transfer(address,address,uint256)")
	removed := true

	contract := common.HexToAddress("0xfd0Bf71F60660E2f608ed56e1659C450eB113120")
	receipt := &types.RPCTxReceipt{
		Logs: []*types.RPCLog{
			{Topics: []common.Hash{unknownTopic}},
			{Topics: []common.Hash{depositTopic}, Address: &contract},
			{Topics: []common.Hash{depositTopic}, Removed: &removed},
			nil,
			{Topics: nil},
		},
	}

	events := DecodeBridgeEvents(receipt)
	if len(events) != 1 {
		t.Fatalf("have %v events, want 1", len(events))
	}
	event := events[0]
	if event.Name != "ERC20DepositInitiated" {
		t.Errorf("name: have %v", event.Name)
	}
	if event.Kind != EventDeposit || event.KindName != "deposit" {
		t.Errorf("kind: have %v (%v)", event.Kind, event.KindName)
	}
	if event.Protocol != bridge.ProtocolCanonical {
		t.Errorf("protocol: have %v, want canonical", event.Protocol)
	}
	if event.LogIndex != 1 {
		t.Errorf("log index: have %v, want 1", event.LogIndex)
	}
	if event.Address != contract.Hex() {
		t.Errorf("address: have %v, want %v", event.Address, contract.Hex())
	}
	if !event.Kind.IsInitiation() {
		t.Error("deposit must count as initiation")
	}
}

func TestDecodeBridgeEventsNilReceipt(t *testing.T) {
	if events := DecodeBridgeEvents(nil); events != nil {
		t.Errorf("nil receipt: have %v events", len(events))
	}
}

func TestEventKindTags(t *testing.T) {
	tests := []struct {
		kind       EventKind
		initiation bool
	}{
		{EventDeposit, true},
		{EventLock, true},
		{EventMessageSent, true},
		{EventWithdrawalInitiated, true},
		{EventArrival, false},
		{EventFinalized, false},
		{EventUnknown, false},
	}
	for _, tt := range tests {
		if have := tt.kind.IsInitiation(); have != tt.initiation {
			t.Errorf("IsInitiation(%v): have %v, want %v", tt.kind, have, tt.initiation)
		}
	}
}

func TestArrivalTopics(t *testing.T) {
	topics := ArrivalTopics()
	if len(topics) == 0 {
		t.Fatal("want a non-empty arrival topic set")
	}
	seen := make(map[common.Hash]bool, len(topics))
	for _, hash := range topics {
		seen[hash] = true
		entry := eventCatalog[hash]
		if entry == nil {
			t.Fatalf("arrival topic %v not in catalog", hash.Hex())
		}
		if entry.Kind != EventArrival && entry.Kind != EventFinalized {
			t.Errorf("topic %v has kind %v, want arrival or finalized", entry.Name, entry.Kind)
		}
	}
	if !seen[topic("SwapRemote(address,uint256,uint256,uint256)")] {
		t.Error("want stargate SwapRemote in the arrival topics")
	}
	if seen[topic("Swap(uint16,uint256,address,uint256,uint256,uint256,uint256,uint256)")] {
		t.Error("deposit events must not appear in the arrival topics")
	}
}

func TestPhaseSequence(t *testing.T) {
	rollup := PhaseSequence(true)
	plain := PhaseSequence(false)

	if rollup[0] != PhaseSourcePending || rollup[len(rollup)-1] != PhaseCompleted {
		t.Errorf("rollup sequence endpoints: %v", rollup)
	}
	if plain[0] != PhaseSourcePending || plain[len(plain)-1] != PhaseCompleted {
		t.Errorf("plain sequence endpoints: %v", plain)
	}

	contains := func(seq []Phase, phase Phase) bool {
		for _, p := range seq {
			if p == phase {
				return true
			}
		}
		return false
	}
	if !contains(rollup, PhaseChallengePeriod) || !contains(rollup, PhaseFinalization) {
		t.Errorf("rollup sequence must include the challenge phases: %v", rollup)
	}
	if contains(plain, PhaseChallengePeriod) || contains(plain, PhaseFinalization) {
		t.Errorf("plain sequence must not include the challenge phases: %v", plain)
	}
	if !contains(plain, PhaseDestinationArrival) {
		t.Errorf("plain sequence must include destination arrival: %v", plain)
	}
}
