// Package tracker classifies bridge transfers into protocol phases by
// inspecting receipts, logs and confirmations on both chains.
package tracker

import (
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/common"
	"github.com/chainflow/bridge-router/types"
)

// EventKind tags a known bridge event in the closed catalog.
type EventKind uint8

// event kinds
const (
	EventUnknown EventKind = iota
	EventDeposit
	EventLock
	EventMessageSent
	EventWithdrawalInitiated
	EventArrival
	EventFinalized
)

func (k EventKind) String() string {
	switch k {
	case EventDeposit:
		return "deposit"
	case EventLock:
		return "lock"
	case EventMessageSent:
		return "message-sent"
	case EventWithdrawalInitiated:
		return "withdrawal-initiated"
	case EventArrival:
		return "arrival"
	case EventFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// IsInitiation does this kind prove the bridge transfer was initiated on
// the source chain
func (k EventKind) IsInitiation() bool {
	switch k {
	case EventDeposit, EventLock, EventMessageSent, EventWithdrawalInitiated:
		return true
	}
	return false
}

// CatalogEntry one known bridge event.
type CatalogEntry struct {
	Name     string
	Kind     EventKind
	Protocol bridge.ProtocolID // empty means shared across protocols
}

func topic(signature string) common.Hash {
	return crypto.Keccak256Hash([]byte(signature))
}

// eventCatalog maps log topic hashes to tagged event kinds. Topics are
// derived from the canonical event signatures once at init. Logs whose
// first topic is not in the catalog are ignored, not treated as errors.
var eventCatalog = map[common.Hash]*CatalogEntry{
	// optimism/base style canonical bridge and messenger
	topic("ETHDepositInitiated(address,address,uint256,bytes)"): {
		Name: "ETHDepositInitiated", Kind: EventDeposit, Protocol: bridge.ProtocolCanonical},
	topic("ERC20DepositInitiated(address,address,address,address,uint256,bytes)"): {
		Name: "ERC20DepositInitiated", Kind: EventDeposit, Protocol: bridge.ProtocolCanonical},
	topic("WithdrawalInitiated(address,address,address,address,uint256,bytes)"): {
		Name: "WithdrawalInitiated", Kind: EventWithdrawalInitiated, Protocol: bridge.ProtocolCanonical},
	topic("WithdrawalFinalized(address,address,address,address,uint256,bytes)"): {
		Name: "WithdrawalFinalized", Kind: EventFinalized, Protocol: bridge.ProtocolCanonical},
	topic("SentMessage(address,address,bytes,uint256,uint256)"): {
		Name: "SentMessage", Kind: EventMessageSent, Protocol: bridge.ProtocolCanonical},
	topic("RelayedMessage(bytes32)"): {
		Name: "RelayedMessage", Kind: EventArrival, Protocol: bridge.ProtocolCanonical},

	// arbitrum style canonical bridge
	topic("DepositInitiated(address,address,uint256,uint256,uint256)"): {
		Name: "DepositInitiated", Kind: EventDeposit, Protocol: bridge.ProtocolCanonical},
	topic("InboxMessageDelivered(uint256,bytes)"): {
		Name: "InboxMessageDelivered", Kind: EventMessageSent, Protocol: bridge.ProtocolCanonical},
	topic("L2ToL1Tx(address,address,uint256,uint256,uint256,uint256,uint256,uint256,uint256,bytes)"): {
		Name: "L2ToL1Tx", Kind: EventWithdrawalInitiated, Protocol: bridge.ProtocolCanonical},

	// polygon pos bridge
	topic("LockedERC20(address,address,address,uint256)"): {
		Name: "LockedERC20", Kind: EventLock, Protocol: bridge.ProtocolCanonical},
	topic("StateSynced(uint256,address,bytes)"): {
		Name: "StateSynced", Kind: EventMessageSent, Protocol: bridge.ProtocolCanonical},

	// hop
	topic("TransferSent(bytes32,uint256,address,uint256,bytes32,uint256,uint256,uint256,uint256)"): {
		Name: "TransferSent", Kind: EventDeposit, Protocol: bridge.ProtocolHop},
	topic("WithdrawalBonded(bytes32,uint256)"): {
		Name: "WithdrawalBonded", Kind: EventArrival, Protocol: bridge.ProtocolHop},

	// stargate
	topic("Swap(uint16,uint256,address,uint256,uint256,uint256,uint256,uint256)"): {
		Name: "Swap", Kind: EventDeposit, Protocol: bridge.ProtocolStargate},
	topic("SwapRemote(address,uint256,uint256,uint256)"): {
		Name: "SwapRemote", Kind: EventArrival, Protocol: bridge.ProtocolStargate},

	// across
	topic("FundsDeposited(uint256,uint256,uint256,uint256,uint32,uint32,uint32,address,address,address,bytes)"): {
		Name: "FundsDeposited", Kind: EventDeposit, Protocol: bridge.ProtocolAcross},
	topic("FilledRelay(uint256,uint256,uint256,uint256,uint256,uint32,uint32,uint32,address,address,address,bytes)"): {
		Name: "FilledRelay", Kind: EventArrival, Protocol: bridge.ProtocolAcross},

	// synapse
	topic("TokenDeposit(address,uint256,address,uint256)"): {
		Name: "TokenDeposit", Kind: EventDeposit, Protocol: bridge.ProtocolSynapse},
	topic("TokenMint(address,address,uint256,uint256,bytes32)"): {
		Name: "TokenMint", Kind: EventArrival, Protocol: bridge.ProtocolSynapse},

	// celer cBridge
	topic("Send(bytes32,address,address,address,uint256,uint64,uint64,uint32)"): {
		Name: "Send", Kind: EventDeposit, Protocol: bridge.ProtocolCeler},
	topic("Relay(bytes32,address,address,address,uint256,uint64,bytes32)"): {
		Name: "Relay", Kind: EventArrival, Protocol: bridge.ProtocolCeler},
}

// DetectedEvent one recognized bridge event decoded from a receipt log.
type DetectedEvent struct {
	Name     string            `json:"name"`
	Kind     EventKind         `json:"-"`
	KindName string            `json:"kind"`
	Protocol bridge.ProtocolID `json:"protocol,omitempty"`
	Address  string            `json:"address"`
	LogIndex int               `json:"logIndex"`
}

// DecodeBridgeEvents matches receipt logs against the catalog, decoding
// each known event once into a typed structure. Removed logs are skipped.
func DecodeBridgeEvents(receipt *types.RPCTxReceipt) []*DetectedEvent {
	if receipt == nil {
		return nil
	}
	var events []*DetectedEvent
	for i, rlog := range receipt.Logs {
		if rlog == nil || len(rlog.Topics) == 0 {
			continue
		}
		if rlog.Removed != nil && *rlog.Removed {
			continue
		}
		entry, known := eventCatalog[rlog.Topics[0]]
		if !known {
			continue
		}
		event := &DetectedEvent{
			Name:     entry.Name,
			Kind:     entry.Kind,
			KindName: entry.Kind.String(),
			Protocol: entry.Protocol,
			LogIndex: i,
		}
		if rlog.Address != nil {
			event.Address = rlog.Address.Hex()
		}
		events = append(events, event)
	}
	return events
}

// ArrivalTopics topics of destination side arrival/finalize events, used
// to filter recent destination logs.
func ArrivalTopics() []common.Hash {
	var topics []common.Hash
	for hash, entry := range eventCatalog {
		if entry.Kind == EventArrival || entry.Kind == EventFinalized {
			topics = append(topics, hash)
		}
	}
	return topics
}
