package tracker

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/common"
	"github.com/chainflow/bridge-router/log"
	"github.com/chainflow/bridge-router/registry"
	"github.com/chainflow/bridge-router/types"
)

// Phase is one transfer lifecycle phase.
type Phase string

// transfer phases
const (
	PhaseSourcePending      Phase = "SOURCE_PENDING"
	PhaseSourceConfirmed    Phase = "SOURCE_CONFIRMED"
	PhaseBridgeInitiated    Phase = "BRIDGE_INITIATED"
	PhaseChallengePeriod    Phase = "CHALLENGE_PERIOD"
	PhaseDestinationArrival Phase = "DESTINATION_ARRIVAL"
	PhaseFinalization       Phase = "FINALIZATION"
	PhaseCompleted          Phase = "COMPLETED"
	PhaseFailed             Phase = "FAILED"
)

// PhaseSequence the ordered phases a transfer passes through. Rollup
// withdrawals to the settlement chain insert the challenge period and the
// explicit finalization step, everything else goes straight to arrival.
func PhaseSequence(isRollupWithdrawal bool) []Phase {
	if isRollupWithdrawal {
		return []Phase{
			PhaseSourcePending, PhaseSourceConfirmed, PhaseBridgeInitiated,
			PhaseChallengePeriod, PhaseFinalization, PhaseCompleted,
		}
	}
	return []Phase{
		PhaseSourcePending, PhaseSourceConfirmed, PhaseBridgeInitiated,
		PhaseDestinationArrival, PhaseCompleted,
	}
}

const (
	defaultRequiredConfirmations = 12
	// defaultRecentBlockWindow bounds the destination log scan. Tracking is
	// stateless, so the destination side is only checked over a recent slice
	// of chain history rather than from genesis.
	defaultRecentBlockWindow = 5000
)

// TrackArgs input of one tracking call.
type TrackArgs struct {
	Source      bridge.ChainID
	Target      bridge.ChainID
	TxHash      string
	UserAddress string            // optional, enables destination arrival detection
	Protocol    bridge.ProtocolID // optional hint when the receipt carries no known event
}

// Session is the reconstructed view of one transfer at the moment of the
// call. It is rebuilt from chain state on every call and never persisted
// by the tracker, so repeated calls with identical chain state yield
// identical sessions.
type Session struct {
	SourceChain bridge.ChainID `json:"sourceChain"`
	TargetChain bridge.ChainID `json:"targetChain"`
	TxHash      string         `json:"txHash"`
	UserAddress string         `json:"userAddress,omitempty"`

	Phase    Phase             `json:"phase"`
	Protocol bridge.ProtocolID `json:"protocol,omitempty"`

	SourceReceipt         *types.RPCTxReceipt `json:"-"`
	Confirmations         uint64              `json:"confirmations"`
	RequiredConfirmations uint64              `json:"requiredConfirmations"`
	Events                []*DetectedEvent    `json:"detectedEvents,omitempty"`

	IsRollupWithdrawal   bool   `json:"isRollupWithdrawal"`
	ChallengeWindowHours uint64 `json:"challengeWindowHours,omitempty"`
	SourceBlockTime      uint64 `json:"sourceBlockTime,omitempty"` // unix seconds
	// EstimatedCompletion is the source block time plus the challenge
	// window, in unix seconds. Zero when not applicable or unknown.
	EstimatedCompletion uint64 `json:"estimatedCompletion,omitempty"`
	ChallengeElapsed    bool   `json:"challengeElapsed,omitempty"`

	DestinationChecked bool   `json:"destinationChecked"`
	DestinationArrived bool   `json:"destinationArrived"`
	DestinationError   string `json:"destinationError,omitempty"`
}

// Tracker classifies transfers. Stateless apart from configuration.
type Tracker struct {
	registry *registry.Registry

	// ProviderFunc resolves the chain provider, swappable in tests.
	ProviderFunc func(bridge.ChainID) (bridge.EVMProvider, error)

	RequiredConfirmations uint64
	RecentBlockWindow     uint64
}

// New new tracker
func New(reg *registry.Registry, providerFunc func(bridge.ChainID) (bridge.EVMProvider, error)) *Tracker {
	return &Tracker{
		registry:              reg,
		ProviderFunc:          providerFunc,
		RequiredConfirmations: defaultRequiredConfirmations,
		RecentBlockWindow:     defaultRecentBlockWindow,
	}
}

type sourceLegResult struct {
	receipt     *types.RPCTxReceipt
	latest      uint64
	blockTime   uint64
	notFound    bool
	queryErr    error
	latestErr   error
	blkTimeWarn error
}

type destLegResult struct {
	checked   bool
	arrived   bool
	blockTime uint64
	queryErr  error
}

// Track reconstructs the transfer session of txHash on the source chain.
// The source and destination legs are read concurrently, and a destination
// side provider failure degrades the session instead of failing the call.
func (t *Tracker) Track(ctx context.Context, args *TrackArgs) (*Session, error) {
	if !args.Source.IsSupported() || !args.Target.IsSupported() {
		return nil, bridge.ErrChainUnsupported
	}
	if args.Source == args.Target {
		return nil, bridge.ErrSameChain
	}
	if !common.IsHexHash(args.TxHash) {
		return nil, bridge.ErrTxHashMalformed
	}

	session := &Session{
		SourceChain:           args.Source,
		TargetChain:           args.Target,
		TxHash:                args.TxHash,
		UserAddress:           args.UserAddress,
		Protocol:              args.Protocol,
		RequiredConfirmations: t.RequiredConfirmations,
		IsRollupWithdrawal:    t.registry.IsRollupToSettlement(args.Source, args.Target),
	}
	if session.IsRollupWithdrawal {
		if srcCfg := t.registry.GetChainConfig(args.Source); srcCfg != nil {
			session.ChallengeWindowHours = srcCfg.ChallengeWindow
		}
	}

	srcCh := make(chan *sourceLegResult, 1)
	dstCh := make(chan *destLegResult, 1)
	go func() { srcCh <- t.readSourceLeg(ctx, args) }()
	go func() { dstCh <- t.readDestinationLeg(ctx, args) }()
	srcRes, dstRes := <-srcCh, <-dstCh

	if srcRes.queryErr != nil {
		return nil, bridge.WrapRPCQueryError(srcRes.queryErr, "get source receipt", args.Source, args.TxHash)
	}

	session.DestinationChecked = dstRes.checked
	session.DestinationArrived = dstRes.arrived
	if dstRes.queryErr != nil {
		// per leg failure: the source side result stands on its own
		session.DestinationError = dstRes.queryErr.Error()
		log.Warn("destination leg query failed", "chainID", args.Target, "err", dstRes.queryErr)
	}

	if srcRes.notFound {
		session.Phase = PhaseSourcePending
		return session, nil
	}

	session.SourceReceipt = srcRes.receipt
	session.SourceBlockTime = srcRes.blockTime
	session.Events = DecodeBridgeEvents(srcRes.receipt)
	if height := srcRes.receipt.BlockHeight(); height > 0 && srcRes.latest >= height {
		session.Confirmations = srcRes.latest - height + 1
	}
	if proto := inferProtocol(session.Events); proto != "" {
		session.Protocol = proto
	}

	if session.IsRollupWithdrawal && session.SourceBlockTime > 0 {
		session.EstimatedCompletion = session.SourceBlockTime + session.ChallengeWindowHours*3600
		// challenge expiry is judged against settlement chain block time,
		// never against the local wall clock
		if dstRes.blockTime > 0 && dstRes.blockTime >= session.EstimatedCompletion {
			session.ChallengeElapsed = true
		}
	}

	session.Phase = t.derivePhase(session)
	return session, nil
}

// derivePhase applies the classification rules to an assembled session.
// A reverted source transaction is FAILED no matter what else was observed.
func (t *Tracker) derivePhase(session *Session) Phase {
	receipt := session.SourceReceipt
	switch {
	case receipt == nil:
		return PhaseSourcePending
	case receipt.IsReverted():
		return PhaseFailed
	case !receipt.IsStatusOk():
		// mined but status field missing (pre-byzantium style), treat as pending
		return PhaseSourcePending
	}

	initiated := false
	finalizedSeen := false
	for _, event := range session.Events {
		if event.Kind.IsInitiation() {
			initiated = true
		}
		if event.Kind == EventFinalized {
			finalizedSeen = true
		}
	}
	if !initiated {
		return PhaseSourceConfirmed
	}
	if session.Confirmations < session.RequiredConfirmations {
		return PhaseBridgeInitiated
	}

	if session.IsRollupWithdrawal {
		switch {
		case session.DestinationArrived || finalizedSeen:
			return PhaseCompleted
		case session.ChallengeElapsed:
			return PhaseFinalization
		default:
			return PhaseChallengePeriod
		}
	}
	if session.DestinationArrived {
		return PhaseCompleted
	}
	return PhaseDestinationArrival
}

func (t *Tracker) readSourceLeg(ctx context.Context, args *TrackArgs) *sourceLegResult {
	res := &sourceLegResult{}
	provider, err := t.ProviderFunc(args.Source)
	if err != nil {
		res.queryErr = err
		return res
	}
	receipt, err := provider.GetTransactionReceipt(ctx, args.TxHash)
	if err != nil {
		if errors.Is(err, bridge.ErrTxNotFound) {
			res.notFound = true
			return res
		}
		res.queryErr = err
		return res
	}
	res.receipt = receipt

	latest, err := provider.GetLatestBlockNumber(ctx)
	if err != nil {
		res.latestErr = err
		log.Warn("get source latest block failed", "chainID", args.Source, "err", err)
	} else {
		res.latest = latest
	}

	if height := receipt.BlockHeight(); height > 0 {
		block, errb := provider.GetBlockByNumber(ctx, new(big.Int).SetUint64(height))
		if errb != nil || block == nil || block.Time == nil {
			res.blkTimeWarn = errb
			log.Warn("get source block time failed", "chainID", args.Source, "height", height, "err", errb)
		} else {
			res.blockTime = uint64(*block.Time)
		}
	}
	return res
}

// readDestinationLeg scans a recent block window on the target chain for
// catalog arrival events involving the user address. Without a user address
// arrival cannot be attributed, so the leg only reads the chain head time.
func (t *Tracker) readDestinationLeg(ctx context.Context, args *TrackArgs) *destLegResult {
	res := &destLegResult{}
	provider, err := t.ProviderFunc(args.Target)
	if err != nil {
		res.queryErr = err
		return res
	}
	latest, err := provider.GetLatestBlockNumber(ctx)
	if err != nil {
		res.queryErr = err
		return res
	}
	block, err := provider.GetBlockByNumber(ctx, new(big.Int).SetUint64(latest))
	if err == nil && block != nil && block.Time != nil {
		res.blockTime = uint64(*block.Time)
	}

	if !common.IsHexAddress(args.UserAddress) {
		return res
	}
	res.checked = true

	fromBlock := uint64(0)
	if latest > t.RecentBlockWindow {
		fromBlock = latest - t.RecentBlockWindow
	}
	filter := &types.FilterQuery{
		FromBlock: (*hexutil.Big)(new(big.Int).SetUint64(fromBlock)),
		ToBlock:   (*hexutil.Big)(new(big.Int).SetUint64(latest)),
		Topics:    [][]common.Hash{ArrivalTopics()},
	}
	logs, err := provider.GetLogs(ctx, filter)
	if err != nil {
		res.queryErr = err
		return res
	}

	user := common.HexToAddress(args.UserAddress)
	for _, rlog := range logs {
		if rlog == nil || rlog.Removed != nil && *rlog.Removed {
			continue
		}
		if logInvolvesAddress(rlog, user) {
			res.arrived = true
			break
		}
	}
	return res
}

// logInvolvesAddress reports whether the address appears as an indexed
// topic of the log. Indexed address params are left padded to 32 bytes.
// Logs without indexed params carry no attribution and never match.
func logInvolvesAddress(rlog *types.RPCLog, addr common.Address) bool {
	if len(rlog.Topics) < 2 {
		return false
	}
	for _, tp := range rlog.Topics[1:] {
		if common.BytesToAddress(tp.Bytes()[12:]) == addr {
			return true
		}
	}
	return false
}

func inferProtocol(events []*DetectedEvent) bridge.ProtocolID {
	for _, event := range events {
		if event.Kind.IsInitiation() && event.Protocol != "" {
			return event.Protocol
		}
	}
	return ""
}

// ProgressPercent maps the session phase onto the phase sequence as a
// rough completion percentage. FAILED reports the progress reached so far.
func ProgressPercent(session *Session) int {
	if session.Phase == PhaseFailed {
		return 0
	}
	seq := PhaseSequence(session.IsRollupWithdrawal)
	for i, phase := range seq {
		if phase == session.Phase {
			return (i + 1) * 100 / len(seq)
		}
	}
	return 0
}
