package tracker

import (
	"context"
	"errors"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/common"
	"github.com/chainflow/bridge-router/registry"
	"github.com/chainflow/bridge-router/types"
)

const (
	testTxHash   = "0x0102030405060708091011121314151617181920212223242526272829303132"
	testUserAddr = "0x1111111111111111111111111111111111111111"
	// an arbitrary anchor timestamp, unix seconds
	baseTime = uint64(1_700_000_000)
)

type fakeProvider struct {
	chainID    bridge.ChainID
	receipt    *types.RPCTxReceipt
	receiptErr error
	latest     uint64
	latestErr  error
	blockTimes map[uint64]uint64
	logs       []*types.RPCLog
	logsErr    error
}

func (p *fakeProvider) ChainID() bridge.ChainID { return p.chainID }

func (p *fakeProvider) GetTransaction(_ context.Context, _ string) (*types.RPCTransaction, error) {
	return nil, bridge.ErrTxNotFound
}

func (p *fakeProvider) GetTransactionReceipt(_ context.Context, _ string) (*types.RPCTxReceipt, error) {
	if p.receiptErr != nil {
		return nil, p.receiptErr
	}
	if p.receipt == nil {
		return nil, bridge.ErrTxNotFound
	}
	return p.receipt, nil
}

func (p *fakeProvider) GetLatestBlockNumber(_ context.Context) (uint64, error) {
	return p.latest, p.latestErr
}

func (p *fakeProvider) GetBlockByNumber(_ context.Context, number *big.Int) (*types.RPCBaseBlock, error) {
	tm, ok := p.blockTimes[number.Uint64()]
	if !ok {
		return nil, errors.New("block not found")
	}
	return &types.RPCBaseBlock{
		Number: (*hexutil.Big)(new(big.Int).Set(number)),
		Time:   u64(tm),
	}, nil
}

func (p *fakeProvider) GetLogs(_ context.Context, _ *types.FilterQuery) ([]*types.RPCLog, error) {
	return p.logs, p.logsErr
}

func (p *fakeProvider) GetFeeData(_ context.Context) (*bridge.FeeData, error) {
	return &bridge.FeeData{GasPrice: big.NewInt(1e9)}, nil
}

func u64(v uint64) *hexutil.Uint64 {
	u := hexutil.Uint64(v)
	return &u
}

func newReceipt(status uint64, height uint64, logs ...*types.RPCLog) *types.RPCTxReceipt {
	return &types.RPCTxReceipt{
		Status:      u64(status),
		BlockNumber: (*hexutil.Big)(new(big.Int).SetUint64(height)),
		Logs:        logs,
	}
}

func eventLog(topics ...common.Hash) *types.RPCLog {
	return &types.RPCLog{Topics: topics}
}

// arrivalLogFor builds a destination side arrival log whose indexed topics
// involve the given user address.
func arrivalLogFor(userAddr string) *types.RPCLog {
	user := common.HexToAddress(userAddr)
	return eventLog(
		topic("SwapRemote(address,uint256,uint256,uint256)"),
		common.BytesToHash(user.Bytes()),
	)
}

func newTestTracker(providers map[bridge.ChainID]*fakeProvider) *Tracker {
	providerFunc := func(chainID bridge.ChainID) (bridge.EVMProvider, error) {
		p, ok := providers[chainID]
		if !ok {
			return nil, bridge.ErrNoGatewayConfig
		}
		return p, nil
	}
	return New(registry.NewDefault(), providerFunc)
}

func TestTrackValidation(t *testing.T) {
	tr := newTestTracker(nil)
	ctx := context.Background()

	_, err := tr.Track(ctx, &TrackArgs{Source: "solana", Target: bridge.ChainBase, TxHash: testTxHash})
	if !errors.Is(err, bridge.ErrChainUnsupported) {
		t.Errorf("unsupported chain: have %v, want ErrChainUnsupported", err)
	}
	_, err = tr.Track(ctx, &TrackArgs{Source: bridge.ChainBase, Target: bridge.ChainBase, TxHash: testTxHash})
	if !errors.Is(err, bridge.ErrSameChain) {
		t.Errorf("same chain: have %v, want ErrSameChain", err)
	}
	_, err = tr.Track(ctx, &TrackArgs{Source: bridge.ChainBase, Target: bridge.ChainEthereum, TxHash: "0x1234"})
	if !errors.Is(err, bridge.ErrTxHashMalformed) {
		t.Errorf("malformed hash: have %v, want ErrTxHashMalformed", err)
	}
}

func TestTrackSourcePending(t *testing.T) {
	tr := newTestTracker(map[bridge.ChainID]*fakeProvider{
		bridge.ChainEthereum: {chainID: bridge.ChainEthereum}, // no receipt
		bridge.ChainArbitrum: {chainID: bridge.ChainArbitrum, latest: 100, blockTimes: map[uint64]uint64{100: baseTime}},
	})

	session, err := tr.Track(context.Background(), &TrackArgs{
		Source: bridge.ChainEthereum, Target: bridge.ChainArbitrum, TxHash: testTxHash,
	})
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if session.Phase != PhaseSourcePending {
		t.Errorf("phase: have %v, want %v", session.Phase, PhaseSourcePending)
	}
	if session.Confirmations != 0 {
		t.Errorf("confirmations: have %v, want 0", session.Confirmations)
	}
}

func TestTrackSourceQueryError(t *testing.T) {
	tr := newTestTracker(map[bridge.ChainID]*fakeProvider{
		bridge.ChainEthereum: {chainID: bridge.ChainEthereum, receiptErr: errors.New("gateway down")},
		bridge.ChainArbitrum: {chainID: bridge.ChainArbitrum, latest: 100, blockTimes: map[uint64]uint64{100: baseTime}},
	})

	// a transport failure is an error, not a pending transfer
	_, err := tr.Track(context.Background(), &TrackArgs{
		Source: bridge.ChainEthereum, Target: bridge.ChainArbitrum, TxHash: testTxHash,
	})
	if !errors.Is(err, bridge.ErrRPCQueryError) {
		t.Errorf("have %v, want ErrRPCQueryError", err)
	}
}

func TestTrackFailed(t *testing.T) {
	tr := newTestTracker(map[bridge.ChainID]*fakeProvider{
		bridge.ChainEthereum: {
			chainID:    bridge.ChainEthereum,
			receipt:    newReceipt(0, 100),
			latest:     200,
			blockTimes: map[uint64]uint64{100: baseTime},
		},
		bridge.ChainArbitrum: {chainID: bridge.ChainArbitrum, latest: 500, blockTimes: map[uint64]uint64{500: baseTime}},
	})

	session, err := tr.Track(context.Background(), &TrackArgs{
		Source: bridge.ChainEthereum, Target: bridge.ChainArbitrum, TxHash: testTxHash,
	})
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if session.Phase != PhaseFailed {
		t.Errorf("phase: have %v, want %v", session.Phase, PhaseFailed)
	}
	if ProgressPercent(session) != 0 {
		t.Errorf("failed progress: have %v, want 0", ProgressPercent(session))
	}
}

func TestTrackSourceConfirmed(t *testing.T) {
	// successful receipt without any catalog event
	unknownTopic := topic("Transfer(address,address,uint256)")
	tr := newTestTracker(map[bridge.ChainID]*fakeProvider{
		bridge.ChainEthereum: {
			chainID:    bridge.ChainEthereum,
			receipt:    newReceipt(1, 100, eventLog(unknownTopic)),
			latest:     200,
			blockTimes: map[uint64]uint64{100: baseTime},
		},
		bridge.ChainArbitrum: {chainID: bridge.ChainArbitrum, latest: 500, blockTimes: map[uint64]uint64{500: baseTime}},
	})

	session, err := tr.Track(context.Background(), &TrackArgs{
		Source: bridge.ChainEthereum, Target: bridge.ChainArbitrum, TxHash: testTxHash,
	})
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if session.Phase != PhaseSourceConfirmed {
		t.Errorf("phase: have %v, want %v", session.Phase, PhaseSourceConfirmed)
	}
	if len(session.Events) != 0 {
		t.Errorf("unknown topics must not decode, have %v events", len(session.Events))
	}
}

func TestTrackBridgeInitiated(t *testing.T) {
	depositTopic := topic("DepositInitiated(address,address,uint256,uint256,uint256)")
	tr := newTestTracker(map[bridge.ChainID]*fakeProvider{
		bridge.ChainEthereum: {
			chainID:    bridge.ChainEthereum,
			receipt:    newReceipt(1, 100, eventLog(depositTopic)),
			latest:     105, // 6 confirmations, below the required 12
			blockTimes: map[uint64]uint64{100: baseTime},
		},
		bridge.ChainArbitrum: {chainID: bridge.ChainArbitrum, latest: 500, blockTimes: map[uint64]uint64{500: baseTime}},
	})

	session, err := tr.Track(context.Background(), &TrackArgs{
		Source: bridge.ChainEthereum, Target: bridge.ChainArbitrum, TxHash: testTxHash,
	})
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if session.Phase != PhaseBridgeInitiated {
		t.Errorf("phase: have %v, want %v", session.Phase, PhaseBridgeInitiated)
	}
	if session.Confirmations != 6 {
		t.Errorf("confirmations: have %v, want 6", session.Confirmations)
	}
	if session.Protocol != bridge.ProtocolCanonical {
		t.Errorf("inferred protocol: have %v, want canonical", session.Protocol)
	}
}

func withdrawalProviders(destBlockTime uint64, destLogs []*types.RPCLog) map[bridge.ChainID]*fakeProvider {
	withdrawTopic := topic("L2ToL1Tx(address,address,uint256,uint256,uint256,uint256,uint256,uint256,uint256,bytes)")
	return map[bridge.ChainID]*fakeProvider{
		bridge.ChainArbitrum: {
			chainID:    bridge.ChainArbitrum,
			receipt:    newReceipt(1, 100, eventLog(withdrawTopic)),
			latest:     200, // well above the required confirmations
			blockTimes: map[uint64]uint64{100: baseTime},
		},
		bridge.ChainEthereum: {
			chainID:    bridge.ChainEthereum,
			latest:     900,
			blockTimes: map[uint64]uint64{900: destBlockTime},
			logs:       destLogs,
		},
	}
}

func TestTrackChallengePeriod(t *testing.T) {
	// settlement chain clock is one hour past the withdrawal
	tr := newTestTracker(withdrawalProviders(baseTime+3600, nil))

	session, err := tr.Track(context.Background(), &TrackArgs{
		Source: bridge.ChainArbitrum, Target: bridge.ChainEthereum, TxHash: testTxHash,
	})
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if session.Phase != PhaseChallengePeriod {
		t.Errorf("phase: have %v, want %v", session.Phase, PhaseChallengePeriod)
	}
	if !session.IsRollupWithdrawal {
		t.Error("arbitrum -> ethereum must be a rollup withdrawal")
	}
	if session.ChallengeWindowHours != 7*24 {
		t.Errorf("challenge window: have %v hours, want %v", session.ChallengeWindowHours, 7*24)
	}
	wantCompletion := baseTime + 7*24*3600
	if session.EstimatedCompletion != wantCompletion {
		t.Errorf("estimated completion: have %v, want %v", session.EstimatedCompletion, wantCompletion)
	}
	if session.ChallengeElapsed {
		t.Error("challenge must not be elapsed one hour in")
	}
}

func TestTrackFinalization(t *testing.T) {
	// settlement chain block time has passed the challenge deadline
	tr := newTestTracker(withdrawalProviders(baseTime+7*24*3600, nil))

	session, err := tr.Track(context.Background(), &TrackArgs{
		Source: bridge.ChainArbitrum, Target: bridge.ChainEthereum, TxHash: testTxHash,
	})
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if session.Phase != PhaseFinalization {
		t.Errorf("phase: have %v, want %v", session.Phase, PhaseFinalization)
	}
	if !session.ChallengeElapsed {
		t.Error("challenge must be elapsed at the deadline")
	}
}

func TestTrackRollupCompleted(t *testing.T) {
	destLogs := []*types.RPCLog{arrivalLogFor(testUserAddr)}
	tr := newTestTracker(withdrawalProviders(baseTime+8*24*3600, destLogs))

	session, err := tr.Track(context.Background(), &TrackArgs{
		Source: bridge.ChainArbitrum, Target: bridge.ChainEthereum,
		TxHash: testTxHash, UserAddress: testUserAddr,
	})
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if session.Phase != PhaseCompleted {
		t.Errorf("phase: have %v, want %v", session.Phase, PhaseCompleted)
	}
	if !session.DestinationChecked || !session.DestinationArrived {
		t.Errorf("destination leg: checked %v arrived %v", session.DestinationChecked, session.DestinationArrived)
	}
	if ProgressPercent(session) != 100 {
		t.Errorf("completed progress: have %v, want 100", ProgressPercent(session))
	}
}

func TestTrackSkipsMalformedDestinationLogs(t *testing.T) {
	// lenient gateways may return anonymous or topic-less logs in the
	// arrival scan, they must be skipped, not crash the leg
	destLogs := []*types.RPCLog{
		eventLog(), // no topics at all
		eventLog(topic("SwapRemote(address,uint256,uint256,uint256)")), // no indexed params
		nil,
		arrivalLogFor(testUserAddr),
	}
	tr := newTestTracker(withdrawalProviders(baseTime+8*24*3600, destLogs))

	session, err := tr.Track(context.Background(), &TrackArgs{
		Source: bridge.ChainArbitrum, Target: bridge.ChainEthereum,
		TxHash: testTxHash, UserAddress: testUserAddr,
	})
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if !session.DestinationArrived {
		t.Error("valid arrival log must still be detected")
	}
	if session.Phase != PhaseCompleted {
		t.Errorf("phase: have %v, want %v", session.Phase, PhaseCompleted)
	}
}

func TestTrackProtocolHint(t *testing.T) {
	// receipt without a recognizable bridge event keeps the caller's hint
	tr := newTestTracker(map[bridge.ChainID]*fakeProvider{
		bridge.ChainEthereum: {
			chainID:    bridge.ChainEthereum,
			receipt:    newReceipt(1, 100),
			latest:     200,
			blockTimes: map[uint64]uint64{100: baseTime},
		},
		bridge.ChainArbitrum: {chainID: bridge.ChainArbitrum, latest: 500, blockTimes: map[uint64]uint64{500: baseTime}},
	})

	session, err := tr.Track(context.Background(), &TrackArgs{
		Source: bridge.ChainEthereum, Target: bridge.ChainArbitrum,
		TxHash: testTxHash, Protocol: bridge.ProtocolHop,
	})
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if session.Protocol != bridge.ProtocolHop {
		t.Errorf("protocol hint: have %v, want hop", session.Protocol)
	}

	// a decoded initiation event overrides the hint
	depositTopic := topic("DepositInitiated(address,address,uint256,uint256,uint256)")
	tr.ProviderFunc = newTestTracker(map[bridge.ChainID]*fakeProvider{
		bridge.ChainEthereum: {
			chainID:    bridge.ChainEthereum,
			receipt:    newReceipt(1, 100, eventLog(depositTopic)),
			latest:     200,
			blockTimes: map[uint64]uint64{100: baseTime},
		},
		bridge.ChainArbitrum: {chainID: bridge.ChainArbitrum, latest: 500, blockTimes: map[uint64]uint64{500: baseTime}},
	}).ProviderFunc

	session, err = tr.Track(context.Background(), &TrackArgs{
		Source: bridge.ChainEthereum, Target: bridge.ChainArbitrum,
		TxHash: testTxHash, Protocol: bridge.ProtocolHop,
	})
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if session.Protocol != bridge.ProtocolCanonical {
		t.Errorf("decoded protocol: have %v, want canonical", session.Protocol)
	}
}

func TestTrackArrivalIgnoresOtherUsers(t *testing.T) {
	// an arrival log of someone else must not complete this transfer
	destLogs := []*types.RPCLog{arrivalLogFor("0x2222222222222222222222222222222222222222")}
	tr := newTestTracker(withdrawalProviders(baseTime+3600, destLogs))

	session, err := tr.Track(context.Background(), &TrackArgs{
		Source: bridge.ChainArbitrum, Target: bridge.ChainEthereum,
		TxHash: testTxHash, UserAddress: testUserAddr,
	})
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if session.DestinationArrived {
		t.Error("foreign arrival log must not be attributed to this user")
	}
	if session.Phase != PhaseChallengePeriod {
		t.Errorf("phase: have %v, want %v", session.Phase, PhaseChallengePeriod)
	}
}

func TestTrackNonRollupNeverChallengePeriod(t *testing.T) {
	lockTopic := topic("LockedERC20(address,address,address,uint256)")
	tr := newTestTracker(map[bridge.ChainID]*fakeProvider{
		bridge.ChainPolygon: {
			chainID:    bridge.ChainPolygon,
			receipt:    newReceipt(1, 100, eventLog(lockTopic)),
			latest:     200,
			blockTimes: map[uint64]uint64{100: baseTime},
		},
		bridge.ChainEthereum: {chainID: bridge.ChainEthereum, latest: 900, blockTimes: map[uint64]uint64{900: baseTime + 9_000_000}},
	})

	session, err := tr.Track(context.Background(), &TrackArgs{
		Source: bridge.ChainPolygon, Target: bridge.ChainEthereum, TxHash: testTxHash,
	})
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if session.IsRollupWithdrawal {
		t.Error("polygon is not an optimistic rollup")
	}
	if session.Phase != PhaseDestinationArrival {
		t.Errorf("phase: have %v, want %v", session.Phase, PhaseDestinationArrival)
	}
	if session.EstimatedCompletion != 0 {
		t.Errorf("non rollup estimated completion: have %v, want 0", session.EstimatedCompletion)
	}
}

func TestTrackDestinationFailureDegrades(t *testing.T) {
	depositTopic := topic("DepositInitiated(address,address,uint256,uint256,uint256)")
	tr := newTestTracker(map[bridge.ChainID]*fakeProvider{
		bridge.ChainEthereum: {
			chainID:    bridge.ChainEthereum,
			receipt:    newReceipt(1, 100, eventLog(depositTopic)),
			latest:     200,
			blockTimes: map[uint64]uint64{100: baseTime},
		},
		bridge.ChainArbitrum: {chainID: bridge.ChainArbitrum, latestErr: errors.New("gateway down")},
	})

	session, err := tr.Track(context.Background(), &TrackArgs{
		Source: bridge.ChainEthereum, Target: bridge.ChainArbitrum,
		TxHash: testTxHash, UserAddress: testUserAddr,
	})
	if err != nil {
		t.Fatalf("destination failure must not fail the call: %v", err)
	}
	if session.DestinationError == "" {
		t.Error("want destination error recorded")
	}
	if session.Phase != PhaseDestinationArrival {
		t.Errorf("phase: have %v, want %v", session.Phase, PhaseDestinationArrival)
	}
}

func TestTrackIdempotent(t *testing.T) {
	tr := newTestTracker(withdrawalProviders(baseTime+3600, nil))
	args := &TrackArgs{Source: bridge.ChainArbitrum, Target: bridge.ChainEthereum, TxHash: testTxHash}

	first, err := tr.Track(context.Background(), args)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	second, err := tr.Track(context.Background(), args)
	if err != nil {
		t.Fatalf("Track failed: %v", err)
	}
	if first.Phase != second.Phase ||
		first.Confirmations != second.Confirmations ||
		first.EstimatedCompletion != second.EstimatedCompletion {
		t.Errorf("tracking is not idempotent at fixed chain state: %+v vs %+v", first, second)
	}
}

func TestProgressPercentMonotonic(t *testing.T) {
	for _, rollup := range []bool{false, true} {
		seq := PhaseSequence(rollup)
		prev := 0
		for _, phase := range seq {
			session := &Session{Phase: phase, IsRollupWithdrawal: rollup}
			have := ProgressPercent(session)
			if have <= prev {
				t.Errorf("progress of %v (rollup=%v) not increasing: %v <= %v", phase, rollup, have, prev)
			}
			prev = have
		}
		if prev != 100 {
			t.Errorf("final phase progress (rollup=%v): have %v, want 100", rollup, prev)
		}
	}
}
