package bridge

import (
	"context"
	"math/big"

	"github.com/chainflow/bridge-router/types"
)

// EVMProvider is the read only chain access consumed by the fee model and
// the transfer tracker. All methods are chain scoped.
type EVMProvider interface {
	ChainID() ChainID

	GetTransaction(ctx context.Context, txHash string) (*types.RPCTransaction, error)
	GetTransactionReceipt(ctx context.Context, txHash string) (*types.RPCTxReceipt, error)
	GetLatestBlockNumber(ctx context.Context) (uint64, error)
	GetBlockByNumber(ctx context.Context, number *big.Int) (*types.RPCBaseBlock, error)
	GetLogs(ctx context.Context, filter *types.FilterQuery) ([]*types.RPCLog, error)
	GetFeeData(ctx context.Context) (*FeeData, error)
}

// FeeData is the live fee view of one chain.
type FeeData struct {
	GasPrice  *big.Int
	GasTipCap *big.Int
	BaseFee   *big.Int
}

// PriceSource converts native currency amounts to USD.
// It is an external collaborator injected into the fee model.
type PriceSource interface {
	NativeTokenPriceUSD(ctx context.Context, chainID ChainID) (float64, error)
}
