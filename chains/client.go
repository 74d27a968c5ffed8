// Package chains implements the read only EVM provider client used by the
// fee model and the transfer tracker, with gateway failover per chain.
package chains

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/log"
	"github.com/chainflow/bridge-router/rpc/client"
	"github.com/chainflow/bridge-router/types"
)

// ensure Client impl bridge.EVMProvider
var _ bridge.EVMProvider = &Client{}

// Client read only JSON-RPC client of one chain
type Client struct {
	chainID bridge.ChainID
	// GatewayURLs are tried in order until one answers.
	GatewayURLs []string
	// RPCClientTimeout in seconds. Some chain's rpc is slow and need a
	// longer timeout, adjustable per chain in config.
	RPCClientTimeout int
}

// NewClient new client
func NewClient(chainID bridge.ChainID, gateways []string) *Client {
	return &Client{
		chainID:          chainID,
		GatewayURLs:      gateways,
		RPCClientTimeout: client.GetDefaultTimeout(false),
	}
}

// ChainID impl
func (c *Client) ChainID() bridge.ChainID {
	return c.chainID
}

func (c *Client) rpcCall(ctx context.Context, result interface{}, method string, params ...interface{}) (err error) {
	timeout := c.RPCClientTimeout
	if deadline, ok := ctx.Deadline(); ok {
		remain := int(time.Until(deadline).Seconds())
		if remain > 0 && remain < timeout {
			timeout = remain
		}
	}
	for _, url := range c.GatewayURLs {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err = client.RPCPostWithTimeout(timeout, result, url, method, params...)
		if err == nil {
			return nil
		}
	}
	return bridge.WrapRPCQueryError(err, method, params...)
}

// GetTransaction impl
func (c *Client) GetTransaction(ctx context.Context, txHash string) (*types.RPCTransaction, error) {
	var result *types.RPCTransaction
	err := c.rpcCall(ctx, &result, "eth_getTransactionByHash", txHash)
	if err != nil {
		return nil, err
	}
	if result == nil || result.Hash == nil {
		return nil, bridge.ErrTxNotFound
	}
	return result, nil
}

// GetTransactionReceipt impl
func (c *Client) GetTransactionReceipt(ctx context.Context, txHash string) (*types.RPCTxReceipt, error) {
	var result *types.RPCTxReceipt
	err := c.rpcCall(ctx, &result, "eth_getTransactionReceipt", txHash)
	if err != nil {
		return nil, err
	}
	if result == nil || result.BlockNumber == nil {
		return nil, bridge.ErrTxNotFound
	}
	return result, nil
}

// GetLatestBlockNumber impl
func (c *Client) GetLatestBlockNumber(ctx context.Context) (uint64, error) {
	var result hexutil.Uint64
	err := c.rpcCall(ctx, &result, "eth_blockNumber")
	if err != nil {
		return 0, err
	}
	return uint64(result), nil
}

// GetBlockByNumber impl
func (c *Client) GetBlockByNumber(ctx context.Context, number *big.Int) (*types.RPCBaseBlock, error) {
	var result *types.RPCBaseBlock
	err := c.rpcCall(ctx, &result, "eth_getBlockByNumber", (*hexutil.Big)(number), false)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return nil, bridge.ErrNotFound
	}
	return result, nil
}

// GetLogs impl
func (c *Client) GetLogs(ctx context.Context, filter *types.FilterQuery) ([]*types.RPCLog, error) {
	var result []*types.RPCLog
	err := c.rpcCall(ctx, &result, "eth_getLogs", filter)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetFeeData impl. Queries eth_gasPrice, and eth_maxPriorityFeePerGas on a
// best effort basis (not all test networks expose it).
func (c *Client) GetFeeData(ctx context.Context) (*bridge.FeeData, error) {
	var gasPrice hexutil.Big
	err := c.rpcCall(ctx, &gasPrice, "eth_gasPrice")
	if err != nil {
		return nil, err
	}
	feeData := &bridge.FeeData{GasPrice: gasPrice.ToInt()}

	var gasTipCap hexutil.Big
	if errt := c.rpcCall(ctx, &gasTipCap, "eth_maxPriorityFeePerGas"); errt == nil {
		feeData.GasTipCap = gasTipCap.ToInt()
	} else {
		log.Trace("get max priority fee failed", "chainID", c.chainID, "err", errt)
	}
	return feeData, nil
}

// GetBlockConfirmations confirmations of the given receipt
func (c *Client) GetBlockConfirmations(ctx context.Context, receipt *types.RPCTxReceipt) (uint64, error) {
	latest, err := c.GetLatestBlockNumber(ctx)
	if err != nil {
		return 0, err
	}
	blockHeight := receipt.BlockHeight()
	if blockHeight == 0 || latest < blockHeight {
		return 0, nil
	}
	return latest - blockHeight + 1, nil
}
