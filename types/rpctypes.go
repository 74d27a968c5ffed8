// Package types declares the JSON-RPC wire types of EVM chains.
package types

import (
	"github.com/chainflow/bridge-router/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

// RPCBaseBlock struct
type RPCBaseBlock struct {
	Hash       *common.Hash    `json:"hash"`
	ParentHash *common.Hash    `json:"parentHash"`
	Miner      *common.Address `json:"miner"`
	Difficulty *hexutil.Big    `json:"difficulty"`
	Number     *hexutil.Big    `json:"number"`
	GasLimit   *hexutil.Uint64 `json:"gasLimit"`
	GasUsed    *hexutil.Uint64 `json:"gasUsed"`
	Time       *hexutil.Uint64 `json:"timestamp"`
	BaseFee    *hexutil.Big    `json:"baseFeePerGas,omitempty"`
}

// RPCTransaction struct
type RPCTransaction struct {
	Hash        *common.Hash    `json:"hash"`
	BlockNumber *hexutil.Big    `json:"blockNumber,omitempty"`
	BlockHash   *common.Hash    `json:"blockHash,omitempty"`
	TxIndex     *hexutil.Uint   `json:"transactionIndex,omitempty"`
	From        *common.Address `json:"from,omitempty"`
	Recipient   *common.Address `json:"to"`
	Nonce       *hexutil.Uint64 `json:"nonce"`
	Payload     *hexutil.Bytes  `json:"input"`
	Gas         *hexutil.Uint64 `json:"gas"`
	GasPrice    *hexutil.Big    `json:"gasPrice"`
	GasTipCap   *hexutil.Big    `json:"maxPriorityFeePerGas,omitempty"`
	GasFeeCap   *hexutil.Big    `json:"maxFeePerGas,omitempty"`
	Value       *hexutil.Big    `json:"value"`
	ChainID     *hexutil.Big    `json:"chainId,omitempty"`
}

// RPCLog struct
type RPCLog struct {
	Address     *common.Address `json:"address"`
	Topics      []common.Hash   `json:"topics"`
	Data        *hexutil.Bytes  `json:"data"`
	BlockNumber *hexutil.Uint64 `json:"blockNumber,omitempty"`
	TxHash      *common.Hash    `json:"transactionHash,omitempty"`
	TxIndex     *hexutil.Uint   `json:"transactionIndex,omitempty"`
	BlockHash   *common.Hash    `json:"blockHash,omitempty"`
	Index       *hexutil.Uint   `json:"logIndex,omitempty"`
	Removed     *bool           `json:"removed,omitempty"`
}

// RPCTxReceipt struct
type RPCTxReceipt struct {
	TxHash      *common.Hash    `json:"transactionHash"`
	TxIndex     *hexutil.Uint   `json:"transactionIndex"`
	BlockNumber *hexutil.Big    `json:"blockNumber"`
	BlockHash   *common.Hash    `json:"blockHash"`
	From        *common.Address `json:"from"`
	Recipient   *common.Address `json:"to"`
	GasUsed     *hexutil.Uint64 `json:"gasUsed"`
	Status      *hexutil.Uint64 `json:"status"`
	Logs        []*RPCLog       `json:"logs"`
}

// IsStatusOk is receipt status ok
func (r *RPCTxReceipt) IsStatusOk() bool {
	return r != nil && r.Status != nil && *r.Status == 1
}

// IsReverted is receipt present with a failed status
func (r *RPCTxReceipt) IsReverted() bool {
	return r != nil && r.Status != nil && *r.Status == 0
}

// BlockHeight get receipt block height (zero if not mined)
func (r *RPCTxReceipt) BlockHeight() uint64 {
	if r == nil || r.BlockNumber == nil {
		return 0
	}
	return r.BlockNumber.ToInt().Uint64()
}

// FilterQuery getLogs filter argument
type FilterQuery struct {
	FromBlock *hexutil.Big     `json:"fromBlock,omitempty"`
	ToBlock   *hexutil.Big     `json:"toBlock,omitempty"`
	Addresses []common.Address `json:"address,omitempty"`
	Topics    [][]common.Hash  `json:"topics,omitempty"`
}
