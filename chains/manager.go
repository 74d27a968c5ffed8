package chains

import (
	"sync"

	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/log"
)

var (
	clientLock sync.RWMutex
	clientMap  = make(map[bridge.ChainID]*Client)
)

// InitClients init chain clients from gateway config. Safe to call again
// on config hot reload, existing clients are replaced atomically.
func InitClients(gateways map[string][]string, rpcTimeouts map[string]int) {
	newMap := make(map[bridge.ChainID]*Client, len(bridge.AllChainIDs))
	for _, chainID := range bridge.AllChainIDs {
		urls := gateways[chainID.String()]
		if len(urls) == 0 {
			log.Warn("no gateway config for chain", "chainID", chainID)
			continue
		}
		cli := NewClient(chainID, urls)
		if timeout, ok := rpcTimeouts[chainID.String()]; ok && timeout > 0 {
			cli.RPCClientTimeout = timeout
		}
		newMap[chainID] = cli
		log.Info("init chain client success", "chainID", chainID, "gateways", len(urls))
	}
	clientLock.Lock()
	clientMap = newMap
	clientLock.Unlock()
}

// GetClientByChainID get client of specified chain (nil if not inited)
func GetClientByChainID(chainID bridge.ChainID) *Client {
	clientLock.RLock()
	defer clientLock.RUnlock()
	return clientMap[chainID]
}

// GetProvider get provider interface of specified chain
func GetProvider(chainID bridge.ChainID) (bridge.EVMProvider, error) {
	if !chainID.IsSupported() {
		return nil, bridge.ErrChainUnsupported
	}
	cli := GetClientByChainID(chainID)
	if cli == nil {
		return nil, bridge.ErrNoGatewayConfig
	}
	return cli, nil
}
