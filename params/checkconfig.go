package params

import (
	"github.com/pkg/errors"

	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/common"
)

// CheckConfig check config
func (config *BridgeConfig) CheckConfig(isServer bool) (err error) {
	if config.Identifier == "" {
		return errors.New("must config non empty 'Identifier'")
	}
	if err = config.checkGateways(); err != nil {
		return err
	}
	if err = config.checkOverrides(); err != nil {
		return err
	}
	if isServer {
		return config.checkServerConfig()
	}
	return nil
}

func (config *BridgeConfig) checkGateways() error {
	if len(config.Gateways) == 0 {
		return errors.New("must config 'Gateways'")
	}
	for chainIDStr, urls := range config.Gateways {
		if !bridge.ChainID(chainIDStr).IsSupported() {
			return errors.Errorf("unsupported chain '%v' in 'Gateways'", chainIDStr)
		}
		if len(urls) == 0 {
			return errors.Errorf("empty gateway url list of chain '%v'", chainIDStr)
		}
	}
	for chainIDStr, timeout := range config.RPCTimeouts {
		if !bridge.ChainID(chainIDStr).IsSupported() {
			return errors.Errorf("unsupported chain '%v' in 'RPCTimeouts'", chainIDStr)
		}
		if timeout <= 0 {
			return errors.Errorf("non positive rpc timeout of chain '%v'", chainIDStr)
		}
	}
	return nil
}

//nolint:gocyclo // config checking is one linear list of rules
func (config *BridgeConfig) checkOverrides() error {
	for chainIDStr, price := range config.Prices {
		if !bridge.ChainID(chainIDStr).IsSupported() {
			return errors.Errorf("unsupported chain '%v' in 'Prices'", chainIDStr)
		}
		if price <= 0 {
			return errors.Errorf("non positive price of chain '%v'", chainIDStr)
		}
	}
	for _, fo := range config.FeeOverrides {
		if !bridge.ChainID(fo.Source).IsSupported() || !bridge.ChainID(fo.Target).IsSupported() {
			return errors.Errorf("unsupported chain in fee override %v -> %v", fo.Source, fo.Target)
		}
		if fo.Base < 0 || fo.Percentage < 0 {
			return errors.Errorf("negative fee override of protocol '%v'", fo.Protocol)
		}
	}
	for _, dp := range config.Deployments {
		if !bridge.ChainID(dp.Source).IsSupported() || !bridge.ChainID(dp.Target).IsSupported() {
			return errors.Errorf("unsupported chain in deployment override %v -> %v", dp.Source, dp.Target)
		}
		if dp.Address != "" && !common.IsHexAddress(dp.Address) {
			return errors.Errorf("wrong deployment address '%v'", dp.Address)
		}
	}
	if config.Tracker != nil && config.Tracker.RecentBlockWindow > 100000 {
		return errors.New("'Tracker.RecentBlockWindow' too large, gateways reject wide log scans")
	}
	return nil
}

func (config *BridgeConfig) checkServerConfig() error {
	server := config.Server
	if server == nil {
		return errors.New("server run must config 'Server'")
	}
	if server.APIServer == nil {
		return errors.New("server run must config 'Server.APIServer'")
	}
	if server.APIServer.Port <= 0 || server.APIServer.Port > 65535 {
		return errors.Errorf("wrong api server port %v", server.APIServer.Port)
	}
	if server.MongoDB != nil {
		if server.MongoDB.DBURL == "" {
			return errors.New("mongodb must config 'DBURL'")
		}
		if server.MongoDB.DBName == "" {
			return errors.New("mongodb must config 'DBName'")
		}
	}
	return nil
}
