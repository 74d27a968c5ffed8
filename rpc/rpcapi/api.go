// Package rpcapi provides the JSON-RPC 2.0 service of the api server.
package rpcapi

import (
	"net/http"

	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/internal/bridgeapi"
	"github.com/chainflow/bridge-router/mongodb"
	"github.com/chainflow/bridge-router/params"
	"github.com/chainflow/bridge-router/planner"
)

// BridgeRouterAPI rpc api handler
type BridgeRouterAPI struct{}

// RPCNullArgs null args
type RPCNullArgs struct{}

// GetVersionInfo api
func (s *BridgeRouterAPI) GetVersionInfo(r *http.Request, args *RPCNullArgs, result *string) error {
	version := params.VersionWithMeta
	*result = version
	return nil
}

// GetServerInfo api
func (s *BridgeRouterAPI) GetServerInfo(r *http.Request, args *RPCNullArgs, result *bridgeapi.ServerInfo) error {
	serverInfo := bridgeapi.GetServerInfo()
	*result = *serverInfo
	return nil
}

// FindRoutesArgs args
type FindRoutesArgs struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Asset    string `json:"asset"`
	Speed    string `json:"speed,omitempty"`
	Security string `json:"security,omitempty"`
	MaxHops  int    `json:"maxHops,omitempty"`
}

// FindRoutes api
func (s *BridgeRouterAPI) FindRoutes(r *http.Request, args *FindRoutesArgs, result *bridgeapi.RouteResult) error {
	prefs := &planner.Preferences{
		Speed:    args.Speed,
		Security: args.Security,
		MaxHops:  args.MaxHops,
	}
	res, err := bridgeapi.FindRoutes(args.Source, args.Target, args.Asset, prefs)
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// TrackTransferArgs args
type TrackTransferArgs struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	TxHash   string `json:"txhash"`
	Address  string `json:"address,omitempty"`
	Protocol string `json:"protocol,omitempty"`
}

// TrackTransfer api
func (s *BridgeRouterAPI) TrackTransfer(r *http.Request, args *TrackTransferArgs, result *bridgeapi.TrackResult) error {
	res, err := bridgeapi.TrackTransfer(r.Context(), args.Source, args.Target, args.TxHash, args.Address, args.Protocol)
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// EstimateFeeArgs args
type EstimateFeeArgs struct {
	Source   string `json:"source"`
	Target   string `json:"target"`
	Asset    string `json:"asset"`
	Amount   string `json:"amount,omitempty"`
	Protocol string `json:"protocol,omitempty"`
	Urgency  string `json:"urgency,omitempty"`
}

// EstimateBridgeFee api
func (s *BridgeRouterAPI) EstimateBridgeFee(r *http.Request, args *EstimateFeeArgs, result *bridgeapi.FeeResult) error {
	res, err := bridgeapi.EstimateBridgeFee(r.Context(), args.Source, args.Target, args.Asset, args.Amount, args.Protocol, args.Urgency)
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// GetAllChainIDs api
func (s *BridgeRouterAPI) GetAllChainIDs(r *http.Request, args *RPCNullArgs, result *[]bridge.ChainID) error {
	*result = bridgeapi.GetAllChainIDs()
	return nil
}

// GetAllProtocols api
func (s *BridgeRouterAPI) GetAllProtocols(r *http.Request, args *RPCNullArgs, result *[]bridge.ProtocolID) error {
	*result = bridgeapi.GetAllProtocols()
	return nil
}

// GetChainInfo api
// nolint:gocritic // rpc need result of pointer type
func (s *BridgeRouterAPI) GetChainInfo(r *http.Request, args *string, result *bridgeapi.ChainInfo) error {
	res, err := bridgeapi.GetChainInfo(*args)
	if err == nil && res != nil {
		*result = *res
	}
	return err
}

// GetBridgeEdges api
func (s *BridgeRouterAPI) GetBridgeEdges(r *http.Request, args *RPCNullArgs, result *[]*bridgeapi.EdgeInfo) error {
	*result = bridgeapi.GetBridgeEdges()
	return nil
}

// GetTransferHistoryArgs args
type GetTransferHistoryArgs struct {
	ChainID string `json:"chainid"`
	Address string `json:"address"`
	Offset  int    `json:"offset"`
	Limit   int    `json:"limit"`
}

// GetTransferHistory api
func (s *BridgeRouterAPI) GetTransferHistory(r *http.Request, args *GetTransferHistoryArgs, result *[]*mongodb.MgoTrackSnapshot) error {
	res, err := bridgeapi.GetTransferHistory(args.ChainID, args.Address, args.Offset, args.Limit)
	if err == nil && res != nil {
		*result = res
	}
	return err
}
