// Package bridgeapi glues the registry, planner, fee model and tracker
// together behind the RPC surface, with input validation and the optional
// history archive.
package bridgeapi

import (
	"context"
	"strings"
	"time"

	rpcjson "github.com/gorilla/rpc/v2/json2"

	"github.com/chainflow/bridge-router/bridge"
	"github.com/chainflow/bridge-router/chains"
	"github.com/chainflow/bridge-router/common"
	"github.com/chainflow/bridge-router/fees"
	"github.com/chainflow/bridge-router/log"
	"github.com/chainflow/bridge-router/mongodb"
	"github.com/chainflow/bridge-router/params"
	"github.com/chainflow/bridge-router/planner"
	"github.com/chainflow/bridge-router/registry"
	"github.com/chainflow/bridge-router/tracker"
)

var (
	catalog         *registry.Registry
	routePlanner    *planner.Planner
	feeModel        *fees.Model
	transferTracker *tracker.Tracker
	priceSource     *fees.StaticPriceSource
)

// Init init api collaborators. Call once at startup after chain clients
// are initialized.
func Init() {
	catalog = registry.NewDefault()
	params.ApplyRegistryOverrides(catalog)

	priceSource = fees.NewStaticPriceSource()
	for chainIDStr, price := range params.GetPriceOverrides() {
		priceSource.SetPrice(bridge.ChainID(chainIDStr), price)
	}

	routePlanner = planner.New(catalog)
	feeModel = fees.NewModel(catalog, priceSource, chains.GetProvider)
	transferTracker = tracker.New(catalog, chains.GetProvider)
	if trackerCfg := params.GetTrackerConfig(); trackerCfg != nil {
		if trackerCfg.RequiredConfirmations > 0 {
			transferTracker.RequiredConfirmations = trackerCfg.RequiredConfirmations
		}
		if trackerCfg.RecentBlockWindow > 0 {
			transferTracker.RecentBlockWindow = trackerCfg.RecentBlockWindow
		}
	}
	log.Info("init bridge api success")
}

func newRPCError(ec rpcjson.ErrorCode, message string) error {
	return &rpcjson.Error{
		Code:    ec,
		Message: message,
	}
}

func newRPCInternalError(err error) error {
	return newRPCError(-32000, "rpcError: "+err.Error())
}

func parseChainID(str string) (bridge.ChainID, error) {
	chainID := bridge.ChainID(strings.ToLower(str))
	if !chainID.IsSupported() {
		return "", newRPCError(-32099, "unsupported chain: "+str)
	}
	return chainID, nil
}

// GetServerInfo get server info
func GetServerInfo() *ServerInfo {
	return &ServerInfo{
		Identifier: params.GetIdentifier(),
		Version:    params.VersionWithMeta,
	}
}

// FindRoutes plan bridge routes for (source, target, asset)
func FindRoutes(sourceStr, targetStr, asset string, prefs *planner.Preferences) (*RouteResult, error) {
	source, err := parseChainID(sourceStr)
	if err != nil {
		return nil, err
	}
	target, err := parseChainID(targetStr)
	if err != nil {
		return nil, err
	}
	if asset == "" {
		return nil, newRPCError(-32099, "empty asset")
	}
	log.Info("[api] find routes", "source", source, "target", target, "asset", asset)

	plan, err := routePlanner.FindRoutes(source, target, asset, prefs)
	if err != nil {
		return nil, newRPCInternalError(err)
	}
	result := ConvertPlanToRouteResult(source, target, asset, plan)
	archiveRouteQuery(source, target, asset, len(plan.Routes))
	return result, nil
}

// TrackTransfer classify the transfer phases of txHash. The protocol is an
// optional hint used when the receipt carries no recognizable bridge event.
func TrackTransfer(ctx context.Context, sourceStr, targetStr, txHash, userAddress, protocolStr string) (*TrackResult, error) {
	source, err := parseChainID(sourceStr)
	if err != nil {
		return nil, err
	}
	target, err := parseChainID(targetStr)
	if err != nil {
		return nil, err
	}
	if !common.IsHexHash(txHash) {
		return nil, newRPCError(-32099, "malformed transaction hash: "+txHash)
	}
	if userAddress != "" && !common.IsHexAddress(userAddress) {
		return nil, newRPCError(-32099, "malformed user address: "+userAddress)
	}
	log.Info("[api] track transfer", "source", source, "target", target, "txhash", txHash)

	session, err := transferTracker.Track(ctx, &tracker.TrackArgs{
		Source:      source,
		Target:      target,
		TxHash:      txHash,
		UserAddress: userAddress,
		Protocol:    bridge.ProtocolID(strings.ToLower(protocolStr)),
	})
	if err != nil {
		return nil, newRPCInternalError(err)
	}
	result := ConvertSessionToTrackResult(session)
	archiveTrackSnapshot(session)
	return result, nil
}

// EstimateBridgeFee estimate transfer cost of (source, target, asset, amount)
func EstimateBridgeFee(ctx context.Context, sourceStr, targetStr, asset, amountStr, protocolStr, urgencyStr string) (*FeeResult, error) {
	source, err := parseChainID(sourceStr)
	if err != nil {
		return nil, err
	}
	target, err := parseChainID(targetStr)
	if err != nil {
		return nil, err
	}
	amount := 0.0
	if amountStr != "" {
		amount, err = common.GetFloat64FromStr(amountStr)
		if err != nil || amount < 0 {
			return nil, newRPCError(-32099, "invalid amount: "+amountStr)
		}
	}
	args := &fees.EstimateArgs{
		Source:   source,
		Target:   target,
		Asset:    asset,
		Amount:   amount,
		Protocol: bridge.ProtocolID(strings.ToLower(protocolStr)),
		Urgency:  fees.Urgency(strings.ToLower(urgencyStr)),
	}
	log.Info("[api] estimate bridge fee", "source", source, "target", target, "asset", asset, "amount", amount)

	res, err := feeModel.Estimate(ctx, args)
	if err != nil {
		return nil, newRPCInternalError(err)
	}
	nativeSymbol := "ETH"
	if cfg := catalog.GetChainConfig(source); cfg != nil {
		nativeSymbol = cfg.NativeSymbol
	}
	return ConvertFeeResult(args, res, nativeSymbol), nil
}

// GetAllChainIDs all supported chain ids
func GetAllChainIDs() []bridge.ChainID {
	return bridge.AllChainIDs
}

// GetAllProtocols all known protocol ids
func GetAllProtocols() []bridge.ProtocolID {
	return bridge.AllProtocolIDs
}

// GetChainInfo chain config of specified chain
func GetChainInfo(chainIDStr string) (*ChainInfo, error) {
	chainID, err := parseChainID(chainIDStr)
	if err != nil {
		return nil, err
	}
	cfg := catalog.GetChainConfig(chainID)
	if cfg == nil {
		return nil, newRPCInternalError(bridge.ErrChainUnsupported)
	}
	return ConvertChainInfo(cfg), nil
}

// GetBridgeEdges all catalog edges
func GetBridgeEdges() []*EdgeInfo {
	edges := catalog.Edges()
	result := make([]*EdgeInfo, 0, len(edges))
	for _, edge := range edges {
		result = append(result, ConvertEdgeInfo(edge))
	}
	return result
}

// GetTransferHistory archived track snapshots of an address
func GetTransferHistory(chainIDStr, address string, offset, limit int) ([]*mongodb.MgoTrackSnapshot, error) {
	if !mongodb.HasClient() {
		return nil, newRPCError(-32098, "history archive not enabled")
	}
	switch {
	case limit == 0:
		limit = 20 // default
	case limit > 100:
		limit = 100
	case limit < -100:
		limit = -100
	}
	return mongodb.FindTrackSnapshots(chainIDStr, address, offset, limit)
}

func archiveTrackSnapshot(session *tracker.Session) {
	if !mongodb.HasClient() {
		return
	}
	snapshot := &mongodb.MgoTrackSnapshot{
		Key:                 mongodb.TrackSnapshotKey(session.SourceChain.String(), session.TxHash),
		TxHash:              session.TxHash,
		SourceChain:         session.SourceChain.String(),
		TargetChain:         session.TargetChain.String(),
		UserAddress:         strings.ToLower(session.UserAddress),
		Protocol:            session.Protocol.String(),
		Phase:               string(session.Phase),
		Confirmations:       session.Confirmations,
		EstimatedCompletion: session.EstimatedCompletion,
		Timestamp:           time.Now().Unix(),
	}
	// write behind, the archive never blocks or fails a tracking call
	go func() {
		if err := mongodb.AddTrackSnapshot(snapshot); err != nil {
			log.Warn("[api] archive track snapshot failed", "txhash", snapshot.TxHash, "err", err)
		}
	}()
}

func archiveRouteQuery(source, target bridge.ChainID, asset string, routeCount int) {
	if !mongodb.HasClient() {
		return
	}
	query := &mongodb.MgoRouteQuery{
		SourceChain: source.String(),
		TargetChain: target.String(),
		Asset:       asset,
		RouteCount:  routeCount,
		Timestamp:   time.Now().Unix(),
	}
	go func() {
		if err := mongodb.AddRouteQuery(query); err != nil {
			log.Warn("[api] archive route query failed", "err", err)
		}
	}()
}
