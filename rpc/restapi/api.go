// Package restapi provides the RESTful handlers of the api server.
package restapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/chainflow/bridge-router/common"
	"github.com/chainflow/bridge-router/internal/bridgeapi"
	"github.com/chainflow/bridge-router/params"
	"github.com/chainflow/bridge-router/planner"
)

func writeResponse(w http.ResponseWriter, resp interface{}, err error) {
	// Note: must set header before write header
	if err == nil {
		w.Header().Set("Content-Type", "application/json")
	}
	w.WriteHeader(http.StatusOK)
	if err == nil {
		jsonData, _ := json.Marshal(resp)
		_, _ = w.Write(jsonData)
	} else {
		fmt.Fprintln(w, err.Error())
	}
}

// VersionInfoHandler handler
func VersionInfoHandler(w http.ResponseWriter, r *http.Request) {
	version := params.VersionWithMeta
	writeResponse(w, version, nil)
}

// ServerInfoHandler handler
func ServerInfoHandler(w http.ResponseWriter, r *http.Request) {
	serverInfo := bridgeapi.GetServerInfo()
	writeResponse(w, serverInfo, nil)
}

// FindRoutesHandler handler
func FindRoutesHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	source := vars["source"]
	target := vars["target"]
	asset := vars["asset"]

	vals := r.URL.Query()
	prefs := &planner.Preferences{}
	if speedVals, exist := vals["speed"]; exist {
		prefs.Speed = speedVals[0]
	}
	if securityVals, exist := vals["security"]; exist {
		prefs.Security = securityVals[0]
	}
	if maxHopsVals, exist := vals["maxhops"]; exist {
		maxHops, err := common.GetIntFromStr(maxHopsVals[0])
		if err != nil {
			writeResponse(w, nil, err)
			return
		}
		prefs.MaxHops = maxHops
	}

	res, err := bridgeapi.FindRoutes(source, target, asset, prefs)
	writeResponse(w, res, err)
}

// TrackTransferHandler handler
func TrackTransferHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	source := vars["source"]
	target := vars["target"]
	txhash := vars["txhash"]

	vals := r.URL.Query()
	userAddress, protocol := "", ""
	if addressVals, exist := vals["address"]; exist {
		userAddress = addressVals[0]
	}
	if protocolVals, exist := vals["protocol"]; exist {
		protocol = protocolVals[0]
	}

	res, err := bridgeapi.TrackTransfer(r.Context(), source, target, txhash, userAddress, protocol)
	writeResponse(w, res, err)
}

// EstimateFeeHandler handler
func EstimateFeeHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	source := vars["source"]
	target := vars["target"]
	asset := vars["asset"]

	vals := r.URL.Query()
	amount, protocol, urgency := "", "", ""
	if amountVals, exist := vals["amount"]; exist {
		amount = amountVals[0]
	}
	if protocolVals, exist := vals["protocol"]; exist {
		protocol = protocolVals[0]
	}
	if urgencyVals, exist := vals["urgency"]; exist {
		urgency = urgencyVals[0]
	}

	res, err := bridgeapi.EstimateBridgeFee(r.Context(), source, target, asset, amount, protocol, urgency)
	writeResponse(w, res, err)
}

// GetAllChainIDsHandler handler
func GetAllChainIDsHandler(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, bridgeapi.GetAllChainIDs(), nil)
}

// GetAllProtocolsHandler handler
func GetAllProtocolsHandler(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, bridgeapi.GetAllProtocols(), nil)
}

// GetChainInfoHandler handler
func GetChainInfoHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	chainID := vars["chainid"]
	res, err := bridgeapi.GetChainInfo(chainID)
	writeResponse(w, res, err)
}

// GetBridgeEdgesHandler handler
func GetBridgeEdgesHandler(w http.ResponseWriter, r *http.Request) {
	writeResponse(w, bridgeapi.GetBridgeEdges(), nil)
}

func getHistoryRequestVaules(r *http.Request) (offset, limit int, err error) {
	vals := r.URL.Query()

	offsetStr, exist := vals["offset"]
	if exist {
		offset, err = common.GetIntFromStr(offsetStr[0])
		if err != nil {
			return offset, limit, err
		}
	}

	limitStr, exist := vals["limit"]
	if exist {
		limit, err = common.GetIntFromStr(limitStr[0])
		if err != nil {
			return offset, limit, err
		}
	}

	return offset, limit, nil
}

// GetTransferHistoryHandler handler
func GetTransferHistoryHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	chainID := vars["chainid"]
	address := vars["address"]
	offset, limit, err := getHistoryRequestVaules(r)
	if err != nil {
		writeResponse(w, nil, err)
	} else {
		res, err := bridgeapi.GetTransferHistory(chainID, address, offset, limit)
		writeResponse(w, res, err)
	}
}
