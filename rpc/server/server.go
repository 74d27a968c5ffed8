// Package server provides JSON/RESTful RPC service.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/didip/tollbooth/v6"
	"github.com/didip/tollbooth/v6/limiter"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/rpc/v2"
	rpcjson "github.com/gorilla/rpc/v2/json2"

	"github.com/chainflow/bridge-router/cmd/utils"
	"github.com/chainflow/bridge-router/log"
	"github.com/chainflow/bridge-router/params"
	"github.com/chainflow/bridge-router/rpc/restapi"
	"github.com/chainflow/bridge-router/rpc/rpcapi"
)

// StartAPIServer start api server
func StartAPIServer() {
	router := mux.NewRouter()
	initBridgeRouter(router)

	apiServer := params.GetAPIServerConfig()
	apiPort := apiServer.Port
	allowedOrigins := apiServer.AllowedOrigins
	maxRequestsLimit := apiServer.MaxRequestsLimit
	if maxRequestsLimit <= 0 {
		maxRequestsLimit = 10 // default value
	}

	corsOptions := []handlers.CORSOption{
		handlers.AllowedMethods([]string{"GET", "POST"}),
	}
	if len(allowedOrigins) != 0 {
		corsOptions = append(corsOptions,
			handlers.AllowedHeaders([]string{"X-Requested-With", "Content-Type"}),
			handlers.AllowedOrigins(allowedOrigins),
		)
	}

	log.Info("JSON RPC service listen and serving", "port", apiPort, "allowedOrigins", allowedOrigins)
	lmt := tollbooth.NewLimiter(float64(maxRequestsLimit),
		&limiter.ExpirableOptions{
			DefaultExpirationTTL: 600 * time.Second,
		},
	)
	handler := tollbooth.LimitHandler(lmt, handlers.CORS(corsOptions...)(router))
	svr := http.Server{
		Addr:         fmt.Sprintf(":%v", apiPort),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 300 * time.Second,
		Handler:      handler,
	}
	go func() {
		if err := svr.ListenAndServe(); err != nil {
			if errors.Is(err, http.ErrServerClosed) && utils.IsCleanuping() {
				return
			}
			log.Fatal("ListenAndServe error", "err", err)
		}
	}()

	utils.TopWaitGroup.Add(1)
	go utils.WaitAndCleanup(func() { doCleanup(&svr) })
}

func doCleanup(svr *http.Server) {
	defer utils.TopWaitGroup.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := svr.Shutdown(ctx); err != nil {
		log.Error("Server Shutdown failed", "err", err)
	}
	log.Info("Close http server success")
}

func initBridgeRouter(r *mux.Router) {
	rpcserver := rpc.NewServer()
	rpcserver.RegisterCodec(rpcjson.NewCodec(), "application/json")
	err := rpcserver.RegisterService(new(rpcapi.BridgeRouterAPI), "bridge")
	if err != nil {
		log.Fatal("start rpc service failed", "err", err)
	}

	r.Handle("/rpc", rpcserver)

	r.HandleFunc("/versioninfo", restapi.VersionInfoHandler).Methods("GET")
	r.HandleFunc("/serverinfo", restapi.ServerInfoHandler).Methods("GET")

	r.HandleFunc("/routes/{source}/{target}/{asset}", restapi.FindRoutesHandler).Methods("GET")
	r.HandleFunc("/track/{source}/{target}/{txhash}", restapi.TrackTransferHandler).Methods("GET")
	r.HandleFunc("/fee/{source}/{target}/{asset}", restapi.EstimateFeeHandler).Methods("GET")
	r.HandleFunc("/history/{chainid}/{address}", restapi.GetTransferHistoryHandler).Methods("GET")

	r.HandleFunc("/allchainids", restapi.GetAllChainIDsHandler).Methods("GET")
	r.HandleFunc("/allprotocols", restapi.GetAllProtocolsHandler).Methods("GET")
	r.HandleFunc("/chaininfo/{chainid}", restapi.GetChainInfoHandler).Methods("GET")
	r.HandleFunc("/bridgeedges", restapi.GetBridgeEdgesHandler).Methods("GET")
}
