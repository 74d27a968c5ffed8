// Command bridgerouter is the main program to start the bridge route
// planning and transfer tracking service or its sub commands.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/chainflow/bridge-router/chains"
	"github.com/chainflow/bridge-router/cmd/utils"
	"github.com/chainflow/bridge-router/internal/bridgeapi"
	"github.com/chainflow/bridge-router/log"
	"github.com/chainflow/bridge-router/mongodb"
	"github.com/chainflow/bridge-router/params"
	rpcserver "github.com/chainflow/bridge-router/rpc/server"
)

var (
	clientIdentifier = "bridgerouter"
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""
	// The app that holds all commands and flags.
	app = utils.NewApp(clientIdentifier, gitCommit, gitDate, "the bridge router command line interface")
)

func initApp() {
	// Initialize the CLI app and start action
	app.Action = bridgerouter
	app.HideVersion = true // we have a command to print the version
	app.Commands = []*cli.Command{
		toolsCommand,
		utils.VersionCommand,
	}
	app.Flags = []cli.Flag{
		utils.DataDirFlag,
		utils.ConfigFileFlag,
		utils.RunServerFlag,
		utils.LogFileFlag,
		utils.LogRotationFlag,
		utils.LogMaxAgeFlag,
		utils.VerbosityFlag,
		utils.JSONFormatFlag,
		utils.ColorFormatFlag,
	}
}

func main() {
	initApp()
	if err := app.Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func bridgerouter(ctx *cli.Context) error {
	utils.SetLogger(ctx)
	if ctx.NArg() > 0 {
		return fmt.Errorf("invalid command: %q", ctx.Args().Get(0))
	}
	isServer := ctx.Bool(utils.RunServerFlag.Name)
	if !isServer {
		return fmt.Errorf("nothing to run, use --%v to start the api server or see sub commands", utils.RunServerFlag.Name)
	}

	params.SetDataDir(utils.GetDataDir(ctx))
	configFile := utils.GetConfigFilePath(ctx)
	config := params.LoadConfig(configFile, isServer)

	utils.InitSignalHandler()

	chains.InitClients(params.GetGateways(), params.GetRPCTimeouts())
	bridgeapi.Init()

	if dbConfig := params.GetMongoDBConfig(); dbConfig != nil {
		mongodb.MongoServerInit(
			config.Identifier,
			dbConfig.DBURL,
			dbConfig.DBName,
			dbConfig.UserName,
			dbConfig.Password,
		)
	}

	params.OnConfigReload = func(newConfig *params.BridgeConfig) {
		chains.InitClients(newConfig.Gateways, newConfig.RPCTimeouts)
	}
	params.WatchConfig(isServer)

	time.Sleep(100 * time.Millisecond)
	rpcserver.StartAPIServer()

	utils.TopWaitGroup.Wait()
	return nil
}
