package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/chainflow/bridge-router/chains"
	"github.com/chainflow/bridge-router/cmd/utils"
	"github.com/chainflow/bridge-router/internal/bridgeapi"
	"github.com/chainflow/bridge-router/params"
	"github.com/chainflow/bridge-router/planner"
)

var (
	toolsCommand = &cli.Command{
		Name:  "tools",
		Usage: "one shot queries without running the server",
		Description: `
run a single route planning, fee estimation or tracking query and print
the result as json
`,
		Subcommands: []*cli.Command{
			{
				Name:      "findroutes",
				Usage:     "plan bridge routes",
				Action:    findRoutes,
				ArgsUsage: "<source> <target> <asset>",
				Flags:     append([]cli.Flag{utils.ConfigFileFlag, speedFlag, securityFlag, maxHopsFlag}, utils.CommonLogFlags...),
			},
			{
				Name:      "track",
				Usage:     "track a bridge transfer",
				Action:    trackTransfer,
				ArgsUsage: "<source> <target> <txhash>",
				Flags:     append([]cli.Flag{utils.ConfigFileFlag, addressFlag, protocolFlag}, utils.CommonLogFlags...),
			},
			{
				Name:      "estimatefee",
				Usage:     "estimate bridge transfer cost",
				Action:    estimateFee,
				ArgsUsage: "<source> <target> <asset>",
				Flags:     append([]cli.Flag{utils.ConfigFileFlag, amountFlag, protocolFlag, urgencyFlag}, utils.CommonLogFlags...),
			},
		},
	}

	speedFlag = &cli.StringFlag{
		Name:  "speed",
		Usage: "slowest acceptable speed bucket (instant, fast, standard, slow)",
	}
	securityFlag = &cli.StringFlag{
		Name:  "security",
		Usage: "least trusted acceptable security class (canonical, optimistic, third-party)",
	}
	maxHopsFlag = &cli.IntFlag{
		Name:  "maxhops",
		Usage: "maximum hops, 1 disables hub routes",
		Value: 2,
	}
	addressFlag = &cli.StringFlag{
		Name:  "address",
		Usage: "user address, enables destination arrival detection",
	}
	amountFlag = &cli.StringFlag{
		Name:  "amount",
		Usage: "transfer amount in asset units",
	}
	protocolFlag = &cli.StringFlag{
		Name:  "protocol",
		Usage: "bridge protocol (default: first deployed)",
	}
	urgencyFlag = &cli.StringFlag{
		Name:  "urgency",
		Usage: "source leg urgency (economy, standard, fast)",
	}
)

func prepareTools(ctx *cli.Context, argCount int) error {
	utils.SetLogger(ctx)
	if ctx.NArg() != argCount {
		return fmt.Errorf("want %v arguments, have %v", argCount, ctx.NArg())
	}
	params.LoadConfig(utils.GetConfigFilePath(ctx), false)
	chains.InitClients(params.GetGateways(), params.GetRPCTimeouts())
	bridgeapi.Init()
	return nil
}

func printResult(result interface{}) {
	jsonData, _ := json.MarshalIndent(result, "", "  ")
	fmt.Println(string(jsonData))
}

func findRoutes(ctx *cli.Context) error {
	if err := prepareTools(ctx, 3); err != nil {
		return err
	}
	prefs := &planner.Preferences{
		Speed:    ctx.String(speedFlag.Name),
		Security: ctx.String(securityFlag.Name),
		MaxHops:  ctx.Int(maxHopsFlag.Name),
	}
	result, err := bridgeapi.FindRoutes(ctx.Args().Get(0), ctx.Args().Get(1), ctx.Args().Get(2), prefs)
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

func trackTransfer(ctx *cli.Context) error {
	if err := prepareTools(ctx, 3); err != nil {
		return err
	}
	result, err := bridgeapi.TrackTransfer(context.Background(),
		ctx.Args().Get(0), ctx.Args().Get(1), ctx.Args().Get(2),
		ctx.String(addressFlag.Name), ctx.String(protocolFlag.Name))
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}

func estimateFee(ctx *cli.Context) error {
	if err := prepareTools(ctx, 3); err != nil {
		return err
	}
	result, err := bridgeapi.EstimateBridgeFee(context.Background(),
		ctx.Args().Get(0), ctx.Args().Get(1), ctx.Args().Get(2),
		ctx.String(amountFlag.Name), ctx.String(protocolFlag.Name), ctx.String(urgencyFlag.Name))
	if err != nil {
		return err
	}
	printResult(result)
	return nil
}
