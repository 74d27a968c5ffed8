// Package utils provides the shared CLI app, flags and cleanup helpers.
package utils

import (
	"github.com/urfave/cli/v2"

	"github.com/chainflow/bridge-router/log"
	"github.com/chainflow/bridge-router/params"
)

// common flags
var (
	DataDirFlag = &cli.StringFlag{
		Name:  "datadir",
		Usage: "data directory",
	}
	ConfigFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "config file path (toml)",
	}
	RunServerFlag = &cli.BoolFlag{
		Name:  "runserver",
		Usage: "run the api server",
	}
	LogFileFlag = &cli.StringFlag{
		Name:  "log.file",
		Usage: "log to file, rotate hourly",
	}
	LogRotationFlag = &cli.Uint64Flag{
		Name:  "log.rotation",
		Usage: "log rotation time (hours)",
		Value: 24,
	}
	LogMaxAgeFlag = &cli.Uint64Flag{
		Name:  "log.maxage",
		Usage: "log max age (hours)",
		Value: 720,
	}
	VerbosityFlag = &cli.Uint64Flag{
		Name:  "verbosity",
		Usage: "log verbosity (0:panic, 1:fatal, 2:error, 3:warn, 4:info, 5:debug, 6:trace)",
		Value: 4,
	}
	JSONFormatFlag = &cli.BoolFlag{
		Name:  "json",
		Usage: "log in json format",
	}
	ColorFormatFlag = &cli.BoolFlag{
		Name:  "color",
		Usage: "log colored text format",
		Value: true,
	}
)

// CommonLogFlags log related flags of sub commands
var CommonLogFlags = []cli.Flag{
	VerbosityFlag,
	JSONFormatFlag,
	ColorFormatFlag,
}

// NewApp creates a cli app with sane version string and common setup.
func NewApp(identifier, gitCommit, gitDate, usage string) *cli.App {
	app := cli.NewApp()
	app.Name = identifier
	app.Usage = usage
	app.Version = params.VersionWithMeta
	if gitCommit != "" {
		app.Version += "-" + gitCommit[:8]
	}
	if gitDate != "" {
		app.Version += "-" + gitDate
	}
	return app
}

// SetLogger set logger from cli flags
func SetLogger(ctx *cli.Context) {
	logLevel := uint32(ctx.Uint64(VerbosityFlag.Name))
	jsonFormat := ctx.Bool(JSONFormatFlag.Name)
	colorFormat := ctx.Bool(ColorFormatFlag.Name)
	log.SetLogger(logLevel, jsonFormat, colorFormat)

	logFile := ctx.String(LogFileFlag.Name)
	if logFile != "" {
		logRotation := ctx.Uint64(LogRotationFlag.Name)
		logMaxAge := ctx.Uint64(LogMaxAgeFlag.Name)
		log.SetLogFile(logFile, logRotation, logMaxAge)
	}
}

// GetConfigFilePath specified config file path
func GetConfigFilePath(ctx *cli.Context) string {
	return ctx.String(ConfigFileFlag.Name)
}

// GetDataDir specified data dir
func GetDataDir(ctx *cli.Context) string {
	return ctx.String(DataDirFlag.Name)
}
