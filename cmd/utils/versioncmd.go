package utils

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli/v2"

	"github.com/chainflow/bridge-router/params"
)

// VersionCommand version command
var VersionCommand = &cli.Command{
	Action:    version,
	Name:      "version",
	Usage:     "Print version numbers",
	ArgsUsage: " ",
	Description: `
The output of this command is supposed to be machine-readable.
`,
}

func version(ctx *cli.Context) error {
	fmt.Println(ctx.App.Name)
	fmt.Println("Version:", params.VersionWithMeta)
	fmt.Println("Go Version:", runtime.Version())
	fmt.Println("Operating System:", runtime.GOOS)
	fmt.Println("Architecture:", runtime.GOARCH)
	return nil
}
