package cmd

import (
	"runtime"

	"github.com/spf13/cobra"

	"github.com/paw-chain/pawswap/x/swap/client/cli"
)

// Set with -ldflags "-X github.com/paw-chain/pawswap/cmd/pawswap/cmd.Version=..."
var (
	Version = "dev"
	Commit  = ""
)

// VersionInfo is the printed result of the version command
type VersionInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit,omitempty" yaml:"commit,omitempty"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

// VersionCmd prints the build version
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the pawswap version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			clientCtx, err := cli.GetClientContext(cmd)
			if err != nil {
				return err
			}
			return clientCtx.PrintObject(cmd, VersionInfo{
				Version:   Version,
				Commit:    Commit,
				GoVersion: runtime.Version(),
			})
		},
	}
}
