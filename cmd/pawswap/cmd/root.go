package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/x/swap/client/cli"
)

// NewRootCmd creates the pawswap root command. Every call gets its own
// viper instance, so commands built in tests do not share configuration.
func NewRootCmd() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "pawswap",
		Short: "PAW swap curve engine",
		Long: `pawswap quotes swaps, deposits and withdrawals against constant product,
constant price, stable and offset pools, and serves the same quotes over HTTP.

Configuration is read from pawswap.yaml or pawswap.toml, then PAWSWAP_*
environment variables, then flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// set the default command outputs
			cmd.SetOut(cmd.OutOrStdout())
			cmd.SetErr(cmd.ErrOrStderr())

			return initClientContext(cmd, v)
		},
	}

	cli.AddGlobalFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(
		cli.GetQuoteCmd(),
		cli.GetPoolCmd(),
		cli.GetCurvesCmd(),
		ServeCmd(),
		VersionCmd(),
	)

	return rootCmd
}

// initClientContext merges config file, environment and flags for the
// executing command and stores the resulting client context on it.
func initClientContext(cmd *cobra.Command, v *viper.Viper) error {
	configPath, err := cmd.Flags().GetString(cli.FlagConfig)
	if err != nil {
		return err
	}
	if err := cli.ReadConfig(v, configPath); err != nil {
		return err
	}
	if err := cli.BindGlobalFlags(v, cmd.Flags()); err != nil {
		return err
	}
	if err := cli.BindPoolFlags(v, cmd.Flags()); err != nil {
		return err
	}

	cfg, err := cli.LoadConfig(v)
	if err != nil {
		return err
	}
	clientCtx, err := cli.NewClientContext(cfg)
	if err != nil {
		return err
	}

	cli.SetClientContext(cmd, clientCtx)
	return nil
}
