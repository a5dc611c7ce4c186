package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cosmossdk.io/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/paw-chain/pawswap/x/swap/keeper"
)

type clientContextKey struct{}

// ClientContext carries what every command needs once the root command has
// read the configuration.
type ClientContext struct {
	Config *Config
	Logger log.Logger
	Keeper *keeper.Keeper
}

// NewClientContext builds the logger and keeper for cfg.
func NewClientContext(cfg *Config) (ClientContext, error) {
	logger, err := cfg.NewLogger()
	if err != nil {
		return ClientContext{}, err
	}
	k, err := cfg.NewKeeper(logger)
	if err != nil {
		return ClientContext{}, err
	}
	return ClientContext{Config: cfg, Logger: logger, Keeper: k}, nil
}

// SetClientContext stores clientCtx on the command's context.
func SetClientContext(cmd *cobra.Command, clientCtx ClientContext) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, clientContextKey{}, clientCtx))
}

// GetClientContext returns the context stored by SetClientContext.
func GetClientContext(cmd *cobra.Command) (ClientContext, error) {
	if ctx := cmd.Context(); ctx != nil {
		if clientCtx, ok := ctx.Value(clientContextKey{}).(ClientContext); ok {
			return clientCtx, nil
		}
	}
	return ClientContext{}, errors.New("client context is not initialized")
}

// PrintObject writes v to the command's output in the configured format.
func (c ClientContext) PrintObject(cmd *cobra.Command, v interface{}) error {
	var (
		out []byte
		err error
	)
	switch c.Config.Output {
	case OutputFormatJSON:
		out, err = json.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	default:
		out, err = yaml.Marshal(v)
	}
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}
