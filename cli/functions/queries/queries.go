//
// Copyright (c) 2024-2025 Tenebris Technologies Inc.
// See LICENSE file for details
//

package queries

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coinsage/coinsage/cli/communications"
	"github.com/coinsage/coinsage/cli/display"
	"github.com/coinsage/coinsage/cli/login"
	"github.com/coinsage/coinsage/cli/util"
	"github.com/coinsage/coinsage/common/schema"
)

// Parameters accepted on the command line, matched case-insensitively
var allowed = map[string]string{
	"tokenaddress": schema.ParamTokenAddress,
	"tokenid":      schema.ParamTokenID,
	"limit":        schema.ParamLimit,
}

func Register() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "queries",
		Aliases: []string{"query"},
		Short:   "query log functions",
		Long:    "list token queries recorded by the bot, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return fmt.Errorf("a subcommand is required\n")
			}
			return fmt.Errorf("unknown subcommand: %s\n", args[0])
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "analyze [tokenAddress=<address>] [tokenId=<symbol>] [limit=<n>]",
		Short: "list token analyses",
		Long:  "list token address analyses with optional address, symbol and limit filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return queriesGet(schema.EndpointAnalyze, args)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "price [tokenAddress=<address>] [tokenId=<symbol>] [limit=<n>]",
		Short: "list price queries",
		Long:  "list token price queries with optional address, symbol and limit filters",
		RunE: func(cmd *cobra.Command, args []string) error {
			return queriesGet(schema.EndpointPrice, args)
		},
	})

	return cmd
}

func queriesGet(endpoint string, args []string) error {
	pairs, err := Params(args)
	if err != nil {
		return err
	}

	c := communications.New(login.Login())
	display.ErrorWrapper(display.QueryLogResp(c.GetQuery(endpoint, pairs)))
	return nil
}

// Params maps name=value arguments onto the API's query parameter names
func Params(args []string) (*util.NVPairs, error) {
	in := util.NewNVPairs(args)
	out := &util.NVPairs{Pairs: make(map[string]string, len(in.Pairs))}
	for k, v := range in.Pairs {
		name, ok := allowed[k]
		if !ok {
			return nil, fmt.Errorf("unknown parameter: %s", k)
		}
		out.Pairs[name] = v
	}
	return out, nil
}
