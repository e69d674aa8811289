/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package health

import (
	"github.com/spf13/cobra"

	"github.com/coinsage/coinsage/cli/communications"
	"github.com/coinsage/coinsage/cli/display"
	"github.com/coinsage/coinsage/cli/login"
	"github.com/coinsage/coinsage/common/schema"
)

func Register() *cobra.Command {
	return &cobra.Command{
		Use:     "health",
		Aliases: []string{"ping"},
		Short:   "check the server",
		Long:    "call the server's health check endpoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute()
		},
	}
}

func execute() error {

	// The health check does not need a token
	_ = login.Login()
	c := communications.New()

	display.ErrorWrapper(display.AnyResp(c.Get(schema.EndpointHealth)))
	return nil
}
