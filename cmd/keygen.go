// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/dyscover/auth"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Print fresh secrets in .env format",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range []string{"ACCESS_KEY_SALT", "EXPORT_KEY"} {
			secret, err := auth.GenerateSecret()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", name, secret)
		}
		return nil
	},
}
