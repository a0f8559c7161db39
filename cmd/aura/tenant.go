package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var tenantCmd = &cobra.Command{
	Use:   "tenant",
	Short: "Inspect the account tenant",
}

var tenantShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the tenant id for the configured credentials",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}

		tenantID, err := client.TenantID(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tenantID)
		return nil
	},
}

func init() {
	tenantCmd.AddCommand(tenantShowCmd)
}
