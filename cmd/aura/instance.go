package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sofatutor/aura-cli/internal/aura"
)

var instanceCmd = &cobra.Command{
	Use:   "instance",
	Short: "Manage database instances",
	Long:  `Create, inspect, delete and wait on managed database instances.`,
}

var instanceCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new instance",
	Long: `Create a new instance under the account's tenant. The returned
username and password are shown exactly once and cannot be retrieved later.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}

		details, err := client.CreateInstance(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		jsonOut, _ := cmd.Flags().GetBool("json")
		if jsonOut {
			printJSON(cmd.OutOrStdout(), details)
		} else {
			printCreateDetails(cmd.OutOrStdout(), details)
		}

		wait, _ := cmd.Flags().GetBool("wait")
		if !wait {
			return nil
		}
		running, err := client.WaitForInstanceRunning(cmd.Context(), details.ID)
		if err != nil {
			return err
		}
		if !running {
			return fmt.Errorf("instance %s did not reach RUNNING within %s", details.ID, client.WaitTimeout)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Instance %s is running.\n", details.ID)
		return nil
	},
}

var instanceGetCmd = &cobra.Command{
	Use:   "get <instance-id>",
	Short: "Get instance details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}

		instance, err := client.GetInstance(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if instance == nil {
			return fmt.Errorf("instance %s not found", args[0])
		}

		jsonOut, _ := cmd.Flags().GetBool("json")
		if jsonOut {
			printJSON(cmd.OutOrStdout(), instance)
		} else {
			printInstanceDetails(cmd.OutOrStdout(), *instance)
		}
		return nil
	},
}

var instanceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all instances",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}

		instances, err := client.ListInstances(cmd.Context())
		if err != nil {
			return err
		}

		jsonOut, _ := cmd.Flags().GetBool("json")
		if jsonOut {
			printJSON(cmd.OutOrStdout(), instances)
		} else {
			printInstanceTable(cmd.OutOrStdout(), instances)
		}
		return nil
	},
}

var instanceDeleteCmd = &cobra.Command{
	Use:   "delete <instance-id>",
	Short: "Delete an instance",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}

		details, err := client.DeleteInstance(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		jsonOut, _ := cmd.Flags().GetBool("json")
		if jsonOut {
			printJSON(cmd.OutOrStdout(), details)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Instance %s deleted.\n", details.ID)
			printInstanceDetails(cmd.OutOrStdout(), details)
		}
		return nil
	},
}

var instanceWaitCmd = &cobra.Command{
	Use:   "wait <instance-id>",
	Short: "Wait until an instance is running",
	Long: `Poll an instance until it reaches RUNNING. Exits non-zero when the
instance is gone, is being deleted, or the wait timeout is reached.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := buildClient()
		if err != nil {
			return err
		}

		running, err := client.WaitForInstanceRunning(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !running {
			return fmt.Errorf("instance %s did not reach RUNNING within %s", args[0], client.WaitTimeout)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Instance %s is running.\n", args[0])
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{instanceCreateCmd, instanceGetCmd, instanceListCmd, instanceDeleteCmd} {
		cmd.Flags().Bool("json", false, "Output as JSON")
	}
	instanceCreateCmd.Flags().Bool("wait", false, "Block until the instance is running")

	instanceCmd.AddCommand(instanceCreateCmd, instanceGetCmd, instanceListCmd, instanceDeleteCmd, instanceWaitCmd)
}

func printJSON(w io.Writer, v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(out))
}

func printInstanceTable(w io.Writer, instances []aura.InstanceDetails) {
	fmt.Fprintf(w, "%-36s  %-30s  %-36s  %-10s\n", "ID", "Name", "Tenant", "Cloud")
	for _, inst := range instances {
		fmt.Fprintf(w, "%-36s  %-30s  %-36s  %-10s\n", inst.ID, inst.Name, inst.TenantID, inst.CloudProvider)
	}
}

func printInstanceDetails(w io.Writer, d aura.InstanceSpecificDetails) {
	fmt.Fprintf(w, "ID: %s\nName: %s\nTenant: %s\nCloud: %s\nStatus: %s\nMemory: %s\n", d.ID, d.Name, d.TenantID, d.CloudProvider, d.Status, d.Memory)
	if d.ConnectionURL != "" {
		fmt.Fprintf(w, "Connection URL: %s\n", d.ConnectionURL)
	}
}

func printCreateDetails(w io.Writer, d aura.InstanceCreateDetails) {
	fmt.Fprintf(w, "ID: %s\nName: %s\nTenant: %s\nCloud: %s\nConnection URL: %s\n", d.ID, d.Name, d.TenantID, d.CloudProvider, d.ConnectionURL)
	fmt.Fprintf(w, "Username: %s\nPassword: %s\n", d.Username, d.Password)
	fmt.Fprintln(w, "Store the password now; it cannot be retrieved again.")
}
