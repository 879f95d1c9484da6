package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/envseal/internal/domain/values"
	"github.com/reglet-dev/envseal/internal/infrastructure/output"
)

// storeCmd groups store maintenance commands
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Inspect and maintain the local secret store",
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the store entries of a workspace with secrets masked",
	Args:  cobra.NoArgs,
	RunE: withContainer(func(cc *CommandContext, _ *cobra.Command, _ []string) error {
		ref, err := cc.resolveWorkspace()
		if err != nil {
			return err
		}

		entries, err := cc.Container.SecretStore().Entries(cc.Context, ref.ID)
		if err != nil {
			return err
		}
		return cc.Formatter.FormatStore(output.NewStoreListing(ref.ID, entries))
	}),
}

var storePurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Remove every stored secret of a workspace, keeping its file path",
	Args:  cobra.NoArgs,
	RunE: withContainer(func(cc *CommandContext, cmd *cobra.Command, _ []string) error {
		ref, err := cc.resolveWorkspace()
		if err != nil {
			return err
		}

		removed, err := cc.Container.SecretStore().PurgeExcept(cc.Context, ref.ID, []values.StoreKey{values.FilePathKey(ref.ID)})
		if err != nil {
			return err
		}
		cc.Logger.Info("store purged", "workspace_id", ref.ID, "removed", removed)
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Removed %d store entries of %s\n", removed, ref.ID)
		return err
	}),
}

func init() {
	rootCmd.AddCommand(storeCmd)
	storeCmd.AddCommand(storeListCmd, storePurgeCmd)
}
