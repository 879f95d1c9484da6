package main

import (
	"github.com/spf13/cobra"

	"github.com/reglet-dev/envseal/internal/application/dto"
	"github.com/reglet-dev/envseal/internal/infrastructure/output"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a workspace file and restore its secrets",
	Long: `Import a workspace JSON file. Each redacted secret is restored from the
live workspace when it has one, else from the local store, else by asking.
Prompts go in environment sort order. With --no-interactive, a secret that
cannot be restored aborts the import before the workspace is touched.`,
	Args: cobra.NoArgs,
	RunE: withContainer(runImport),
}

func init() {
	rootCmd.AddCommand(importCmd)
	addFileFlag(importCmd, "read the import from here instead of asking")
}

func runImport(cc *CommandContext, _ *cobra.Command, _ []string) error {
	ref, err := cc.resolveWorkspace()
	if err != nil {
		return err
	}

	resp, err := cc.Container.ImportUseCase().Execute(cc.Context, dto.ImportWorkspaceRequest{Workspace: ref})
	if err != nil {
		return err
	}

	return cc.Formatter.FormatPass(output.NewImportSummary(ref, resp))
}
