package main

import (
	"github.com/spf13/cobra"

	"github.com/reglet-dev/envseal/internal/application/dto"
	"github.com/reglet-dev/envseal/internal/infrastructure/output"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a workspace with its secrets redacted",
	Long: `Export the workspace to a JSON file. Every secret is saved to the local
store and replaced by "******" in the file. Store entries of secrets that no
longer exist in the workspace are removed. Resources are sorted by id so
successive exports diff cleanly.`,
	Args: cobra.NoArgs,
	RunE: withContainer(runExport),
}

func init() {
	rootCmd.AddCommand(exportCmd)
	addFileFlag(exportCmd, "write the export here instead of asking")
}

func runExport(cc *CommandContext, _ *cobra.Command, _ []string) error {
	ref, err := cc.resolveWorkspace()
	if err != nil {
		return err
	}

	resp, err := cc.Container.ExportUseCase().Execute(cc.Context, dto.ExportWorkspaceRequest{Workspace: ref})
	if err != nil {
		return err
	}

	return cc.Formatter.FormatPass(output.NewExportSummary(ref, resp))
}
