package main

import (
	"github.com/conorfennell/cardstore/internal/transfer"
	"github.com/spf13/cobra"
)

var (
	exportCollectionID int64
	exportAll          bool
	exportCommit       bool

	importIndex   int
	importInto    int64
	importNewName string

	markdownCollectionID int64
	markdownSub          string
)

func init() {
	exportCmd.Flags().Int64Var(&exportCollectionID, "collection", 0, "Export only this collection id")
	exportCmd.Flags().BoolVar(&exportAll, "all", false, "Export every collection")
	exportCmd.Flags().BoolVar(&exportCommit, "commit", false, "Commit the written file to its git repository")
	exportCmd.MarkFlagsMutuallyExclusive("collection", "all")
	exportCmd.MarkFlagsOneRequired("collection", "all")

	importOneCmd.Flags().IntVar(&importIndex, "index", 0, "Index of the collection inside the file")
	importOneCmd.Flags().Int64Var(&importInto, "into", 0, "Existing destination collection id")
	importOneCmd.Flags().StringVar(&importNewName, "new", "", "Name of a new destination collection")

	importMarkdownCmd.Flags().Int64Var(&markdownCollectionID, "collection", 0, "Destination collection id")
	importMarkdownCmd.Flags().StringVar(&markdownSub, "sub", "", "Sub-collection name for the imported cards")
	importMarkdownCmd.MarkFlagRequired("collection")

	importCmd.AddCommand(importInspectCmd, importOneCmd, importAllCmd, importMarkdownCmd)
	rootCmd.AddCommand(exportCmd, importCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <path>",
	Short: "Export one or all collections to a JSON file",
	Long: `Export one or all collections to a JSON file, replacing the file.

Examples:
  cardstore export --all cards.json
  cardstore export --collection 2 spanish.json --commit`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		var commit string
		var err error
		if exportAll {
			commit, err = svc.ExportAll(path, exportCommit)
		} else {
			commit, err = svc.ExportCollection(exportCollectionID, path, exportCommit)
		}
		if err != nil {
			return err
		}
		return outputJSON(StatusResponse{Status: "exported", Path: path, Commit: commit})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import cards from export files or markdown notes",
}

var importInspectCmd = &cobra.Command{
	Use:   "inspect <path>",
	Short: "List the collections in an export file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summaries, err := svc.ReadExportFile(args[0])
		if err != nil {
			return err
		}
		return outputJSON(summaries)
	},
}

var importOneCmd = &cobra.Command{
	Use:   "one <path>",
	Short: "Import one collection of an export file",
	Long: `Import the collection at --index of an export file into an existing
collection (--into) or a new one (--new). Cards that already exist are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := transfer.Destination{NewName: importNewName}
		if cmd.Flags().Changed("into") {
			id := importInto
			dest.CollectionID = &id
		}
		result, err := svc.ImportCollection(args[0], importIndex, dest)
		if err != nil {
			return err
		}
		return outputJSON(result)
	},
}

var importAllCmd = &cobra.Command{
	Use:   "all <path>",
	Short: "Import every collection of an export file, merging by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := svc.ImportAll(args[0])
		if err != nil {
			return err
		}
		return outputJSON(result)
	},
}

var importMarkdownCmd = &cobra.Command{
	Use:   "markdown <path>",
	Short: "Import Q:/A:/T: cards from a markdown file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := svc.ImportMarkdown(args[0], markdownCollectionID, markdownSub)
		if err != nil {
			return err
		}
		return outputJSON(result)
	},
}
