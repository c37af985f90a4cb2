package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func init() {
	collectionCmd.AddCommand(collectionListCmd, collectionCreateCmd)
	subCollectionCmd.AddCommand(subCollectionListCmd, subCollectionCreateCmd)
	rootCmd.AddCommand(collectionCmd, subCollectionCmd)
}

var collectionCmd = &cobra.Command{
	Use:   "collection",
	Short: "List and create collections",
}

var collectionListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all collections ordered by name",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		collections, err := svc.GetCollections()
		if err != nil {
			return err
		}
		return outputJSON(collections)
	},
}

var collectionCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := svc.CreateCollection(args[0])
		if err != nil {
			return err
		}
		return outputJSON(c)
	},
}

var subCollectionCmd = &cobra.Command{
	Use:     "subcollection",
	Aliases: []string{"sub"},
	Short:   "List and create sub-collections",
}

var subCollectionListCmd = &cobra.Command{
	Use:   "list <collection-id>",
	Short: "List the sub-collections of a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collectionID, err := parseID(args[0], "collection")
		if err != nil {
			return err
		}
		subs, err := svc.GetSubCollections(collectionID)
		if err != nil {
			return err
		}
		return outputJSON(subs)
	},
}

var subCollectionCreateCmd = &cobra.Command{
	Use:   "create <collection-id> <name>",
	Short: "Create a sub-collection inside a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		collectionID, err := parseID(args[0], "collection")
		if err != nil {
			return err
		}
		sub, err := svc.CreateSubCollection(collectionID, args[1])
		if err != nil {
			return err
		}
		return outputJSON(sub)
	},
}

func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s id %q", what, arg)
	}
	return id, nil
}
