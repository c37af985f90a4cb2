package main

import (
	"github.com/conorfennell/cardstore/internal/domain"
	"github.com/spf13/cobra"
)

var (
	cardQuestion      string
	cardAnswer        string
	cardTitle         string
	cardCollectionID  int64
	cardSubCollection int64
)

func init() {
	for _, c := range []*cobra.Command{cardAddCmd, cardUpdateCmd} {
		c.Flags().StringVarP(&cardQuestion, "question", "q", "", "Question text")
		c.Flags().StringVarP(&cardAnswer, "answer", "a", "", "Answer text")
		c.Flags().StringVarP(&cardTitle, "title", "t", "", "Optional title")
		c.Flags().Int64VarP(&cardCollectionID, "collection", "c", 0, "Collection id")
		c.Flags().Int64VarP(&cardSubCollection, "sub", "s", 0, "Sub-collection id (omit for none)")
		c.MarkFlagRequired("question")
		c.MarkFlagRequired("answer")
		c.MarkFlagRequired("collection")
	}

	cardCmd.AddCommand(cardAddCmd, cardUpdateCmd, cardDeleteCmd, cardListCmd,
		cardSkipCmd, cardUnskipCmd, cardClearSkippedCmd)
	rootCmd.AddCommand(cardCmd)
}

var cardCmd = &cobra.Command{
	Use:   "card",
	Short: "Add, update, delete and list cards",
}

// cardInput builds the input from the shared card flags. The sub-collection
// is only set when --sub was given.
func cardInput(cmd *cobra.Command) domain.CardInput {
	in := domain.CardInput{
		Question:     cardQuestion,
		Answer:       cardAnswer,
		CollectionID: cardCollectionID,
		Title:        cardTitle,
	}
	if cmd.Flags().Changed("sub") {
		sub := cardSubCollection
		in.SubCollectionID = &sub
	}
	return in
}

var cardAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a card to a collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := svc.AddCard(cardInput(cmd))
		if err != nil {
			return err
		}
		return outputJSON(StatusResponse{Status: "added", ID: id})
	},
}

var cardUpdateCmd = &cobra.Command{
	Use:   "update <card-id>",
	Short: "Replace every field of a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "card")
		if err != nil {
			return err
		}
		if err := svc.UpdateCard(id, cardInput(cmd)); err != nil {
			return err
		}
		return outputJSON(StatusResponse{Status: "updated", ID: id})
	},
}

var cardDeleteCmd = &cobra.Command{
	Use:   "delete <card-id>",
	Short: "Delete a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0], "card")
		if err != nil {
			return err
		}
		if err := svc.DeleteCard(id); err != nil {
			return err
		}
		return outputJSON(StatusResponse{Status: "deleted", ID: id})
	},
}

var cardListCmd = &cobra.Command{
	Use:   "list <collection-id>",
	Short: "List the cards of a collection in insertion order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collectionID, err := parseID(args[0], "collection")
		if err != nil {
			return err
		}
		cards, err := svc.GetCards(collectionID)
		if err != nil {
			return err
		}
		return outputJSON(cards)
	},
}

var cardSkipCmd = &cobra.Command{
	Use:   "skip <card-id>",
	Short: "Mark a card as skipped for this session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSkipped(args[0], true)
	},
}

var cardUnskipCmd = &cobra.Command{
	Use:   "unskip <card-id>",
	Short: "Clear the skipped mark of a card",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setSkipped(args[0], false)
	},
}

var cardClearSkippedCmd = &cobra.Command{
	Use:   "clear-skipped <collection-id>",
	Short: "Clear the skipped mark of every card in a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		collectionID, err := parseID(args[0], "collection")
		if err != nil {
			return err
		}
		if err := svc.ClearSkippedForCollection(collectionID); err != nil {
			return err
		}
		return outputJSON(StatusResponse{Status: "cleared", ID: collectionID})
	},
}

func setSkipped(arg string, skipped bool) error {
	id, err := parseID(arg, "card")
	if err != nil {
		return err
	}
	if err := svc.SetCardSkipped(id, skipped); err != nil {
		return err
	}
	status := "unskipped"
	if skipped {
		status = "skipped"
	}
	return outputJSON(StatusResponse{Status: status, ID: id})
}
