package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/onetapday/otd/internal/cli"
	"github.com/onetapday/otd/internal/match"
)

func matchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Reconcile invoices against bank transactions",
		Long: `Score every open invoice against the unmatched outflows. Confident
pairings are confirmed immediately; likely ones are stored as candidates
for review with "match accept".`,
		RunE: runMatch,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "accept-safe",
		Short: "Confirm every high-confidence candidate",
		RunE:  runMatchAcceptSafe,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "accept <invoice-number>",
		Short: "Confirm one invoice's stored candidate",
		Args:  cobra.ExactArgs(1),
		RunE:  runMatchAccept,
	})

	return cmd
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	sum := match.Run(sess.State)

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Matched %d, candidates %d, cleared %d",
		sum.Confirmed, sum.Candidates, sum.Cleared)))

	if sum.Candidates > 0 {
		var b strings.Builder
		for i := range sess.State.Invoices {
			inv := &sess.State.Invoices[i]
			if inv.CandidateTxID == "" || inv.IsPaid() {
				continue
			}
			fmt.Fprintf(&b, "%s  %s  score %d\n", inv.Number, cli.FormatAmount(-inv.AmountDue, inv.Currency), inv.CandidateScore)
		}
		fmt.Println(cli.RenderBox("Candidates for review", strings.TrimRight(b.String(), "\n")))
		fmt.Println(cli.SubtleStyle.Render("Confirm with: otd match accept <invoice-number>"))
	}
	return nil
}

func runMatchAcceptSafe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	confirmed := match.AcceptSafe(sess.State)
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Confirmed %d invoices", confirmed)))
	return nil
}

func runMatchAccept(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	if !match.AcceptOne(sess.State, args[0]) {
		return fmt.Errorf("invoice %s has no confirmable candidate", args[0])
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Invoice %s marked paid", args[0])))
	return nil
}
