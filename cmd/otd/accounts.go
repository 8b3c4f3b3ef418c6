package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/onetapday/otd/internal/cli"
	"github.com/onetapday/otd/internal/forecast"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List and configure bank accounts",
		RunE:  runAccountsList,
	}

	var (
		name            string
		currency        string
		startingBalance float64
		include         bool
	)
	set := &cobra.Command{
		Use:   "set <account-id>",
		Short: "Override an account's name, currency, starting balance or plan inclusion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccountsSet(cmd, args, accountOverrides{
				name:            name,
				currency:        currency,
				startingBalance: startingBalance,
				include:         include,
				nameSet:         cmd.Flags().Changed("name"),
				currencySet:     cmd.Flags().Changed("currency"),
				startSet:        cmd.Flags().Changed("starting-balance"),
				includeSet:      cmd.Flags().Changed("include"),
			})
		},
	}
	set.Flags().StringVar(&name, "name", "", "display name")
	set.Flags().StringVar(&currency, "currency", "", "account currency (PLN, EUR, USD)")
	set.Flags().Float64Var(&startingBalance, "starting-balance", 0, "balance before the first imported transaction")
	set.Flags().BoolVar(&include, "include", true, "include the account in plans and forecasts")
	cmd.AddCommand(set)

	return cmd
}

type accountOverrides struct {
	name            string
	currency        string
	startingBalance float64
	include         bool
	nameSet         bool
	currencySet     bool
	startSet        bool
	includeSet      bool
}

func runAccountsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	state := sess.State
	if len(state.Accounts) == 0 {
		fmt.Println(cli.FormatInfo("No accounts yet - import a statement first"))
		return nil
	}

	ids := make([]string, 0, len(state.Accounts))
	for id := range state.Accounts {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	rates := currentRates()
	var b strings.Builder
	for _, id := range ids {
		meta := state.Accounts[id]
		flag := " "
		if !meta.IncludeInPlan {
			flag = cli.SubtleStyle.Render("excluded")
		}
		fmt.Fprintf(&b, "%-30s %-16s %s %s  %s\n", id, meta.Name,
			cli.FormatAmount(forecast.AccountBalance(state, id), meta.Currency), meta.Currency, flag)
	}
	fmt.Println(cli.RenderBox("Accounts", strings.TrimRight(b.String(), "\n")))
	fmt.Printf("Bank total: %s\n", cli.FormatAmount(forecast.BankAvailable(state, rates), "PLN"))
	return nil
}

func runAccountsSet(cmd *cobra.Command, args []string, o accountOverrides) error {
	ctx := cmd.Context()
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = sess.Close(ctx) }()

	state := sess.State
	meta, ok := state.Accounts[args[0]]
	if !ok {
		return fmt.Errorf("no account with id %s", args[0])
	}

	if o.nameSet {
		meta.Name = o.name
	}
	if o.currencySet {
		meta.Currency = strings.ToUpper(o.currency)
	}
	if o.startSet {
		meta.StartingBalance = o.startingBalance
	}
	if o.includeSet {
		meta.IncludeInPlan = o.include
	}
	state.Accounts[args[0]] = meta
	state.MarkChanged()

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Account %s updated", args[0])))
	return nil
}
