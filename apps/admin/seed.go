package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ardiann-eng/CryptgenFix122/core"
	"github.com/ardiann-eng/CryptgenFix122/core/announcement"
	"github.com/ardiann-eng/CryptgenFix122/core/ledger"
	"github.com/ardiann-eng/CryptgenFix122/core/member"
	"github.com/ardiann-eng/CryptgenFix122/core/schedule"
	inmemdb "github.com/ardiann-eng/CryptgenFix122/storage/database/inmem"
	"github.com/ardiann-eng/CryptgenFix122/storage/database/seed"
)

func (cli *commandLine) seedCheckCommand() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seedcheck",
		Short: "Validate a seed file (the embedded one by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := seed.Load(file)
			if err != nil {
				return err
			}
			if err = f.Validate(cli.validate); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d members, %d announcements, %d transactions, %d schedule slots\n",
				len(f.Members), len(f.Announcements), len(f.Transactions), len(f.Schedule))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to a YAML seed file")
	return cmd
}

func (cli *commandLine) summaryCommand() *cobra.Command {
	var (
		file   string
		months int
		ref    string
	)
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the finance reports of a seed file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			refDate := core.DateOf(time.Now())
			if ref != "" {
				d, err := core.ParseDate(ref)
				if err != nil {
					return err
				}
				refDate = d
			}

			ledgerSvc, err := cli.loadLedger(file)
			if err != nil {
				return err
			}
			return printReports(cmd.OutOrStdout(), ledgerSvc, refDate, months)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "path to a YAML seed file")
	cmd.Flags().IntVar(&months, "months", ledger.DefaultWindow, "number of months in the monthly report")
	cmd.Flags().StringVar(&ref, "ref", "", "last month of the monthly report (YYYY-MM-DD, today by default)")
	return cmd
}

// loadLedger applies the seed file to a fresh in-memory store.
func (cli *commandLine) loadLedger(file string) (*ledger.Service, error) {
	f, err := seed.Load(file)
	if err != nil {
		return nil, err
	}

	db := inmemdb.Open()
	ledgerSvc := ledger.NewService(inmemdb.NewTransactionRepository(db))
	svcs := seed.Services{
		Members:       member.NewService(inmemdb.NewMemberRepository(db)),
		Announcements: announcement.NewService(inmemdb.NewAnnouncementRepository(db)),
		Ledger:        ledgerSvc,
		Schedule:      schedule.NewService(inmemdb.NewScheduleRepository(db)),
	}
	if err = f.Apply(svcs, cli.validate, "admin"); err != nil {
		return nil, err
	}
	return ledgerSvc, nil
}

func printReports(out io.Writer, svc *ledger.Service, ref core.Date, months int) error {
	sum, err := svc.Summary()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "income:  %s\nexpense: %s\nbalance: %s\n", sum.TotalIncome, sum.TotalExpense, sum.Balance)

	series, err := svc.Monthly(ref.Time, months)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nmonthly:")
	for i, label := range series.Labels {
		fmt.Fprintf(out, "  %-8s  +%s  -%s\n", label, series.Income[i], series.Expense[i])
	}

	b, err := svc.Breakdown()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, "\nexpenses by category:")
	for i, cat := range b.Categories {
		fmt.Fprintf(out, "  %-10s %3d%%  %s\n", cat, b.Percentages[i], b.Amounts[i])
	}
	return nil
}
