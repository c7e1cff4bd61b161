package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/cmlabs-hris/certtracker/internal/domain/access"
	"github.com/cmlabs-hris/certtracker/internal/domain/notification"
	"github.com/cmlabs-hris/certtracker/internal/domain/user"
	"github.com/cmlabs-hris/certtracker/internal/fixtures"
	"github.com/cmlabs-hris/certtracker/internal/pkg/validator"
	"github.com/cmlabs-hris/certtracker/internal/repository"
	"github.com/cmlabs-hris/certtracker/internal/repository/postgresql"
	serviceCompany "github.com/cmlabs-hris/certtracker/internal/service/company"
	"github.com/spf13/cobra"
)

// Opener connects the storage backend for a single command invocation.
type Opener func(ctx context.Context) (*repository.Set, error)

var errPostgresOnly = errors.New("migrations require the postgres storage driver")

// NewRootCmd builds a fresh command tree. Commands are constructed per call
// so tests can run several trees with their own flags.
func NewRootCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "certctl",
		Short: "certctl administers the certification tracker store.",
		Long: `certctl runs maintenance tasks against the store configured by
STORAGE_DRIVER: schema migrations, demo seeding and expiry reports.`,
		SilenceUsage: true,
	}

	cmd.AddCommand(newMigrateCmd(open))
	cmd.AddCommand(newSeedCmd(open))
	cmd.AddCommand(newReportCmd(open))
	return cmd
}

func newMigrateCmd(open Opener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the postgres schema",
	}

	steps := []struct {
		use, short string
		run        func(ctx context.Context, set *repository.Set) error
	}{
		{"up", "Apply every pending migration", func(ctx context.Context, set *repository.Set) error {
			return postgresql.Migrate(ctx, set.DB)
		}},
		{"down", "Roll back the most recent migration", func(ctx context.Context, set *repository.Set) error {
			return postgresql.MigrateDown(ctx, set.DB)
		}},
		{"status", "Print the applied state of every migration", func(ctx context.Context, set *repository.Set) error {
			return postgresql.MigrationStatus(ctx, set.DB)
		}},
	}

	for _, step := range steps {
		cmd.AddCommand(&cobra.Command{
			Use:   step.use,
			Short: step.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				set, err := open(cmd.Context())
				if err != nil {
					return err
				}
				defer set.Close()
				if set.DB == nil {
					return errPostgresOnly
				}
				if err := step.run(cmd.Context(), set); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: done\n", step.use)
				return nil
			},
		})
	}
	return cmd
}

func newSeedCmd(open Opener) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Seed the demo company, its teams and sample roster",
		Long: `Creates the DEMO company with its manager codes and loads the sample
roster when the company has no employees yet. Running it twice is harmless.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer set.Close()

			directory := serviceCompany.NewCompanyService(set.Companies, set.ManagerCodes)
			if err := fixtures.SeedDemo(cmd.Context(), directory, set.Roster, time.Now()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "demo data seeded")
			return nil
		},
	}
}

func newReportCmd(open Opener) *cobra.Command {
	var companyCode, asOf string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print certifications that are expired or about to expire",
		Long: `Lists every critical or expired certification, most urgent first.
Without --company the report covers every company in the store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today := time.Now()
			if asOf != "" {
				parsed, err := time.Parse(validator.DateLayout, asOf)
				if err != nil {
					return fmt.Errorf("invalid --as-of %q: want YYYY-MM-DD", asOf)
				}
				today = parsed
			}

			set, err := open(cmd.Context())
			if err != nil {
				return err
			}
			defer set.Close()

			roster, err := set.Roster.Load(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load roster: %w", err)
			}

			actor := user.DemoActor()
			if companyCode != "" {
				actor = user.Actor{
					ID:          "certctl",
					Role:        user.RoleAdmin,
					CompanyCode: strings.ToUpper(strings.TrimSpace(companyCode)),
				}
			}

			feed := notification.BuildFeed(access.VisibleEmployees(actor, roster), today)
			return printFeed(cmd, feed)
		},
	}

	cmd.Flags().StringVarP(&companyCode, "company", "c", "", "Restrict the report to one company code")
	cmd.Flags().StringVar(&asOf, "as-of", "", "Classify against this date (YYYY-MM-DD) instead of today")
	return cmd
}

func printFeed(cmd *cobra.Command, feed notification.Feed) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "As of %s: expired=%d critical=%d ok=%d total=%d\n",
		feed.AsOf, feed.Counts.Expired, feed.Counts.Critical, feed.Counts.OK, feed.Counts.Total)

	if len(feed.Items) == 0 {
		fmt.Fprintln(out, "No certifications need attention.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIER\tDAYS\tEMPLOYEE\tCERTIFICATION\tEXPIRY")
	fmt.Fprintln(w, "----\t----\t--------\t-------------\t------")
	for _, n := range feed.Items {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", n.Tier, n.DaysRemaining, n.EmployeeName, n.CertificationName, n.Expiry)
	}
	return w.Flush()
}
