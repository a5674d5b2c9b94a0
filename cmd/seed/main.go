// Command seed loads sample domains, niches, subniches and keywords.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"keywordapi/internal/config"
	"keywordapi/internal/db"
	"keywordapi/internal/seed"
	"keywordapi/internal/service"
)

type options struct {
	file        string
	databaseURL string
	seed        uint64
	actor       string
	migrate     bool
}

func newRootCommand(cfg *config.Config) *cobra.Command {
	opts := options{
		file:        cfg.SeedFile,
		databaseURL: cfg.DatabaseURL,
		seed:        uint64(time.Now().UnixNano()),
		actor:       cfg.MockUserID,
		migrate:     true,
	}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load sample taxonomy and keywords",
		Long: `Creates the domains, niches and subniches of a seed catalogue and the
keywords generated from it. Existing rows are reused, so the command can be
run repeatedly.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.file, "file", "f", opts.file, "YAML seed catalogue (default: built-in catalogue)")
	flags.StringVar(&opts.databaseURL, "database-url", opts.databaseURL, "PostgreSQL connection string")
	flags.Uint64Var(&opts.seed, "seed", opts.seed, "random seed for generated keyword fields")
	flags.StringVar(&opts.actor, "actor", opts.actor, "UUID recorded as creator of seeded rows")
	flags.BoolVar(&opts.migrate, "migrate", opts.migrate, "run migrations before seeding")
	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	ctx := cmd.Context()

	actor, err := uuid.Parse(opts.actor)
	if err != nil {
		return fmt.Errorf("--actor must be a UUID: %w", err)
	}

	cat, err := config.LoadSeedCatalogue(opts.file)
	if err != nil {
		return fmt.Errorf("load seed catalogue: %w", err)
	}

	database, err := db.New(ctx, opts.databaseURL)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer database.Close()

	if opts.migrate {
		if err := database.RunMigrations(opts.databaseURL); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	seeder := &seed.Seeder{
		Domains:   service.NewDomainService(database),
		Niches:    service.NewNicheService(database),
		Subniches: service.NewSubnicheService(database),
		Keywords:  service.NewKeywordService(database),
		Actor:     actor,
	}

	slog.Info("seeding", "domains", len(cat.Domains), "niches", cat.NicheCount(), "seed", opts.seed)
	sum, err := seeder.Run(ctx, cat, seed.NewGenerator(cat, opts.seed))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(),
		"created %d domains, %d niches, %d subniches, %d keywords (%d keywords already present)\n",
		sum.DomainsCreated, sum.NichesCreated, sum.SubnichesCreated, sum.KeywordsCreated, sum.KeywordsSkipped)
	return nil
}

func main() {
	cfg := config.Load()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := newRootCommand(cfg).Execute(); err != nil {
		os.Exit(1)
	}
}
