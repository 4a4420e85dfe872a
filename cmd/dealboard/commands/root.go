package commands

import (
	"dealboard/internal/config"
	"dealboard/internal/crm"
	"dealboard/internal/ingest"
	"dealboard/internal/logging"
	"dealboard/internal/mcp"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	// Version, Commit, and BuildDate are set at build time via ldflags.
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"

	verbose bool
	asOf    string
	cfg     *config.AppConfig
)

var rootCmd = &cobra.Command{
	Use:   "dealboard",
	Short: "Dealboard reshapes CRM Deals, Tasks and Appointments exports into per-deal views",
	Long: `Dealboard reads the combined Deals+Tasks export and the Appointments export of the CRM,
links them by deal, and produces cohort listings, task status summaries, Gantt timelines and a
single-sheet workbook. Without a subcommand it serves the same views as MCP tools over stdio.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Init(verbose)

		var err error
		cfg, err = config.Load()
		if err != nil {
			log.Error().Err(err).Msg("Failed to load configuration")
			return err
		}
		if asOf != "" {
			ref, err := config.ParseReferenceDate(asOf)
			if err != nil {
				return err
			}
			cfg.ReferenceDate = ref
		}

		log.Info().
			Str("version", Version).
			Str("commit", Commit).
			Str("buildDate", BuildDate).
			Str("today", crm.DateOf(cfg.Now()).Format("2006-01-02")).
			Msg("Dealboard starting")
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&asOf, "as-of", "", "reference date (YYYY-MM-DD) used as today; overrides REFERENCE_DATE")
}

func serve(cmd *cobra.Command) error {
	mcp.Version = Version
	server, err := mcp.NewServer(cfg)
	if err != nil {
		return err
	}
	return server.Run(cmd.Context())
}

// loadRelations runs the ingest pipeline with the configured column aliases.
func loadRelations(paths []string) (*crm.Relations, error) {
	return ingest.Load(paths, ingest.Options{Aliases: cfg.ColumnAliases})
}
