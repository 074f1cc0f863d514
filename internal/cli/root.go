package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"inquest-cli/internal/format"
	"inquest-cli/internal/parsed"
	"inquest-cli/internal/store"
)

type App struct {
	Dir        string
	ConfigFile string
	ParseURL   string
	PrettyJSON bool
	Format     string
	Verbose    bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:           "inquest",
		Short:         "Inquest operator dashboard CLI",
		Long:          "Inquest manages structured investigations: claims, evidence,\ncounterarguments and parsed argument outlines.",
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		initConfig(app)
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.ConfigFile, "config", "", "config file (default: .inquest/config.yaml)")
	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("INQUEST_DIR", ""), "Path to workspace dir (default: discovered .inquest)")
	cmd.PersistentFlags().StringVar(&app.ParseURL, "parse-url", "", "Base URL of the parse service")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("INQUEST_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().BoolVarP(&app.Verbose, "verbose", "v", false, "verbose logging")

	_ = viper.BindPFlag("parse_url", cmd.PersistentFlags().Lookup("parse-url"))

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newInvestigationsCmd(app))
	cmd.AddCommand(newClaimsCmd(app))
	cmd.AddCommand(newEvidenceCmd(app))
	cmd.AddCommand(newCounterargumentsCmd(app))
	cmd.AddCommand(newOutlineCmd(app))
	cmd.AddCommand(newServeCmd(app))
	cmd.AddCommand(newDoctorCmd(app))

	return cmd
}

func initConfig(app *App) {
	if app.ConfigFile != "" {
		viper.SetConfigFile(app.ConfigFile)
	} else {
		if dir, err := store.DefaultDir(); err == nil {
			viper.AddConfigPath(dir)
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.inquest")
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("INQUEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && app.Verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

func loadDB(app *App) (*store.DB, store.Store, error) {
	dir := app.Dir
	if dir == "" {
		d, err := store.DefaultDir()
		if err != nil {
			return nil, store.Store{}, err
		}
		dir = d
		app.Dir = dir
	}
	s := store.Store{Dir: dir}
	if err := s.Ensure(); err != nil {
		return nil, s, err
	}
	db, err := s.Load()
	if err != nil {
		return nil, s, err
	}
	return db, s, nil
}

func parseClient(app *App) (*parsed.Client, error) {
	url := app.ParseURL
	if url == "" {
		url = viper.GetString("parse_url")
	}
	if url == "" {
		return nil, fmt.Errorf("no parse service configured; set --parse-url or INQUEST_PARSE_URL")
	}
	logger := zap.NewNop()
	if app.Verbose {
		if l, err := zap.NewDevelopment(); err == nil {
			logger = l
		}
	}
	return parsed.NewClient(url, parsed.WithLogger(logger)), nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
