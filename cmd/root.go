package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/acdh-oeaw/minedb/internal/iofs"
	"github.com/acdh-oeaw/minedb/internal/iologger"
	"github.com/acdh-oeaw/minedb/pkg/config"
	"github.com/acdh-oeaw/minedb/pkg/minedb"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Version: fmt.Sprintf("version: %s\nbuild:   %s", minedb.Version, minedb.Build),
	Use:     "minedb",
	Short:   "Populate the MINE database from the legacy APIS system",
	Long: `minedb creates the MINE membership database schema and imports
the legacy data from the APIS REST API: persons, the entities they are
connected to, and the typed relations between them.

Typical usage:

  minedb create
  minedb import '{"name__icontains": "Boltzmann"}' --voc-file relations.csv`,
	PersistentPreRunE: bootstrap,
	SilenceErrors:     true,
	SilenceUsage:      true,
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		printError(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		printError(err)
		return err
	}

	// Initialize logging with hardcoded defaults.
	// Will be reconfigured later with user's config settings.
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		printError(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		printError(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		printError(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = applyRuntimeFlags(cmd); err != nil {
		printError(err)
		return err
	}

	// Reconfigure logging with user's settings and log file location.
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		printError(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir))

	return nil
}

// applyRuntimeFlags folds command flags into the config. Flags win
// over environment variables and the config file.
func applyRuntimeFlags(cmd *cobra.Command) error {
	flags := cmd.Flags()

	if flags.Changed("log-level") {
		s, _ := flags.GetString("log-level")
		cfg.Update([]config.Option{config.OptLogLevel(s)})
	}
	if flags.Changed("log-file") {
		s, _ := flags.GetString("log-file")
		cfg.Update([]config.Option{
			config.OptLogDestination("file"),
			config.OptLogFile(s),
		})
	}
	return nil
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main(). It only needs to
// happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.Flags().BoolP("version", "V", false, "version for minedb")

	rootCmd.AddCommand(getCreateCmd())
	rootCmd.AddCommand(getImportCmd())
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables
	// are allowed. These match the fields included in
	// config.ToOptions(), i.e. persistent configuration that can be
	// stored in config.yaml.
	v.SetEnvPrefix("MINEDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Legacy API configuration
	v.BindEnv("api.base_url", "MINEDB_API_BASE_URL")
	v.BindEnv("api.token", "MINEDB_API_TOKEN")
	v.BindEnv("api.timeout_sec", "MINEDB_API_TIMEOUT_SEC")

	// Database configuration
	v.BindEnv("database.host", "MINEDB_DATABASE_HOST")
	v.BindEnv("database.port", "MINEDB_DATABASE_PORT")
	v.BindEnv("database.user", "MINEDB_DATABASE_USER")
	v.BindEnv("database.password", "MINEDB_DATABASE_PASSWORD")
	v.BindEnv("database.database", "MINEDB_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "MINEDB_DATABASE_SSL_MODE")

	// Log configuration
	v.BindEnv("log.level", "MINEDB_LOG_LEVEL")
	v.BindEnv("log.format", "MINEDB_LOG_FORMAT")
	v.BindEnv("log.destination", "MINEDB_LOG_DESTINATION")

	v.AutomaticEnv()
}
