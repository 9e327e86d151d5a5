package cli

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toptier/siteapi/internal/config"
)

var cfgFile string

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	rootCmd := newRootCmd(version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "siteapi",
		Short: "Marketing site backend: content management and lead capture",
		Long: `siteapi serves the public content (pages, testimonials, FAQs, disclaimers)
and consultation request intake for the marketing site, plus the
authenticated admin API used to manage all of it.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./siteapi.yaml)")

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newAdminCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))

	return cmd
}

func initConfig() {
	// Register the baseline before any file or environment override. The
	// database DSN matters most: an empty DSN selects an in-memory
	// database, so without this default `admin create` and `serve` would
	// each get their own throwaway store.
	defaults := config.Default()
	viper.SetDefault("server.host", defaults.Server.Host)
	viper.SetDefault("server.port", defaults.Server.Port)
	viper.SetDefault("server.cors_origins", defaults.Server.CORSOrigins)
	viper.SetDefault("database.driver", defaults.Database.Driver)
	viper.SetDefault("database.dsn", defaults.Database.DSN)
	viper.SetDefault("auth.token_ttl", defaults.Auth.TokenTTL)
	viper.SetDefault("smtp.port", defaults.SMTP.Port)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("siteapi")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.siteapi")
	}

	viper.SetEnvPrefix("SITEAPI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.ReadInConfig() // config file is optional
}
