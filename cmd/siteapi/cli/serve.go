package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toptier/siteapi/internal/auth"
	"github.com/toptier/siteapi/internal/config"
	"github.com/toptier/siteapi/internal/notify"
	"github.com/toptier/siteapi/internal/server"
	"github.com/toptier/siteapi/internal/store"
)

func newServeCmd() *cobra.Command {
	var (
		port   int
		host   string
		driver string
		dsn    string
		dev    bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the siteapi HTTP server",
		Long:  "Start the HTTP server that exposes the public content API and the authenticated admin API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(dev)
		},
	}

	// Flag defaults take precedence over viper defaults once bound, so
	// they must carry the same persistent values initConfig registers.
	defaults := config.Default()
	cmd.Flags().IntVarP(&port, "port", "p", defaults.Server.Port, "HTTP listen port")
	cmd.Flags().StringVar(&host, "host", defaults.Server.Host, "HTTP listen host")
	cmd.Flags().StringVar(&driver, "db-driver", defaults.Database.Driver, "Database driver (sqlite or postgres)")
	cmd.Flags().StringVar(&dsn, "db-dsn", defaults.Database.DSN, "Database DSN (sqlite file path or postgres URL)")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable development mode (verbose logging)")

	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))
	viper.BindPFlag("database.driver", cmd.Flags().Lookup("db-driver"))
	viper.BindPFlag("database.dsn", cmd.Flags().Lookup("db-dsn"))

	return cmd
}

func runServe(dev bool) error {
	logLevel := slog.LevelInfo
	if dev {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	// 1. Open the record store.
	st, err := store.Open(viper.GetString("database.driver"), viper.GetString("database.dsn"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()
	logger.Info("store opened",
		"driver", viper.GetString("database.driver"),
		"dsn_set", viper.GetString("database.dsn") != "")

	// 2. Auth service.
	jwtSecret := viper.GetString("auth.jwt_secret")
	if jwtSecret == "" {
		jwtSecret = "siteapi-dev-secret-change-me"
		logger.Warn("auth.jwt_secret not set, using insecure development secret")
	}
	tokenTTL := viper.GetDuration("auth.token_ttl")
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	authSvc := auth.NewService(st, auth.NewTokenCodec(jwtSecret), tokenTTL)

	// 3. Lead notification mailer (nil when SMTP is not configured).
	mailer, err := notify.New(notify.Config{
		Host:      viper.GetString("smtp.host"),
		Port:      viper.GetInt("smtp.port"),
		Username:  viper.GetString("smtp.username"),
		Password:  viper.GetString("smtp.password"),
		From:      viper.GetString("smtp.from"),
		Recipient: viper.GetString("smtp.recipient"),
	}, logger)
	if err != nil {
		return fmt.Errorf("init mailer: %w", err)
	}

	// 4. First-run check.
	hasAdmin, err := st.HasAnyAdmin(context.Background())
	if err != nil {
		logger.Warn("failed to check for admin accounts", "error", err)
	}
	if !hasAdmin {
		logger.Warn("no admin account found - run: siteapi admin create")
	}

	// 5. Build and start the HTTP server.
	srvCfg := server.DefaultConfig()
	srvCfg.Host = viper.GetString("server.host")
	srvCfg.Port = viper.GetInt("server.port")
	if origins := viper.GetStringSlice("server.cors_origins"); len(origins) > 0 {
		srvCfg.CORSOrigins = origins
	}

	srv := server.New(srvCfg, st, authSvc, mailer, logger)

	fmt.Printf("→ siteapi\n")
	fmt.Printf("→ Listening on http://%s:%d\n", srvCfg.Host, srvCfg.Port)
	fmt.Printf("→ Health:    http://%s:%d/healthz\n", srvCfg.Host, srvCfg.Port)
	fmt.Println()

	return srv.ListenAndServe()
}
