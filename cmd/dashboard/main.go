package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/zakatkuy/amil/internal/api"
	"github.com/zakatkuy/amil/internal/pkg/boundary"
	"github.com/zakatkuy/amil/internal/pkg/chat"
	"github.com/zakatkuy/amil/internal/pkg/constants"
	"github.com/zakatkuy/amil/internal/pkg/fetch"
	"github.com/zakatkuy/amil/internal/pkg/goldprice"
	"github.com/zakatkuy/amil/internal/pkg/loader"
	"github.com/zakatkuy/amil/internal/pkg/logger"
	"github.com/zakatkuy/amil/internal/pkg/store"
	"github.com/zakatkuy/amil/internal/pkg/store/xpgx"
	"github.com/zakatkuy/amil/internal/service/assistant"
	"github.com/zakatkuy/amil/internal/service/zakat"
)

func main() {
	flags := pflag.NewFlagSet("dashboard", pflag.ExitOnError)
	flags.String("config", "config/config.yaml", "path to config file, empty to use defaults and env only")
	flags.String("addr", ":8080", "listen address")
	flags.String("log-level", "info", "debug, info, warn or error")
	importPath := flags.String("import", "", "upsert records from this CSV/XLSX file into postgres and exit")
	_ = flags.Parse(os.Args[1:])

	if err := loadConfig(flags); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := logger.Init(viper.GetString(constants.ViperLogLevelKey), viper.GetBool(constants.ViperLogDevelopmentKey)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if *importPath != "" {
		if err := runImport(ctx, *importPath); err != nil {
			logger.Fatal(ctx, err)
		}
		return
	}

	if err := run(ctx); err != nil {
		logger.Fatal(ctx, err)
	}
}

func runImport(ctx context.Context, path string) error {
	pool, err := xpgx.NewPool(ctx, viper.GetString(constants.ViperPostgresDSNKey))
	if err != nil {
		return fmt.Errorf("xpgx.NewPool: %w", err)
	}
	defer pool.Close()

	src := loader.NewFileSource(path, viper.GetString(constants.ViperRecordsSheetKey))
	if _, err = zakat.Import(ctx, src, store.NewStore(pool)); err != nil {
		return fmt.Errorf("zakat.Import: %w", err)
	}

	return nil
}

func run(ctx context.Context) error {
	client := fetch.NewClient(
		fetch.WithHTTPClient(&http.Client{Timeout: viper.GetDuration(constants.ViperHTTPTimeoutKey)}),
		fetch.WithRetries(viper.GetUint64(constants.ViperFetchRetriesKey)),
	)

	file := loader.NewFileSource(viper.GetString(constants.ViperRecordsPathKey), viper.GetString(constants.ViperRecordsSheetKey))

	var (
		records  zakat.RecordSource = file
		backfill func(context.Context) (int64, error)
	)

	if dsn := viper.GetString(constants.ViperPostgresDSNKey); dsn != "" {
		pool, err := xpgx.NewPool(ctx, dsn)
		if err != nil {
			return fmt.Errorf("xpgx.NewPool: %w", err)
		}
		defer pool.Close()

		db := store.NewStore(pool)
		if err = db.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("store.EnsureSchema: %w", err)
		}

		backfill = func(ctx context.Context) (int64, error) {
			return zakat.Import(ctx, file, db)
		}
		if viper.GetString(constants.ViperRecordsSourceKey) == constants.RecordsSourcePostgres {
			records = db
		}
	} else if viper.GetString(constants.ViperRecordsSourceKey) == constants.RecordsSourcePostgres {
		return errors.New("records.source is postgres but postgres.dsn is empty")
	}

	zakatService := zakat.NewZakatService(records, boundary.NewSource(client, viper.GetString(constants.ViperBoundaryURLKey)))

	prices := goldprice.NewFeed(client, goldprice.Config{
		URL:      viper.GetString(constants.ViperGoldPriceURLKey),
		Mode:     goldprice.Mode(viper.GetString(constants.ViperGoldPriceModeKey)),
		Path:     viper.GetString(constants.ViperGoldPricePathKey),
		Selector: viper.GetString(constants.ViperGoldPriceSelectorKey),
	})

	backends := newChatRegistry(prices)
	if _, err := backends.Get(""); err != nil {
		return fmt.Errorf("chat.default_backend: %w", err)
	}

	assistantService := assistant.NewAssistantService(chat.NewSessionStore(constants.SessionTTL), backends)

	svc, err := api.NewAPIService(api.Config{
		Secret:      viper.GetString(constants.ViperSecretKey),
		CORSOrigins: viper.GetStringSlice(constants.ViperCORSOriginsKey),
		LogLevel:    viper.GetString(constants.ViperLogLevelKey),
	}, zakatService, assistantService, backfill)
	if err != nil {
		return fmt.Errorf("api.NewAPIService: %w", err)
	}

	addr := viper.GetString(constants.ViperServerAddrKey)
	go svc.Serve(addr)
	logger.Infof(ctx, "listening on %s", addr)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	logger.Infof(shutdownCtx, "shutting down")
	return svc.Shutdown(shutdownCtx)
}

func newChatRegistry(prices chat.PriceSource) *chat.Registry {
	timeout := viper.GetDuration(constants.ViperHTTPTimeoutKey)

	return chat.NewRegistry(viper.GetString(constants.ViperChatDefaultKey),
		chat.NewAssistantBackend(chat.AssistantConfig{
			BaseURL: viper.GetString(constants.ViperAssistantURLKey),
			Name:    viper.GetString(constants.ViperAssistantNameKey),
			APIKey:  viper.GetString(constants.ViperAssistantAPIKey),
			Timeout: timeout,
		}),
		chat.NewGenerativeBackend(chat.GenerativeConfig{
			BaseURL: viper.GetString(constants.ViperGenerativeURLKey),
			Model:   viper.GetString(constants.ViperGenerativeModelKey),
			APIKey:  viper.GetString(constants.ViperGenerativeAPIKey),
			Timeout: timeout,
		}, prices),
	)
}
