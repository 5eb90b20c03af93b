package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/api/httpapi"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/app/engine"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/app/exchange"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/config"
	ledgerv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/ledger/v1"
	orderv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/order/v1"
	settlementv1 "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/domain/settlement/v1"
	orderrepo "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/infrastructure/postgresql/order"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/ledger"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/market"
	matchpublisher "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/match-publisher"
	orderreader "github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/order-reader"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/orderstore"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/settlement"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/internal/usecase/snapshot"
	pkgconfig "github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/config"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/logger"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/postgresql"
	"github.com/ppitlehra/MonacoMarkets-pvt-sub002/pkg/redis"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	pkgconfig.MustLoad(cfg)

	l, err := logger.NewLogger(logger.WithLoggingLevel(logger.Level(cfg.LogLevel)))
	if err != nil {
		panic(err)
	}
	log = l
}

func main() {
	defer func() { _ = log.Sync() }()

	if err := run(); err != nil {
		log.Error(err, logger.NewField("action", "run_clob"))
		os.Exit(1)
	}
}

// closer releases one resource on shutdown.
type closer struct {
	name  string
	close func(ctx context.Context) error
}

func run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var closers []closer
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer shutdownCancel()
		for i := len(closers) - 1; i >= 0; i-- {
			if err := closers[i].close(shutdownCtx); err != nil {
				log.Error(err, logger.NewField("action", "close_"+closers[i].name))
			}
		}
		log.Info("CLOB shutdown complete")
	}()

	pairs, err := cfg.ParsePairs()
	if err != nil {
		return err
	}
	registry, err := market.NewRegistry(pairs...)
	if err != nil {
		return err
	}

	var (
		bank      ledgerv1.Ledger
		processed settlementv1.ProcessedStore
		storeOpts []orderstore.Option
		journal   orderrepo.OrderRepository
		tx        postgresql.Transaction
		handlerOp []httpapi.Option
	)

	switch cfg.Storage {
	case config.StoragePostgres:
		pgClient, err := postgresql.NewClient(ctx, cfg.Postgres)
		if err != nil {
			return err
		}
		closers = append(closers, closer{"postgres", func(context.Context) error { pgClient.Close(); return nil }})

		pebbleStore, err := settlement.OpenPebbleProcessed(cfg.Pebble, log)
		if err != nil {
			return err
		}
		closers = append(closers, closer{"pebble", func(context.Context) error { return pebbleStore.Close() }})

		bank = ledger.NewPostgres(pgClient, log)
		processed = pebbleStore
		journal = orderrepo.NewRepository(pgClient, log)
		storeOpts = append(storeOpts, orderstore.WithJournal(journal))
		tx = postgresql.NewTransaction(pgClient)
		handlerOp = append(handlerOp, httpapi.WithHealthCheck("postgres", pgClient.Ping))
	default:
		bank = ledger.NewMemory(log)
		processed = settlement.NewMemoryProcessed()
		// an in-memory ledger has no other funding path
		handlerOp = append(handlerOp, httpapi.WithDeposits(cfg.Admins...))
	}

	orders := orderstore.NewStore(registry, log, storeOpts...)
	settler, err := settlement.NewEngine(orders, bank, processed, cfg.Fees, log)
	if err != nil {
		return err
	}

	deps := exchange.Dependencies{
		Pairs:       registry,
		Orders:      orders,
		Settlement:  settler,
		Transaction: tx,
	}
	if cfg.MatchPublisher.Enabled() {
		publisher := matchpublisher.NewPublisher(cfg.MatchPublisher, log)
		closers = append(closers, closer{"match_publisher", func(context.Context) error { return publisher.Close() }})
		deps.Publisher = publisher
	}
	ex := exchange.NewExchange(deps, cfg.Admins, log)

	var eng *engine.Engine
	if cfg.Kafka.Enabled() && cfg.Engine.Pair != "" {
		rclient := redis.NewClient(log, &cfg.Redis)
		if err := rclient.Connect(ctx); err != nil {
			return err
		}
		closers = append(closers, closer{"redis", rclient.Disconnect})
		handlerOp = append(handlerOp, httpapi.WithHealthCheck("redis", rclient.Ping))

		eng, err = engine.NewEngineWithOptions(
			ex,
			orderreader.NewReader(cfg.Kafka, log),
			snapshot.NewSnapshotStore(rclient, cfg.Engine.Pair, log),
			cfg.Engine.Pair,
			log,
			engine.OptionsFromConfig(cfg.Engine),
		)
		if err != nil {
			return err
		}
	}

	// the journal is authoritative for books and ids, so it is applied after
	// any snapshot the engine restored
	if journal != nil {
		if err := recoverFromJournal(ctx, orders, ex, journal, processed); err != nil {
			return err
		}
	}

	if eng != nil {
		if err := eng.Start(ctx); err != nil {
			return err
		}
		closers = append(closers, closer{"engine", eng.Stop})
	}

	handler := httpapi.NewHandler(ex, log, append(handlerOp, httpapi.WithLedger(bank))...)
	server := httpapi.NewServer(cfg.HTTP, handler.Routes(), log)
	serverErr, err := server.Start()
	if err != nil {
		return err
	}
	closers = append(closers, closer{"http", server.Shutdown})

	log.Info("CLOB started successfully",
		logger.NewField("storage", cfg.Storage),
		logger.NewField("pairs", len(pairs)),
		logger.NewField("enginePair", cfg.Engine.Pair),
	)

	select {
	case sig := <-sigChan:
		log.Info("Received shutdown signal", logger.NewField("signal", sig.String()))
		return nil
	case err := <-serverErr:
		return err
	}
}

// recoverFromJournal moves the id sequence past every journaled or settled
// order and rebuilds the books from the journal's resting orders.
func recoverFromJournal(
	ctx context.Context,
	orders *orderstore.Store,
	ex *exchange.Exchange,
	journal orderrepo.OrderRepository,
	processed settlementv1.ProcessedStore,
) error {
	sources := []orderv1.IDSource{journal}
	if src, ok := processed.(orderv1.IDSource); ok {
		sources = append(sources, src)
	}
	if err := orders.Seed(ctx, sources...); err != nil {
		return err
	}

	resting, err := journal.Resting(ctx)
	if err != nil {
		return err
	}
	if err := ex.Recover(ctx, resting); err != nil {
		return err
	}

	log.Info("Recovered from order journal",
		logger.NewField("resting", len(resting)),
		logger.NewField("lastOrderID", orders.LastID()),
	)
	return nil
}
