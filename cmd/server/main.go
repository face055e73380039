// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in internal/registry.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"waybill/internal/notify"
	"waybill/internal/notify/kafka"
	"waybill/internal/notify/outbox"
	"waybill/internal/notify/stream"
	"waybill/internal/operator"
	"waybill/internal/platform/config"
	"waybill/internal/platform/httpserver"
	"waybill/internal/platform/logger"
	platformredis "waybill/internal/platform/redis"
	"waybill/internal/registry"
	regmetrics "waybill/internal/registry/metrics"
	"waybill/internal/registry/service"
	customerstore "waybill/internal/registry/store/customer"
	driverstore "waybill/internal/registry/store/driver"
	orderstore "waybill/internal/registry/store/order"
	shipmentstore "waybill/internal/registry/store/shipment"
	"waybill/pkg/platform/middleware/metadata"
	"waybill/pkg/platform/middleware/requesttime"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogFormat)

	if !cfg.OperatorGateConfigured() {
		log.Error("no operator credential configured; refusing to expose mutating routes")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	stores, cleanup, err := buildStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	sink, relay, closeSinks, err := buildNotifier(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeSinks()

	publisher := notify.NewPublisher(sink,
		notify.WithAsyncBuffer(256), notify.WithLogger(log))
	defer publisher.Close()

	svc := registry.NewService(stores.drivers, stores.customers, stores.orders, stores.shipments,
		service.WithLogger(log),
		service.WithNotifier(publisher),
		service.WithMetrics(regmetrics.New()),
		service.WithTracer(service.Tracer()),
	)

	gate := operator.NewGate(cfg.OperatorTokenHash, cfg.OperatorToken, cfg.OperatorJWTKey, log)

	r := chi.NewRouter()
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	registry.NewHandler(svc, log).Register(r, gate.Require)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting waybill registry", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if relay != nil {
		g.Go(func() error {
			if err := relay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

type registryStores struct {
	drivers   service.DriverStore
	customers service.CustomerStore
	orders    service.OrderStore
	shipments service.ShipmentStore
}

// buildStores selects Postgres when a DSN is configured, in-memory
// otherwise.
func buildStores(ctx context.Context, cfg config.Config, log *slog.Logger) (registryStores, func(), error) {
	if cfg.PostgresDSN == "" {
		log.Info("no postgres DSN configured, using in-memory stores")
		return registryStores{
			drivers:   driverstore.NewInMemory(),
			customers: customerstore.NewInMemory(),
			orders:    orderstore.NewInMemory(),
			shipments: shipmentstore.NewInMemory(),
		}, func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		return registryStores{}, nil, err
	}

	drivers := driverstore.NewPostgres(pool)
	customers := customerstore.NewPostgres(pool)
	orders := orderstore.NewPostgres(pool)
	shipments := shipmentstore.NewPostgres(pool)
	for _, ensure := range []func(context.Context) error{
		drivers.EnsureSchema, customers.EnsureSchema,
		orders.EnsureSchema, shipments.EnsureSchema,
	} {
		if err := ensure(ctx); err != nil {
			pool.Close()
			return registryStores{}, nil, err
		}
	}

	return registryStores{
		drivers:   drivers,
		customers: customers,
		orders:    orders,
		shipments: shipments,
	}, pool.Close, nil
}

// buildNotifier assembles the notification sink chain. Kafka and the Redis
// Stream fan out when configured; with Postgres available the write path
// goes through the outbox and a relay worker drains it to the brokers.
// Without any backend, events go to the log.
func buildNotifier(ctx context.Context, cfg config.Config, log *slog.Logger) (notify.Notifier, *outbox.Worker, func(), error) {
	var (
		brokers  notify.Fanout
		closers  []func()
		closeAll = func() {
			for _, c := range closers {
				c()
			}
		}
	)

	if len(cfg.Kafka.Brokers) > 0 {
		pub, err := kafka.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return nil, nil, nil, err
		}
		closers = append(closers, pub.Close)
		brokers = append(brokers, pub)
	}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		closeAll()
		return nil, nil, nil, err
	}
	if redisClient != nil {
		closers = append(closers, func() { _ = redisClient.Close() })
		brokers = append(brokers, stream.New(redisClient.Client, cfg.Redis.Stream))
	}

	if len(brokers) == 0 {
		return notify.NewLogSink(log), nil, closeAll, nil
	}

	// Brokers configured but no Postgres: publish directly.
	if cfg.PostgresDSN == "" {
		return brokers, nil, closeAll, nil
	}

	db, err := sql.Open("postgres", cfg.PostgresDSN)
	if err != nil {
		closeAll()
		return nil, nil, nil, err
	}
	closers = append(closers, func() { _ = db.Close() })

	store := outbox.NewStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		closeAll()
		return nil, nil, nil, err
	}
	return store, outbox.NewWorker(store, brokers, log), closeAll, nil
}
