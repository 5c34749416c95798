package service

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/gorm"

	"github.com/flokiorg/tickethub/config"
	"github.com/flokiorg/tickethub/constants"
	"github.com/flokiorg/tickethub/db"
	"github.com/flokiorg/tickethub/db/migrations"
	"github.com/flokiorg/tickethub/events"
	"github.com/flokiorg/tickethub/importflow"
	"github.com/flokiorg/tickethub/keys"
	"github.com/flokiorg/tickethub/logger"
	"github.com/flokiorg/tickethub/rates"
	"github.com/flokiorg/tickethub/relay"
	"github.com/flokiorg/tickethub/universallink"
)

var _ Service = (*service)(nil)

type service struct {
	cfg config.Config
	db  *gorm.DB

	codec        *universallink.Codec
	keys         keys.Keys
	estimator    *rates.Estimator
	relayClient  relay.Client
	paidImporter PaidOrderImporter
	eventQueue   *events.EventQueue
	presenter    importflow.Presenter
	store        *importStore

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	shutdownOnce sync.Once

	sessionsMu sync.Mutex
	sessions   map[string]*importflow.Workflow
}

// NewService bootstraps the service from the environment.
func NewService(ctx context.Context) (*service, error) {
	// Load config from environment variables / .env file
	godotenv.Load(".env")
	appConfig := &config.AppConfig{}
	err := envconfig.Process("", appConfig)
	if err != nil {
		return nil, err
	}

	logger.Init(appConfig.LogLevel)
	logger.Logger.Info().Msg("Tickethub starting")

	if appConfig.Workdir == "" {
		appConfig.Workdir = config.DefaultWorkDir()
		logger.Logger.Info().Str("workdir", appConfig.Workdir).Msg("No workdir specified, using default")
	}
	// make sure workdir exists
	os.MkdirAll(appConfig.Workdir, os.ModePerm)

	if appConfig.LogToFile {
		err = logger.AddFileLogger(appConfig.Workdir)
		if err != nil {
			return nil, err
		}
	}

	// If DATABASE_URI is a URI or a path, leave it unchanged.
	// If it only contains a filename, prepend the workdir.
	if !strings.HasPrefix(appConfig.DatabaseUri, "file:") {
		databasePath, _ := filepath.Split(appConfig.DatabaseUri)
		if databasePath == "" {
			appConfig.DatabaseUri = filepath.Join(appConfig.Workdir, appConfig.DatabaseUri)
		}
	}

	gormDB, err := db.NewDB(appConfig.DatabaseUri, appConfig.LogDBQueries)
	if err != nil {
		return nil, err
	}

	err = migrations.Migrate(gormDB)
	if err != nil {
		return nil, err
	}

	cfg, err := config.NewConfig(appConfig, gormDB)
	if err != nil {
		return nil, err
	}

	return New(ctx, cfg, gormDB, Options{})
}

// New wires the service around an open, migrated database.
func New(ctx context.Context, cfg config.Config, gormDB *gorm.DB, opts Options) (*service, error) {
	ctx, cancel := context.WithCancel(ctx)
	eventQueue := events.NewEventQueue(constants.EVENT_QUEUE_SIZE)

	svc := &service{
		cfg:          cfg,
		db:           gormDB,
		codec:        universallink.NewCodec(cfg.GetLinkPrefix()),
		keys:         opts.Keys,
		relayClient:  opts.RelayClient,
		paidImporter: opts.PaidOrderImporter,
		eventQueue:   eventQueue,
		presenter:    events.NewQueuePresenter(eventQueue),
		store:        newImportStore(gormDB),
		ctx:          ctx,
		cancel:       cancel,
		sessions:     map[string]*importflow.Workflow{},
	}

	if svc.keys == nil {
		svc.keys = keys.NewKeys(cfg)
	}
	if svc.relayClient == nil {
		svc.relayClient = relay.NewHTTPClient(relay.Encoding(cfg.GetRelayEncoding()))
	}
	if svc.paidImporter == nil {
		svc.paidImporter = newQueuedPaidOrderImporter(eventQueue)
	}
	rateService := opts.RateService
	if rateService == nil {
		rateService = rates.NewRateService(cfg)
	}
	svc.estimator = rates.NewEstimator(rateService)

	svc.wg.Add(1)
	go func() {
		defer svc.wg.Done()
		svc.consumeEvents()
	}()

	logger.Logger.Info().
		Str("link_prefix", cfg.GetLinkPrefix()).
		Str("relay_endpoint", cfg.GetRelayEndpoint()).
		Dur("relay_timeout", cfg.GetRelayTimeout()).
		Msg("Tickethub service started")

	return svc, nil
}

// Shutdown aborts in-flight submissions, waits for their workflows to settle,
// flushes pending snapshots to the database and closes it.
func (svc *service) Shutdown() {
	svc.shutdownOnce.Do(svc.shutdown)
}

func (svc *service) shutdown() {
	svc.cancel()

	svc.sessionsMu.Lock()
	workflows := make([]*importflow.Workflow, 0, len(svc.sessions))
	for _, wf := range svc.sessions {
		workflows = append(workflows, wf)
	}
	svc.sessionsMu.Unlock()

	for _, wf := range workflows {
		wf.Wait()
	}

	svc.eventQueue.Close()
	svc.wg.Wait()

	if err := db.Stop(svc.db); err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to close database")
	}
	logger.Logger.Info().Msg("Tickethub service stopped")
}

func (svc *service) consumeEvents() {
	for {
		// drain until the queue is closed so no snapshot is lost on shutdown
		event, err := svc.eventQueue.NextEvent(context.Background())
		if err != nil {
			return
		}

		switch e := event.(type) {
		case *events.ImportStateChangedEvent:
			logger.Logger.Info().
				Str("session_id", e.Session.ID).
				Str("state", string(e.Session.State)).
				Str("reason", string(e.Session.Reason)).
				Uint64("version", e.Session.Version).
				Msg("Import session changed")
			if err := svc.store.saveSession(e.Session); err != nil {
				logger.Logger.Error().Err(err).Str("session_id", e.Session.ID).Msg("Failed to persist import session")
			}
		case *events.PaidOrderReceivedEvent:
			logger.Logger.Info().
				Str("id", e.ID).
				Str("contract", e.Token.Contract.Hex()).
				Msg("Paid order handed off for on-chain import")
			if err := svc.store.savePaidOrder(e.ID, e.SignedOrder); err != nil {
				logger.Logger.Error().Err(err).Str("id", e.ID).Msg("Failed to persist paid order")
			}
		default:
			logger.Logger.Warn().Str("event_type", event.EventType()).Msg("Unhandled event")
		}
	}
}

func (svc *service) GetDB() *gorm.DB {
	return svc.db
}

func (svc *service) GetConfig() config.Config {
	return svc.cfg
}

func (svc *service) GetKeys() keys.Keys {
	return svc.keys
}
