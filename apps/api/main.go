package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"net/http/pprof"
	"os"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	echoapi "github.com/ardiann-eng/CryptgenFix122/apps/api/echo"
	"github.com/ardiann-eng/CryptgenFix122/apps/shared"
	"github.com/ardiann-eng/CryptgenFix122/core"
	"github.com/ardiann-eng/CryptgenFix122/core/announcement"
	"github.com/ardiann-eng/CryptgenFix122/core/contact"
	"github.com/ardiann-eng/CryptgenFix122/core/ledger"
	"github.com/ardiann-eng/CryptgenFix122/core/member"
	"github.com/ardiann-eng/CryptgenFix122/core/schedule"
	"github.com/ardiann-eng/CryptgenFix122/core/user"
	emailsvc "github.com/ardiann-eng/CryptgenFix122/services/email"
	logsvc "github.com/ardiann-eng/CryptgenFix122/services/logger"
	metricsvc "github.com/ardiann-eng/CryptgenFix122/services/metrics"
	photosvc "github.com/ardiann-eng/CryptgenFix122/services/photo"
	inmemdb "github.com/ardiann-eng/CryptgenFix122/storage/database/inmem"
	"github.com/ardiann-eng/CryptgenFix122/storage/database/seed"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.NewConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	// set up loggers
	logger := logsvc.NewReporter(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	defer logger.Close()

	dbLogger := logsvc.NewReporter(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	defer dbLogger.Close()

	// set up DB & repos
	db := inmemdb.Open()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug || conf.SendgridAPIKey == "" {
		mailSvc = emailsvc.NewConsoleService(conf, os.Stdout, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	usrSvc := user.NewService(inmemdb.NewUserRepository(db))
	memSvc := member.NewService(inmemdb.NewMemberRepository(db))
	annSvc := announcement.NewService(inmemdb.NewAnnouncementRepository(db))
	ledgerSvc := ledger.NewService(inmemdb.NewTransactionRepository(db))
	contactSvc := contact.NewService(inmemdb.NewMessageRepository(db), mailSvc, conf.ContactInbox)
	schedSvc := schedule.NewService(inmemdb.NewScheduleRepository(db))

	photoSvc, err := photosvc.NewService(conf.Uploads.Dir, conf.Uploads.URLPrefix, conf.Uploads.PhotoMaxDim)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up photo storage: %v", err), err)
	}

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate, translator := shared.NewValidator()

	if conf.Admin.Password != "" || conf.Admin.PasswordHash != "" {
		if _, err = usrSvc.EnsureAdmin(conf.Admin.Username, conf.Admin.Password, []byte(conf.Admin.PasswordHash)); err != nil {
			logger.Fatal(fmt.Sprintf("setting up admin account: %v", err), err)
		}
	} else {
		logger.Warn("no admin password configured: admin endpoints are unreachable")
	}

	if !conf.SkipSeed {
		fixtures, err := seed.Load(conf.SeedFile)
		if err != nil {
			dbLogger.Fatal(fmt.Sprintf("loading seed: %v", err), err)
		}
		svcs := seed.Services{Members: memSvc, Announcements: annSvc, Ledger: ledgerSvc, Schedule: schedSvc}
		if err = fixtures.Apply(svcs, validate, conf.Admin.Username); err != nil {
			dbLogger.Fatal(fmt.Sprintf("applying seed: %v", err), err)
		}
		dbLogger.Info(fmt.Sprintf("seeded %d members, %d announcements, %d transactions",
			len(fixtures.Members), len(fixtures.Announcements), len(fixtures.Transactions)))
	}

	// =========================================================================
	// Metrics

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metricsvc.NewHTTPMetrics(reg)
	metricsvc.RegisterLedgerGauges(reg, ledgerSvc)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - profiling
	// /debug/vars - expvar
	// /metrics - prometheus

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	debugMux := http.NewServeMux()
	debugMux.Handle("/debug/vars", expvar.Handler())
	debugMux.HandleFunc("/debug/pprof/", pprof.Index)
	debugMux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	debugMux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	debugMux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	debugMux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	debugMux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	debugServer := &http.Server{Addr: conf.Server.DebugHost, Handler: debugMux}

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:            conf,
			Logger:          logger,
			Validate:        validate,
			Translator:      translator,
			Metrics:         httpMetrics,
			UserSvc:         usrSvc,
			MemberSvc:       memSvc,
			AnnouncementSvc: annSvc,
			LedgerSvc:       ledgerSvc,
			ContactSvc:      contactSvc,
			ScheduleSvc:     schedSvc,
			PhotoSvc:        photoSvc,
		},
	)
	defer server.StopSignals()

	g, gctx := errgroup.WithContext(context.Background())
	g.Go(func() error {
		if err := server.Start(); !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "api server")
		}
		return nil
	})
	g.Go(func() error {
		if err := debugServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "debug server")
		}
		return nil
	})

	// =========================================================================
	// Shutdown

	select {
	case <-gctx.Done():
		logger.Error("a server stopped unexpectedly: start shutdown...")

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))
	}

	// give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
	defer cancel()

	// asking listeners to shutdown and shed load
	if err = server.Shutdown(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

		if err = server.Close(); err != nil {
			logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
		}
	}
	if err = debugServer.Shutdown(ctx); err != nil {
		logger.Error(fmt.Sprintf("could not stop debug server: %v", err), err)
	}

	if err = g.Wait(); err != nil {
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)
	}
}
