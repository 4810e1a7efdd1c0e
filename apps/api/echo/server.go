package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/ardiann-eng/CryptgenFix122/core"
	"github.com/ardiann-eng/CryptgenFix122/core/announcement"
	"github.com/ardiann-eng/CryptgenFix122/core/contact"
	"github.com/ardiann-eng/CryptgenFix122/core/ledger"
	"github.com/ardiann-eng/CryptgenFix122/core/member"
	"github.com/ardiann-eng/CryptgenFix122/core/schedule"
	"github.com/ardiann-eng/CryptgenFix122/core/user"
	metricsvc "github.com/ardiann-eng/CryptgenFix122/services/metrics"
	photosvc "github.com/ardiann-eng/CryptgenFix122/services/photo"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator
		Metrics    *metricsvc.HTTPMetrics // optional

		UserSvc         *user.Service
		MemberSvc       *member.Service
		AnnouncementSvc *announcement.Service
		LedgerSvc       *ledger.Service
		ContactSvc      *contact.Service
		ScheduleSvc     *schedule.Service
		PhotoSvc        *photosvc.Service
	}

	Server struct {
		ServerDeps
		app      *echo.Echo
		auth     *authenticator
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		ServerDeps: deps,
		app:        echo.New(),
		auth:       newAuthenticator(deps.Conf, deps.UserSvc),
		shutdown:   make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     conf.Server.AllowOrigins,
		AllowCredentials: true,
	}))
	if conf.Server.BodyLimit != "" {
		s.app.Use(middleware.BodyLimit(conf.Server.BodyLimit))
	}
	if s.Metrics != nil {
		s.app.Use(s.Metrics.Middleware())
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.Logger, s.Translator, s.SignalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)
	if conf.Uploads.URLPrefix != "" && conf.Uploads.Dir != "" {
		s.app.Static(conf.Uploads.URLPrefix, conf.Uploads.Dir)
	}

	g := s.app.Group("/api")
	authed := s.auth.middleware()
	admin := adminMiddleware()

	registerUserAPI(g, authed, s.auth, s.UserSvc, s.Validate)
	registerMemberAPI(g, authed, admin, s.MemberSvc, s.PhotoSvc, conf.Uploads.MaxSize, s.Validate, s.Logger)
	registerAnnouncementAPI(g, authed, admin, s.AnnouncementSvc, s.Validate)
	registerLedgerAPI(g, authed, s.LedgerSvc, s.Validate)
	registerContactAPI(g, authed, admin, s.ContactSvc, s.Validate)
	registerScheduleAPI(g, s.ScheduleSvc)
}

// Start blocks until the server stops. It returns http.ErrServerClosed after a Shutdown.
func (s *Server) Start() error {
	return s.app.Start(s.Conf.Server.Address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

// ShutdownSignal is notified on SIGINT, SIGTERM or a core shutdown error.
func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default:
	}
}

// StopSignals stops relaying OS signals to ShutdownSignal.
func (s *Server) StopSignals() {
	signal.Stop(s.shutdown)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

// SessionToken returns a signed session token for usr.
func (s *Server) SessionToken(usr user.User) (string, error) {
	return s.auth.generateToken(usr)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.Conf.AppName+" API!")
}
