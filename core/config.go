package core

import (
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string
	Build    string
	Debug    bool
	TestMode bool

	AppName          string
	SecretKey        string
	FrontendBaseURL  string
	DefaultFromEmail mail.Address
	ContactInbox     mail.Address
	SeedFile         string
	SkipSeed         bool

	RollbarToken   string
	SendgridAPIKey string

	Admin struct {
		Username     string
		Password     string
		PasswordHash string
	}

	Server struct {
		Host                   string
		Address                string
		DebugHost              string
		DisableReqLogs         bool
		ShutdownTimeout        time.Duration
		BodyLimit              string
		AllowOrigins           []string
		SessionCookieName      string
		SessionExpirationDelta time.Duration
		SecureCookies          bool
	}

	Uploads struct {
		Dir         string
		URLPrefix   string
		MaxSize     int64
		PhotoMaxDim int
	}
}

// NewConfig loads the configuration from defaults, the optional `config/.env.<env>` file and the environment.
// Environment variables are prefixed with the upper-cased env name, e.g. `DEV_SECRETKEY`.
func NewConfig() (*Config, error) {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Cryptgen")
	v.SetDefault("secretKey", "cryptgen-secret")
	v.SetDefault("frontendBaseURL", "http://localhost:5173")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("contactInbox", "")
	v.SetDefault("seedFile", "")
	v.SetDefault("skipSeed", false)
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridAPIKey", "")

	v.SetDefault("adminUsername", "admin")
	v.SetDefault("adminPassword", "")
	v.SetDefault("adminPasswordHash", "")

	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverAddress", ":5000")
	v.SetDefault("serverDebugHost", ":5001")
	v.SetDefault("serverDisableReqLogs", false)
	v.SetDefault("serverShutdownTimeout", 5*time.Second)
	v.SetDefault("serverBodyLimit", "4M")
	v.SetDefault("serverAllowOrigins", []string{"*"})
	v.SetDefault("serverSessionCookieName", "cryptgen_session")
	v.SetDefault("serverSessionExpirationDelta", 24*time.Hour)
	v.SetDefault("serverSecureCookies", false)

	v.SetDefault("uploadsDir", "uploads")
	v.SetDefault("uploadsURLPrefix", "/uploads")
	v.SetDefault("uploadsMaxSize", int64(2<<20))
	v.SetDefault("uploadsPhotoMaxDim", 512)

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "getting working directory")
	}
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:             env,
		Build:           v.GetString("build"),
		Debug:           v.GetBool("debug"),
		TestMode:        v.GetBool("testMode"),
		AppName:         v.GetString("appName"),
		SecretKey:       v.GetString("secretKey"),
		FrontendBaseURL: v.GetString("frontendBaseURL"),
		SeedFile:        v.GetString("seedFile"),
		SkipSeed:        v.GetBool("skipSeed"),
		RollbarToken:    v.GetString("rollbarToken"),
		SendgridAPIKey:  v.GetString("sendgridAPIKey"),
	}

	from, err := parseAddress(v.GetString("defaultFromEmail"))
	if err != nil {
		return nil, errors.Wrap(err, "parsing defaultFromEmail")
	}
	conf.DefaultFromEmail = from
	if inbox := v.GetString("contactInbox"); inbox != "" {
		if conf.ContactInbox, err = parseAddress(inbox); err != nil {
			return nil, errors.Wrap(err, "parsing contactInbox")
		}
	}

	conf.Admin.Username = v.GetString("adminUsername")
	conf.Admin.Password = v.GetString("adminPassword")
	conf.Admin.PasswordHash = v.GetString("adminPasswordHash")

	conf.Server.Host = v.GetString("serverHost")
	conf.Server.Address = v.GetString("serverAddress")
	conf.Server.DebugHost = v.GetString("serverDebugHost")
	conf.Server.DisableReqLogs = v.GetBool("serverDisableReqLogs")
	conf.Server.ShutdownTimeout = v.GetDuration("serverShutdownTimeout")
	conf.Server.BodyLimit = v.GetString("serverBodyLimit")
	conf.Server.AllowOrigins = v.GetStringSlice("serverAllowOrigins")
	conf.Server.SessionCookieName = v.GetString("serverSessionCookieName")
	conf.Server.SessionExpirationDelta = v.GetDuration("serverSessionExpirationDelta")
	conf.Server.SecureCookies = v.GetBool("serverSecureCookies")

	conf.Uploads.Dir = v.GetString("uploadsDir")
	conf.Uploads.URLPrefix = strings.TrimSuffix(v.GetString("uploadsURLPrefix"), "/")
	conf.Uploads.MaxSize = v.GetInt64("uploadsMaxSize")
	conf.Uploads.PhotoMaxDim = v.GetInt("uploadsPhotoMaxDim")

	return conf, nil
}

func parseAddress(s string) (mail.Address, error) {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return mail.Address{}, err
	}
	return *addr, nil
}
