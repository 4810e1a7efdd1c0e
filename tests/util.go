package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/ardiann-eng/CryptgenFix122/core"
	"github.com/ardiann-eng/CryptgenFix122/core/user"
)

// NewConfig returns a config fit for tests: no request logs, uploads in a temp dir.
func NewConfig(t *testing.T) *core.Config {
	t.Helper()
	conf := &core.Config{
		Env:       "TEST",
		Build:     "test",
		TestMode:  true,
		AppName:   "Cryptgen",
		SecretKey: "test-secret",
	}
	conf.Admin.Username = "admin"
	conf.Server.Address = ":0"
	conf.Server.DisableReqLogs = true
	conf.Server.ShutdownTimeout = time.Second
	conf.Server.AllowOrigins = []string{"*"}
	conf.Server.SessionCookieName = "cryptgen_session"
	conf.Server.SessionExpirationDelta = time.Hour
	conf.Uploads.Dir = t.TempDir()
	conf.Uploads.URLPrefix = "/uploads"
	conf.Uploads.MaxSize = 1 << 20
	conf.Uploads.PhotoMaxDim = 64
	return conf
}

// Logger only records messages. It never reports anywhere.
type Logger struct {
	Messages []string
}

var _ core.Logger = (*Logger)(nil)

func (l *Logger) log(level, msg string, args []interface{}) {
	l.Messages = append(l.Messages, fmt.Sprintf("%s: %s %v", level, msg, args))
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.log("DEBUG", msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.log("INFO", msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.log("WARN", msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.log("ERROR", msg, args) }
func (l *Logger) Fatal(msg string, args ...interface{}) { l.log("FATAL", msg, args) }

func CreateUser(t *testing.T, repo user.Repository, uname, pwd string, role user.Role) user.User {
	t.Helper()
	usr := user.User{
		Username:  uname,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if pwd != "" {
		if err := usr.SetPassword(pwd); err != nil {
			t.Fatalf("CreateUser() failed: %v", err)
		}
	}
	usr, err := repo.CreateUser(usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return usr
}
