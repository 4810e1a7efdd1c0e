// Package logsvc provides the application loggers.
package logsvc

import (
	"context"
	"log"
	"strconv"

	"github.com/rollbar/rollbar-go"
	"github.com/rollbar/rollbar-go/errors"

	"github.com/ardiann-eng/CryptgenFix122/core"
	"github.com/ardiann-eng/CryptgenFix122/core/user"
)

// Reporter writes every entry to a local logger and forwards it to rollbar when reporting is on.
//
// Arguments after the message may be an error, a map[string]interface{} of extras, or the
// user.User the entry is about. Anything else is printed locally and attached as an extra.
type Reporter struct {
	local  *log.Logger
	client *rollbar.Client
}

var _ core.Logger = (*Reporter)(nil)

// NewReporter creates a Reporter with its own rollbar client.
// Reporting is on only for non-debug deployments that have a token.
func NewReporter(local *log.Logger, conf *core.Config) *Reporter {
	client := rollbar.NewAsync(conf.RollbarToken, conf.Env, conf.Build, conf.Server.Host, "")
	client.SetEnabled(!conf.Debug && conf.RollbarToken != "")
	return newReporter(local, client)
}

func newReporter(local *log.Logger, client *rollbar.Client) *Reporter {
	client.SetStackTracer(errors.StackTracer)
	return &Reporter{local: local, client: client}
}

type entry struct {
	msg    string
	err    error
	person *rollbar.Person
	extras map[string]interface{}
	lines  []interface{}
}

func newEntry(msg string, args []interface{}) entry {
	e := entry{msg: msg, extras: make(map[string]interface{})}
	var others []interface{}
	for _, arg := range args {
		switch v := arg.(type) {
		case user.User:
			if e.person == nil && v.ID != 0 {
				e.person = &rollbar.Person{Id: strconv.Itoa(v.ID), Username: v.Username}
			}
			continue
		case error:
			if e.err == nil {
				e.err = v
			} else {
				others = append(others, v.Error())
			}
		case map[string]interface{}:
			for k, val := range v {
				e.extras[k] = val
			}
		default:
			others = append(others, v)
		}
		e.lines = append(e.lines, arg)
	}
	if len(others) > 0 {
		e.extras["args"] = others
	}
	return e
}

func (r *Reporter) log(level, msg string, args []interface{}) {
	e := newEntry(msg, args)

	r.local.Printf("[%s] %s", level, e.msg)
	for _, line := range e.lines {
		r.local.Printf("%+v", line)
	}

	ctx := context.Background()
	if e.person != nil {
		ctx = rollbar.NewPersonContext(ctx, e.person)
	}
	if e.err == nil {
		r.client.MessageWithExtrasAndContext(ctx, level, e.msg, e.extras)
		return
	}
	e.extras["message"] = e.msg
	// skip log and the exported level method
	r.client.ErrorWithStackSkipWithExtrasAndContext(ctx, level, e.err, 2, e.extras)
}

func (r *Reporter) Debug(msg string, args ...interface{}) { r.log(rollbar.DEBUG, msg, args) }
func (r *Reporter) Info(msg string, args ...interface{})  { r.log(rollbar.INFO, msg, args) }
func (r *Reporter) Warn(msg string, args ...interface{})  { r.log(rollbar.WARN, msg, args) }
func (r *Reporter) Error(msg string, args ...interface{}) { r.log(rollbar.ERR, msg, args) }

// Fatal reports a critical entry, waits for it to be delivered, then exits.
func (r *Reporter) Fatal(msg string, args ...interface{}) {
	r.log(rollbar.CRIT, msg, args)
	r.client.Wait()
	r.local.Fatal(msg)
}

// Close flushes pending items and stops the rollbar client.
func (r *Reporter) Close() error {
	return r.client.Close()
}
