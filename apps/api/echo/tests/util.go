package tests

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/mail"
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/ardiann-eng/CryptgenFix122/apps/api/echo"
	"github.com/ardiann-eng/CryptgenFix122/apps/shared"
	"github.com/ardiann-eng/CryptgenFix122/core"
	"github.com/ardiann-eng/CryptgenFix122/core/announcement"
	"github.com/ardiann-eng/CryptgenFix122/core/contact"
	"github.com/ardiann-eng/CryptgenFix122/core/ledger"
	"github.com/ardiann-eng/CryptgenFix122/core/member"
	"github.com/ardiann-eng/CryptgenFix122/core/schedule"
	"github.com/ardiann-eng/CryptgenFix122/core/user"
	emailsvc "github.com/ardiann-eng/CryptgenFix122/services/email"
	metricsvc "github.com/ardiann-eng/CryptgenFix122/services/metrics"
	photosvc "github.com/ardiann-eng/CryptgenFix122/services/photo"
	inmemdb "github.com/ardiann-eng/CryptgenFix122/storage/database/inmem"
	"github.com/ardiann-eng/CryptgenFix122/tests"
)

var (
	inbox     = mail.Address{Name: "Class Board", Address: "board@example.com"}
	adminPwd  = "Sup3r-Secret!"
	userPwd   = "An0ther-Secret!"
	errNoAuth = httpErr{Error: "authentication required"}
	errNoPerm = httpErr{Error: "admin access required"}
	errNotFnd = httpErr{Error: "not found"}
)

// testApp is a fully wired server over an empty in-memory store.
type testApp struct {
	*Server
	conf    *core.Config
	logger  *testutil.Logger
	mailSvc *emailsvc.ConsoleServiceMock
	usrRepo user.Repository

	adminToken string
	userToken  string
}

func setup(t *testing.T) *testApp {
	t.Helper()
	conf := testutil.NewConfig(t)
	logger := new(testutil.Logger)
	validate, translator := shared.NewValidator()

	// set up DB & repos
	db := inmemdb.Open()
	usrRepo := inmemdb.NewUserRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)
	usrSvc := user.NewService(usrRepo)
	ledgerSvc := ledger.NewService(inmemdb.NewTransactionRepository(db))
	photoSvc, err := photosvc.NewService(conf.Uploads.Dir, conf.Uploads.URLPrefix, conf.Uploads.PhotoMaxDim)
	require.NoError(t, err)

	reg := prometheus.NewRegistry()
	metricsvc.RegisterLedgerGauges(reg, ledgerSvc)

	// set up server
	server := NewServer(ServerDeps{
		Conf:            conf,
		Logger:          logger,
		Validate:        validate,
		Translator:      translator,
		Metrics:         metricsvc.NewHTTPMetrics(reg),
		UserSvc:         usrSvc,
		MemberSvc:       member.NewService(inmemdb.NewMemberRepository(db)),
		AnnouncementSvc: announcement.NewService(inmemdb.NewAnnouncementRepository(db)),
		LedgerSvc:       ledgerSvc,
		ContactSvc:      contact.NewService(inmemdb.NewMessageRepository(db), mailSvc, inbox),
		ScheduleSvc:     schedule.NewService(inmemdb.NewScheduleRepository(db)),
		PhotoSvc:        photoSvc,
	})
	t.Cleanup(server.StopSignals)

	app := &testApp{
		Server:  server,
		conf:    conf,
		logger:  logger,
		mailSvc: mailSvc,
		usrRepo: usrRepo,
	}

	adm, err := usrSvc.EnsureAdmin(conf.Admin.Username, adminPwd, nil)
	require.NoError(t, err)
	app.adminToken = app.getToken(t, adm)
	usr := testutil.CreateUser(t, usrRepo, "student", userPwd, user.RoleUser)
	app.userToken = app.getToken(t, usr)

	return app
}

func (app *testApp) getToken(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := app.SessionToken(usr)
	if err != nil {
		t.Fatalf("getToken(): %v", err)
	}
	return token
}

// run serves tt and checks the response code and body.
func (app *testApp) run(t *testing.T, tt httpTest) *httptest.ResponseRecorder {
	t.Helper()
	req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
	app.ServeHTTP(rec, req)
	checkCodeAndData(t, tt, rec)
	return rec
}

// serve sends a request and decodes the JSON response into dst, if any.
func (app *testApp) serve(t *testing.T, method, path, token string, body []byte, dst interface{}) *httptest.ResponseRecorder {
	t.Helper()
	req, rec := newAuthRequest(method, path, token, body)
	app.ServeHTTP(rec, req)
	if dst != nil {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst), rec.Body.String())
	}
	return rec
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
	extra    interface{}
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

// newUploadRequest builds a multipart request carrying content in the `field` file field.
func newUploadRequest(t *testing.T, path, token, field, filename string, content []byte) (*http.Request, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req, httptest.NewRecorder()
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj(): %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	if objs == nil {
		objs = []interface{}{}
	}
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList(): %v", err)
	}
	return data
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		assert.Empty(t, rec.Body.String())
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}
