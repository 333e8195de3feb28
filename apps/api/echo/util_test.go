package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	. "github.com/trezcool/studenthub/apps/api/echo"
	"github.com/trezcool/studenthub/core"
	"github.com/trezcool/studenthub/core/result"
	"github.com/trezcool/studenthub/core/session"
	"github.com/trezcool/studenthub/core/student"
	"github.com/trezcool/studenthub/core/view"
	"github.com/trezcool/studenthub/storage/database/inmem"
	"github.com/trezcool/studenthub/tests"
)

var (
	conf = &core.Config{
		AppName:   "StudentHub",
		TestMode:  true,
		SecretKey: "secret",
		Admin:     core.AdminConfig{Username: "admin", Password: "admin123", Name: "Administrator"},
		Server:    core.ServerConfig{JWTExpirationDelta: time.Hour},
	}

	errMissingToken = httpErr{Error: "missing or malformed jwt"}
	errStaleSession = httpErr{Error: "session is no longer valid"}
	errForbidden    = httpErr{Error: "permission denied"}

	adminIdentity   = session.Admin{Username: "admin", Name: "Administrator"}
	studentIdentity = session.Student{ID: "ST001", Name: "Murari Kumar", Email: "murari@email.com", Class: "12th"}
)

type env struct {
	app     *Server
	resRepo result.Repository
	logger  *testutil.Logger
}

// setup serves the seeded demo data.
func setup(t *testing.T) env {
	db := testutil.PrepareDB(t, true)
	stRepo := inmemdb.NewStudentRepository(db)
	resRepo := inmemdb.NewResultRepository(db)

	stSvc := student.NewService(stRepo)
	resSvc := result.NewService(resRepo, stSvc, nil)
	validate, translator := testutil.NewValidator()
	logger := new(testutil.Logger)

	app := NewServer(ServerDeps{
		Conf:   conf,
		Logger: logger,
		Auth: session.NewAuthenticator(
			session.AdminAccount{Username: conf.Admin.Username, Password: conf.Admin.Password, Name: conf.Admin.Name},
			stSvc,
		),
		StudentSvc: stSvc,
		ResultSvc:  resSvc,
		Router:     view.NewRouter(stSvc, resSvc),
		Validate:   validate,
		Translator: translator,
	})
	return env{app: app, resRepo: resRepo, logger: logger}
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

func getToken(t *testing.T, id session.Identity) string {
	token, err := GenerateToken(conf, id)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marshalObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshalObj() failed: %v", err)
	}
	return data
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

func runHTTPTests(t *testing.T, app http.Handler, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(tt.method, tt.path, tt.token, tt.body)
			app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}
