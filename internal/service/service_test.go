package service_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/tablestaff/tablestaff/internal"
	"github.com/tablestaff/tablestaff/internal/data"
	"github.com/tablestaff/tablestaff/internal/logic"
	"github.com/tablestaff/tablestaff/internal/service"
	"github.com/tablestaff/tablestaff/internal/sql"
	"github.com/tablestaff/tablestaff/internal/utilities"

	"github.com/stretchr/testify/assert"
)

const sessionSecret string = "service-test-secret"

var (
	envs = map[string]string{
		//sql
		"DATABASE_DRIVER":        "sqlite3",
		"DATABASE_FILE":          "",
		"DATABASE_MIGRATE":       "true",
		"DATABASE_QUERY_TIMEOUT": "10",
		//logic
		"LOGIC_CACHE_ENABLED": "false",
		//service
		"SERVICE_ADDRESS":       "localhost",
		"SERVICE_PORT":          "9001",
		"SERVICE_CORS_DISABLED": "true",
		"SESSION_SECRET":        sessionSecret,
	}
)

func init() {
	for _, env := range os.Environ() {
		if s := strings.Split(env, "="); len(s) > 1 {
			envs[s[0]] = strings.Join(s[1:], "=")
		}
	}
}

type serviceTest struct {
	store interface {
		internal.Configurer
		internal.Opener
		sql.Store
	}
	service interface {
		internal.Configurer
		internal.Opener
	}
}

func newServiceTest() *serviceTest {
	logger := utilities.NewLogger()
	_ = logger.Configure(envs)
	store := sql.NewStore(logger)
	l := logic.NewLogic(store, logger)
	return &serviceTest{
		store: store,
		service: service.NewService(l, logger,
			utilities.NewCounter(), utilities.NewTimers()),
	}
}

func (s *serviceTest) Configure(envs map[string]string) error {
	if err := s.store.Configure(envs); err != nil {
		return err
	}
	return s.service.Configure(envs)
}

func (s *serviceTest) Open(ctx context.Context) error {
	if err := s.store.Open(ctx); err != nil {
		return err
	}
	return s.service.Open(ctx)
}

func (s *serviceTest) Close(ctx context.Context) error {
	if err := s.service.Close(ctx); err != nil {
		return err
	}
	return s.store.Close(ctx)
}

func doRequest(t *testing.T, method, uri, token string, body io.Reader) (int, []byte) {
	request, err := http.NewRequest(method, uri, body)
	assert.Nil(t, err)
	request.Header.Set("Content-Type", "application/json")
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	response, err := http.DefaultClient.Do(request)
	assert.Nil(t, err)
	defer response.Body.Close()
	bytes, err := io.ReadAll(response.Body)
	assert.Nil(t, err)
	return response.StatusCode, bytes
}

func TestServiceSessions(t *testing.T) {
	s := newServiceTest()

	err := s.Configure(envs)
	assert.Nil(t, err)
	err = s.Open(context.TODO())
	assert.Nil(t, err)
	defer s.Close(context.TODO())
	uri := fmt.Sprintf("http://%s:%s", envs["SERVICE_ADDRESS"], envs["SERVICE_PORT"])

	// the default endpoint is public
	statusCode, _ := doRequest(t, http.MethodGet, uri+"/", "", nil)
	assert.Equal(t, http.StatusOK, statusCode)

	// everything else requires a session
	statusCode, _ = doRequest(t, http.MethodGet, uri+data.RouteEmployees, "", nil)
	assert.Equal(t, http.StatusUnauthorized, statusCode)

	// a token signed with a different secret is rejected
	badToken, err := service.GenerateToken("some-other-secret", "test", time.Hour)
	assert.Nil(t, err)
	statusCode, _ = doRequest(t, http.MethodGet, uri+data.RouteEmployees, badToken, nil)
	assert.Equal(t, http.StatusUnauthorized, statusCode)

	// an expired token is rejected
	expiredToken, err := service.GenerateToken(sessionSecret, "test", -time.Hour)
	assert.Nil(t, err)
	statusCode, _ = doRequest(t, http.MethodGet, uri+data.RouteEmployees, expiredToken, nil)
	assert.Equal(t, http.StatusUnauthorized, statusCode)

	// a valid token gets through
	token, err := service.GenerateToken(sessionSecret, "test", time.Hour)
	assert.Nil(t, err)
	statusCode, bytes := doRequest(t, http.MethodGet, uri+data.RouteEmployees, token, nil)
	assert.Equal(t, http.StatusOK, statusCode)
	response := &data.Response{}
	err = json.Unmarshal(bytes, response)
	assert.Nil(t, err)
	assert.Empty(t, response.Error)

	// not-found maps to a 404 with an error body
	statusCode, bytes = doRequest(t, http.MethodGet,
		uri+fmt.Sprintf(data.RouteEmployeesIdf, internal.GenerateId()), token, nil)
	assert.Equal(t, http.StatusNotFound, statusCode)
	err = json.Unmarshal(bytes, response)
	assert.Nil(t, err)
	assert.NotEmpty(t, response.Error)

	// an unsupported method is rejected
	statusCode, _ = doRequest(t, http.MethodPatch, uri+data.RouteEmployees, token, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, statusCode)
}
