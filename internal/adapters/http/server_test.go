package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	httpAdapter "github.com/aretw0/envswitch/internal/adapters/http"
	"github.com/aretw0/envswitch/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEngine struct {
	envs     []domain.Environment
	current  *domain.ActivationRecord
	switched []string
}

func (s *stubEngine) Environments() []domain.Environment { return s.envs }

func (s *stubEngine) Lookup(name string) (domain.Environment, error) {
	for _, env := range s.envs {
		if env.Name == name {
			return env, nil
		}
	}
	return domain.Environment{}, fmt.Errorf("%w: %s", domain.ErrEnvironmentNotFound, name)
}

func (s *stubEngine) Switch(ctx context.Context, name string) (domain.RenameReport, error) {
	env, err := s.Lookup(name)
	if err != nil {
		return domain.RenameReport{}, err
	}
	if env.LoadErr != nil {
		return domain.RenameReport{Environment: name}, env.LoadErr
	}
	if env.Role == "broken" {
		return domain.RenameReport{}, domain.ErrInvalidWorkspaceName
	}
	s.switched = append(s.switched, name)
	return domain.RenameReport{
		Environment: name,
		Results: []domain.RenameResult{
			{Operation: domain.RenameOperation{Slot: 1, Source: "1", Target: "1:code"}},
			{Operation: domain.RenameOperation{Slot: 2, Source: "2", Target: "2:web"}, Err: errors.New("rejected")},
		},
	}, nil
}

func (s *stubEngine) Current(ctx context.Context) (*domain.ActivationRecord, error) {
	if s.current == nil {
		return nil, domain.ErrRecordNotFound
	}
	return s.current, nil
}

func newStub() *stubEngine {
	return &stubEngine{envs: []domain.Environment{
		{Name: "dev", Role: "backend"},
		{Name: "bad", Role: "broken"},
		{Name: "garbled", LoadErr: fmt.Errorf("%w: environments[2]: bad slot", domain.ErrInvalidEnvironment)},
	}}
}

func do(t *testing.T, h http.Handler, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	rr := do(t, httpAdapter.NewHandler(newStub()), http.MethodGet, "/health")

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestGetInfo(t *testing.T) {
	rr := do(t, httpAdapter.NewHandler(newStub(), httpAdapter.WithVersion("1.2.3")), http.MethodGet, "/info")

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "envswitch-http", resp["app"])
	assert.Equal(t, "1.2.3", resp["version"])
	assert.Equal(t, httpAdapter.APIVersion, resp["api_version"])
}

func TestEnvironments(t *testing.T) {
	h := httpAdapter.NewHandler(newStub())

	rr := do(t, h, http.MethodGet, "/environments")
	require.Equal(t, http.StatusOK, rr.Code)
	var envs []domain.Environment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envs))
	assert.Len(t, envs, 3)

	rr = do(t, h, http.MethodGet, "/environments/dev")
	require.Equal(t, http.StatusOK, rr.Code)
	var env domain.Environment
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.Equal(t, "backend", env.Role)

	rr = do(t, h, http.MethodGet, "/environments/prod")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSwitchEnvironment(t *testing.T) {
	stub := newStub()
	h := httpAdapter.NewHandler(stub)

	rr := do(t, h, http.MethodPost, "/environments/dev/switch")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp httpAdapter.ReportResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "dev", resp.Environment)
	assert.Equal(t, 1, resp.Renamed)
	assert.Equal(t, 1, resp.Failed)
	require.Len(t, resp.Results, 2)
	assert.Equal(t, "rejected", resp.Results[1].Error)
	assert.Equal(t, []string{"dev"}, stub.switched)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/environments/prod/switch").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodPost, "/environments/bad/switch").Code)
	assert.Equal(t, http.StatusUnprocessableEntity, do(t, h, http.MethodPost, "/environments/garbled/switch").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/environments/dev/switch").Code)
}

func TestGetCurrent(t *testing.T) {
	stub := newStub()
	h := httpAdapter.NewHandler(stub)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/current").Code)

	stub.current = &domain.ActivationRecord{Environment: "dev", ActivatedAt: time.Now().UTC(), Renamed: 2}
	rr := do(t, h, http.MethodGet, "/current")
	require.Equal(t, http.StatusOK, rr.Code)
	var rec domain.ActivationRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rec))
	assert.Equal(t, "dev", rec.Environment)
}

func TestMetricsRoute(t *testing.T) {
	h := httpAdapter.NewHandler(newStub())
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/metrics").Code)

	metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("envswitch_up 1\n"))
	})
	h = httpAdapter.NewHandler(newStub(), httpAdapter.WithMetrics(metrics))
	rr := do(t, h, http.MethodGet, "/metrics")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "envswitch_up 1\n", rr.Body.String())
}
