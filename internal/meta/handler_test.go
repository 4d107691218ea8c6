package meta_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/changhyeonkim/gym-member-api/internal/member"
	"github.com/changhyeonkim/gym-member-api/internal/meta"
	"github.com/changhyeonkim/gym-member-api/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
)

type failingStore struct{}

func (failingStore) Backend() string { return member.BackendMongo }

func (failingStore) HealthCheck(context.Context) error { return errors.New("server selection timeout") }

func TestHealth(t *testing.T) {
	cfg := testutil.NewTestConfig()

	testCases := []struct {
		name        string
		store       meta.StoreChecker
		degraded    bool
		wantStatus  int
		wantBody    string
		wantBackend string
	}{
		{name: "primary", store: member.NewMemoryRepository(), degraded: false, wantStatus: http.StatusOK, wantBody: meta.StatusHealthy, wantBackend: member.BackendMemory},
		{name: "fallback", store: member.NewMemoryRepository(), degraded: true, wantStatus: http.StatusOK, wantBody: meta.StatusDegraded, wantBackend: member.BackendMemory},
		{name: "store down", store: failingStore{}, wantStatus: http.StatusServiceUnavailable, wantBody: meta.StatusUnhealthy, wantBackend: member.BackendMongo},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			router := testutil.SetupTestRouter()
			router.GET("/health", meta.NewHandler(cfg, tc.store, tc.degraded).Health)

			w := testutil.ExecuteRequest(t, router, testutil.TestRequest{Method: http.MethodGet, URL: "/health"})
			assert.Equal(t, tc.wantStatus, w.Code)

			var body struct {
				Status string `json:"status"`
				Checks struct {
					Store struct {
						Status  string `json:"status"`
						Backend string `json:"backend"`
					} `json:"store"`
				} `json:"checks"`
			}
			testutil.ParseResponse(t, w, &body)
			assert.Equal(t, tc.wantBody, body.Status)
			assert.Equal(t, tc.wantBackend, body.Checks.Store.Backend)
			assert.NotContains(t, w.Body.String(), "server selection timeout")
		})
	}
}
