package projection

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	v1 "github.com/perfcube-lab/perfcube/internal/api/v1"
	httperr "github.com/perfcube-lab/perfcube/internal/core/errors"
	"github.com/perfcube-lab/perfcube/internal/core/storage"
	storagemocks "github.com/perfcube-lab/perfcube/internal/mocks/storage"
)

func TestService_HandleSummary_StatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name              string
		query             string
		expectedStatus    int
		expectedErrorType string
		configure         func(records *storagemocks.RecordSource, references *storagemocks.ReferenceSource)
	}{
		{
			name:              "malformed date returns 400",
			query:             "start=yesterday",
			expectedStatus:    http.StatusBadRequest,
			expectedErrorType: httperr.HttpInvalidQueryError,
			configure:         func(_ *storagemocks.RecordSource, _ *storagemocks.ReferenceSource) {},
		},
		{
			name:              "end before start returns 400",
			query:             "start=2026-03-03&end=2026-03-01",
			expectedStatus:    http.StatusBadRequest,
			expectedErrorType: httperr.HttpInvalidQueryError,
			configure:         func(_ *storagemocks.RecordSource, _ *storagemocks.ReferenceSource) {},
		},
		{
			name:              "unbounded date range returns 400",
			query:             "start=1000-01-01&end=9999-12-31",
			expectedStatus:    http.StatusBadRequest,
			expectedErrorType: httperr.HttpInvalidQueryError,
			configure:         func(_ *storagemocks.RecordSource, _ *storagemocks.ReferenceSource) {},
		},
		{
			name:           "repeated test key returns 200",
			query:          "test=cold-loadtime&test=cold-loadtime&start=2026-03-01&end=2026-03-03",
			expectedStatus: http.StatusOK,
			configure: func(records *storagemocks.RecordSource, references *storagemocks.ReferenceSource) {
				references.EXPECT().
					QueryReferences(mock.Anything, mock.Anything, mock.Anything).
					Return(sampleReferences(), nil).
					Once()
				records.EXPECT().
					Fetch(mock.Anything, mock.Anything).
					Return(sampleRecords(), nil).
					Once()
			},
		},
		{
			name:              "unknown test returns 400",
			query:             "test=no-such-test",
			expectedStatus:    http.StatusBadRequest,
			expectedErrorType: httperr.HttpInvalidQueryError,
			configure:         func(_ *storagemocks.RecordSource, _ *storagemocks.ReferenceSource) {},
		},
		{
			name:              "fetch failure returns 502",
			query:             "test=cold-loadtime&start=2026-03-01&end=2026-03-03",
			expectedStatus:    http.StatusBadGateway,
			expectedErrorType: httperr.HttpUpstreamFetchError,
			configure: func(records *storagemocks.RecordSource, references *storagemocks.ReferenceSource) {
				references.EXPECT().
					QueryReferences(mock.Anything, mock.Anything, mock.Anything).
					Return(sampleReferences(), nil).
					Once()
				records.EXPECT().
					Fetch(mock.Anything, mock.Anything).
					Return([]*v1.Record(nil), errors.New("connection refused")).
					Once()
			},
		},
		{
			name:              "reference failure returns 500",
			query:             "test=cold-loadtime",
			expectedStatus:    http.StatusInternalServerError,
			expectedErrorType: httperr.HttpInternalError,
			configure: func(_ *storagemocks.RecordSource, references *storagemocks.ReferenceSource) {
				references.EXPECT().
					QueryReferences(mock.Anything, mock.Anything, mock.Anything).
					Return([]storage.ReferenceValue(nil), errors.New("db failure")).
					Once()
			},
		},
		{
			name:           "success returns 200",
			query:          "browser=fenix&test=cold-loadtime&platform=fenix-g5&start=2026-03-01&end=2026-03-03",
			expectedStatus: http.StatusOK,
			configure: func(records *storagemocks.RecordSource, references *storagemocks.ReferenceSource) {
				references.EXPECT().
					QueryReferences(mock.Anything, []string{"cold-loadtime"}, []string{"fenix-g5"}).
					Return(sampleReferences(), nil).
					Once()
				records.EXPECT().
					Fetch(mock.Anything, mock.Anything).
					Return(sampleRecords(), nil).
					Once()
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc, records, references := newTestService(t)
			tc.configure(records, references)

			router := gin.New()
			svc.RegisterRoutes(router)

			req := httptest.NewRequest(http.MethodGet, "/v1/summary?"+tc.query, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, tc.expectedStatus, rec.Code, rec.Body.String())
			if tc.expectedErrorType != "" {
				var body httperr.ErrorResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
				require.Equal(t, tc.expectedErrorType, body.ErrorType)
			}
		})
	}
}

func TestService_HandleSummary_ResponseShape(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc, records, references := newTestService(t)
	references.EXPECT().
		QueryReferences(mock.Anything, mock.Anything, mock.Anything).
		Return([]storage.ReferenceValue(nil), nil).
		Once()
	records.EXPECT().
		Fetch(mock.Anything, mock.Anything).
		Return(sampleRecords(), nil).
		Once()

	router := gin.New()
	svc.RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/v1/summary?test=cold-loadtime&start=2026-03-01&end=2026-03-02", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	platform := body["tests"].([]interface{})[0].(map[string]interface{})["platforms"].([]interface{})[0].(map[string]interface{})
	require.Contains(t, platform, "reference")
	require.Nil(t, platform["reference"])
	require.Equal(t, float64(2), platform["count"])
	require.Len(t, platform["series"], 2)
	require.Equal(t, "2026-03-01T00:00:00Z", platform["series"].([]interface{})[0].(map[string]interface{})["date"])
}

func TestService_HandleDashboard(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc, records, references := newTestService(t)
	svc.settings.DashboardTests = []string{"warm-loadtime"}

	references.EXPECT().
		QueryReferences(mock.Anything, []string{"warm-loadtime"}, []string(nil)).
		Return([]storage.ReferenceValue(nil), nil).
		Once()
	records.EXPECT().
		Fetch(mock.Anything, mock.Anything).
		Return(sampleRecords(), nil).
		Once()

	router := gin.New()
	svc.RegisterRoutes(router)

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard?start=2026-03-01&end=2026-03-03", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Summaries, 1)
	require.Equal(t, "warm-loadtime", resp.Summaries[0].Tests[0].Test)
}
