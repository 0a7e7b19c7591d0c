package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/ikovac/met-forecast-api/internal/model"
	"github.com/ikovac/met-forecast-api/internal/repository"

	"github.com/tj/assert"

	mock "github.com/ikovac/met-forecast-api/internal/transport/rest/handler/mock"
)

var errTest = errors.New("test error")

func testDatum(t time.Time) model.ForecastDatum {
	return model.ForecastDatum{Time: t, Temperature: 11.5, SymbolCode: "cloudy"}
}

func TestGetTodayHandler(t *testing.T) {
	ctx := context.Background()

	coord := model.Coordinate{Latitude: 52.52, Longitude: 13.41}
	datum := testDatum(time.Now().Truncate(time.Hour))

	cases := []struct {
		name            string
		query           string
		result          model.ForecastResult
		expectedStatus  int
		expectedWarning string
		isMockCalled    bool
	}{
		{
			name:           "missing lat",
			query:          "?lon=13.41",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "lat not a number",
			query:          "?lat=abc&lon=13.41",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "lat out of range",
			query:          "?lat=91&lon=13.41",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty cache and refresh failure",
			query:          "?lat=52.52&lon=13.41",
			result:         model.EmptyWithReason(model.ReasonServer),
			expectedStatus: http.StatusBadGateway,
			isMockCalled:   true,
		},
		{
			name:           "no data in window",
			query:          "?lat=52.52&lon=13.41",
			result:         model.Empty(),
			expectedStatus: http.StatusNotFound,
			isMockCalled:   true,
		},
		{
			name:            "stale data with warning",
			query:           "?lat=52.52&lon=13.41",
			result:          model.CachedSuccess([]model.ForecastDatum{datum}, nil, model.ReasonThrottled),
			expectedStatus:  http.StatusOK,
			expectedWarning: "throttled",
			isMockCalled:    true,
		},
		{
			name:           "ok",
			query:          "?lat=52.52&lon=13.41",
			result:         model.Success([]model.ForecastDatum{datum}, nil),
			expectedStatus: http.StatusOK,
			isMockCalled:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockForecastService := mock.NewMockForecastService(ctrl)
			s := NewForecastServer(mockForecastService)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/forecast/today"+tc.query, nil)

			if tc.isMockCalled {
				mockForecastService.EXPECT().
					Today(ctx, coord).
					Return(tc.result)
			}

			s.GetTodayHandler(w, r)

			code := w.Result().StatusCode
			assert.Equal(t, tc.expectedStatus, code)

			if tc.expectedStatus == http.StatusOK {
				var resBody forecastResponse
				err := json.NewDecoder(w.Result().Body).Decode(&resBody)
				assert.Nil(t, err)
				assert.Equal(t, len(tc.result.Data), len(resBody.Data))
				assert.Equal(t, tc.expectedWarning, resBody.Warning)
			}

			defer func() {
				err := w.Result().Body.Close()
				assert.Nil(t, err)
			}()
		})
	}
}

func TestGetRangeHandler(t *testing.T) {
	ctx := context.Background()

	coord := model.Coordinate{Latitude: 52.52, Longitude: 13.41}
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	window := model.Window{Start: from, End: to}

	cases := []struct {
		name           string
		query          string
		result         model.ForecastResult
		expectedStatus int
		isMockCalled   bool
	}{
		{
			name:           "missing from",
			query:          "?lat=52.52&lon=13.41&to=2024-03-02T00:00:00Z",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "from not a timestamp",
			query:          "?lat=52.52&lon=13.41&from=yesterday&to=2024-03-02T00:00:00Z",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "to precedes from",
			query:          "?lat=52.52&lon=13.41&from=2024-03-02T00:00:00Z&to=2024-03-01T00:00:00Z",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "ok",
			query:          "?lat=52.52&lon=13.41&from=2024-03-01T00:00:00Z&to=2024-03-02T00:00:00Z",
			result:         model.Success([]model.ForecastDatum{testDatum(from.Add(time.Hour))}, nil),
			expectedStatus: http.StatusOK,
			isMockCalled:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockForecastService := mock.NewMockForecastService(ctrl)
			s := NewForecastServer(mockForecastService)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/forecast"+tc.query, nil)

			if tc.isMockCalled {
				mockForecastService.EXPECT().
					Range(ctx, coord, window).
					Return(tc.result)
			}

			s.GetRangeHandler(w, r)

			code := w.Result().StatusCode
			assert.Equal(t, tc.expectedStatus, code)

			defer func() {
				err := w.Result().Body.Close()
				assert.Nil(t, err)
			}()
		})
	}
}

func TestGetPlacesHandler(t *testing.T) {
	ctx := context.Background()

	places := []*model.Place{
		{ID: "1", Name: "Berlin", Latitude: 52.52, Longitude: 13.41},
	}

	cases := []struct {
		name           string
		places         []*model.Place
		expectedStatus int
		expectedError  error
	}{
		{
			name:           "no places yet",
			expectedStatus: http.StatusNotFound,
			expectedError:  repository.ErrNoPlaces,
		},
		{
			name:           "repository error",
			expectedStatus: http.StatusInternalServerError,
			expectedError:  errTest,
		},
		{
			name:           "ok",
			places:         places,
			expectedStatus: http.StatusOK,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockForecastService := mock.NewMockForecastService(ctrl)
			s := NewForecastServer(mockForecastService)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/places", nil)

			mockForecastService.EXPECT().
				Places(ctx).
				Return(tc.places, tc.expectedError)

			s.GetPlacesHandler(w, r)

			code := w.Result().StatusCode
			assert.Equal(t, tc.expectedStatus, code)

			defer func() {
				err := w.Result().Body.Close()
				assert.Nil(t, err)
			}()
		})
	}
}

func TestCreatePlaceHandler(t *testing.T) {
	ctx := context.Background()

	place := &model.Place{Name: "Berlin", Latitude: 52.52, Longitude: 13.41}

	cases := []struct {
		name           string
		body           interface{}
		expectedStatus int
		expectedError  error
		isMockCalled   bool
	}{
		{
			name:           "invalid payload",
			body:           "not json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing name",
			body:           &model.Place{Latitude: 52.52, Longitude: 13.41},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "latitude out of range",
			body:           &model.Place{Name: "Nowhere", Latitude: 95, Longitude: 13.41},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "service error",
			body:           place,
			expectedStatus: http.StatusInternalServerError,
			expectedError:  errTest,
			isMockCalled:   true,
		},
		{
			name:           "ok",
			body:           place,
			expectedStatus: http.StatusCreated,
			isMockCalled:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockForecastService := mock.NewMockForecastService(ctrl)
			s := NewForecastServer(mockForecastService)

			var reqBody []byte
			if str, ok := tc.body.(string); ok {
				reqBody = []byte(str)
			} else {
				var err error
				reqBody, err = json.Marshal(tc.body)
				assert.Nil(t, err)
			}

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodPost, "/places", bytes.NewReader(reqBody))

			if tc.isMockCalled {
				mockForecastService.EXPECT().
					SavePlace(ctx, place).
					Return(tc.expectedError)
			}

			s.CreatePlaceHandler(w, r)

			code := w.Result().StatusCode
			assert.Equal(t, tc.expectedStatus, code)

			defer func() {
				err := w.Result().Body.Close()
				assert.Nil(t, err)
			}()
		})
	}
}

func TestGetNearestPlaceHandler(t *testing.T) {
	ctx := context.Background()

	coord := model.Coordinate{Latitude: 52.52, Longitude: 13.41}
	place := &model.Place{ID: "1", Name: "Berlin", Latitude: 52.5, Longitude: 13.4}

	cases := []struct {
		name           string
		query          string
		place          *model.Place
		expectedStatus int
		expectedError  error
		isMockCalled   bool
	}{
		{
			name:           "missing coordinates",
			query:          "",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no places yet",
			query:          "?lat=52.52&lon=13.41",
			expectedStatus: http.StatusNotFound,
			expectedError:  repository.ErrNoPlaces,
			isMockCalled:   true,
		},
		{
			name:           "ok",
			query:          "?lat=52.52&lon=13.41",
			place:          place,
			expectedStatus: http.StatusOK,
			isMockCalled:   true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockForecastService := mock.NewMockForecastService(ctrl)
			s := NewForecastServer(mockForecastService)

			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/places/nearest"+tc.query, nil)

			if tc.isMockCalled {
				mockForecastService.EXPECT().
					NearestPlace(ctx, coord).
					Return(tc.place, tc.expectedError)
			}

			s.GetNearestPlaceHandler(w, r)

			code := w.Result().StatusCode
			assert.Equal(t, tc.expectedStatus, code)

			defer func() {
				err := w.Result().Body.Close()
				assert.Nil(t, err)
			}()
		})
	}
}
