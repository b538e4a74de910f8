package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/WarikanHQ/warikan-backend/internal/store"
	"github.com/WarikanHQ/warikan-backend/middleware"
	"github.com/WarikanHQ/warikan-backend/models"
	"github.com/WarikanHQ/warikan-backend/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newScheduleTestRouter(scheduleStore *MockScheduleStore) *gin.Engine {
	scheduleModel := models.NewScheduleModel(scheduleStore, &stubPublisher{}, false)
	h := NewScheduleHandler(scheduleModel)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.POST("/schedules", h.CreateEventHandler)
	r.GET("/schedules/:id", h.GetEventHandler)
	r.POST("/schedules/:id/responses", h.AddResponseHandler)
	r.GET("/schedules/:id/tally", h.GetTallyHandler)
	return r
}

func TestCreateEventHandler(t *testing.T) {
	t.Run("creates an event with candidates", func(t *testing.T) {
		d1 := time.Date(2026, 10, 2, 19, 0, 0, 0, time.UTC)
		scheduleStore := new(MockScheduleStore)
		scheduleStore.On("CreateEvent", mock.Anything, mock.Anything).Return("ev-1", nil)
		scheduleStore.On("GetEvent", mock.Anything, "ev-1").Return(&types.ScheduleEvent{
			ID:         "ev-1",
			Title:      "Autumn offsite",
			Candidates: []time.Time{d1},
		}, nil)

		r := newScheduleTestRouter(scheduleStore)

		body, _ := json.Marshal(types.ScheduleEventCreate{
			Title:      "Autumn offsite",
			Candidates: []time.Time{d1},
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/schedules", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "ev-1")
	})

	t.Run("missing title is a 400", func(t *testing.T) {
		r := newScheduleTestRouter(new(MockScheduleStore))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/schedules", bytes.NewReader([]byte(`{}`)))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetTallyHandler(t *testing.T) {
	d1 := time.Date(2026, 10, 2, 19, 0, 0, 0, time.UTC)
	d2 := time.Date(2026, 10, 9, 19, 0, 0, 0, time.UTC)

	t.Run("counts votes and reports the leader", func(t *testing.T) {
		scheduleStore := new(MockScheduleStore)
		scheduleStore.On("GetEvent", mock.Anything, "ev-1").Return(&types.ScheduleEvent{
			ID:         "ev-1",
			Title:      "Autumn offsite",
			Candidates: []time.Time{d1, d2},
		}, nil)
		scheduleStore.On("ListResponses", mock.Anything, "ev-1").Return([]*types.ScheduleResponse{
			{ID: "r-1", EventID: "ev-1", RespondentName: "Sato", Available: []time.Time{d1, d2}},
			{ID: "r-2", EventID: "ev-1", RespondentName: "Suzuki", Available: []time.Time{d1}},
		}, nil)

		r := newScheduleTestRouter(scheduleStore)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/schedules/ev-1/tally", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp types.TallyResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Counts, 2)
		assert.Equal(t, 2, resp.Counts[0].Votes)
		assert.Equal(t, 1, resp.Counts[1].Votes)
		assert.Equal(t, 2, resp.MaxVotes)
		require.Len(t, resp.Leading, 1)
		assert.True(t, resp.Leading[0].Equal(d1))
	})

	t.Run("unknown event returns 404", func(t *testing.T) {
		scheduleStore := new(MockScheduleStore)
		scheduleStore.On("GetEvent", mock.Anything, "missing").Return(nil, store.ErrNotFound)

		r := newScheduleTestRouter(scheduleStore)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/schedules/missing/tally", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestAddResponseHandler(t *testing.T) {
	t.Run("records availability", func(t *testing.T) {
		d1 := time.Date(2026, 10, 2, 19, 0, 0, 0, time.UTC)
		scheduleStore := new(MockScheduleStore)
		scheduleStore.On("GetEvent", mock.Anything, "ev-1").Return(&types.ScheduleEvent{
			ID:         "ev-1",
			Candidates: []time.Time{d1},
		}, nil)
		scheduleStore.On("AddResponse", mock.Anything, mock.Anything).Return("r-1", nil)
		scheduleStore.On("GetResponse", mock.Anything, "ev-1", "r-1").Return(&types.ScheduleResponse{
			ID:             "r-1",
			EventID:        "ev-1",
			RespondentName: "Sato",
			Available:      []time.Time{d1},
			Source:         types.ParticipantSourceWeb,
		}, nil)

		r := newScheduleTestRouter(scheduleStore)

		body, _ := json.Marshal(types.ScheduleResponseCreate{
			RespondentName: "Sato",
			Available:      []time.Time{d1},
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/schedules/ev-1/responses", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "r-1")
	})
}
