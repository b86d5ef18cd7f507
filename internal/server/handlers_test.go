package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claude/aceest/internal/models"
	"github.com/claude/aceest/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) (*Server, *storage.Store) {
	t.Helper()
	st, err := storage.Open(filepath.Join(t.TempDir(), "workouts.json"), storage.Options{}, quietLogger())
	require.NoError(t, err)
	return New(st, "ACEest Fitness Tracker", quietLogger()), st
}

// newBrokenServer returns a server whose store cannot write its file.
func newBrokenServer(t *testing.T) *Server {
	t.Helper()
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))
	st, err := storage.Open(filepath.Join(blocker, "workouts.json"), storage.Options{}, quietLogger())
	require.NoError(t, err)
	return New(st, "ACEest Fitness Tracker", quietLogger())
}

func do(t *testing.T, s *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func postJSON(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/workouts", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return do(t, s, req)
}

// TestListWorkoutsEmpty verifies an empty store lists as [] with a zero total.
func TestListWorkoutsEmpty(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/workouts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"workouts": [], "total_duration": 0}`, rec.Body.String())
}

// TestListWorkoutsWithData verifies records and total are reported in order.
func TestListWorkoutsWithData(t *testing.T) {
	s, st := newTestServer(t)
	_, err := st.Add("Push-ups", "30")
	require.NoError(t, err)
	_, err = st.Add("Running", "45")
	require.NoError(t, err)

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/api/workouts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.WorkoutsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 75, resp.TotalDuration)
	require.Len(t, resp.Workouts, 2)
	assert.Equal(t, "Push-ups", resp.Workouts[0].Workout)
	assert.Equal(t, 2, resp.Workouts[1].ID)
}

// TestCreateWorkout verifies a valid body is stored and answered with 201,
// the confirmation and the full list.
func TestCreateWorkout(t *testing.T) {
	for name, body := range map[string]string{
		"string duration": `{"workout_name": "  Push-ups ", "duration": "30"}`,
		"number duration": `{"workout_name": "Push-ups", "duration": 30}`,
	} {
		t.Run(name, func(t *testing.T) {
			s, st := newTestServer(t)

			rec := postJSON(t, s, body)

			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			var resp models.AddWorkoutResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Contains(t, resp.Message, "Push-ups")
			assert.Equal(t, []models.WorkoutRecord{{Workout: "Push-ups", Duration: 30, ID: 1}}, resp.Workouts)
			assert.Equal(t, 30, st.TotalDuration())
		})
	}
}

// TestCreateWorkoutRejected verifies missing bodies and validation failures
// return 400 with an error field and store nothing.
func TestCreateWorkoutRejected(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"empty body", ``, "No data provided"},
		{"empty object", `{}`, "No data provided"},
		{"null", `null`, "No data provided"},
		{"malformed", `{"workout_name":`, "invalid JSON"},
		{"not an object", `[1, 2]`, "invalid JSON"},
		{"name not a string", `{"workout_name": 5, "duration": "30"}`, "workout_name must be a string"},
		{"empty name bad duration", `{"workout_name": "", "duration": "abc"}`, "Please enter both"},
		{"missing duration", `{"workout_name": "Run"}`, "Please enter both"},
		{"bad duration", `{"workout_name": "Swimming", "duration": "abc"}`, "must be a valid number"},
		{"fractional number", `{"workout_name": "Swimming", "duration": 12.5}`, "must be a valid number"},
		{"null duration", `{"workout_name": "Swimming", "duration": null}`, "must be a valid number"},
		{"negative", `{"workout_name": "Cycling", "duration": -10}`, "must be a positive number"},
		{"zero", `{"workout_name": "Yoga", "duration": "0"}`, "must be a positive number"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, st := newTestServer(t)

			rec := postJSON(t, s, tc.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			var resp models.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			assert.Contains(t, resp.Error, tc.want)
			assert.Empty(t, st.List())
		})
	}
}

// TestCreateWorkoutWriteFailure verifies a failed write surfaces as 500
// instead of a silent success.
func TestCreateWorkoutWriteFailure(t *testing.T) {
	s := newBrokenServer(t)

	rec := postJSON(t, s, `{"workout_name": "Run", "duration": "30"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error"`)
}

// TestResetWorkoutsAPI verifies DELETE /api/workouts empties the store and
// persists it.
func TestResetWorkoutsAPI(t *testing.T) {
	s, st := newTestServer(t)
	_, err := st.Add("Push-ups", "30")
	require.NoError(t, err)

	rec := do(t, s, httptest.NewRequest(http.MethodDelete, "/api/workouts", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "All workouts have been reset successfully!", "workouts": []}`, rec.Body.String())
	assert.Empty(t, st.List())
}

// TestResetWorkoutsAPIWriteFailure verifies a failed reset write is a 500.
func TestResetWorkoutsAPIWriteFailure(t *testing.T) {
	s := newBrokenServer(t)

	rec := do(t, s, httptest.NewRequest(http.MethodDelete, "/api/workouts", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

// TestHealth verifies the health payload names the configured service.
func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "healthy", "service": "ACEest Fitness Tracker"}`, rec.Body.String())
}

// TestMetricsEndpoint verifies Prometheus exposition is served and includes
// the store collectors.
func TestMetricsEndpoint(t *testing.T) {
	s, st := newTestServer(t)
	_, err := st.Add("Run", "10")
	require.NoError(t, err)

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "aceest_store_workouts_added_total")
}

// TestUnknownMethod verifies chi answers 405 for a known path with the wrong method.
func TestUnknownMethod(t *testing.T) {
	s, _ := newTestServer(t)

	rec := do(t, s, httptest.NewRequest(http.MethodPut, "/api/workouts", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// TestSetMCP verifies an MCP handler is reachable at /mcp once mounted.
func TestSetMCP(t *testing.T) {
	s, _ := newTestServer(t)
	s.SetMCP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := do(t, s, httptest.NewRequest(http.MethodPost, "/mcp", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func postForm(t *testing.T, s *Server, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return do(t, s, req)
}

func flashCookieFrom(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookie {
			return c
		}
	}
	t.Fatalf("no %s cookie set", flashCookie)
	return nil
}

// TestIndexPage verifies the page renders the heading, the form and the
// stored workouts with their total.
func TestIndexPage(t *testing.T) {
	s, st := newTestServer(t)
	_, err := st.Add("Push-ups", "30")
	require.NoError(t, err)
	_, err = st.Add("<b>Squats</b>", "25")
	require.NoError(t, err)

	rec := do(t, s, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "ACEest Fitness and Gym")
	assert.Contains(t, body, "Add New Workout")
	assert.Contains(t, body, "Push-ups")
	assert.Contains(t, body, "&lt;b&gt;Squats&lt;/b&gt;")
	assert.Contains(t, body, "Total Duration: 55 minutes")
}

// TestAddWorkoutFormSuccess verifies a form post stores the trimmed values,
// redirects home, and the next page render shows the success notice once.
func TestAddWorkoutFormSuccess(t *testing.T) {
	s, st := newTestServer(t)

	rec := postForm(t, s, "/add_workout", url.Values{"workout_name": {" Push-ups "}, "duration": {" 30 "}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	assert.Equal(t, []models.WorkoutRecord{{Workout: "Push-ups", Duration: 30, ID: 1}}, st.List())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(flashCookieFrom(t, rec))
	page := do(t, s, req)
	assert.Contains(t, page.Body.String(), `class="flash success"`)
	assert.Contains(t, page.Body.String(), "added successfully!")

	cleared := flashCookieFrom(t, page)
	assert.Equal(t, -1, cleared.MaxAge)
}

// TestAddWorkoutFormError verifies a rejected form post still redirects and
// carries the validation message as an error notice.
func TestAddWorkoutFormError(t *testing.T) {
	s, st := newTestServer(t)

	rec := postForm(t, s, "/add_workout", url.Values{"workout_name": {"Yoga"}, "duration": {"0"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, st.List())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(flashCookieFrom(t, rec))
	page := do(t, s, req)
	assert.Contains(t, page.Body.String(), `class="flash error"`)
	assert.Contains(t, page.Body.String(), "Duration must be a positive number.")
}

// TestAddWorkoutFormWriteFailure verifies a failed write becomes an error
// notice rather than a crash.
func TestAddWorkoutFormWriteFailure(t *testing.T) {
	s := newBrokenServer(t)

	rec := postForm(t, s, "/add_workout", url.Values{"workout_name": {"Run"}, "duration": {"30"}})

	require.Equal(t, http.StatusSeeOther, rec.Code)
	flashes := readFlashes(cookieRequest(flashCookieFrom(t, rec)))
	require.Len(t, flashes, 1)
	assert.Equal(t, flashError, flashes[0].Category)
}

// TestResetForm verifies the reset form empties the store and queues a
// success notice.
func TestResetForm(t *testing.T) {
	s, st := newTestServer(t)
	_, err := st.Add("Push-ups", "30")
	require.NoError(t, err)

	rec := postForm(t, s, "/reset_workouts", nil)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, st.List())
	flashes := readFlashes(cookieRequest(flashCookieFrom(t, rec)))
	require.Len(t, flashes, 1)
	assert.Equal(t, flash{Category: flashSuccess, Message: storage.ResetMessage}, flashes[0])
}

func cookieRequest(c *http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	return req
}
