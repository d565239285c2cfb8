package server

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	xrand "golang.org/x/exp/rand"

	"github.com/Laserlicht/toweroops/engine"
	"github.com/Laserlicht/toweroops/game"
	"github.com/Laserlicht/toweroops/searcher"
	"github.com/Laserlicht/toweroops/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, *engine.Engine) {
	t.Helper()
	eng := engine.New(
		engine.WithRand(rand.New(rand.NewSource(1))),
		engine.WithSearchOptions(searcher.WithRand(xrand.New(xrand.NewSource(1)))),
	)
	store := storage.NewStoreAt(t.TempDir())
	hub := NewHub()
	done := make(chan struct{})
	t.Cleanup(func() { close(done) })
	go hub.Run(done)

	ts := httptest.NewServer(New(eng, store, hub).Router())
	t.Cleanup(ts.Close)
	return ts, eng
}

func getStatus(t *testing.T, ts *httptest.Server) StatusResponse {
	t.Helper()
	resp, err := http.Get(ts.URL + "/api/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var status StatusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	return status
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func TestStatusEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	status := getStatus(t, ts)
	require.Equal(t, "running", status.Outcome)
	require.Len(t, status.Board, game.BoardSize)
	require.Len(t, status.Board[0], game.BoardSize)
	require.Contains(t, []string{"row", "column"}, status.Selection.Axis)
}

func TestMoveEndpoint(t *testing.T) {
	ts, eng := newTestServer(t)

	t.Run("legal move advances the game and the computer replies", func(t *testing.T) {
		snap := eng.Snapshot()
		var col, row int
		for i := 0; i < game.BoardSize; i++ {
			c, r := snap.Selection.Coords(i)
			if snap.Board.Get(c, r).Kind != game.Empty {
				col, row = c, r
				break
			}
		}

		resp := postJSON(t, ts.URL+"/api/move", moveRequest{Col: col, Row: row})
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var status StatusResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
		if status.Outcome == "running" {
			require.Equal(t, 2, status.MovesMade, "computer answers in the same request")
		}
	})

	t.Run("illegal move is rejected without state change", func(t *testing.T) {
		before := eng.Snapshot()

		resp := postJSON(t, ts.URL+"/api/move", moveRequest{Col: -1, Row: -1})
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		require.Equal(t, before.MovesMade, eng.Snapshot().MovesMade)
	})

	t.Run("garbage payload is a bad request", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/move", "application/json", bytes.NewReader([]byte("{")))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestNewGameEndpoint(t *testing.T) {
	ts, eng := newTestServer(t)
	eng.Surrender()

	resp := postJSON(t, ts.URL+"/api/new", struct{}{})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	status := getStatus(t, ts)
	require.Equal(t, "running", status.Outcome)
	require.Zero(t, status.MovesMade)
	require.Equal(t, 1, status.Stats.ComputerWins, "statistics survive a new round")
}

func TestLegalEndpoint(t *testing.T) {
	ts, eng := newTestServer(t)
	snap := eng.Snapshot()

	var col, row int
	for i := 0; i < game.BoardSize; i++ {
		c, r := snap.Selection.Coords(i)
		if snap.Board.Get(c, r).Kind != game.Empty {
			col, row = c, r
			break
		}
	}

	resp, err := http.Get(ts.URL + "/api/legal?col=" + strconv.Itoa(col) + "&row=" + strconv.Itoa(row))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, body["legal"])

	resp, err = http.Get(ts.URL + "/api/legal?col=oops&row=0")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTipEndpoint(t *testing.T) {
	ts, eng := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/tip", struct{}{})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var coord game.Coord
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&coord))
	require.True(t, eng.IsLegal(coord.Col, coord.Row))

	t.Run("conflict once the round is over", func(t *testing.T) {
		eng.Surrender()
		resp := postJSON(t, ts.URL+"/api/tip", struct{}{})
		defer resp.Body.Close()
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})
}

func TestSettingsEndpoints(t *testing.T) {
	ts, eng := newTestServer(t)

	resp := httptestPut(t, ts.URL+"/api/settings", settingsDTO{AILevel: 4, AnimationSpeed: 0.7})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, 4, eng.AILevel())

	getResp, err := http.Get(ts.URL + "/api/settings")
	require.NoError(t, err)
	defer getResp.Body.Close()

	var cfg settingsDTO
	require.NoError(t, json.NewDecoder(getResp.Body).Decode(&cfg))
	require.Equal(t, 4, cfg.AILevel)
	require.Equal(t, 0.7, cfg.AnimationSpeed)
}

func TestStatsEndpoints(t *testing.T) {
	ts, eng := newTestServer(t)
	eng.Surrender()

	resp, err := http.Get(ts.URL + "/api/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	var stats game.Statistics
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
	require.Equal(t, 1, stats.ComputerWins)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/stats", nil)
	require.NoError(t, err)
	delResp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer delResp.Body.Close()
	require.Equal(t, http.StatusOK, delResp.StatusCode)
	require.Equal(t, game.Statistics{}, eng.Stats())
}

func httptestPut(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

