package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradebook/journal"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	store, err := journal.OpenJSON(filepath.Join(t.TempDir(), "tradebook.json"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return New(Config{
		Log:   zerolog.Nop(),
		Store: store,
		Port:  0,
	})
}

func doJSON(t *testing.T, srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func createTrade(t *testing.T, srv *Server, form journal.TradeForm) journal.Trade {
	t.Helper()

	rec := doJSON(t, srv, http.MethodPost, "/api/trades", form)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var trade journal.Trade
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trade))
	return trade
}

func aaplForm() journal.TradeForm {
	return journal.TradeForm{
		Ticker:     "AAPL",
		EntryPrice: "150.50",
		InitialSL:  "145.00",
		CurrentSL:  "145.00",
		Status:     "open",
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateTrade(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	trade := createTrade(t, srv, aaplForm())

	assert.NotEmpty(t, trade.ID)
	assert.Equal(t, "AAPL", trade.Ticker)
	assert.Equal(t, journal.StatusOpen, trade.Status)
	assert.Equal(t, "150.50", trade.EntryPrice.String())
}

func TestCreateTradeValidation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/trades", journal.TradeForm{
		Ticker:     "",
		EntryPrice: "abc",
	})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "validation failed", resp.Error)
	assert.Contains(t, resp.Fields, "ticker")
	assert.Contains(t, resp.Fields, "entry_price")

	// Nothing was journaled.
	rec = doJSON(t, srv, http.MethodGet, "/api/trades", nil)
	var trades []journal.Trade
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trades))
	assert.Empty(t, trades)
}

func TestCreateTradeBadJSON(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/trades", bytes.NewBufferString("{nope"))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListTradesFiltered(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	createTrade(t, srv, aaplForm())
	closedForm := aaplForm()
	closedForm.Ticker = "MSFT"
	closedForm.Status = "closed"
	createTrade(t, srv, closedForm)

	rec := doJSON(t, srv, http.MethodGet, "/api/trades?status=open", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var trades []journal.Trade
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trades))
	require.Len(t, trades, 1)
	assert.Equal(t, "AAPL", trades[0].Ticker)

	rec = doJSON(t, srv, http.MethodGet, "/api/trades?status=all", nil)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trades))
	assert.Len(t, trades, 2)

	rec = doJSON(t, srv, http.MethodGet, "/api/trades?status=sideways", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetTrade(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	trade := createTrade(t, srv, aaplForm())

	rec := doJSON(t, srv, http.MethodGet, "/api/trades/"+trade.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got journal.Trade
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, trade.ID, got.ID)

	rec = doJSON(t, srv, http.MethodGet, "/api/trades/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTrade(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	trade := createTrade(t, srv, aaplForm())

	rec := doJSON(t, srv, http.MethodPut, "/api/trades/"+trade.ID, journal.TradeForm{
		CurrentSL: "148.00",
		Status:    "closed",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got journal.Trade
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, trade.ID, got.ID)
	assert.Equal(t, "AAPL", got.Ticker, "unsubmitted fields untouched")
	assert.Equal(t, "148.00", got.CurrentSL.String())
	assert.Equal(t, journal.StatusClosed, got.Status)
}

func TestUpdateTradeNotFound(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	rec := doJSON(t, srv, http.MethodPut, "/api/trades/missing", journal.TradeForm{Status: "closed"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateTradeValidation(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	trade := createTrade(t, srv, aaplForm())

	rec := doJSON(t, srv, http.MethodPut, "/api/trades/"+trade.ID, journal.TradeForm{EntryPrice: "-3"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDeleteTrade(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	trade := createTrade(t, srv, aaplForm())

	rec := doJSON(t, srv, http.MethodDelete, "/api/trades/"+trade.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, srv, http.MethodDelete, "/api/trades/"+trade.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, srv, http.MethodGet, "/api/trades", nil)
	var trades []journal.Trade
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &trades))
	assert.Empty(t, trades)
}

func TestExportCSVEndpoint(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	createTrade(t, srv, aaplForm())

	rec := doJSON(t, srv, http.MethodGet, "/api/trades/export/csv", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "AAPL")
}
