package rest

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lordralex/ballot/chain"
	"github.com/lordralex/ballot/client"
	"github.com/lordralex/ballot/ledger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	creator = "0x1111111111111111111111111111111111111111"
	addrA   = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
)

var testNow = time.Unix(1700000000, 0).UTC()

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	l := ledger.New(ledger.NewMemoryStore(), ledger.WithClock(func() time.Time { return testNow }))
	node := chain.NewNode(l, 16)
	node.Start()

	s := newServer(node, client.Config{ConfirmTimeout: 5 * time.Second, ConfirmInterval: 2 * time.Millisecond}, "*")
	s.client = s.client.WithClock(func() time.Time { return testNow })

	ts := httptest.NewServer(s.router())
	t.Cleanup(func() {
		ts.Close()
		node.Stop()
	})
	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, wallet, body string, out interface{}) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, ts.URL+path, bytes.NewBufferString(body))
	require.NoError(t, err)
	if wallet != "" {
		req.Header.Set(walletHeader, wallet)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func createBody(options ...string) string {
	quoted := make([]string, len(options))
	for k, v := range options {
		quoted[k] = `"` + v + `"`
	}
	return `{"title":"Test Vote","description":"This is a test vote","options":[` + strings.Join(quoted, ",") +
		`],"startDate":"` + testNow.Format(time.RFC3339) + `","endDate":"` + testNow.Add(7*24*time.Hour).Format(time.RFC3339) + `"}`
}

func TestVoteLifecycle(t *testing.T) {
	ts := newTestServer(t)

	var created client.CreateResult
	resp := do(t, ts, http.MethodPost, "/votes", creator, createBody("Option 1", "Option 2", "Option 3"), &created)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, uint64(0), created.VoteID)
	assert.Len(t, created.TxHash, 66)

	var cast client.TxResult
	resp = do(t, ts, http.MethodPost, "/votes/0/cast", addrA, `{"optionIndex":1}`, &cast)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var failed errorResponse
	resp = do(t, ts, http.MethodPost, "/votes/0/cast", addrA, `{"optionIndex":0}`, &failed)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "AlreadyVoted", failed.Error)
	assert.Equal(t, "You have already voted on this proposal.", failed.Message)
	assert.NotEmpty(t, failed.TxHash)

	var view client.VoteView
	resp = do(t, ts, http.MethodGet, "/votes/0", addrA, "", &view)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, view.HasVoted)
	assert.Equal(t, uint64(1), view.Participants)
	assert.Equal(t, float64(100), view.Options[1].Percentage)

	var voted map[string]bool
	do(t, ts, http.MethodGet, "/votes/0/voters/"+addrA, "", "", &voted)
	assert.True(t, voted["hasVoted"])
	do(t, ts, http.MethodGet, "/votes/0/voters/"+creator, "", "", &voted)
	assert.False(t, voted["hasVoted"])

	resp = do(t, ts, http.MethodPost, "/votes/0/close", addrA, "", &failed)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "Unauthorized", failed.Error)

	resp = do(t, ts, http.MethodPost, "/votes/0/close", creator, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var active []client.VoteView
	do(t, ts, http.MethodGet, "/votes", "", "", &active)
	assert.Empty(t, active)

	var receipt receiptResponse
	resp = do(t, ts, http.MethodGet, "/tx/"+cast.TxHash, "", "", &receipt)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "success", receipt.Status)
	assert.Equal(t, cast.TxHash, receipt.Receipt.TxHash)

	var events []ledger.Event
	do(t, ts, http.MethodGet, "/events?after=1&limit=10", "", "", &events)
	require.Len(t, events, 2)
	assert.Equal(t, ledger.EventVoteCast, events[0].Type)
	assert.Equal(t, ledger.EventVoteClosed, events[1].Type)
}

func TestErrorStatuses(t *testing.T) {
	ts := newTestServer(t)
	do(t, ts, http.MethodPost, "/votes", creator, createBody("Yes", "No"), nil)

	tests := []struct {
		name   string
		method string
		path   string
		wallet string
		body   string
		status int
		kind   string
	}{
		{"one option", http.MethodPost, "/votes", creator, createBody("Yes"), http.StatusBadRequest, "InvalidOptions"},
		{"duplicate options", http.MethodPost, "/votes", creator, createBody("Yes", "yes"), http.StatusBadRequest, "InvalidForm"},
		{"no wallet", http.MethodPost, "/votes", "", createBody("Yes", "No"), http.StatusUnauthorized, "WalletNotConnected"},
		{"bad body", http.MethodPost, "/votes", creator, "{", http.StatusBadRequest, "BadRequest"},
		{"missing vote", http.MethodGet, "/votes/7", "", "", http.StatusNotFound, "VoteNotFound"},
		{"non numeric id", http.MethodGet, "/votes/abc", "", "", http.StatusNotFound, "VoteNotFound"},
		{"hex id", http.MethodGet, "/votes/0x0", "", "", http.StatusNotFound, "VoteNotFound"},
		{"signed id", http.MethodGet, "/votes/+0", "", "", http.StatusNotFound, "VoteNotFound"},
		{"hex after", http.MethodGet, "/events?after=0x1", "", "", http.StatusBadRequest, "BadRequest"},
		{"bad option", http.MethodPost, "/votes/0/cast", addrA, `{"optionIndex":5}`, http.StatusBadRequest, "InvalidOption"},
		{"missing option", http.MethodPost, "/votes/0/cast", addrA, `{}`, http.StatusBadRequest, "BadRequest"},
		{"unknown tx", http.MethodGet, "/tx/0x00", "", "", http.StatusNotFound, "UnknownTransaction"},
		{"bad limit", http.MethodGet, "/events?limit=-2", "", "", http.StatusBadRequest, "BadRequest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var failed errorResponse
			resp := do(t, ts, tt.method, tt.path, tt.wallet, tt.body, &failed)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.kind, failed.Error)
			assert.NotEmpty(t, failed.Message)
		})
	}
}

func TestMiddleware(t *testing.T) {
	ts := newTestServer(t)

	resp := do(t, ts, http.MethodOptions, "/votes", "", "", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Len(t, resp.Header.Get(requestIdHeader), 36)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/votes", nil)
	require.NoError(t, err)
	req.Header.Set(requestIdHeader, "abc")
	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, "abc", resp.Header.Get(requestIdHeader))
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusGatewayTimeout, statusFor("ConfirmationTimeout"))
	assert.Equal(t, http.StatusServiceUnavailable, statusFor("PoolFull"))
	assert.Equal(t, http.StatusConflict, statusFor("VotingClosed"))
	assert.Equal(t, http.StatusInternalServerError, statusFor(""))
}

func TestDecimalIds(t *testing.T) {
	ts := newTestServer(t)
	for i := 0; i < 9; i++ {
		do(t, ts, http.MethodPost, "/votes", creator, createBody("Yes", "No"), nil)
	}

	//leading zeros are still base 10
	var view client.VoteView
	resp := do(t, ts, http.MethodGet, "/votes/010", "", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = do(t, ts, http.MethodGet, "/votes/08", "", "", &view)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, uint64(8), view.ID)

	for in, want := range map[string]uint64{"0": 0, "000": 0, "7": 7, "0012": 12, "4294967296": 4294967296} {
		got, err := parseDecimal(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "0x1", "-1", "+1", "1e3", " 1"} {
		_, err := parseDecimal(in)
		assert.Error(t, err, in)
	}
}
