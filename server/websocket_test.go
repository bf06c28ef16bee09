package server

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

func dialTestServer(t *testing.T, s *Service) *websocket.Conn {
	server := httptest.NewServer(s.Handler())
	t.Cleanup(server.Close)

	config, err := websocket.NewConfig(
		strings.ReplaceAll(server.URL, "http://", "ws://")+"/ws",
		"http://localhost",
	)
	require.NoError(t, err)
	conn, err := websocket.DialConfig(config)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func receive(t *testing.T, conn *websocket.Conn) wsResponse {
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg []byte
	require.NoError(t, websocket.Message.Receive(conn, &msg))
	var res wsResponse
	require.NoError(t, json.Unmarshal(msg, &res))
	return res
}

func send(t *testing.T, conn *websocket.Conn, req wsRequest) {
	b, err := json.Marshal(req)
	require.NoError(t, err)
	require.NoError(t, websocket.Message.Send(conn, string(b)))
}

func TestWebSocketBuild(t *testing.T) {
	s := newTestService(t)
	conn := dialTestServer(t, s)

	send(t, conn, wsRequest{RequestID: "a", Depth: 2})
	res := receive(t, conn)
	require.Equal(t, "a", res.RequestID)
	require.Empty(t, res.Error)
	require.NotNil(t, res.Result)
	require.Equal(t, 2, res.Result.Depth)
	require.NotEmpty(t, res.Result.Leaves)

	send(t, conn, wsRequest{RequestID: "b", Depth: 9})
	res = receive(t, conn)
	require.Equal(t, "b", res.RequestID)
	require.Contains(t, res.Error, "invalid argument")
	require.Nil(t, res.Result)

	require.NoError(t, websocket.Message.Send(conn, "not json"))
	res = receive(t, conn)
	require.Contains(t, res.Error, "malformed request")
}

func TestWebSocketLastRequestAnswered(t *testing.T) {
	s := newTestService(t)
	conn := dialTestServer(t, s)

	for depth := 0; depth <= s.MaxDepth(); depth++ {
		send(t, conn, wsRequest{Depth: depth})
	}
	// Earlier requests may or may not be superseded but the last one
	// is always answered.
	for {
		res := receive(t, conn)
		require.Empty(t, res.Error)
		if res.Result.Depth == s.MaxDepth() {
			break
		}
	}
}

func TestLatestWins(t *testing.T) {
	pending := make(chan wsRequest, 1)
	started := make(chan struct{})
	release := make(chan struct{})
	build := func(req wsRequest) wsResponse {
		if req.RequestID == "slow" {
			close(started)
			<-release
		}
		return wsResponse{RequestID: req.RequestID}
	}

	var sent []string
	done := make(chan struct{})
	go func() {
		defer close(done)
		latestWins(pending, build, func(res wsResponse) error {
			sent = append(sent, res.RequestID)
			return nil
		})
	}()

	pending <- wsRequest{RequestID: "slow"}
	<-started
	// Arrives while "slow" is building and supersedes it.
	pending <- wsRequest{RequestID: "fast"}
	close(release)
	close(pending)
	<-done

	require.Equal(t, []string{"fast"}, sent)
}
