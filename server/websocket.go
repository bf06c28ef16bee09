package server

import (
	"github.com/segmentio/encoding/json"
	"golang.org/x/net/websocket"
)

type wsRequest struct {
	RequestID string `json:"request_id,omitempty"`
	Depth     int    `json:"depth"`
}

type wsResponse struct {
	RequestID string  `json:"request_id,omitempty"`
	Result    *Result `json:"result,omitempty"`
	Error     string  `json:"error,omitempty"`
}

// handleWebSocket rebuilds the octree every time the client sends a depth.
// Only one build runs per connection. A request arriving while a build is
// in flight supersedes it: the finished build is dropped and the newest
// pending request is built instead.
func (s *Service) handleWebSocket(conn *websocket.Conn) {
	defer conn.Close()
	wsConnectedClients.Inc()
	defer wsConnectedClients.Dec()

	pending := make(chan wsRequest, 1)
	done := make(chan struct{})
	go func() {
		defer close(done)
		latestWins(pending, s.buildResponse, func(res wsResponse) error {
			return sendJSON(conn, res)
		})
	}()

	for {
		var msg []byte
		if err := websocket.Message.Receive(conn, &msg); err != nil {
			logger.Debugf("websocket %s closed: %v", conn.Request().RemoteAddr, err)
			break
		}
		var req wsRequest
		if err := json.Unmarshal(msg, &req); err != nil {
			if err := sendJSON(conn, wsResponse{Error: "malformed request: " + err.Error()}); err != nil {
				break
			}
			continue
		}
		// Replace a request the builder has not picked up yet.
		select {
		case <-pending:
			wsDiscardedBuilds.Inc()
		default:
		}
		pending <- req
	}
	close(pending)
	<-done
}

func (s *Service) buildResponse(req wsRequest) wsResponse {
	res, err := s.Build(req.Depth)
	if err != nil {
		return wsResponse{RequestID: req.RequestID, Error: err.Error()}
	}
	return wsResponse{RequestID: req.RequestID, Result: &res}
}

// latestWins builds requests from pending one at a time. A response is
// only sent if no newer request arrived while it was being built.
func latestWins(pending <-chan wsRequest, build func(wsRequest) wsResponse, send func(wsResponse) error) {
	for req := range pending {
		res := build(req)
		if len(pending) > 0 {
			wsDiscardedBuilds.Inc()
			continue
		}
		if err := send(res); err != nil {
			logger.Debugf("sending websocket response failed: %v", err)
		}
	}
}

func sendJSON(conn *websocket.Conn, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return websocket.Message.Send(conn, string(b))
}
