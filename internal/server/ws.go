package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Local assistant, same-machine clients only in practice.
		return true
	},
}

type wsMessage struct {
	Message    string `json:"message"`
	VisionMode bool   `json:"vision_mode,omitempty"`
}

// handleChatSocket streams chat over a websocket: one JSON message in, one
// envelope out. Pings keep idle connections alive.
func (s *Server) handleChatSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	log := s.log.With().Str("session", uuid.NewString()[:8]).Logger()
	log.Debug().Msg("websocket session opened")
	defer log.Debug().Msg("websocket session closed")

	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	// Ping loop and reply writes share the connection; gorilla allows one
	// writer at a time.
	var writeMu sync.Mutex
	done := make(chan struct{})
	defer close(done)
	go pingLoop(conn, &writeMu, done)

	for {
		var msg wsMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Msg("websocket read failed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsPongWait))

		if msg.Message == "" {
			continue
		}

		s.mu.Lock()
		env := s.brain.Process(r.Context(), msg.Message, msg.VisionMode)
		s.mu.Unlock()

		writeMu.Lock()
		conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		err := conn.WriteJSON(env)
		writeMu.Unlock()
		if err != nil {
			log.Warn().Err(err).Msg("websocket write failed")
			return
		}
	}
}

func pingLoop(conn *websocket.Conn, writeMu *sync.Mutex, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			writeMu.Lock()
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			err := conn.WriteMessage(websocket.PingMessage, nil)
			writeMu.Unlock()
			if err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
