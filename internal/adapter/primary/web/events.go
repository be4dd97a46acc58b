package web

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const eventWriteTimeout = 5 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamEvents pushes every published event to the client as one JSON
// message. Client messages are read only to notice disconnects.
func (s *Server) streamEvents(w http.ResponseWriter, r *http.Request) {
	if s.deps.Events == nil {
		respondJSON(w, http.StatusNotImplemented, errorView{Error: "event stream is not available", Kind: "unsupported"})
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		webLog.Warnf("WS upgrade error: %v", err)
		return
	}
	defer conn.Close()

	events, cancel := s.deps.Events.Subscribe()
	defer cancel()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	webLog.Debugf("event stream opened from %s", r.RemoteAddr)
	for {
		select {
		case <-closed:
			webLog.Debugf("event stream closed from %s", r.RemoteAddr)
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(eventWriteTimeout))
			if err := conn.WriteJSON(ev); err != nil {
				webLog.Debugf("event stream write: %v", err)
				return
			}
		}
	}
}
