// Package transport is the non-core HTTP+WebSocket front door: a REST API
// over internal/handcore.Arbiter for submitting authenticated actions, and a
// WebSocket broadcast hub for pushing stage-transition snapshots to
// subscribed clients.
//
// Grounded in the teacher's pkg/wsserver (Hub/Client pub-sub pattern) and
// x/poker/websocket/handler.go (HTTP routing), adapted from gin-gonic/gin to
// gorilla/mux (already a direct teacher dependency, see SPEC_FULL.md §6) and
// from a Tendermint-WS-subscription bridge to a direct in-process call into
// the arbiter — this repo's core logic lives in the same process, unlike the
// teacher's proxy to an external PVM engine.
package transport

import (
	"encoding/json"
	"sync"

	"cosmossdk.io/log"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gorilla/websocket"

	"github.com/tiltlabs/pokerarbiter/internal/handcore"
)

// Client is a single subscribed WebSocket connection, mirroring the
// teacher's pkg/wsserver.Client shape.
type Client struct {
	conn *websocket.Conn
	send chan []byte
	mu   sync.Mutex
	hub  *Hub

	subscribed map[handcore.HandID]bool
}

func newClient(hub *Hub, conn *websocket.Conn) *Client {
	return &Client{
		hub:        hub,
		conn:       conn,
		send:       make(chan []byte, 16),
		subscribed: make(map[handcore.HandID]bool),
	}
}

func (c *Client) subscribe(id handcore.HandID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribed[id] = true
}

func (c *Client) isSubscribed(id handcore.HandID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.subscribed[id]
}

// writePump drains c.send to the underlying connection until it closes.
func (c *Client) writePump() {
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			return
		}
	}
}

// readPump reads subscription requests ({"subscribe":"<hand_id hex>"}) from
// the client until the connection closes.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		var req struct {
			Subscribe string `json:"subscribe"`
		}
		if err := json.Unmarshal(data, &req); err != nil {
			continue
		}
		if req.Subscribe != "" {
			c.subscribe(handcore.HandID(common.HexToHash(req.Subscribe)))
		}
	}
}

// HandUpdate is the JSON payload pushed to subscribers on every transition.
type HandUpdate struct {
	HandID string `json:"hand_id"`
	Stage  string `json:"stage"`
	Pot    uint64 `json:"pot"`
}

// Hub fans hand updates out to subscribed clients, grounded in the
// teacher's pkg/wsserver.Hub register/unregister/broadcast channel loop.
type Hub struct {
	logger log.Logger

	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan HandUpdate

	mu sync.RWMutex
}

// NewHub constructs a Hub and starts its event loop in a background
// goroutine, matching the teacher's go hub.Run() pattern.
func NewHub(logger log.Logger) *Hub {
	h := &Hub{
		logger:     logger,
		clients:    make(map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan HandUpdate, 64),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			h.mu.Unlock()
		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			h.mu.Unlock()
		case update := <-h.broadcast:
			payload, err := json.Marshal(update)
			if err != nil {
				continue
			}
			id := handcore.HandID(common.HexToHash(update.HandID))
			h.mu.RLock()
			for c := range h.clients {
				if !c.isSubscribed(id) {
					continue
				}
				select {
				case c.send <- payload:
				default:
					h.logger.Error("dropping slow client", "hand_id", update.HandID)
				}
			}
			h.mu.RUnlock()
		}
	}
}

// Publish enqueues a snapshot update for broadcast to subscribers.
func (h *Hub) Publish(s handcore.Snapshot) {
	h.broadcast <- HandUpdate{
		HandID: s.HandID.Hex(),
		Stage:  s.Stage.String(),
		Pot:    s.Pot,
	}
}
