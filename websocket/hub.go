package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

type Client struct {
	UserID uuid.UUID
	Conn   *websocket.Conn
}

// RewardEvent is pushed to a learner's open connection whenever the
// gamification engine grants them something.
type RewardEvent struct {
	UserID  uuid.UUID   `json:"user_id"`
	Kind    string      `json:"kind"`
	Payload interface{} `json:"payload"`
}

var clients = make(map[uuid.UUID]*websocket.Conn)
var clientsMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Events = make(chan *RewardEvent, 64)

// Notify queues a reward event for delivery. It never blocks the award path:
// if the hub is saturated or not running, the event is dropped.
func Notify(userID uuid.UUID, kind string, payload interface{}) {
	select {
	case Events <- &RewardEvent{UserID: userID, Kind: kind, Payload: payload}:
	default:
	}
}

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Reward stream client registered: %s", client.UserID)
			clientsMu.Lock()
			clients[client.UserID] = client.Conn
			clientsMu.Unlock()
		case client := <-Unregister:
			log.Printf("Reward stream client unregistered: %s", client.UserID)
			clientsMu.Lock()
			if conn, ok := clients[client.UserID]; ok && conn == client.Conn {
				delete(clients, client.UserID)
			}
			clientsMu.Unlock()
		case event := <-Events:
			clientsMu.RLock()
			conn, ok := clients[event.UserID]
			clientsMu.RUnlock()
			if !ok {
				continue
			}
			if err := conn.WriteJSON(event); err != nil {
				log.Printf("Error pushing reward event to client %s: %v", event.UserID, err)
				conn.Close()
				clientsMu.Lock()
				if current, ok := clients[event.UserID]; ok && current == conn {
					delete(clients, event.UserID)
				}
				clientsMu.Unlock()
			}
		}
	}
}
