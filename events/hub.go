package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/pos-engine/models"
)

// Event types
const (
	EventOrderUpdate    = "order_update"
	EventPaymentApplied = "payment_applied"
	EventBulkSettlement = "bulk_settlement"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected dashboard client and serializes broadcasts.
type Hub struct {
	clients map[*websocket.Conn]bool
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]bool),
}

// RegisterClient adds a connection to the broadcast set.
func RegisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = true
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastOrderUpdate announces an order change to all clients.
func BroadcastOrderUpdate(order models.Order) {
	broadcast(Message{
		Event: EventOrderUpdate,
		Data:  order,
	})
}

// BroadcastPaymentApplied announces a successful single-order payment.
func BroadcastPaymentApplied(orderID uint, ledger []models.PaymentEntry, isPaid bool) {
	broadcast(Message{
		Event: EventPaymentApplied,
		Data: map[string]interface{}{
			"order_id": orderID,
			"ledger":   ledger,
			"is_paid":  isPaid,
		},
	})
}

// BroadcastBulkSettlement announces the outcome of a bulk settlement run.
func BroadcastBulkSettlement(data interface{}) {
	broadcast(Message{
		Event: EventBulkSettlement,
		Data:  data,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
