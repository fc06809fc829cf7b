// oceanoscuba-admin/internal/handlers/event_hub.go
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// La frontera CORS del servicio ya es permisiva.
		return true
	},
}

// GlobalHub es el único hub de eventos del proceso.
var GlobalHub = NewHub()

// ContractEvent es el mensaje que reciben los paneles conectados cuando un
// contrato cambia de estado.
type ContractEvent struct {
	Type       string    `json:"type"` // contract.signed | contract.expired | contract.cancelled
	ContractID uint      `json:"contract_id"`
	Code       string    `json:"code"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

type eventClient struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	companyID uint
}

type companyEvent struct {
	companyID uint
	payload   []byte
}

// Hub distribuye eventos de contratos a los clientes websocket de cada
// compañía. Cada compañía es una sala independiente.
type Hub struct {
	clients    map[uint]map[*eventClient]bool
	broadcast  chan companyEvent
	register   chan *eventClient
	unregister chan *eventClient
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan companyEvent, 16),
		register:   make(chan *eventClient),
		unregister: make(chan *eventClient),
		clients:    make(map[uint]map[*eventClient]bool),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.companyID] == nil {
				h.clients[client.companyID] = make(map[*eventClient]bool)
			}
			h.clients[client.companyID][client] = true
			h.mu.Unlock()
			slog.Info("Cliente de eventos conectado", "company_id", client.companyID)

		case client := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.clients[client.companyID]; ok {
				if _, ok := room[client]; ok {
					delete(room, client)
					close(client.send)
				}
			}
			h.mu.Unlock()

		case event := <-h.broadcast:
			h.mu.Lock()
			for client := range h.clients[event.companyID] {
				select {
				case client.send <- event.payload:
				default:
					// Cliente atascado: se descarta la conexión.
					delete(h.clients[event.companyID], client)
					close(client.send)
				}
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast publica un evento a todos los clientes de la compañía. Nunca
// bloquea el flujo de la petición que lo origina.
func (h *Hub) Broadcast(companyID uint, event ContractEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		slog.Error("No se pudo serializar el evento", "error", err)
		return
	}
	select {
	case h.broadcast <- companyEvent{companyID: companyID, payload: payload}:
	default:
		slog.Warn("Canal de eventos lleno, evento descartado", "type", event.Type)
	}
}

func (c *eventClient) writePump() {
	defer c.conn.Close()
	for message := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
}

func (c *eventClient) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()
	for {
		// El feed es de solo lectura; se descarta todo lo que llegue.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

// EventsWSHandler engancha al usuario autenticado al feed de su compañía.
func EventsWSHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Error("No se pudo abrir el websocket", "error", err)
		return
	}

	client := &eventClient{
		hub:       GlobalHub,
		conn:      conn,
		send:      make(chan []byte, 8),
		companyID: companyID(c),
	}
	GlobalHub.register <- client

	go client.writePump()
	go client.readPump()
}
