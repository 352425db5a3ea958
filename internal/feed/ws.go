package feed

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// The marketplace feed is a single hub: every connected client sees
// listing creations and sales, so buy screens can drop a coupon the
// moment someone else wins it.

type event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

type hub struct {
	mu      sync.RWMutex
	clients map[*websocket.Conn]bool
}

var marketplace = &hub{clients: make(map[*websocket.Conn]bool)}

func (h *hub) broadcast(evt event) {
	payload, _ := json.Marshal(evt)
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		_ = c.WriteMessage(websocket.TextMessage, payload)
	}
}

func (h *hub) register(c *websocket.Conn) {
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()
}

func (h *hub) unregister(c *websocket.Conn) {
	h.mu.Lock()
	delete(h.clients, c)
	h.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// MarketplaceWS - websocket for realtime marketplace updates
// GET /ws/marketplace
func MarketplaceWS(c echo.Context) error {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	marketplace.register(ws)

	// Read loop; protocol is server push only
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			marketplace.unregister(ws)
			_ = ws.Close()
			break
		}
	}
	return nil
}

// BroadcastListingCreated - publish a new listing to all browsers
func BroadcastListingCreated(couponID, name string, value float64) {
	marketplace.broadcast(event{Type: "listing_created", Data: echo.Map{
		"coupon_id": couponID,
		"name":      name,
		"value":     value,
	}})
}

// BroadcastListingSold - tell browsers to drop a purchased listing
func BroadcastListingSold(couponID, name string) {
	marketplace.broadcast(event{Type: "listing_sold", Data: echo.Map{
		"coupon_id": couponID,
		"name":      name,
	}})
}
