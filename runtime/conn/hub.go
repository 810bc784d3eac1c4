package conn

import (
	"encoding/json"
	"net/http"
	"sync"

	"mahjong-rtsim/common/log"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Hub 管理所有推送连接，牌面每次变化广播一次
type Hub struct {
	sync.RWMutex
	clients  map[string]*LongConnection
	upgrader websocket.Upgrader
	// 新连接建立后首先收到的数据
	greeting func() any
	closed   bool
}

func NewHub(greeting func() any) *Hub {
	return &Hub{
		clients: make(map[string]*LongConnection),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		greeting: greeting,
	}
}

// Serve 升级为 websocket 并登记连接
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) error {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket 升级失败: %v", err)
		return err
	}
	con := newLongConnection(uuid.NewString(), ws, h)

	h.Lock()
	if h.closed {
		h.Unlock()
		_ = ws.Close()
		return nil
	}
	h.clients[con.ConnID] = con
	h.Unlock()

	con.Run()
	log.Info("客户端[%s] 已连接, 当前连接数 %d", con.ConnID, h.Count())

	if h.greeting != nil {
		if data, err := json.Marshal(h.greeting()); err == nil {
			con.SendMessage(data)
		}
	}
	return nil
}

func (h *Hub) remove(con *LongConnection) {
	h.Lock()
	defer h.Unlock()
	delete(h.clients, con.ConnID)
}

// Broadcast 序列化一次后推给所有连接
func (h *Hub) Broadcast(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		log.Error("推送消息序列化失败: %v", err)
		return
	}
	h.RLock()
	defer h.RUnlock()
	for _, con := range h.clients {
		con.SendMessage(data)
	}
}

func (h *Hub) Count() int {
	h.RLock()
	defer h.RUnlock()
	return len(h.clients)
}

func (h *Hub) Close() {
	h.Lock()
	clients := h.clients
	h.clients = make(map[string]*LongConnection)
	h.closed = true
	h.Unlock()

	for _, con := range clients {
		con.Close()
	}
}
