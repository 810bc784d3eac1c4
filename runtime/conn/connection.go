package conn

import (
	"sync"
	"time"

	"mahjong-rtsim/common/log"

	"github.com/gorilla/websocket"
)

var (
	pongWait             = 60 * time.Second
	writeWait            = 10 * time.Second
	pingInterval         = (pongWait * 9) / 10
	maxMessageSize int64 = 1024
	writeBufferSize      = 16
)

// LongConnection 一个浏览器端的推送连接，只写不读，读循环仅用于感知断开
type LongConnection struct {
	ConnID    string
	Conn      *websocket.Conn
	hub       *Hub
	WriteChan chan []byte
	closeChan chan struct{}
	closeOnce sync.Once
}

func newLongConnection(id string, ws *websocket.Conn, hub *Hub) *LongConnection {
	return &LongConnection{
		ConnID:    id,
		Conn:      ws,
		hub:       hub,
		WriteChan: make(chan []byte, writeBufferSize),
		closeChan: make(chan struct{}),
	}
}

func (con *LongConnection) Run() {
	con.Conn.SetPongHandler(con.PongHandler)
	go con.readMessage()
	go con.writeMessage()
}

func (con *LongConnection) writeMessage() {
	pingTicker := time.NewTicker(pingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case message := <-con.WriteChan:
			_ = con.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := con.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error("客户端[%s] write err: %+v", con.ConnID, err)
				con.Close()
				return
			}
		case <-pingTicker.C:
			_ = con.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := con.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error("客户端[%s] ping err: %+v", con.ConnID, err)
				con.Close()
				return
			}
		case <-con.closeChan:
			_ = con.Conn.WriteControl(websocket.CloseMessage, nil, time.Now().Add(writeWait))
			return
		}
	}
}

func (con *LongConnection) readMessage() {
	defer func() {
		con.hub.remove(con)
		con.Close()
	}()
	con.Conn.SetReadLimit(maxMessageSize)
	if err := con.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Error("SetReadDeadline err:%v", err)
		return
	}
	for {
		if _, _, err := con.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("客户端[%s] 异常断开: %v", con.ConnID, err)
			}
			return
		}
	}
}

func (con *LongConnection) PongHandler(string) error {
	return con.Conn.SetReadDeadline(time.Now().Add(pongWait))
}

// SendMessage 写缓冲满时丢弃本条，下一次推送会带上完整牌面
func (con *LongConnection) SendMessage(buf []byte) bool {
	select {
	case <-con.closeChan:
		return false
	default:
	}
	select {
	case con.WriteChan <- buf:
		return true
	default:
		log.Warn("客户端[%s] 写缓冲已满，丢弃一条推送", con.ConnID)
		return false
	}
}

func (con *LongConnection) Close() {
	con.closeOnce.Do(func() {
		close(con.closeChan)
		// 等写协程发出 close 帧
		time.AfterFunc(writeWait, func() { _ = con.Conn.Close() })
		log.Info("客户端[%s] 连接关闭", con.ConnID)
	})
}
