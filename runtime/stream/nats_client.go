package stream

import (
	"errors"

	"mahjong-rtsim/common/log"

	"github.com/nats-io/nats.go"
)

var ErrNotConnected = errors.New("nats not connected")

// NatsBridge 识别端经 nats 推送快照，牌面变化再经 nats 发布出去
type NatsBridge struct {
	url             string
	snapshotSubject string
	boardSubject    string
	conn            *nats.Conn
	sub             *nats.Subscription
	readChan        chan []byte
	done            chan struct{}
}

func NewNatsBridge(url, snapshotSubject, boardSubject string) *NatsBridge {
	return &NatsBridge{
		url:             url,
		snapshotSubject: snapshotSubject,
		boardSubject:    boardSubject,
		readChan:        make(chan []byte, 64),
		done:            make(chan struct{}),
	}
}

func (nb *NatsBridge) IsConnected() bool {
	return nb.conn != nil && nb.conn.IsConnected()
}

// Run 连接并订阅快照主题，收到的原始数据交给 handle 串行处理
func (nb *NatsBridge) Run(handle func([]byte)) error {
	log.Info("nats 服务正在连接, url:%s", nb.url)
	var err error
	nb.conn, err = nats.Connect(nb.url,
		nats.Name("rtsim"),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn("nats 连接断开: %v", err)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			log.Info("nats 已重连: %s", c.ConnectedUrl())
		}),
	)
	if err != nil {
		log.Error("nats 连接错误,err:%v", err)
		return err
	}
	nb.sub, err = nb.conn.Subscribe(nb.snapshotSubject, func(msg *nats.Msg) {
		select {
		case nb.readChan <- msg.Data:
		default:
			log.Warn("快照处理不过来，丢弃一帧")
		}
	})
	if err != nil {
		nb.conn.Close()
		return err
	}
	go func() {
		for {
			select {
			case data := <-nb.readChan:
				handle(data)
			case <-nb.done:
				return
			}
		}
	}()
	log.Info("nats 订阅成功, subject:%s", nb.snapshotSubject)
	return nil
}

// Publish 发布牌面，未连接时返回 ErrNotConnected
func (nb *NatsBridge) Publish(data []byte) error {
	if !nb.IsConnected() {
		return ErrNotConnected
	}
	return nb.conn.Publish(nb.boardSubject, data)
}

func (nb *NatsBridge) Close() error {
	if nb.conn == nil {
		return nil
	}
	if nb.sub != nil {
		_ = nb.sub.Unsubscribe()
	}
	nb.conn.Close()
	close(nb.done)
	log.Info("NATS 连接已关闭")
	return nil
}
