package game

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"mahjong-rtsim/common/log"
	"mahjong-rtsim/runtime/calc"
	"mahjong-rtsim/runtime/conn"
	"mahjong-rtsim/runtime/dto"
	"mahjong-rtsim/runtime/game/engines/mahjong"
	"mahjong-rtsim/runtime/kifu"
	"mahjong-rtsim/runtime/stream"
)

/*
	1.持有唯一的牌面会话，所有 HTTP / nats 输入都经由 Session 串行处理
	2.牌面变化后推送给 websocket 客户端，并发布到 nats
	3.记录牌谱时，手牌变化自动追加一帧
	4.调用远程计算端，计算期间会话为忙
*/

const recordTimeout = 5 * time.Second

type Worker struct {
	Session  *Session
	Calc     *calc.Client
	Recorder *kifu.Recorder
	Hub      *conn.Hub
	Bridge   *stream.NatsBridge // 未配置 nats 时为 nil
	Monitor  *Monitor

	recordCh  chan *mahjong.Board
	closeMu   sync.Mutex
	closed    bool
	cancel    context.CancelFunc
	loopsDone sync.WaitGroup
}

func NewWorker(session *Session, calcClient *calc.Client, recorder *kifu.Recorder, bridge *stream.NatsBridge) *Worker {
	w := &Worker{
		Session:  session,
		Calc:     calcClient,
		Recorder: recorder,
		Bridge:   bridge,
		recordCh: make(chan *mahjong.Board, 128),
	}
	w.Hub = conn.NewHub(func() any {
		return dto.Push{Type: dto.PushBoard, Data: session.View()}
	})
	w.Monitor = NewMonitor(w.Hub.Count, session.Busy, 5*time.Second)
	session.OnChange(w.onBoardChange)
	return w
}

// Start 启动后台协程；nats 连接失败时返回错误
func (w *Worker) Start(ctx context.Context) error {
	ctx, w.cancel = context.WithCancel(ctx)

	w.loopsDone.Add(1)
	go w.recordLoop()
	go w.Monitor.Start(ctx)

	if w.Bridge != nil {
		if err := w.Bridge.Run(w.handleSnapshot); err != nil {
			return err
		}
	}
	log.Info("Worker[%s] 启动成功", w.Session.ID)
	return nil
}

func (w *Worker) onBoardChange(view mahjong.View, board *mahjong.Board) {
	push := dto.Push{Type: dto.PushBoard, Data: view}
	w.Hub.Broadcast(push)

	if w.Bridge != nil && w.Bridge.IsConnected() {
		if data, err := json.Marshal(push); err == nil {
			if err := w.Bridge.Publish(data); err != nil {
				log.Warn("发布牌面到 nats 失败: %v", err)
			}
		}
	}

	if board != nil && w.Recorder.Recording() {
		w.enqueueRecord(board)
	}
}

func (w *Worker) enqueueRecord(board *mahjong.Board) {
	w.closeMu.Lock()
	defer w.closeMu.Unlock()
	if w.closed {
		return
	}
	select {
	case w.recordCh <- board:
	default:
		log.Warn("Worker 牌谱队列已满，丢弃一帧")
	}
}

// recordLoop 按顺序落盘，保证帧的先后与牌面变化一致
func (w *Worker) recordLoop() {
	defer w.loopsDone.Done()
	for board := range w.recordCh {
		ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
		if _, err := w.Recorder.Record(ctx, board); err != nil && !errors.Is(err, kifu.ErrNotRecording) {
			log.Error("自动记录牌谱失败: %v", err)
		}
		cancel()
	}
}

// handleSnapshot nats 收到的快照直接载入
func (w *Worker) handleSnapshot(data []byte) {
	_, report, err := w.Session.LoadSnapshot(data)
	if err != nil {
		log.Warn("nats 快照载入失败: %v", err)
		return
	}
	if report != nil && (len(report.Malformed) > 0 || len(report.Violations) > 0) {
		log.Warn("nats 快照存在问题: malformed=%v violations=%d", report.Malformed, len(report.Violations))
	}
	w.Hub.Broadcast(dto.Push{Type: dto.PushLoaded, Data: report})
}

// Calculate 生成请求并调用计算端，期间会话拒绝修改
func (w *Worker) Calculate(ctx context.Context, req dto.CalcReq) (*dto.CalcResp, error) {
	payload, err := w.Session.BeginCalc(req.SyantenType, req.Flag)
	if err != nil {
		return nil, err
	}
	defer w.Session.EndCalc()

	result, err := w.Calc.Calculate(ctx, &payload.Request)
	if err != nil {
		return nil, err
	}
	resp := &dto.CalcResp{Payload: payload, Result: result}
	w.Hub.Broadcast(dto.Push{Type: dto.PushCalc, Data: resp})
	return resp, nil
}

// Record 立即记录当前牌面
func (w *Worker) Record(ctx context.Context) (bool, error) {
	return w.Recorder.Record(ctx, w.Session.Board())
}

// LoadStep 把牌谱中的一帧载入为当前牌面
func (w *Worker) LoadStep(ctx context.Context, name string, index int) (mahjong.View, *mahjong.LoadReport, error) {
	snap, err := w.Recorder.Step(ctx, name, index)
	if err != nil {
		return w.Session.View(), nil, err
	}
	return w.Session.Load(snap, nil)
}

// Close 幂等
func (w *Worker) Close() {
	w.closeMu.Lock()
	if w.closed {
		w.closeMu.Unlock()
		return
	}
	w.closed = true
	close(w.recordCh)
	w.closeMu.Unlock()

	if w.cancel != nil {
		w.cancel()
	}
	if w.Bridge != nil {
		_ = w.Bridge.Close()
	}
	w.Hub.Close()
	w.loopsDone.Wait()
	log.Info("Worker[%s] 已关闭", w.Session.ID)
}
