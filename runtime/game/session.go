package game

import (
	"sync"

	"mahjong-rtsim/runtime/dto"
	"mahjong-rtsim/runtime/game/engines/mahjong"

	"github.com/google/uuid"
)

// Listener 牌面或选择状态变化后回调。回调按变更顺序串行执行，不能再调用 Session
type Listener func(view mahjong.View, board *mahjong.Board)

// Session 包装单写者的 Engine：串行化所有操作，并在计算期间拒绝修改
type Session struct {
	ID string

	mu              sync.Mutex
	notifyMu        sync.Mutex // 在释放 mu 之前取得，保证回调顺序与变更顺序一致
	engine          *mahjong.Engine
	keepHandOnEmpty bool
	busy            bool
	listeners       []Listener
}

func NewSession(rules mahjong.Rules, keepHandOnEmpty bool) *Session {
	return &Session{
		ID:              uuid.NewString(),
		engine:          mahjong.NewEngine(rules),
		keepHandOnEmpty: keepHandOnEmpty,
	}
}

// OnChange 注册监听，需在开始处理请求前调用
func (s *Session) OnChange(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Session) view() mahjong.View {
	v := s.engine.View()
	v.Busy = s.busy
	return v
}

func (s *Session) View() mahjong.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view()
}

func (s *Session) Board() *mahjong.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Board()
}

func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *Session) Candidates() []mahjong.Candidate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Candidates()
}

// mutate 在锁内执行 fn；出错时牌面不变，但选择状态可能已变，所以一律通知
func (s *Session) mutate(fn func(e *mahjong.Engine) error) (mahjong.View, error) {
	s.mu.Lock()
	if s.busy {
		v := s.view()
		s.mu.Unlock()
		return v, dto.ErrBusy
	}
	err := fn(s.engine)
	return s.notifyLocked(), err
}

func (s *Session) Reset() (mahjong.View, error) {
	return s.mutate(func(e *mahjong.Engine) error {
		e.Reset()
		return nil
	})
}

func (s *Session) Click(target mahjong.Selection) (mahjong.View, error) {
	return s.mutate(func(e *mahjong.Engine) error {
		return e.Click(target)
	})
}

func (s *Session) Deselect() (mahjong.View, error) {
	return s.mutate(func(e *mahjong.Engine) error {
		e.Deselect()
		return nil
	})
}

func (s *Session) Pick(tile mahjong.TileID) (mahjong.View, error) {
	return s.mutate(func(e *mahjong.Engine) error {
		return e.Pick(tile)
	})
}

func (s *Session) Remove() (mahjong.View, error) {
	return s.mutate(func(e *mahjong.Engine) error {
		return e.Remove()
	})
}

func (s *Session) CommitAt(index int) (mahjong.View, error) {
	return s.mutate(func(e *mahjong.Engine) error {
		return e.CommitAt(index)
	})
}

func (s *Session) Break(seat mahjong.Seat, meldIndex int) (mahjong.View, error) {
	return s.mutate(func(e *mahjong.Engine) error {
		return e.Break(seat, meldIndex)
	})
}

func (s *Session) AdvanceTurn() (mahjong.View, error) {
	return s.mutate(func(e *mahjong.Engine) error {
		e.AdvanceTurn()
		return nil
	})
}

func (s *Session) ToggleRoundWind() (mahjong.View, error) {
	return s.mutate(func(e *mahjong.Engine) error {
		e.ToggleRoundWind()
		return nil
	})
}

func (s *Session) RotateSelfWind() (mahjong.View, error) {
	return s.mutate(func(e *mahjong.Engine) error {
		e.RotateSelfWind()
		return nil
	})
}

// LoadSnapshot 解析识别端 JSON 并整体替换牌面
func (s *Session) LoadSnapshot(data []byte) (mahjong.View, *mahjong.LoadReport, error) {
	snap, report, err := mahjong.ParseSnapshot(data)
	if err != nil {
		return s.View(), nil, err
	}
	return s.Load(snap, report)
}

// Load 载入已经解析好的快照，例如牌谱中的一帧
func (s *Session) Load(snap *mahjong.Snapshot, report *mahjong.LoadReport) (mahjong.View, *mahjong.LoadReport, error) {
	var out *mahjong.LoadReport
	v, err := s.mutate(func(e *mahjong.Engine) error {
		out = e.Load(snap, report, s.keepHandOnEmpty)
		return nil
	})
	return v, out, err
}

// BeginCalc 生成计算请求并把会话标记为忙，调用方必须随后调用 EndCalc
func (s *Session) BeginCalc(syanten mahjong.SyantenType, flag mahjong.ExpOption) (*mahjong.CalcPayload, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, dto.ErrBusy
	}
	payload, err := s.engine.CalcPayload(syanten, flag)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.busy = true
	s.notifyLocked()
	return payload, nil
}

func (s *Session) EndCalc() {
	s.mu.Lock()
	s.busy = false
	s.notifyLocked()
}

// notifyLocked 调用时须持有 mu，返回前释放。
// 先拿 notifyMu 再放 mu，后一次变更的回调只能排在前一次之后
func (s *Session) notifyLocked() mahjong.View {
	v := s.view()
	listeners := s.listeners
	var board *mahjong.Board
	if len(listeners) > 0 {
		board = s.engine.Board()
	}
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()
	for _, l := range listeners {
		l(v, board)
	}
	return v
}
