package mahjong

import (
	"fmt"

	"mahjong-rtsim/common/log"
)

// Engine 单一写者的牌面引擎，本身不做并发控制，由调用方串行调用
//
// 每个操作要么整体成功并替换牌面，要么返回错误且牌面保持原样
type Engine struct {
	rules  Rules
	board  *Board
	editor *Editor
}

func NewEngine(rules Rules) *Engine {
	return &Engine{
		rules:  rules,
		board:  NewBoard(),
		editor: NewEditor(rules),
	}
}

func (e *Engine) Rules() Rules {
	return e.rules
}

// Board 当前牌面的深拷贝
func (e *Engine) Board() *Board {
	return e.board.Copy()
}

func (e *Engine) Selection() (Selection, bool) {
	return e.editor.Selection()
}

func (e *Engine) View() View {
	var sel *Selection
	if s, ok := e.editor.Selection(); ok {
		sel = &s
	}
	return NewView(e.board, sel)
}

func (e *Engine) apply(next *Board, err error) error {
	if err != nil {
		return err
	}
	e.board = next
	return nil
}

// Reset 回到空白牌面
func (e *Engine) Reset() {
	e.board = NewBoard()
	e.editor.Deselect()
}

func (e *Engine) Click(target Selection) error {
	return e.apply(e.editor.Click(e.board, target))
}

func (e *Engine) Deselect() {
	e.editor.Deselect()
}

func (e *Engine) Pick(tile TileID) error {
	return e.apply(e.editor.Pick(e.board, tile))
}

func (e *Engine) Remove() error {
	return e.apply(e.editor.Remove(e.board))
}

func (e *Engine) Candidates() []Candidate {
	return FindCandidates(e.board)
}

// Commit 执行副露后回到 Idle
func (e *Engine) Commit(c Candidate) error {
	if err := e.apply(Commit(e.board, c)); err != nil {
		return err
	}
	e.editor.Deselect()
	return nil
}

// CommitAt 执行当前候选列表中的第 index 个
func (e *Engine) CommitAt(index int) error {
	candidates := e.Candidates()
	if index < 0 || index >= len(candidates) {
		return fmt.Errorf("%w: index %d of %d", ErrUnknownCandidate, index, len(candidates))
	}
	return e.Commit(candidates[index])
}

func (e *Engine) Break(seat Seat, meldIndex int) error {
	if err := e.apply(Break(e.board, seat, meldIndex)); err != nil {
		return err
	}
	e.editor.Deselect()
	return nil
}

func (e *Engine) AdvanceTurn() {
	e.board = e.board.AdvanceTurn()
}

func (e *Engine) ToggleRoundWind() {
	e.board = e.board.ToggleRoundWind()
}

func (e *Engine) RotateSelfWind() {
	e.board = e.board.RotateSelfWind()
}

// Load 用快照整体替换牌面与选择状态
func (e *Engine) Load(s *Snapshot, report *LoadReport, keepHandWhenEmpty bool) *LoadReport {
	if report == nil {
		report = &LoadReport{}
	}
	e.board = s.Board(e.board, LoadOptions{Rules: e.rules, KeepHandWhenEmpty: keepHandWhenEmpty}, report)
	e.editor.Deselect()
	log.Info("snapshot loaded: hand=%d drawn=%s dora=%d turn=%d", len(e.board.Hand), e.board.Drawn, len(e.board.DoraIndicators), e.board.Turn)
	return report
}

// Replace 直接替换牌面，b 会被复制
func (e *Engine) Replace(b *Board) {
	e.board = b.Copy()
	e.editor.Deselect()
}

func (e *Engine) CalcPayload(syanten SyantenType, flag ExpOption) (*CalcPayload, error) {
	return BuildCalcPayload(e.board, syanten, flag)
}
