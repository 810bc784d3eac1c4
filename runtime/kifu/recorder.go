package kifu

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"mahjong-rtsim/common/log"
	"mahjong-rtsim/core/domain/entity"
	"mahjong-rtsim/core/domain/repository"
	"mahjong-rtsim/runtime/game/engines/mahjong"
)

var (
	ErrRecordingDisabled = errors.New("kifu recording is disabled")
	ErrNotRecording      = errors.New("kifu recording has not been started")
	ErrInvalidRecordName = errors.New("invalid kifu record name")
	ErrStepOutOfRange    = errors.New("kifu step out of range")
)

const maxNameLength = 64

// Recorder 牌谱记录器
// 记录期间手牌每变化一次追加一帧到缓冲，Stop 时整体写入仓储
type Recorder struct {
	repo   repository.KifuRepository
	buffer repository.StepBuffer

	mu        sync.Mutex
	recording bool
	lastHand  []mahjong.TileID
	now       func() time.Time
}

// NewRecorder repo 或 buffer 为 nil 时记录器处于关闭状态
func NewRecorder(repo repository.KifuRepository, buffer repository.StepBuffer) *Recorder {
	return &Recorder{repo: repo, buffer: buffer, now: time.Now}
}

func (r *Recorder) Enabled() bool {
	return r != nil && r.repo != nil && r.buffer != nil
}

func (r *Recorder) Recording() bool {
	if !r.Enabled() {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recording
}

// Start 清空缓冲，开始新的记录
func (r *Recorder) Start(ctx context.Context) error {
	if !r.Enabled() {
		return ErrRecordingDisabled
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.buffer.Clear(ctx); err != nil {
		return err
	}
	r.recording = true
	r.lastHand = nil
	log.Info("开始记录牌谱")
	return nil
}

// Record 手牌（含摸牌）与上一帧不同才追加，返回是否追加
func (r *Recorder) Record(ctx context.Context, b *mahjong.Board) (bool, error) {
	if !r.Enabled() {
		return false, ErrRecordingDisabled
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return false, ErrNotRecording
	}
	hand := b.ConcealedTiles()
	if r.lastHand != nil && slices.Equal(hand, r.lastHand) {
		return false, nil
	}
	step := StepOf(b, r.now())
	if err := r.buffer.Append(ctx, &step); err != nil {
		return false, err
	}
	r.lastHand = hand
	return true, nil
}

// Stop 把缓冲写成一份牌谱，名称为空或已被使用时保持记录状态
func (r *Recorder) Stop(ctx context.Context, name string) (*entity.KifuRecord, error) {
	if !r.Enabled() {
		return nil, ErrRecordingDisabled
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > maxNameLength {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRecordName, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.recording {
		return nil, ErrNotRecording
	}
	exists, err := r.repo.Exists(ctx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: %q already used", ErrInvalidRecordName, name)
	}

	steps, err := r.buffer.All(ctx)
	if err != nil {
		return nil, err
	}
	record := entity.NewKifuRecord(name, steps)
	if err := r.repo.Save(ctx, record); err != nil {
		if errors.Is(err, repository.ErrRecordNameTaken) {
			return nil, fmt.Errorf("%w: %q already used", ErrInvalidRecordName, name)
		}
		return nil, err
	}
	if err := r.buffer.Clear(ctx); err != nil {
		log.Warn("牌谱已保存，但清空缓冲失败: %v", err)
	}
	r.recording = false
	r.lastHand = nil
	log.Info("牌谱已保存: name=%s, steps=%d", name, len(steps))
	return record, nil
}

func (r *Recorder) List(ctx context.Context, limit int) ([]entity.KifuSummary, error) {
	if !r.Enabled() {
		return nil, ErrRecordingDisabled
	}
	return r.repo.List(ctx, limit)
}

func (r *Recorder) Get(ctx context.Context, name string) (*entity.KifuRecord, error) {
	if !r.Enabled() {
		return nil, ErrRecordingDisabled
	}
	return r.repo.FindByName(ctx, name)
}

// Step 取出牌谱中的第 index 帧（从 0 开始）并转为快照
func (r *Recorder) Step(ctx context.Context, name string, index int) (*mahjong.Snapshot, error) {
	record, err := r.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(record.Steps) {
		return nil, fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, index, len(record.Steps))
	}
	return StepSnapshot(record.Steps[index]), nil
}
