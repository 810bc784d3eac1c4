package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// KifuRecord 一次记录的牌谱（聚合根），按名称唯一
type KifuRecord struct {
	ID        primitive.ObjectID `bson:"_id" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Steps     []KifuStep         `bson:"steps" json:"steps"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

// KifuStep 手牌变化时的一帧
// Discards 顺序为 自家、下家、对家、上家
type KifuStep struct {
	Turn           int       `bson:"turn" json:"turn"`
	RoundWind      int       `bson:"round_wind" json:"round_wind"`
	SelfWind       int       `bson:"self_wind" json:"self_wind"`
	DoraIndicators []int     `bson:"dora_indicators" json:"dora_indicators"`
	HandTiles      []int     `bson:"hand_tiles" json:"hand_tiles"`
	Melds          [][]int   `bson:"melds" json:"melds"`
	Discards       [4][]int  `bson:"discards" json:"discards"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}

// KifuSummary 列表展示用
type KifuSummary struct {
	Name      string    `json:"name"`
	StepCount int       `json:"step_count"`
	CreatedAt time.Time `json:"created_at"`
}

func NewKifuRecord(name string, steps []KifuStep) *KifuRecord {
	return &KifuRecord{
		ID:        primitive.NewObjectID(),
		Name:      name,
		Steps:     steps,
		CreatedAt: time.Now(),
	}
}

func (r *KifuRecord) Summary() KifuSummary {
	return KifuSummary{
		Name:      r.Name,
		StepCount: len(r.Steps),
		CreatedAt: r.CreatedAt,
	}
}
