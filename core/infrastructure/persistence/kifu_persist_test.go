package persistence

import (
	"reflect"
	"testing"
	"time"

	"mahjong-rtsim/core/domain/entity"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// 经过一次真实的 bson 编解码，和从 mongo 读回的形态一致
func TestKifuDocRoundTrip(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Millisecond)
	record := entity.NewKifuRecord("east-1", []entity.KifuStep{{
		Turn:           3,
		RoundWind:      27,
		SelfWind:       28,
		DoraIndicators: []int{4},
		HandTiles:      []int{0, 1, 2, 9, 10, 11, 18, 19, 20, 27, 27, 31, 31},
		Melds:          [][]int{{5, 5, 5}},
		Discards:       [4][]int{{33}, {}, {8, 8}, {}},
		CreatedAt:      now,
	}})
	record.CreatedAt = now

	doc := bson.M{
		"_id":        record.ID,
		"name":       record.Name,
		"steps":      stepsToBson(record.Steps),
		"created_at": record.CreatedAt,
	}
	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded bson.M
	if err := bson.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := docToKifuRecord(decoded)
	if got.ID != record.ID || got.Name != "east-1" || !got.CreatedAt.Equal(now) {
		t.Fatalf("unexpected header %+v", got)
	}
	if len(got.Steps) != 1 {
		t.Fatalf("expected one step, got %d", len(got.Steps))
	}
	s := got.Steps[0]
	if s.Turn != 3 || s.RoundWind != 27 || s.SelfWind != 28 {
		t.Fatalf("unexpected step meta %+v", s)
	}
	if !reflect.DeepEqual(s.HandTiles, record.Steps[0].HandTiles) || !reflect.DeepEqual(s.Melds, record.Steps[0].Melds) {
		t.Fatalf("tiles lost: %+v", s)
	}
	if len(s.Discards[0]) != 1 || s.Discards[0][0] != 33 || len(s.Discards[2]) != 2 {
		t.Fatalf("discards lost: %+v", s.Discards)
	}
}

func TestDocToKifuRecord_Tolerant(t *testing.T) {
	got := docToKifuRecord(bson.M{"name": "x", "_id": primitive.NewObjectID()})
	if got.Name != "x" || len(got.Steps) != 0 {
		t.Fatalf("unexpected record %+v", got)
	}
}
