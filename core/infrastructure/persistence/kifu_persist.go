package persistence

import (
	"context"
	"errors"

	"mahjong-rtsim/common/database"
	"mahjong-rtsim/common/log"
	"mahjong-rtsim/common/utils"
	"mahjong-rtsim/core/domain/entity"
	"mahjong-rtsim/core/domain/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type KifuRepository struct {
	mongo      *database.MongoManager
	collection string
}

func NewKifuRepository(mongo *database.MongoManager, collection string) *KifuRepository {
	return &KifuRepository{mongo: mongo, collection: collection}
}

var _ repository.KifuRepository = (*KifuRepository)(nil)

// EnsureIndexes name 唯一索引，启动时调用一次
func (r *KifuRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.mongo.Db.Collection(r.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *KifuRepository) Save(ctx context.Context, record *entity.KifuRecord) error {
	doc := bson.M{
		"_id":        record.ID,
		"name":       record.Name,
		"steps":      stepsToBson(record.Steps),
		"created_at": record.CreatedAt,
	}
	_, err := r.mongo.Db.Collection(r.collection).InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrRecordNameTaken
		}
		log.Error("保存牌谱失败: %v", err)
		return repository.ErrMongodb
	}
	return nil
}

func (r *KifuRepository) Exists(ctx context.Context, name string) (bool, error) {
	count, err := r.mongo.Db.Collection(r.collection).CountDocuments(ctx, bson.M{"name": name})
	if err != nil {
		log.Error("查询牌谱失败: %v", err)
		return false, repository.ErrMongodb
	}
	return count > 0, nil
}

func (r *KifuRepository) FindByName(ctx context.Context, name string) (*entity.KifuRecord, error) {
	var doc bson.M
	err := r.mongo.Db.Collection(r.collection).FindOne(ctx, bson.M{"name": name}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrKifuNotFound
		}
		log.Error("查询牌谱失败: %v", err)
		return nil, repository.ErrMongodb
	}
	return docToKifuRecord(doc), nil
}

func (r *KifuRepository) List(ctx context.Context, limit int) ([]entity.KifuSummary, error) {
	opts := options.Find().
		SetSort(bson.M{"created_at": -1}).
		SetProjection(bson.M{"name": 1, "created_at": 1, "step_count": bson.M{"$size": "$steps"}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}
	cursor, err := r.mongo.Db.Collection(r.collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		log.Error("查询牌谱列表失败: %v", err)
		return nil, repository.ErrMongodb
	}
	defer cursor.Close(ctx)

	result := make([]entity.KifuSummary, 0)
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			continue
		}
		result = append(result, entity.KifuSummary{
			Name:      utils.ToString(doc["name"]),
			StepCount: utils.ToInt(doc["step_count"]),
			CreatedAt: utils.ToTime(doc["created_at"]),
		})
	}
	return result, cursor.Err()
}

// ==================== 转换辅助方法 ====================

func stepsToBson(steps []entity.KifuStep) []bson.M {
	result := make([]bson.M, len(steps))
	for i, s := range steps {
		discards := make(bson.A, len(s.Discards))
		for seat, pile := range s.Discards {
			discards[seat] = pile
		}
		result[i] = bson.M{
			"turn":            s.Turn,
			"round_wind":      s.RoundWind,
			"self_wind":       s.SelfWind,
			"dora_indicators": s.DoraIndicators,
			"hand_tiles":      s.HandTiles,
			"melds":           s.Melds,
			"discards":        discards,
			"created_at":      s.CreatedAt,
		}
	}
	return result
}

func docToKifuRecord(doc bson.M) *entity.KifuRecord {
	record := &entity.KifuRecord{
		Name:      utils.ToString(doc["name"]),
		CreatedAt: utils.ToTime(doc["created_at"]),
	}
	if id, ok := doc["_id"].(primitive.ObjectID); ok {
		record.ID = id
	}
	stepsDoc, _ := doc["steps"].(bson.A)
	record.Steps = make([]entity.KifuStep, 0, len(stepsDoc))
	for _, item := range stepsDoc {
		sMap, ok := item.(bson.M)
		if !ok {
			continue
		}
		step := entity.KifuStep{
			Turn:           utils.ToInt(sMap["turn"]),
			RoundWind:      utils.ToInt(sMap["round_wind"]),
			SelfWind:       utils.ToInt(sMap["self_wind"]),
			DoraIndicators: utils.ToIntSlice(sMap["dora_indicators"]),
			HandTiles:      utils.ToIntSlice(sMap["hand_tiles"]),
			CreatedAt:      utils.ToTime(sMap["created_at"]),
		}
		melds, _ := sMap["melds"].(bson.A)
		for _, m := range melds {
			step.Melds = append(step.Melds, utils.ToIntSlice(m))
		}
		discards, _ := sMap["discards"].(bson.A)
		for seat := 0; seat < len(step.Discards) && seat < len(discards); seat++ {
			step.Discards[seat] = utils.ToIntSlice(discards[seat])
		}
		record.Steps = append(record.Steps, step)
	}
	return record
}
