package utils

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ToTime bson 解码出来的时间可能是 DateTime 或 time.Time
func ToTime(value interface{}) time.Time {
	switch v := value.(type) {
	case primitive.DateTime:
		return v.Time()
	case primitive.Timestamp:
		return time.Unix(int64(v.T), 0)
	case time.Time:
		return v
	case *time.Time:
		if v != nil {
			return *v
		}
	}
	return time.Time{}
}

func ToInt(value interface{}) int {
	switch v := value.(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

func ToString(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case *string:
		if v != nil {
			return *v
		}
	}
	return ""
}

// ToIntSlice bson.A / []interface{} 转为 []int，牌谱中的牌 id 列表用
func ToIntSlice(value interface{}) []int {
	switch v := value.(type) {
	case []int:
		return v
	case primitive.A:
		return toInts(v)
	case []interface{}:
		return toInts(v)
	}
	return nil
}

func toInts(items []interface{}) []int {
	result := make([]int, len(items))
	for i, item := range items {
		result[i] = ToInt(item)
	}
	return result
}
