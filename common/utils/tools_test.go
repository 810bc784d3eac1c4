package utils

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestConversions(t *testing.T) {
	if ToInt(int32(7)) != 7 || ToInt(3.0) != 3 || ToInt("x") != 0 {
		t.Fatalf("ToInt wrong")
	}
	s := "abc"
	if ToString(&s) != "abc" || ToString(1) != "" {
		t.Fatalf("ToString wrong")
	}
	now := time.Now().Truncate(time.Millisecond)
	if !ToTime(primitive.NewDateTimeFromTime(now)).Equal(now) {
		t.Fatalf("ToTime wrong")
	}
	got := ToIntSlice(primitive.A{int32(1), int64(2), 3.0})
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("ToIntSlice wrong: %v", got)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	clock := time.Now()
	rl.now = func() time.Time { return clock }
	rl.lastRefill = clock

	if !rl.Allow() || !rl.Allow() {
		t.Fatalf("burst of 2 should pass")
	}
	if rl.Allow() {
		t.Fatalf("third request should be limited")
	}
	clock = clock.Add(time.Second)
	if !rl.Allow() {
		t.Fatalf("token should refill after a second")
	}
}
