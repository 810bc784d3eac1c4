package mahjong

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Seat 以自家为基准的相对座位
type Seat int

const (
	SeatSelf     Seat = iota // 自家
	SeatShimocha             // 下家（右）
	SeatToimen               // 对家（上）
	SeatKamicha              // 上家（左）
)

// SeatNone 来源未知
const SeatNone Seat = -1

var seatNames = [...]string{"self", "shimocha", "toimen", "kamicha"}

// 识别端按画面位置命名
var seatPositions = [...]string{"bottom", "right", "top", "left"}

var allSeats = [...]Seat{SeatSelf, SeatShimocha, SeatToimen, SeatKamicha}

func (s Seat) Valid() bool {
	return s >= SeatSelf && s <= SeatKamicha
}

func (s Seat) String() string {
	if !s.Valid() {
		return "none"
	}
	return seatNames[s]
}

// Position 画面位置 bottom/right/top/left
func (s Seat) Position() string {
	if !s.Valid() {
		return ""
	}
	return seatPositions[s]
}

// ParseSeat 同时接受相对座位名和画面位置名
func ParseSeat(name string) (Seat, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i := range seatNames {
		if name == seatNames[i] || name == seatPositions[i] {
			return Seat(i), nil
		}
	}
	return SeatNone, fmt.Errorf("unknown seat %q", name)
}

func (s Seat) MarshalJSON() ([]byte, error) {
	if !s.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(s.String())
}

func (s *Seat) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = SeatNone
		return nil
	}
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		var idx int
		if err2 := json.Unmarshal(data, &idx); err2 != nil {
			return err
		}
		if !Seat(idx).Valid() {
			return fmt.Errorf("seat index %d out of range", idx)
		}
		*s = Seat(idx)
		return nil
	}
	seat, err := ParseSeat(name)
	if err != nil {
		return err
	}
	*s = seat
	return nil
}

// exposedIndexByDonor 碰/杠时横置牌的位置，取决于放铳者坐在哪一侧
var exposedIndexByDonor = map[Seat]int{
	SeatKamicha:  0,
	SeatToimen:   1,
	SeatShimocha: 2,
}

// ExposedIndexFor 自家不能作为放铳者
func ExposedIndexFor(donor Seat) (int, bool) {
	idx, ok := exposedIndexByDonor[donor]
	return idx, ok
}
