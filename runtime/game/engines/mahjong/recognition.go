package mahjong

// IsSuspicious 识别端对置信度低的牌加了 SuspiciousOffset
func IsSuspicious(id TileID) bool {
	return id >= SuspiciousOffset
}

// IsRotated 横置的牌
func IsRotated(id TileID) bool {
	for id >= SuspiciousOffset {
		id -= SuspiciousOffset
	}
	return id >= RotatedOffset
}

// SplitMeldRun 把按 x 坐标排列的一串副露牌切成 3/4 张一组
//
// 三张相同为碰，第四张也相同则为杠；前两张相同而第三张不同，视为只拍到两张的暗杠，
// 两张各重复一次补成四张；否则取三张作为顺子。末尾剩两张按暗杠处理，剩一张丢弃。
func SplitMeldRun(ids []TileID) [][]TileID {
	var sets [][]TileID
	n := len(ids)
	doubled := func(pair []TileID) []TileID {
		out := make([]TileID, 0, 4)
		out = append(out, pair...)
		return append(out, pair...)
	}
	for i := 0; i < n; {
		switch {
		case i+3 <= n:
			a, b, c := Canonical(ids[i]), Canonical(ids[i+1]), Canonical(ids[i+2])
			switch {
			case a == b && b == c:
				if i+4 <= n && Canonical(ids[i+3]) == a {
					sets = append(sets, append([]TileID(nil), ids[i:i+4]...))
					i += 4
				} else {
					sets = append(sets, append([]TileID(nil), ids[i:i+3]...))
					i += 3
				}
			case a == b:
				sets = append(sets, doubled(ids[i:i+2]))
				i += 2
			default:
				sets = append(sets, append([]TileID(nil), ids[i:i+3]...))
				i += 3
			}
		case i+2 <= n:
			sets = append(sets, doubled(ids[i:i+2]))
			i += 2
		default:
			i++
		}
	}
	return sets
}
