package tetris

import (
	"math/rand"
	"time"

	"github.com/progate-hackathon-strawberry-flavor/GITRIS-solo/internal/models/tetris"
)

// PieceGenerator は次に出現するテトリミノの種類を決めます。
type PieceGenerator interface {
	NextPieceType() tetris.PieceType
}

// RandomGenerator は7種類を等確率で選ぶ PieceGenerator です。
type RandomGenerator struct {
	randGenerator *rand.Rand
}

// NewRandomGenerator は seed で初期化された RandomGenerator を返します。
// seed が 0 の場合は現在時刻をシードにします。
func NewRandomGenerator(seed int64) *RandomGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &RandomGenerator{randGenerator: rand.New(rand.NewSource(seed))}
}

func (g *RandomGenerator) NextPieceType() tetris.PieceType {
	return tetris.AllPieceTypes[g.randGenerator.Intn(tetris.PieceTypeCount)]
}

// SequenceGenerator は決められた順番でピースを返す PieceGenerator です。
// 最後まで使い切ったら先頭に戻ります。テストで出現順を固定するために使います。
type SequenceGenerator struct {
	types []tetris.PieceType
	next  int
	taken int
}

// NewSequenceGenerator は types を順に返す SequenceGenerator を返します。
// types が空の場合は T のみを返します。
func NewSequenceGenerator(types ...tetris.PieceType) *SequenceGenerator {
	if len(types) == 0 {
		types = []tetris.PieceType{tetris.TypeT}
	}
	return &SequenceGenerator{types: types}
}

func (g *SequenceGenerator) NextPieceType() tetris.PieceType {
	t := g.types[g.next]
	g.next = (g.next + 1) % len(g.types)
	g.taken++
	return t
}

// Taken はこれまでに払い出したピースの数を返します。
func (g *SequenceGenerator) Taken() int {
	return g.taken
}
