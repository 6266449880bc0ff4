package tetris

import "fmt"

// BlockType はボード上のマスの状態を表します。
// 空きマスか、そのマスを埋めたテトリミノの種類のどちらかです。
type BlockType int

const (
	BlockEmpty BlockType = iota // 0: 空のマス
	BlockT                      // 1: T-テトリミノ由来のブロック (PieceType 0 + 1)
	BlockI                      // 2: I-テトリミノ由来のブロック (PieceType 1 + 1)
	BlockS                      // 3: S-テトリミノ由来のブロック (PieceType 2 + 1)
	BlockZ                      // 4: Z-テトリミノ由来のブロック (PieceType 3 + 1)
	BlockO                      // 5: O-テトリミノ由来のブロック (PieceType 4 + 1)
	BlockL                      // 6: L-テトリミノ由来のブロック (PieceType 5 + 1)
	BlockJ                      // 7: J-テトリミノ由来のブロック (PieceType 6 + 1)
)

const emptyRune = '.'

var blockRunes = [...]rune{emptyRune, 'T', 'I', 'S', 'Z', 'O', 'L', 'J'}

// Rune はブロックを1文字で表した値を返します。空きマスは '.' です。
func (b BlockType) Rune() rune {
	if b < 0 || int(b) >= len(blockRunes) {
		return '?'
	}
	return blockRunes[b]
}

func (b BlockType) String() string {
	return string(b.Rune())
}

// MarshalText はスナップショットをJSONで送る際に "T" や "." の文字列として出力するためのものです。
func (b BlockType) MarshalText() ([]byte, error) {
	if b < 0 || int(b) >= len(blockRunes) {
		return nil, fmt.Errorf("unknown block type %d", int(b))
	}
	return []byte(b.String()), nil
}

func (b *BlockType) UnmarshalText(text []byte) error {
	s := string(text)
	if s == string(emptyRune) || s == "" {
		*b = BlockEmpty
		return nil
	}
	t, ok := StringToPieceType(s)
	if !ok {
		return fmt.Errorf("unknown block tag %q", s)
	}
	*b = t.Block()
	return nil
}

// PieceType は落下するテトリミノの種類を表します。
type PieceType int

const (
	TypeT PieceType = iota
	TypeI
	TypeS
	TypeZ
	TypeO
	TypeL
	TypeJ
)

// PieceTypeCount はテトリミノの種類数です。
const PieceTypeCount = 7

// AllPieceTypes は全てのテトリミノの種類を定義順に並べたものです。
var AllPieceTypes = [PieceTypeCount]PieceType{TypeT, TypeI, TypeS, TypeZ, TypeO, TypeL, TypeJ}

// Block はこの種類のピースが固定されたときにボードへ書き込まれる BlockType を返します。
func (t PieceType) Block() BlockType {
	return BlockType(t + 1)
}

func (t PieceType) String() string {
	return PieceTypeToString(t)
}

// Valid は t が7種類のどれかであるかを返します。
func (t PieceType) Valid() bool {
	return t >= TypeT && t <= TypeJ
}

// StringToPieceType は文字列のテトリミノタイプ（"T", "I" など）をPieceTypeに変換します。
func StringToPieceType(s string) (PieceType, bool) {
	switch s {
	case "T":
		return TypeT, true
	case "I":
		return TypeI, true
	case "S":
		return TypeS, true
	case "Z":
		return TypeZ, true
	case "O":
		return TypeO, true
	case "L":
		return TypeL, true
	case "J":
		return TypeJ, true
	default:
		return TypeT, false
	}
}

// PieceTypeToString はPieceTypeを文字列表現に変換します。
func PieceTypeToString(t PieceType) string {
	if !t.Valid() {
		return "?"
	}
	return t.Block().String()
}
