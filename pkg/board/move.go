package board

import "fmt"

// Move is a packed 16-bit value: 6 bits from-square, 6 bits to-square, 4 bits flag. The
// flag distinguishes quiet, double-pawn-push, castle, capture, en-passant and the eight
// promotion variants (plain x4, capturing x4). Treated as an opaque copyable value, not a
// struct of named fields, so root moves and TT entries stay cheap to copy.
type Move uint16

const (
	flagQuiet uint16 = iota
	flagDoublePawnPush
	flagKingCastle
	flagQueenCastle
	flagCapture
	flagEnPassant
	flagReserved6
	flagReserved7
	flagPromoKnight
	flagPromoBishop
	flagPromoRook
	flagPromoQueen
	flagPromoKnightCapture
	flagPromoBishopCapture
	flagPromoRookCapture
	flagPromoQueenCapture
)

const (
	fromMask = 0x003f
	toShift  = 6
	toMask   = 0x0fc0
	flagShift = 12
)

// NoMove is the zero value: from == to == H1, flag == quiet. Board never produces this as a
// legal move, so it safely doubles as "no move" (e.g. stalemate bestmove "0000").
const NoMove Move = 0

// NewMove constructs a packed move from its parts.
func NewMove(from, to Square, flag uint16) Move {
	return Move(uint16(from) | uint16(to)<<toShift | flag<<flagShift)
}

func (m Move) From() Square {
	return Square(uint16(m) & fromMask)
}

func (m Move) To() Square {
	return Square((uint16(m) & toMask) >> toShift)
}

func (m Move) flag() uint16 {
	return uint16(m) >> flagShift
}

func (m Move) IsCapture() bool {
	f := m.flag()
	return f == flagCapture || f == flagEnPassant || (f >= flagPromoKnightCapture && f <= flagPromoQueenCapture)
}

func (m Move) IsEnPassant() bool {
	return m.flag() == flagEnPassant
}

func (m Move) IsDoublePawnPush() bool {
	return m.flag() == flagDoublePawnPush
}

func (m Move) IsKingCastle() bool {
	return m.flag() == flagKingCastle
}

func (m Move) IsQueenCastle() bool {
	return m.flag() == flagQueenCastle
}

func (m Move) IsCastle() bool {
	return m.IsKingCastle() || m.IsQueenCastle()
}

func (m Move) IsPromotion() bool {
	f := m.flag()
	return f >= flagPromoKnight
}

// Promotion returns the promoted-to piece and true, iff the move is a promotion.
func (m Move) Promotion() (Piece, bool) {
	switch m.flag() {
	case flagPromoKnight, flagPromoKnightCapture:
		return Knight, true
	case flagPromoBishop, flagPromoBishopCapture:
		return Bishop, true
	case flagPromoRook, flagPromoRookCapture:
		return Rook, true
	case flagPromoQueen, flagPromoQueenCapture:
		return Queen, true
	default:
		return NoPiece, false
	}
}

func promotionFlag(p Piece, capture bool) uint16 {
	switch p {
	case Knight:
		if capture {
			return flagPromoKnightCapture
		}
		return flagPromoKnight
	case Bishop:
		if capture {
			return flagPromoBishopCapture
		}
		return flagPromoBishop
	case Rook:
		if capture {
			return flagPromoRookCapture
		}
		return flagPromoRook
	default:
		if capture {
			return flagPromoQueenCapture
		}
		return flagPromoQueen
	}
}

func (m Move) Equals(o Move) bool {
	return m == o
}

// ParseMove parses a move in pure algebraic coordinate notation, such as "a2a4" or "a7a8q".
// The parsed move carries no contextual flags (capture/castle/en-passant); callers that need
// a fully-flagged Move should instead look it up among Position.GeneratePseudoLegalMoves.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)

	if len(runes) < 4 || len(runes) > 5 {
		return 0, fmt.Errorf("invalid move: '%v'", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return 0, fmt.Errorf("invalid from: '%v': %v", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return 0, fmt.Errorf("invalid to: '%v': %v", str, err)
	}

	if len(runes) == 5 {
		promo, ok := ParsePiece(runes[4])
		if !ok || promo == Pawn || promo == King {
			return 0, fmt.Errorf("invalid promotion: '%v'", str)
		}
		return NewMove(from, to, promotionFlag(promo, false)), nil
	}
	return NewMove(from, to, flagQuiet), nil
}

func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}
	if p, ok := m.Promotion(); ok {
		return fmt.Sprintf("%v%v%v", m.From(), m.To(), p)
	}
	return fmt.Sprintf("%v%v", m.From(), m.To())
}
