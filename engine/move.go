package engine

// MoveType tags which of the seven move shapes a Move represents.
type MoveType uint8

const (
	MoveQuiet MoveType = iota
	MoveKing
	MoveDoublePawnPush
	MoveEnPassant
	MovePromotion
	MoveCastleKingside
	MoveCastleQueenside
)

func (t MoveType) String() string {
	switch t {
	case MoveQuiet:
		return "quiet"
	case MoveKing:
		return "king"
	case MoveDoublePawnPush:
		return "double-push"
	case MoveEnPassant:
		return "en-passant"
	case MovePromotion:
		return "promotion"
	case MoveCastleKingside:
		return "O-O"
	case MoveCastleQueenside:
		return "O-O-O"
	default:
		return "?"
	}
}

// Move is a flattened tagged variant over the seven move shapes: Quiet,
// KingMove, DoublePawnPush, EnPassant, Promotion, and the two castles.
// Only the fields relevant to Type are meaningful; EPCapture is the
// captured pawn's square (distinct from To) and is set only for
// MoveEnPassant. PromotionFigure is set only for MovePromotion.
type Move struct {
	Type            MoveType
	From, To        Square
	EPCapture       Square
	PromotionFigure Figure
}

// UCI renders the move in UCI long algebraic form, e.g. "e7e8q".
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	if m.Type == MovePromotion {
		s += string([]byte{"?nbrqk"[m.PromotionFigure]})
	}
	return s
}

func (m Move) String() string { return m.UCI() }
