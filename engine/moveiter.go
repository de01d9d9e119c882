package engine

// GenerateMoves writes every pseudo-legal move for the side to move into
// buf's backing array, starting at index 0 (any elements already in buf
// are discarded), and returns the resulting slice. Pseudo-legal: pins and check are not
// considered here — callers filter through IsLegal.
func GenerateMoves(gs *GameState, buf []Move) []Move {
	moves := buf[:0]
	own := gs.Board.colorOccupied[gs.Turn]
	for bb := own; bb != 0; {
		moves = MovesFrom(gs, bb.Pop(), moves)
	}
	return moves
}

// MovesFrom appends the pseudo-legal moves of the piece at from, if it
// belongs to the side to move, to moves, composing the board's base
// pseudo_moves with promotion expansion, double pawn pushes, en-passant,
// and castling.
func MovesFrom(gs *GameState, from Square, moves []Move) []Move {
	b := &gs.Board
	pi := b.Get(from)
	if pi == NoPiece || pi.Color() != gs.Turn {
		return moves
	}

	switch pi.Figure() {
	case Pawn:
		return genPawnMoves(gs, from, moves)
	case King:
		for dests := b.PseudoMoves(from); dests != 0; {
			moves = append(moves, Move{Type: MoveKing, From: from, To: dests.Pop()})
		}
		if gs.canCastle(true) {
			moves = append(moves, Move{Type: MoveCastleKingside, From: from, To: castleTable[gs.Turn][1].kingTo})
		}
		if gs.canCastle(false) {
			moves = append(moves, Move{Type: MoveCastleQueenside, From: from, To: castleTable[gs.Turn][0].kingTo})
		}
		return moves
	default:
		for dests := b.PseudoMoves(from); dests != 0; {
			moves = append(moves, Move{Type: MoveQuiet, From: from, To: dests.Pop()})
		}
		return moves
	}
}

var promotionFigures = [4]Figure{Queen, Rook, Bishop, Knight}

func forwardDelta(c Color) int {
	if c == White {
		return 8
	}
	return -8
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func genPawnMoves(gs *GameState, from Square, moves []Move) []Move {
	b := &gs.Board
	c := gs.Turn
	promoRow := Row(7)
	if c == Black {
		promoRow = Row(0)
	}

	for dests := b.pawnPseudoMoves(from, c); dests != 0; {
		to := dests.Pop()
		switch {
		case to.Row() == promoRow:
			for _, f := range promotionFigures {
				moves = append(moves, Move{Type: MovePromotion, From: from, To: to, PromotionFigure: f})
			}
		case absInt(int(to)-int(from)) == 16:
			moves = append(moves, Move{Type: MoveDoublePawnPush, From: from, To: to})
		default:
			moves = append(moves, Move{Type: MoveQuiet, From: from, To: to})
		}
	}

	if gs.EP != NoSquare && pawnAttacks[c][from]&gs.EP.Bitboard() != 0 {
		captured := Square(int(gs.EP) - forwardDelta(c))
		moves = append(moves, Move{Type: MoveEnPassant, From: from, To: gs.EP, EPCapture: captured})
	}
	return moves
}
