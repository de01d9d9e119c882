package engine

// GameState is a chess position plus the side to move, castling rights,
// en-passant target, move counters, cached king squares, and the stack of
// move records needed to unmake.
type GameState struct {
	Board     Board
	Turn      Color
	Castle    CastleRights
	EP        Square
	HalfMoves uint16
	FullMoves uint16

	kingSquare [NumColors]Square
	zobrist    uint64
	history    []uint64

	stack []moveRecord
}

// moveRecord captures everything make(move) needs to undo later: the move
// itself, any captured piece, and the prior castle rights, en-passant
// square, and half-move clock.
type moveRecord struct {
	move           Move
	captured       Piece
	priorCastle    CastleRights
	priorEP        Square
	priorHalfMoves uint16
}

// DebugChecks enables invariant verification in Perft; off by default
// since it is O(board size) per node.
var DebugChecks = false

// NewGameState returns the standard chess starting position.
func NewGameState() *GameState {
	gs, err := FromFEN("rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")
	if err != nil {
		panic(err)
	}
	return gs
}

// KingSquare returns the cached king square for c.
func (gs *GameState) KingSquare(c Color) Square { return gs.kingSquare[c] }

// Zobrist returns the position's Zobrist hash.
func (gs *GameState) Zobrist() uint64 { return gs.zobrist }

func epZobrist(sq Square) uint64 {
	if sq == NoSquare {
		return 0
	}
	return zobristEnpassant[sq]
}

func (gs *GameState) putPiece(sq Square, pi Piece) {
	gs.Board.Put(sq, pi)
	gs.zobrist ^= zobristPiece[pi][sq]
}

func (gs *GameState) removePiece(sq Square, pi Piece) {
	gs.Board.Remove(sq, pi)
	gs.zobrist ^= zobristPiece[pi][sq]
}

func (gs *GameState) setCastle(c CastleRights) {
	gs.zobrist ^= zobristCastle[gs.Castle] ^ zobristCastle[c]
	gs.Castle = c
}

func (gs *GameState) setEP(sq Square) {
	gs.zobrist ^= epZobrist(gs.EP) ^ epZobrist(sq)
	gs.EP = sq
}

func (gs *GameState) setTurn(c Color) {
	gs.zobrist ^= zobristColor[gs.Turn] ^ zobristColor[c]
	gs.Turn = c
}

func castleIdx(t MoveType) int {
	if t == MoveCastleKingside {
		return 1
	}
	return 0
}

// IsLegal is a pure predicate over (gs, m); it never mutates gs except for
// the transient, restored virtual-capture probe used for en-passant.
func (gs *GameState) IsLegal(m Move) bool {
	switch m.Type {
	case MoveKing:
		return gs.Board.SafeSquaresForKing(m.From, gs.Turn).Has(m.To)
	case MoveCastleKingside:
		return gs.canCastle(true)
	case MoveCastleQueenside:
		return gs.canCastle(false)
	case MoveEnPassant:
		return gs.isEnPassantLegal(m)
	default:
		kingSq := gs.kingSquare[gs.Turn]
		pin := gs.Board.PinMask(m.From, kingSq, gs.Turn)
		stop := gs.Board.CheckStopMask(kingSq, gs.Turn)
		return m.To.Bitboard()&pin&stop == m.To.Bitboard()
	}
}

// isEnPassantLegal performs the capture virtually — XOR both pawns' bits out
// of occupancy, the mover's pawn bitboard, and the captured pawn's bitboard,
// then asks whether the king is attacked, then restores all three. This is
// the one legality check in the engine that is not a pure mask lookup: the
// pin and check-stop masks assume a single piece leaves the blocker set, but
// en-passant removes two (the mover's origin and the captured pawn), which
// can expose a horizontal discovered check that those masks cannot detect.
//
// The captured pawn's own bitboard, not just Occupied, must be toggled:
// IsAttacked tests pawn attackers directly against pieces[by][Pawn], so a
// captured pawn that was itself the checking piece would otherwise still
// register as an attacker after the virtual capture.
func (gs *GameState) isEnPassantLegal(m Move) bool {
	b := &gs.Board
	mover, victim := gs.Turn, gs.Turn.Opposite()
	occMask := m.From.Bitboard() | m.To.Bitboard() | m.EPCapture.Bitboard()
	moverMask := m.From.Bitboard() | m.To.Bitboard()
	victimMask := m.EPCapture.Bitboard()

	b.Occupied ^= occMask
	b.pieces[mover][Pawn] ^= moverMask
	b.pieces[victim][Pawn] ^= victimMask

	safe := !b.IsAttacked(gs.kingSquare[gs.Turn], victim)

	b.Occupied ^= occMask
	b.pieces[mover][Pawn] ^= moverMask
	b.pieces[victim][Pawn] ^= victimMask
	return safe
}

func (gs *GameState) canCastle(kingside bool) bool {
	info := castleTable[gs.Turn][castleIdxBool(kingside)]
	if !gs.Castle.Has(info.right) {
		return false
	}
	b := &gs.Board
	if info.emptySquares&b.Occupied != 0 {
		return false
	}
	attacker := gs.Turn.Opposite()
	if b.IsAttacked(info.kingFrom, attacker) {
		return false
	}
	for bb := info.kingPath; bb != 0; {
		if b.IsAttacked(bb.Pop(), attacker) {
			return false
		}
	}
	return true
}

func castleIdxBool(kingside bool) int {
	if kingside {
		return 1
	}
	return 0
}

// MakeMove applies m, pushing a moveRecord that UnmakeMove can reverse.
func (gs *GameState) MakeMove(m Move) {
	b := &gs.Board
	piece := b.Get(m.From)
	rec := moveRecord{move: m, priorCastle: gs.Castle, priorEP: gs.EP, priorHalfMoves: gs.HalfMoves}

	newCastle := gs.Castle &^ (cornerCastleLoss[m.From] | cornerCastleLoss[m.To])
	if m.Type == MoveKing || m.Type == MoveCastleKingside || m.Type == MoveCastleQueenside {
		newCastle &^= colorCastleMask[gs.Turn]
	}

	var captured Piece
	switch m.Type {
	case MoveQuiet:
		captured = b.Get(m.To)
		gs.removePiece(m.From, piece)
		if captured != NoPiece {
			gs.removePiece(m.To, captured)
		}
		gs.putPiece(m.To, piece)
		if captured != NoPiece || piece.Figure() == Pawn {
			gs.HalfMoves = 0
		} else {
			gs.HalfMoves++
		}
		gs.setEP(NoSquare)

	case MoveKing:
		captured = b.Get(m.To)
		gs.removePiece(m.From, piece)
		if captured != NoPiece {
			gs.removePiece(m.To, captured)
		}
		gs.putPiece(m.To, piece)
		gs.kingSquare[gs.Turn] = m.To
		if captured != NoPiece {
			gs.HalfMoves = 0
		} else {
			gs.HalfMoves++
		}
		gs.setEP(NoSquare)

	case MoveDoublePawnPush:
		gs.removePiece(m.From, piece)
		gs.putPiece(m.To, piece)
		gs.setEP(Square((int(m.From) + int(m.To)) / 2))
		gs.HalfMoves = 0

	case MoveEnPassant:
		captured = b.Get(m.EPCapture)
		gs.removePiece(m.EPCapture, captured)
		gs.removePiece(m.From, piece)
		gs.putPiece(m.To, piece)
		gs.setEP(NoSquare)
		gs.HalfMoves = 0

	case MovePromotion:
		captured = b.Get(m.To)
		gs.removePiece(m.From, piece)
		if captured != NoPiece {
			gs.removePiece(m.To, captured)
		}
		gs.putPiece(m.To, MakePiece(gs.Turn, m.PromotionFigure))
		gs.setEP(NoSquare)
		gs.HalfMoves = 0

	case MoveCastleKingside, MoveCastleQueenside:
		info := castleTable[gs.Turn][castleIdx(m.Type)]
		rook := b.Get(info.rookFrom)
		gs.removePiece(m.From, piece)
		gs.putPiece(m.To, piece)
		gs.removePiece(info.rookFrom, rook)
		gs.putPiece(info.rookTo, rook)
		gs.kingSquare[gs.Turn] = m.To
		gs.setEP(NoSquare)
		gs.HalfMoves++
	}

	rec.captured = captured
	gs.setCastle(newCastle)
	gs.stack = append(gs.stack, rec)
	if gs.Turn == Black {
		gs.FullMoves++
	}
	gs.setTurn(gs.Turn.Opposite())
	gs.history = append(gs.history, gs.zobrist)
}

// UnmakeMove reverses the effect of the most recent MakeMove.
func (gs *GameState) UnmakeMove() {
	gs.history = gs.history[:len(gs.history)-1]
	n := len(gs.stack) - 1
	rec := gs.stack[n]
	gs.stack = gs.stack[:n]

	gs.setTurn(gs.Turn.Opposite())
	if gs.Turn == Black {
		gs.FullMoves--
	}

	m := rec.move
	b := &gs.Board
	switch m.Type {
	case MoveQuiet:
		piece := b.Get(m.To)
		gs.removePiece(m.To, piece)
		gs.putPiece(m.From, piece)
		if rec.captured != NoPiece {
			gs.putPiece(m.To, rec.captured)
		}
	case MoveKing:
		piece := b.Get(m.To)
		gs.removePiece(m.To, piece)
		gs.putPiece(m.From, piece)
		if rec.captured != NoPiece {
			gs.putPiece(m.To, rec.captured)
		}
		gs.kingSquare[gs.Turn] = m.From
	case MoveDoublePawnPush:
		piece := b.Get(m.To)
		gs.removePiece(m.To, piece)
		gs.putPiece(m.From, piece)
	case MoveEnPassant:
		piece := b.Get(m.To)
		gs.removePiece(m.To, piece)
		gs.putPiece(m.From, piece)
		gs.putPiece(m.EPCapture, rec.captured)
	case MovePromotion:
		promoted := b.Get(m.To)
		gs.removePiece(m.To, promoted)
		gs.putPiece(m.From, MakePiece(gs.Turn, Pawn))
		if rec.captured != NoPiece {
			gs.putPiece(m.To, rec.captured)
		}
	case MoveCastleKingside, MoveCastleQueenside:
		info := castleTable[gs.Turn][castleIdx(m.Type)]
		king := b.Get(m.To)
		gs.removePiece(m.To, king)
		gs.putPiece(m.From, king)
		rook := b.Get(info.rookTo)
		gs.removePiece(info.rookTo, rook)
		gs.putPiece(info.rookFrom, rook)
		gs.kingSquare[gs.Turn] = m.From
	}

	gs.setCastle(rec.priorCastle)
	gs.setEP(rec.priorEP)
	gs.HalfMoves = rec.priorHalfMoves
}

// IsThreefoldRepetition reports whether the current position's Zobrist
// hash has occurred at least three times in the game's history, counting
// moves since the last irreversible ply (capture or pawn move) the way
// the fifty-move half-move clock already tracks. Supplemental to the
// perft core: Perft does not call this, since perft counts paths rather
// than deduplicating positions.
func (gs *GameState) IsThreefoldRepetition() bool {
	if len(gs.history) == 0 {
		return false
	}
	count := 1
	start := len(gs.history) - int(gs.HalfMoves) - 1
	if start < 0 {
		start = 0
	}
	for i := start; i < len(gs.history)-1; i++ {
		if gs.history[i] == gs.zobrist {
			count++
		}
	}
	return count >= 3
}

// Verify checks the invariants of §3: disjoint occupancies, consistent
// aggregates, mailbox/bitboard agreement, and a single king per color. It
// is a programmer-error detector, not a recoverable-input check — callers
// such as Perft invoke it only when DebugChecks is set.
func (gs *GameState) Verify() error {
	b := &gs.Board
	if b.colorOccupied[White]&b.colorOccupied[Black] != 0 {
		return errInvariant("white and black occupancy overlap")
	}
	if b.colorOccupied[White]|b.colorOccupied[Black] != b.Occupied {
		return errInvariant("occupied is not the union of color occupancies")
	}
	for c := Color(0); c < NumColors; c++ {
		var xor Bitboard
		for f := Pawn; f < NumFigures; f++ {
			xor ^= b.pieces[c][f]
		}
		if xor != b.colorOccupied[c] {
			return errInvariant("piece bitboards do not XOR to color occupancy")
		}
		if b.pieces[c][King].PopCount() != 1 {
			return errInvariant("color does not have exactly one king")
		}
		if sq, _ := b.pieces[c][King].Lowest(); sq != gs.kingSquare[c] {
			return errInvariant("cached king square disagrees with king bitboard")
		}
	}
	for sq := Square(0); sq < NumSquares; sq++ {
		pi := b.mailbox[sq]
		if pi == NoPiece {
			if b.Occupied.Has(sq) {
				return errInvariant("mailbox empty but occupied bit set")
			}
			continue
		}
		if !b.pieces[pi.Color()][pi.Figure()].Has(sq) {
			return errInvariant("mailbox piece absent from its bitboard")
		}
	}
	return nil
}
