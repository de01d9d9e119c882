package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// Grounded on the teacher's engine/convert.go: a hand-rolled FEN field
// splitter and symbol tables, rather than a general-purpose parser
// library — FEN's six whitespace-separated fields are simple enough that
// a parser combinator would be pure overhead.

var symbolToPiece = map[byte]Piece{
	'P': MakePiece(White, Pawn), 'N': MakePiece(White, Knight),
	'B': MakePiece(White, Bishop), 'R': MakePiece(White, Rook),
	'Q': MakePiece(White, Queen), 'K': MakePiece(White, King),
	'p': MakePiece(Black, Pawn), 'n': MakePiece(Black, Knight),
	'b': MakePiece(Black, Bishop), 'r': MakePiece(Black, Rook),
	'q': MakePiece(Black, Queen), 'k': MakePiece(Black, King),
}

// ParsePiecePlacement parses the FEN piece-placement field (rank 8 first)
// into board.
func ParsePiecePlacement(field string, board *Board) error {
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return &FENError{"piece placement", fmt.Sprintf("expected 8 ranks, got %d", len(ranks))}
	}
	for i, rank := range ranks {
		row := Row(7 - i)
		col := Column(0)
		for j := 0; j < len(rank); j++ {
			ch := rank[j]
			if ch >= '1' && ch <= '8' {
				col += Column(ch - '0')
				continue
			}
			pi, ok := symbolToPiece[ch]
			if !ok {
				return &FENError{"piece placement", fmt.Sprintf("unknown piece char %q", ch)}
			}
			if col >= 8 {
				return &FENError{"piece placement", fmt.Sprintf("rank %d too long", 8-i)}
			}
			board.Put(RankFile(row, col), pi)
			col++
		}
		if col > 8 {
			return &FENError{"piece placement", fmt.Sprintf("rank %d too long", 8-i)}
		}
		if col != 8 {
			return &FENError{"piece placement", fmt.Sprintf("rank %d too short", 8-i)}
		}
	}
	return nil
}

// FormatPiecePlacement formats board's pieces as the FEN placement field.
func FormatPiecePlacement(board *Board) string {
	var sb strings.Builder
	for row := Row(7); ; row-- {
		empty := 0
		for col := Column(0); col < 8; col++ {
			pi := board.Get(RankFile(row, col))
			if pi == NoPiece {
				empty++
				continue
			}
			if empty != 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(pi.String())
		}
		if empty != 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row == 0 {
			break
		}
		sb.WriteByte('/')
	}
	return sb.String()
}

func parseSideToMove(field string) (Color, error) {
	switch field {
	case "w":
		return White, nil
	case "b":
		return Black, nil
	default:
		return 0, &FENError{"side to move", fmt.Sprintf("expected w or b, got %q", field)}
	}
}

func formatSideToMove(c Color) string {
	if c == White {
		return "w"
	}
	return "b"
}

func parseEnPassant(field string) (Square, error) {
	if field == "-" {
		return NoSquare, nil
	}
	sq, err := SquareFromString(field)
	if err != nil {
		return 0, &FENError{"en passant", err.Error()}
	}
	return sq, nil
}

func formatEnPassant(sq Square) string {
	if sq == NoSquare {
		return "-"
	}
	return sq.String()
}

// FromFEN parses a Forsyth-Edwards Notation string into a fresh GameState.
// The six fields are split on runs of whitespace, mirroring the teacher's
// minimal-garbage field splitter in engine/position.go.
func FromFEN(fen string) (*GameState, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, &FENError{"record", fmt.Sprintf("expected 6 fields, got %d", len(fields))}
	}

	gs := &GameState{}
	if err := ParsePiecePlacement(fields[0], &gs.Board); err != nil {
		return nil, err
	}
	turn, err := parseSideToMove(fields[1])
	if err != nil {
		return nil, err
	}
	castle, err := ParseCastleRights(fields[2])
	if err != nil {
		return nil, &FENError{"castling rights", err.Error()}
	}
	ep, err := parseEnPassant(fields[3])
	if err != nil {
		return nil, err
	}
	half, err := strconv.ParseUint(fields[4], 10, 16)
	if err != nil {
		return nil, &FENError{"half-move clock", err.Error()}
	}
	full, err := strconv.ParseUint(fields[5], 10, 16)
	if err != nil {
		return nil, &FENError{"full-move number", err.Error()}
	}

	for c := Color(0); c < NumColors; c++ {
		sq, ok := gs.Board.pieces[c][King].Lowest()
		if !ok {
			return nil, &FENError{"piece placement", fmt.Sprintf("%s has no king", c)}
		}
		gs.kingSquare[c] = sq
	}

	gs.Turn = turn
	gs.Castle = castle
	gs.EP = ep
	gs.HalfMoves = uint16(half)
	gs.FullMoves = uint16(full)
	gs.zobrist = gs.computeZobristFromScratch()
	gs.history = append(gs.history, gs.zobrist)
	return gs, nil
}

func (gs *GameState) computeZobristFromScratch() uint64 {
	var z uint64
	for c := Color(0); c < NumColors; c++ {
		for f := Pawn; f < NumFigures; f++ {
			for bb := gs.Board.pieces[c][f]; bb != 0; {
				sq := bb.Pop()
				z ^= zobristPiece[MakePiece(c, f)][sq]
			}
		}
	}
	z ^= zobristCastle[gs.Castle]
	z ^= epZobrist(gs.EP)
	z ^= zobristColor[gs.Turn]
	return z
}

// String renders gs as a FEN record.
func (gs *GameState) String() string {
	return fmt.Sprintf("%s %s %s %s %d %d",
		FormatPiecePlacement(&gs.Board),
		formatSideToMove(gs.Turn),
		gs.Castle.String(),
		formatEnPassant(gs.EP),
		gs.HalfMoves,
		gs.FullMoves,
	)
}
