package engine

// Perft counts the number of distinct legal move sequences of exactly
// depth plies from gs's current position. Legality is determined without
// making the move — except for the en-passant virtual-capture check in
// IsLegal — so MakeMove/UnmakeMove are only ever invoked on moves already
// known to be legal.
func Perft(gs *GameState, depth int) uint64 {
	if DebugChecks {
		if err := gs.Verify(); err != nil {
			panic(err)
		}
	}
	if depth == 0 {
		return 1
	}

	var nodes uint64
	var buf [256]Move
	moves := GenerateMoves(gs, buf[:0])
	for _, m := range moves {
		if !gs.IsLegal(m) {
			continue
		}
		gs.MakeMove(m)
		nodes += Perft(gs, depth-1)
		gs.UnmakeMove()
	}
	return nodes
}

// PerftCounters tallies the leaf-move kinds seen during a traversal,
// grounded on the teacher's perft/perft.go "counters" struct.
type PerftCounters struct {
	Nodes      uint64
	Captures   uint64
	EnPassant  uint64
	Castles    uint64
	Promotions uint64
}

// PerftDivide runs Perft(depth) but additionally returns, for each legal
// root move, the node count of its subtree (the standard "perft divide"
// debugging shape) and leaf-move-kind counters across the whole
// traversal. Additive instrumentation: it does not change which moves are
// generated, judged legal, or counted by Perft itself.
func PerftDivide(gs *GameState, depth int) (PerftCounters, map[string]uint64) {
	divide := make(map[string]uint64)
	var counters PerftCounters
	if depth == 0 {
		counters.Nodes = 1
		return counters, divide
	}

	var buf [256]Move
	moves := GenerateMoves(gs, buf[:0])
	for _, m := range moves {
		if !gs.IsLegal(m) {
			continue
		}
		if depth == 1 {
			tallyLeaf(gs, m, &counters)
		}
		gs.MakeMove(m)
		n := perftCount(gs, depth-1, &counters)
		gs.UnmakeMove()
		divide[m.UCI()] = n
		counters.Nodes += n
	}
	return counters, divide
}

func perftCount(gs *GameState, depth int, counters *PerftCounters) uint64 {
	if depth == 0 {
		return 1
	}
	var nodes uint64
	var buf [256]Move
	moves := GenerateMoves(gs, buf[:0])
	for _, m := range moves {
		if !gs.IsLegal(m) {
			continue
		}
		if depth == 1 {
			tallyLeaf(gs, m, counters)
		}
		gs.MakeMove(m)
		nodes += perftCount(gs, depth-1, counters)
		gs.UnmakeMove()
	}
	return nodes
}

func tallyLeaf(gs *GameState, m Move, counters *PerftCounters) {
	switch m.Type {
	case MoveEnPassant:
		counters.EnPassant++
	case MoveCastleKingside, MoveCastleQueenside:
		counters.Castles++
	case MovePromotion:
		counters.Promotions++
	}
	if m.Type == MoveEnPassant {
		counters.Captures++
		return
	}
	if gs.Board.Get(m.To) != NoPiece {
		counters.Captures++
	}
}
