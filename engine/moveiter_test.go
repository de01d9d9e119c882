package engine

import (
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// legalUCIs returns the sorted UCI strings of every legal move in gs,
// used to compare generated move sets independent of generation order.
func legalUCIs(t *testing.T, gs *GameState) []string {
	t.Helper()
	var buf [256]Move
	var out []string
	for _, m := range GenerateMoves(gs, buf[:0]) {
		if gs.IsLegal(m) {
			out = append(out, m.UCI())
		}
	}
	sort.Strings(out)
	return out
}

func TestMovesFromStartingPositionKnight(t *testing.T) {
	gs := NewGameState()
	b1 := sq(t, "b1")
	var buf [256]Move
	got := MovesFrom(gs, b1, buf[:0])

	var ucis []string
	for _, m := range got {
		ucis = append(ucis, m.UCI())
	}
	sort.Strings(ucis)

	want := []string{"b1a3", "b1c3"}
	if diff := cmp.Diff(want, ucis); diff != "" {
		t.Errorf("knight moves from b1 mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateMovesStartingPositionCount(t *testing.T) {
	gs := NewGameState()
	legal := legalUCIs(t, gs)
	require.Len(t, legal, 20)
}

func TestPawnDoublePushAndPromotionExpansion(t *testing.T) {
	// White pawn on a7 can promote to four pieces; white pawn on d2 can
	// single- or double-push.
	gs, err := FromFEN("7k/P7/8/8/8/8/3P4/4K3 w - - 0 1")
	require.NoError(t, err)

	a7 := sq(t, "a7")
	var buf [256]Move
	got := MovesFrom(gs, a7, buf[:0])
	var ucis []string
	for _, m := range got {
		require.Equal(t, MovePromotion, m.Type)
		ucis = append(ucis, m.UCI())
	}
	sort.Strings(ucis)
	want := []string{"a7a8b", "a7a8n", "a7a8q", "a7a8r"}
	if diff := cmp.Diff(want, ucis); diff != "" {
		t.Errorf("promotion moves mismatch (-want +got):\n%s", diff)
	}

	d2 := sq(t, "d2")
	got = MovesFrom(gs, d2, buf[:0])
	var dUcis []string
	for _, m := range got {
		dUcis = append(dUcis, m.UCI())
	}
	sort.Strings(dUcis)
	if diff := cmp.Diff([]string{"d2d3", "d2d4"}, dUcis); diff != "" {
		t.Errorf("pawn push moves mismatch (-want +got):\n%s", diff)
	}
}

func TestCastlingMovesGeneratedWhenPathClear(t *testing.T) {
	gs, err := FromFEN("4k3/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)

	legal := legalUCIs(t, gs)
	require.Contains(t, legal, "e1g1")
	require.Contains(t, legal, "e1c1")
}

func TestCastlingBlockedByOccupiedSquare(t *testing.T) {
	gs, err := FromFEN("4k3/8/8/8/8/8/8/R3KB1R w KQ - 0 1")
	require.NoError(t, err)

	legal := legalUCIs(t, gs)
	require.NotContains(t, legal, "e1g1")
}

func TestCastlingBlockedWhenPathAttacked(t *testing.T) {
	// Black rook on f8 attacks f1, the square the white king must cross
	// to castle kingside.
	gs, err := FromFEN("5r1k/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)

	legal := legalUCIs(t, gs)
	require.NotContains(t, legal, "e1g1")
	require.Contains(t, legal, "e1c1")
}

func TestEnPassantGeneratedWhenAdjacent(t *testing.T) {
	gs, err := FromFEN("4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1")
	require.NoError(t, err)

	legal := legalUCIs(t, gs)
	require.Contains(t, legal, "e5d6")
}
