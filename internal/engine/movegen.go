package engine

import (
	"fmt"

	"github.com/notnil/chess"
)

type Move struct {
	From Coord `json:"from"`
	To   Coord `json:"to"`
}

func (m Move) String() string { return m.From.String() + m.To.String() }

var chessKinds = map[Kind]chess.PieceType{
	Pawn:   chess.Pawn,
	Bishop: chess.Bishop,
	Knight: chess.Knight,
	Rook:   chess.Rook,
	Queen:  chess.Queen,
	King:   chess.King,
}

func toSquare(c Coord) chess.Square {
	return chess.NewSquare(chess.File(c.Col), chess.Rank(c.Row-1))
}

func fromSquare(sq chess.Square) Coord {
	return Coord{Col: int(sq.File()), Row: int(sq.Rank()) + 1}
}

func toColor(s Side) chess.Color {
	if s == White {
		return chess.White
	}
	return chess.Black
}

// FEN encodes the position with the given side to move. Castling and en
// passant are never available in a battle.
func (p Position) FEN(turn Side) string {
	squares := make(map[chess.Square]chess.Piece, len(p))
	for c, o := range p {
		squares[toSquare(c)] = chess.NewPiece(chessKinds[o.Kind], toColor(o.Side))
	}
	side := "w"
	if turn == Black {
		side = "b"
	}
	return fmt.Sprintf("%s %s - - 0 1", chess.NewBoard(squares).String(), side)
}

// LegalMoves asks the chess engine for every legal move of the side to
// move. Promotion variants collapse into a single from/to move.
func LegalMoves(p Position, turn Side) ([]Move, error) {
	fen := p.FEN(turn)
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrIllegalPosition, fen, err)
	}
	game := chess.NewGame(opt)

	seen := map[Move]bool{}
	var out []Move
	for _, cm := range game.Position().ValidMoves() {
		m := Move{From: fromSquare(cm.S1()), To: fromSquare(cm.S2())}
		if seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out, nil
}

// Admissible is the auto-battle movement rule layered on top of chess
// legality: always towards the enemy back row and never further than two
// squares in any direction.
func Admissible(m Move, side Side) bool {
	return Forward(m.From, m.To, side) && Chebyshev(m.From, m.To) <= 2
}
