package hashing

import (
	"testing"

	"github.com/lgbarn/chess-rules-go/internal/chess"
)

func BenchmarkSignature(b *testing.B) {
	board := initialBoard()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Signature(board, chess.White, chess.AllCastling, chess.NoSquare)
	}
}

func BenchmarkPlacementHash(b *testing.B) {
	board := initialBoard()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		PlacementHash(board)
	}
}

func BenchmarkRepetitionTable_PushPop(b *testing.B) {
	table := NewRepetitionTable()
	for i := 0; i < b.N; i++ {
		table.Push(uint64(i & 0xff))
		if i&1 == 1 {
			table.Pop()
		}
	}
}
