package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputText(t *testing.T) {
	tests := []struct {
		name string
		data any
		want []string
	}{
		{
			name: "join",
			data: JoinResult{Player: Player{ID: "1", DisplayName: "Alice"}},
			want: []string{"Welcome to the game!", "Player: Alice (1)", "Score: 0"},
		},
		{
			name: "already joined",
			data: JoinResult{Player: Player{ID: "1", DisplayName: "Alice", Score: 15}, AlreadyJoined: true},
			want: []string{"You are already in the game", "Score: 15"},
		},
		{
			name: "board",
			data: Locations{Locations: []LocationSummary{{ID: 1, Name: "Tavern", Closed: true}, {ID: 2, Name: "Cellar"}}},
			want: []string{"[x] 1. Tavern", "[ ] 2. Cellar"},
		},
		{
			name: "failed robbery",
			data: StealResult{Die: 3, VictimDelta: 2, Thief: Player{Score: 8}, Victim: Player{DisplayName: "Bob"}, Next: "Bob"},
			want: []string{"Die: 3", "Caught! You pay Bob 2 points", "Your score: 8", "Next: Bob"},
		},
		{
			name: "waiting menu",
			data: Menu{CanViewBoard: true, CanViewScores: true, Current: &Player{DisplayName: "Bob"}},
			want: []string{"Turn: Bob", "Waiting for your turn", "Actions: board, score"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			NewOutput(&buf, "text").Print(tt.data)
			for _, line := range tt.want {
				assert.Contains(t, buf.String(), line)
			}
		})
	}
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	out := NewOutput(&buf, "json")

	out.PrintMessage("Game reset")
	var msg map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &msg))
	assert.Equal(t, "Game reset", msg["message"])

	buf.Reset()
	out.Print(GuessResult{Word: "КАБАН", Points: 40})
	var guess GuessResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &guess))
	assert.Equal(t, "КАБАН", guess.Word)
	assert.Equal(t, 40, guess.Points)
}

func TestDictNormalize(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, os.WriteFile(src, []byte("ёжики кабак\nКАБАК  водка\n"), 0o644))

	t.Run("stdout", func(t *testing.T) {
		var stdout bytes.Buffer
		cmd := newDictCmd()
		cmd.SetOut(&stdout)
		cmd.SetArgs([]string{"normalize", src})
		require.NoError(t, cmd.Execute())
		assert.Equal(t, "ЕЖИКИ\nКАБАК\nВОДКА\n", stdout.String())
	})

	t.Run("file", func(t *testing.T) {
		var stderr bytes.Buffer
		cmd := newDictCmd()
		cmd.SetErr(&stderr)
		cmd.SetArgs([]string{"normalize", src, dst})
		require.NoError(t, cmd.Execute())

		data, err := os.ReadFile(dst)
		require.NoError(t, err)
		assert.Equal(t, "ЕЖИКИ\nКАБАК\nВОДКА\n", string(data))
		assert.Contains(t, stderr.String(), "4 words read, 3 written")
	})

	t.Run("missing source", func(t *testing.T) {
		cmd := newDictCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"normalize", filepath.Join(dir, "nope.txt")})
		assert.Error(t, cmd.Execute())
	})
}
