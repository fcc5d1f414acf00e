package handler

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/mcoot/kabak/internal/api/middleware"
	"github.com/mcoot/kabak/internal/api/response"
)

// MaxRuleChunk is the largest chunk of rule text sent in one message
const MaxRuleChunk = 4000

// RulesPlaceholder is served when no rules file exists
const RulesPlaceholder = "The rules have not been published yet."

// RulesHandler serves the rule text
type RulesHandler struct {
	errorWriter
	path string
}

// NewRulesHandler creates a rules handler reading from path on every request
func NewRulesHandler(path string, logger *slog.Logger, alert middleware.AlertFunc) *RulesHandler {
	return &RulesHandler{
		errorWriter: errorWriter{logger: logger, alert: alert},
		path:        path,
	}
}

// Get handles GET /api/v1/rules
func (h *RulesHandler) Get(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(h.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		h.writeError(w, r, err)
		return
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		response.JSON(w, http.StatusOK, response.Rules{Chunks: []string{RulesPlaceholder}})
		return
	}

	response.JSON(w, http.StatusOK, response.Rules{Chunks: chunkText(text, MaxRuleChunk)})
}

// chunkText splits text into pieces of at most limit characters, breaking
// at line ends where possible
func chunkText(text string, limit int) []string {
	var (
		chunks []string
		cur    strings.Builder
		curLen int
	)
	flush := func() {
		if curLen > 0 {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
	}

	for _, line := range strings.SplitAfter(text, "\n") {
		n := utf8.RuneCountInString(line)
		if curLen+n <= limit {
			cur.WriteString(line)
			curLen += n
			continue
		}
		flush()
		for n > limit {
			runes := []rune(line)
			chunks = append(chunks, string(runes[:limit]))
			line = string(runes[limit:])
			n -= limit
		}
		cur.WriteString(line)
		curLen = n
	}
	flush()
	return chunks
}
