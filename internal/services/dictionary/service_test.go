package dictionary

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestIsNotLoadedByDefault() {
	s.False(s.service.IsLoaded())
	s.Equal(0, s.service.WordCount())
	s.False(s.service.Contains("apple"))
}

func (s *ServiceSuite) TestLoadWords() {
	err := s.service.LoadWords([]string{"apple", "zebra", "peach"})
	s.Require().NoError(err)

	s.True(s.service.IsLoaded())
	s.Equal(3, s.service.WordCount())
}

func (s *ServiceSuite) TestContainsCaseInsensitive() {
	_ = s.service.LoadWords([]string{"Apple", "PEACH"})

	s.True(s.service.Contains("apple"))
	s.True(s.service.Contains("APPLE"))
	s.True(s.service.Contains("peach"))
	s.False(s.service.Contains("grape"))
}

func (s *ServiceSuite) TestContainsFoldsYo() {
	_ = s.service.LoadWords([]string{"ёжики"})

	s.True(s.service.Contains("ЕЖИКИ"))
	s.True(s.service.Contains("ёжики"))
}

func (s *ServiceSuite) TestLoadWordsReplacesPreviousList() {
	_ = s.service.LoadWords([]string{"apple"})
	_ = s.service.LoadWords([]string{"peach"})

	s.False(s.service.Contains("apple"))
	s.True(s.service.Contains("peach"))
}

func (s *ServiceSuite) TestLoadFromFile() {
	path := filepath.Join(s.T().TempDir(), "words.txt")
	s.Require().NoError(os.WriteFile(path, []byte("apple\npeach  zebra\n\n"), 0o600))

	err := s.service.LoadFromFile(s.ctx, path)
	s.Require().NoError(err)
	s.Equal(3, s.service.WordCount())
	s.True(s.service.Contains("zebra"))
}

func (s *ServiceSuite) TestLoadFromMissingFile() {
	err := s.service.LoadFromFile(s.ctx, filepath.Join(s.T().TempDir(), "missing.txt"))
	s.Error(err)
	s.False(s.service.IsLoaded())
}

func (s *ServiceSuite) TestNormalizeList() {
	got := NormalizeList([]string{"ёлка", "ЕЛКА", "kabak", " Kabak ", "", "дверь"})
	s.Equal([]string{"ЕЛКА", "KABAK", "ДВЕРЬ"}, got)
}

func (s *ServiceSuite) TestReadAndWriteList() {
	words, err := ReadWords(strings.NewReader("one two\nthree"))
	s.Require().NoError(err)
	s.Equal([]string{"one", "two", "three"}, words)

	var buf bytes.Buffer
	s.Require().NoError(WriteList(&buf, []string{"A", "B"}))
	s.Equal("A\nB\n", buf.String())
}
