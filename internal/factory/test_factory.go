package factory

import (
	"time"

	"github.com/mcoot/kabak/internal/dependencies/mocks"
	"github.com/mcoot/kabak/internal/model"
	"github.com/mcoot/kabak/internal/services/catalog"
	"github.com/mcoot/kabak/internal/services/game"
	"github.com/mcoot/kabak/internal/storage/memory"
	"github.com/mcoot/kabak/internal/testutil"
)

// TestAdminID is the administrator identity used by TestApp
const TestAdminID model.PlayerID = "admin"

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock     *mocks.MockClock
	MockRandom    *mocks.MockRandom
	Notifications *testutil.RecordingNotifier
	MemoryStorage *memory.Storage
}

// TestLocations is the catalog every TestApp starts with
func TestLocations() []model.Location {
	return []model.Location{
		{ID: 1, Name: "Tavern", Narrative: "Smoke, songs and spilled ale.", SecretWord: "КАБАК"},
		{ID: 2, Name: "Cellar", Narrative: "Barrels line the damp walls.", SecretWord: "ВОДКА", ImageRef: "cellar.jpg"},
		{ID: 3, Name: "Stable", Narrative: "A horse snorts in the dark.", SecretWord: "КОНЮХ"},
	}
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	recorder := testutil.NewRecordingNotifier()

	cat, err := catalog.New(TestLocations())
	if err != nil {
		panic(err)
	}

	app := newWithDependencies(store, cat, mockClock, mockRandom, game.Config{
		AdminID:             TestAdminID,
		InactivityThreshold: 7 * 24 * time.Hour,
	}, testutil.NopLogger(), recorder)

	return &TestApp{
		App:           app,
		MockClock:     mockClock,
		MockRandom:    mockRandom,
		Notifications: recorder,
		MemoryStorage: store,
	}
}

// LoadTestDictionary loads a small dictionary for testing
func (t *TestApp) LoadTestDictionary() error {
	words := []string{
		"КАБАК", "КАБАН", "ВОДКА", "КОНЮХ", "БАРАН", "СЛОВО", "ПИВКО",
		"ВОЛНА", "КОНЯК", "ЛОДКА", "КНИГА", "ЁЖИКИ", "ПЕСНЯ",
	}
	return t.DictionaryService.LoadWords(words)
}
