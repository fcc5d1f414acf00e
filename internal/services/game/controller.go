package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/mcoot/kabak/internal/dependencies/clock"
	"github.com/mcoot/kabak/internal/dependencies/random"
	"github.com/mcoot/kabak/internal/model"
	"github.com/mcoot/kabak/internal/services/catalog"
	"github.com/mcoot/kabak/internal/services/dictionary"
	"github.com/mcoot/kabak/internal/services/robbery"
	"github.com/mcoot/kabak/internal/services/scoring"
	"github.com/mcoot/kabak/internal/storage"
)

// Notifier receives the notifications produced by committed mutations.
// Implementations must not block.
type Notifier interface {
	Dispatch(ctx context.Context, notes ...model.Notification)
}

// Config holds the engine settings that are not collaborators
type Config struct {
	AdminID model.PlayerID
	// InactivityThreshold is the idle time after which a player is nudged.
	// Zero disables the advisory.
	InactivityThreshold time.Duration
}

// Controller owns the game session and serialises every operation on it.
//
// Mutations work on a clone of the session: all preconditions are checked,
// the clone is mutated and persisted, and only then swapped in. A failed
// check or a failed save leaves the live session untouched. Notifications
// are dispatched after the lock is released.
type Controller struct {
	mu      sync.RWMutex
	session *Session

	cfg        Config
	catalog    *catalog.Catalog
	storage    storage.Storage
	dictionary dictionary.Lookup
	robbery    *robbery.Resolver
	notifier   Notifier
	clock      clock.Clock
	random     random.Random
	logger     *slog.Logger

	warnMu sync.Mutex
	warned map[model.PlayerID]time.Time // lastActive value at the time of the warning
}

// NewController creates a new Controller with an empty session
func NewController(
	cfg Config,
	cat *catalog.Catalog,
	storage storage.Storage,
	dict dictionary.Lookup,
	resolver *robbery.Resolver,
	notifier Notifier,
	clock clock.Clock,
	random random.Random,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		session:    NewSession(cat),
		cfg:        cfg,
		catalog:    cat,
		storage:    storage,
		dictionary: dict,
		robbery:    resolver,
		notifier:   notifier,
		clock:      clock,
		random:     random,
		logger:     logger.With(slog.String("component", "game")),
		warned:     make(map[model.PlayerID]time.Time),
	}
}

// Load replaces the live session with the persisted snapshot, if any
func (c *Controller) Load(ctx context.Context) error {
	snap, err := storage.LoadOrEmpty(ctx, c.storage)
	if err != nil {
		return fmt.Errorf("%w: load session: %w", model.ErrPersistenceFailure, err)
	}

	c.mu.Lock()
	c.session = SessionFromSnapshot(snap, c.catalog)
	c.mu.Unlock()

	c.logger.Info("session restored",
		slog.String("status", string(snap.Status)),
		slog.Int("player_count", len(snap.Players)),
	)
	return nil
}

// IsAdmin reports whether id is the configured administrator
func (c *Controller) IsAdmin(id model.PlayerID) bool {
	return c.cfg.AdminID != "" && id == c.cfg.AdminID
}

type mutation func(next *Session, now time.Time) ([]model.Notification, error)

// mutate applies fn to a clone and commits it. Game actions are not
// cancellable, so the save ignores cancellation of the caller's context.
func (c *Controller) mutate(ctx context.Context, op string, fn mutation) error {
	ctx = context.WithoutCancel(ctx)
	c.mu.Lock()
	next := c.session.Clone()
	notes, err := fn(next, c.clock.Now())
	if err != nil {
		c.mu.Unlock()
		return err
	}
	if err := c.storage.SaveSession(ctx, next.Snapshot()); err != nil {
		c.mu.Unlock()
		c.logger.Error("failed to persist session",
			slog.String("op", op),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: %s: %w", model.ErrPersistenceFailure, op, err)
	}
	c.session = next
	c.mu.Unlock()

	if len(notes) > 0 && c.notifier != nil {
		c.notifier.Dispatch(ctx, notes...)
	}
	return nil
}

func (c *Controller) read(fn func(s *Session)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.session)
}

// Join registers a player. Joining twice returns the existing record with
// ErrAlreadyJoined. A player joining a running game is queued at the tail.
func (c *Controller) Join(ctx context.Context, userID model.PlayerID, displayName string) (*model.Player, error) {
	if c.IsAdmin(userID) {
		return nil, model.ErrAdminCannotJoin
	}
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		displayName = string(userID)
	}

	var player model.Player
	err := c.mutate(ctx, "join", func(next *Session, now time.Time) ([]model.Notification, error) {
		p, err := next.Players.Register(userID, displayName, now)
		player = p
		if err != nil {
			return nil, err
		}
		if next.IsActive() {
			next.Queue.Append(userID)
		}
		return nil, nil
	})
	if err != nil {
		if errors.Is(err, model.ErrAlreadyJoined) {
			return &player, err
		}
		return nil, err
	}

	c.logger.Info("player joined",
		slog.String("player_id", string(userID)),
		slog.String("display_name", displayName),
	)
	return &player, nil
}

// Begin shuffles every registered player into the turn queue and activates
// the session. Location progress from an earlier run is kept.
func (c *Controller) Begin(ctx context.Context, adminID model.PlayerID) (*BeginResult, error) {
	if !c.IsAdmin(adminID) {
		return nil, model.ErrAdminOnly
	}

	var result BeginResult
	err := c.mutate(ctx, "begin", func(next *Session, now time.Time) ([]model.Notification, error) {
		if next.Players.Len() == 0 {
			return nil, model.ErrNoPlayers
		}

		ids := next.Players.IDs()
		c.random.Shuffle(len(ids), func(i, j int) {
			ids[i], ids[j] = ids[j], ids[i]
		})
		next.Queue.Seed(ids)
		next.Locations.Initialize()
		next.Status = model.SessionActive

		first, err := next.CurrentPlayer()
		if err != nil {
			return nil, err
		}
		result = BeginResult{First: first, Order: next.Queue.IDs()}

		notes := make([]model.Notification, 0, len(ids)+1)
		for _, id := range ids {
			notes = append(notes, model.Notification{
				Type:      model.NotifyGameBegun,
				To:        id,
				Message:   gameBegunMessage(first.DisplayName, len(ids)),
				Timestamp: now,
			})
		}
		notes = append(notes, c.yourTurn(next, now))
		return notes, nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("session begun",
		slog.Int("player_count", len(result.Order)),
		slog.String("first_player", string(result.First.ID)),
	)
	return &result, nil
}

// SubmitGuess evaluates the current player's guess at a location. On any
// rejection the turn does not advance and no score changes.
func (c *Controller) SubmitGuess(ctx context.Context, userID model.PlayerID, locationID model.LocationID, word string) (*GuessResult, error) {
	word = strings.TrimSpace(word)
	normalized := dictionary.Normalize(word)

	var result GuessResult
	err := c.mutate(ctx, "guess", func(next *Session, now time.Time) ([]model.Notification, error) {
		if !next.IsActive() {
			return nil, model.ErrNotStarted
		}
		player, err := next.Players.Get(userID)
		if err != nil {
			return nil, err
		}
		if !next.Queue.IsCurrent(userID) {
			return nil, model.ErrNotYourTurn
		}
		if n := utf8.RuneCountInString(normalized); n != model.WordLength {
			return nil, fmt.Errorf("%w: got %d letters, want %d", model.ErrInvalidLength, n, model.WordLength)
		}
		if !c.dictionary.Contains(normalized) {
			return nil, fmt.Errorf("%w: %s", model.ErrNotInDictionary, normalized)
		}
		loc, err := next.Locations.Location(locationID)
		if err != nil {
			return nil, err
		}

		attempt, err := next.Locations.RecordAttempt(locationID, player, word, now)
		if err != nil {
			return nil, err
		}
		if err := next.Players.AdjustScore(userID, attempt.Points); err != nil {
			return nil, err
		}
		if err := next.Players.Touch(userID, now); err != nil {
			return nil, err
		}
		next.Queue.Advance()

		updated, _ := next.Players.Get(userID)
		nextID, _ := next.Queue.Current()
		result = GuessResult{
			LocationID:   loc.ID,
			LocationName: loc.Name,
			Word:         normalized,
			Matches:      attempt.Matches,
			Verdict:      scoring.Verdict(attempt.Matches),
			Points:       attempt.Points,
			Solved:       attempt.Solved,
			Player:       updated,
			Next:         nextID,
		}
		return []model.Notification{c.yourTurn(next, now)}, nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("guess accepted",
		slog.String("player_id", string(userID)),
		slog.Int("location_id", int(locationID)),
		slog.Int("points", result.Points),
		slog.Bool("closed", result.Solved),
	)
	return &result, nil
}

// stealEligibility checks whether a robbery may be offered to userID
func stealEligibility(s *Session, userID model.PlayerID) error {
	thief, err := s.Players.Get(userID)
	if err != nil {
		return err
	}
	rich := false
	for _, p := range s.Players.All() {
		if p.ID != userID && p.Score >= robbery.MinVictimScore {
			rich = true
			break
		}
	}
	if !rich {
		return model.ErrNoEligibleTarget
	}
	if thief.Score < robbery.MinThiefScore {
		return fmt.Errorf("%w: have %d, need %d", model.ErrInsufficientScore, thief.Score, robbery.MinThiefScore)
	}
	return nil
}

// RequestSteal checks whether the current player may rob someone and lists
// the other players they can pick from
func (c *Controller) RequestSteal(ctx context.Context, userID model.PlayerID) (*StealOptions, error) {
	var (
		opts StealOptions
		err  error
	)
	c.read(func(s *Session) {
		if !s.IsActive() {
			err = model.ErrNotStarted
			return
		}
		if !s.Players.IsRegistered(userID) {
			err = fmt.Errorf("%w: %s", model.ErrNotRegistered, userID)
			return
		}
		if !s.Queue.IsCurrent(userID) {
			err = model.ErrNotYourTurn
			return
		}
		if err = stealEligibility(s, userID); err != nil {
			return
		}
		for _, p := range s.Players.All() {
			if p.ID != userID {
				opts.Targets = append(opts.Targets, p)
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return &opts, nil
}

// ResolveSteal rolls the robbery die for the current player against victimID.
// Eligibility is not re-checked here; it only gates RequestSteal.
func (c *Controller) ResolveSteal(ctx context.Context, thiefID, victimID model.PlayerID) (*StealResult, error) {
	var result StealResult
	err := c.mutate(ctx, "steal", func(next *Session, now time.Time) ([]model.Notification, error) {
		if !next.IsActive() {
			return nil, model.ErrNotStarted
		}
		thief, err := next.Players.Get(thiefID)
		if err != nil {
			return nil, err
		}
		if !next.Queue.IsCurrent(thiefID) {
			return nil, model.ErrNotYourTurn
		}
		if victimID == thiefID {
			return nil, fmt.Errorf("%w: cannot rob yourself", model.ErrInvalidTarget)
		}
		victim, err := next.Players.Get(victimID)
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not playing", model.ErrInvalidTarget, victimID)
		}

		outcome := c.robbery.Resolve(&thief, &victim)
		thief.LastActive = now
		next.Players.put(thief)
		next.Players.put(victim)
		next.Queue.Advance()

		nextID, _ := next.Queue.Current()
		result = StealResult{
			Outcome: outcome,
			Thief:   thief,
			Victim:  victim,
			Next:    nextID,
		}

		points := outcome.VictimDelta
		if points < 0 {
			points = -points
		}
		return []model.Notification{
			{
				Type:      model.NotifyRobbed,
				To:        victimID,
				Message:   robbedMessage(thief.DisplayName, outcome.Success, points),
				Timestamp: now,
			},
			c.yourTurn(next, now),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("robbery resolved",
		slog.String("thief_id", string(thiefID)),
		slog.String("victim_id", string(victimID)),
		slog.Int("die", result.Outcome.Die),
		slog.Bool("success", result.Outcome.Success),
	)
	return &result, nil
}

// LeaderboardFor returns the leaderboard if viewerID may see it: the admin
// always, registered players once the game is active
func (c *Controller) LeaderboardFor(ctx context.Context, viewerID model.PlayerID) (*Leaderboard, error) {
	var (
		lb     *Leaderboard
		viewer *model.Player
		err    error
	)
	c.read(func(s *Session) {
		var admin bool
		admin, err = c.authorizeViewer(s, viewerID)
		if err != nil {
			return
		}
		if !admin {
			p, _ := s.Players.Get(viewerID)
			viewer = &p
		}
		lb = buildLeaderboard(s)
	})
	if err != nil {
		return nil, err
	}
	if viewer != nil {
		c.checkInactivity(ctx, *viewer)
	}
	return lb, nil
}

// Reset clears every player, the queue and all location progress, and
// deletes the persisted snapshot
func (c *Controller) Reset(ctx context.Context, adminID model.PlayerID) error {
	if !c.IsAdmin(adminID) {
		return model.ErrAdminOnly
	}

	ctx = context.WithoutCancel(ctx)
	c.mu.Lock()
	if err := c.storage.DeleteSession(ctx); err != nil {
		c.mu.Unlock()
		c.logger.Error("failed to delete session",
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("%w: reset: %w", model.ErrPersistenceFailure, err)
	}
	c.session = NewSession(c.catalog)
	c.mu.Unlock()

	c.warnMu.Lock()
	c.warned = make(map[model.PlayerID]time.Time)
	c.warnMu.Unlock()

	c.logger.Info("session reset")
	return nil
}

// Status returns a summary of the session
func (c *Controller) Status(ctx context.Context) StatusView {
	var view StatusView
	c.read(func(s *Session) {
		view = StatusView{
			Status:    s.Status,
			Players:   s.Players.Len(),
			Locations: c.catalog.Len(),
		}
		if s.IsActive() {
			if p, err := s.CurrentPlayer(); err == nil {
				view.Current = &p
			}
		}
		for _, st := range s.Locations.States() {
			if st.Closed {
				view.ClosedLocations++
			}
		}
	})
	return view
}

// Menu returns the actions available to userID right now
func (c *Controller) Menu(ctx context.Context, userID model.PlayerID) (*Menu, error) {
	var (
		menu Menu
		err  error
	)
	c.read(func(s *Session) {
		if s.IsActive() {
			if p, cerr := s.CurrentPlayer(); cerr == nil {
				menu.Current = &p
			}
		}
		if c.IsAdmin(userID) {
			menu.IsAdmin = true
			menu.CanViewBoard = true
			menu.CanViewScores = true
			return
		}

		p, gerr := s.Players.Get(userID)
		if gerr != nil {
			err = gerr
			return
		}
		if !s.IsActive() {
			err = model.ErrNotStarted
			return
		}
		menu.Player = &p
		menu.CanViewBoard = true
		menu.CanViewScores = true
		menu.IsMyTurn = s.Queue.IsCurrent(userID)
		if menu.IsMyTurn {
			menu.CanGuess = len(openLocations(s)) > 0
			menu.CanSteal = stealEligibility(s, userID) == nil
		}
	})
	if err != nil {
		return nil, err
	}
	if menu.Player != nil {
		c.checkInactivity(ctx, *menu.Player)
	}
	return &menu, nil
}

// authorizeViewer allows the admin always and registered players once the
// game is active
func (c *Controller) authorizeViewer(s *Session, viewerID model.PlayerID) (bool, error) {
	if c.IsAdmin(viewerID) {
		return true, nil
	}
	if !s.Players.IsRegistered(viewerID) {
		return false, fmt.Errorf("%w: %s", model.ErrNotRegistered, viewerID)
	}
	if !s.IsActive() {
		return false, model.ErrNotStarted
	}
	return false, nil
}

func boardOf(s *Session) []LocationSummary {
	locs := s.Locations.Catalog()
	out := make([]LocationSummary, 0, len(locs))
	for _, loc := range locs {
		st, _ := s.Locations.StateOf(loc.ID)
		out = append(out, LocationSummary{ID: loc.ID, Name: loc.Name, Closed: st.Closed})
	}
	return out
}

func openLocations(s *Session) []LocationSummary {
	var out []LocationSummary
	for _, l := range boardOf(s) {
		if !l.Closed {
			out = append(out, l)
		}
	}
	return out
}

// Board lists every location with its closed flag
func (c *Controller) Board(ctx context.Context, viewerID model.PlayerID) ([]LocationSummary, error) {
	var (
		board []LocationSummary
		err   error
	)
	c.read(func(s *Session) {
		if _, err = c.authorizeViewer(s, viewerID); err != nil {
			return
		}
		board = boardOf(s)
	})
	return board, err
}

// OpenLocations lists the locations that still accept guesses
func (c *Controller) OpenLocations(ctx context.Context, viewerID model.PlayerID) ([]LocationSummary, error) {
	var (
		open []LocationSummary
		err  error
	)
	c.read(func(s *Session) {
		if _, err = c.authorizeViewer(s, viewerID); err != nil {
			return
		}
		open = openLocations(s)
		if open == nil {
			open = []LocationSummary{}
		}
	})
	return open, err
}

// Location returns the detail of one location. The secret word is included
// only for the admin.
func (c *Controller) Location(ctx context.Context, viewerID model.PlayerID, id model.LocationID) (*LocationView, error) {
	var (
		view LocationView
		err  error
	)
	c.read(func(s *Session) {
		var admin bool
		if admin, err = c.authorizeViewer(s, viewerID); err != nil {
			return
		}
		var loc model.Location
		if loc, err = s.Locations.Location(id); err != nil {
			return
		}
		st, _ := s.Locations.StateOf(id)

		view = LocationView{
			ID:          loc.ID,
			Name:        loc.Name,
			Narrative:   loc.Narrative,
			ImageRef:    loc.ImageRef,
			Closed:      st.Closed,
			LastAttempt: st.LastAttempt,
		}
		if st.LastAttempt != nil {
			view.LastMatches = scoring.Compare(st.LastAttempt.Word, loc.SecretWord)
			view.LastVerdict = scoring.Verdict(view.LastMatches)
		}
		if admin {
			view.SecretWord = loc.SecretWord
		}
	})
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (c *Controller) yourTurn(s *Session, now time.Time) model.Notification {
	p, _ := s.CurrentPlayer()
	return model.Notification{
		Type:      model.NotifyYourTurn,
		To:        p.ID,
		Message:   yourTurnMessage(p.DisplayName),
		Timestamp: now,
	}
}

// checkInactivity sends one advisory per idle period. It never changes the session.
func (c *Controller) checkInactivity(ctx context.Context, p model.Player) {
	if c.cfg.InactivityThreshold <= 0 || c.notifier == nil {
		return
	}
	now := c.clock.Now()
	if now.Sub(p.LastActive) <= c.cfg.InactivityThreshold {
		return
	}

	c.warnMu.Lock()
	if last, ok := c.warned[p.ID]; ok && last.Equal(p.LastActive) {
		c.warnMu.Unlock()
		return
	}
	c.warned[p.ID] = p.LastActive
	c.warnMu.Unlock()

	c.logger.Info("player inactive",
		slog.String("player_id", string(p.ID)),
		slog.Duration("idle", now.Sub(p.LastActive)),
	)
	c.notifier.Dispatch(ctx, model.Notification{
		Type:      model.NotifyInactivity,
		To:        p.ID,
		Message:   inactivityMessage(p.DisplayName),
		Timestamp: now,
	})
}
