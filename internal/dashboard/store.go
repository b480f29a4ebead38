package dashboard

import (
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/BerylCAtieno/client-dashboard/internal/models"
	"github.com/BerylCAtieno/client-dashboard/internal/worksheet"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrSessionNotFound = errors.New("session not found")

type session struct {
	mu        sync.Mutex
	id        uuid.UUID
	createdAt time.Time
	state     State
}

// SessionInfo summarizes a session for listings.
type SessionInfo struct {
	ID        uuid.UUID `json:"id"`
	Customer  string    `json:"customer"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store keeps dashboard sessions in memory. Commands on one session run one at a time.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*session
	profile  Profile
	logger   *zap.Logger
}

func NewStore(profile Profile, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		sessions: make(map[uuid.UUID]*session),
		profile:  profile,
		logger:   logger,
	}
}

// Create opens a new session seeded from the store's profile.
func (s *Store) Create() (uuid.UUID, State) {
	sess := &session{
		id:        uuid.New(),
		createdAt: time.Now().UTC(),
		state:     NewState(s.profile),
	}

	s.mu.Lock()
	s.sessions[sess.id] = sess
	s.mu.Unlock()

	s.logger.Info("Session created",
		zap.String("session", sess.id.String()),
		zap.String("customer", sess.state.Subscription.CustomerName))
	return sess.id, sess.state
}

func (s *Store) Get(id uuid.UUID) (State, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return State{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state, nil
}

// Dispatch applies cmd to the session and returns the resulting state. On error the
// session keeps its previous state, which is also returned.
func (s *Store) Dispatch(id uuid.UUID, cmd Command) (State, error) {
	sess, err := s.lookup(id)
	if err != nil {
		return State{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	next, err := Apply(sess.state, cmd)
	if err != nil {
		s.logger.Warn("Command rejected",
			zap.String("session", id.String()),
			zap.String("command", cmd.Name()),
			zap.Error(err))
		return sess.state, err
	}

	sess.state = next
	s.logger.Debug("Command applied",
		zap.String("session", id.String()),
		zap.String("command", cmd.Name()),
		zap.Int("version", next.Version))
	return next, nil
}

// Attachment returns one uploaded file, including its content.
func (s *Store) Attachment(id uuid.UUID, sectionID string, attachmentID uuid.UUID) (models.Attachment, error) {
	state, err := s.Get(id)
	if err != nil {
		return models.Attachment{}, err
	}
	sec, ok := state.Section(sectionID)
	if !ok {
		return models.Attachment{}, fmt.Errorf("analysis section %q: %w", sectionID, worksheet.ErrNotFound)
	}
	for _, a := range sec.Attachments {
		if a.ID == attachmentID {
			return a, nil
		}
	}
	return models.Attachment{}, fmt.Errorf("attachment %s: %w", attachmentID, worksheet.ErrNotFound)
}

func (s *Store) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.sessions, id)
	s.logger.Info("Session deleted", zap.String("session", id.String()))
	return nil
}

// List returns all sessions, oldest first.
func (s *Store) List() []SessionInfo {
	s.mu.RLock()
	all := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		all = append(all, sess)
	}
	s.mu.RUnlock()

	infos := make([]SessionInfo, 0, len(all))
	for _, sess := range all {
		sess.mu.Lock()
		infos = append(infos, SessionInfo{
			ID:        sess.id,
			Customer:  sess.state.Subscription.CustomerName,
			Version:   sess.state.Version,
			CreatedAt: sess.createdAt,
		})
		sess.mu.Unlock()
	}
	slices.SortFunc(infos, func(a, b SessionInfo) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
	return infos
}

func (s *Store) lookup(id uuid.UUID) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return sess, nil
}
