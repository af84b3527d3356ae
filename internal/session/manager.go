package session

import (
	"context"
	"errors"
	"sync"
	"time"

	apperrors "agro-advisor/internal/common/errors"
	"agro-advisor/internal/common/logger"
	"agro-advisor/internal/models"

	"github.com/google/uuid"
)

// Manager serialises read-modify-write cycles per session id so concurrent
// requests on one session never lose transcript entries or toggles.
type Manager struct {
	store  Store
	ttl    time.Duration
	logger logger.Logger
	now    func() time.Time

	mu    sync.Mutex
	locks map[string]*idLock
}

type idLock struct {
	mu   sync.Mutex
	refs int
}

func NewManager(store Store, ttl time.Duration, log logger.Logger) *Manager {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	return &Manager{
		store:  store,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "session"}),
		now:    time.Now,
		locks:  make(map[string]*idLock),
	}
}

func (m *Manager) Create(ctx context.Context) (*models.Session, error) {
	s := models.NewSession(uuid.NewString(), m.now().UTC(), m.ttl)
	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		return nil, apperrors.NewSessionStoreFailedError(err)
	}
	m.logger.Debug("session created", map[string]interface{}{"sessionId": s.ID})
	return s, nil
}

func (m *Manager) Get(ctx context.Context, id string) (*models.Session, error) {
	s, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, m.mapError(id, err)
	}
	return s, nil
}

// Update loads the session, applies fn and saves the result while holding the
// session's lock. When fn returns an error nothing is saved.
func (m *Manager) Update(ctx context.Context, id string, fn func(*models.Session) error) (*models.Session, error) {
	unlock := m.lock(id)
	defer unlock()

	s, err := m.store.Load(ctx, id)
	if err != nil {
		return nil, m.mapError(id, err)
	}

	if err := fn(s); err != nil {
		return nil, err
	}

	s.Touch(m.now().UTC(), m.ttl)
	if err := m.store.Save(ctx, s, m.ttl); err != nil {
		return nil, apperrors.NewSessionStoreFailedError(err)
	}
	return s, nil
}

func (m *Manager) Delete(ctx context.Context, id string) error {
	unlock := m.lock(id)
	defer unlock()

	if _, err := m.store.Load(ctx, id); err != nil {
		return m.mapError(id, err)
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return apperrors.NewSessionStoreFailedError(err)
	}
	m.logger.Debug("session deleted", map[string]interface{}{"sessionId": id})
	return nil
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

func (m *Manager) mapError(id string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return apperrors.NewSessionNotFoundError(id).WithCause(ErrNotFound)
	}
	return apperrors.NewSessionStoreFailedError(err)
}

func (m *Manager) lock(id string) func() {
	m.mu.Lock()
	l, ok := m.locks[id]
	if !ok {
		l = &idLock{}
		m.locks[id] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()

	return func() {
		l.mu.Unlock()

		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, id)
		}
		m.mu.Unlock()
	}
}
