// Package memory is the reference API server's storage: users, events and
// attendance kept in process memory.
package memory

import (
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/ErlanBelekov/events-client/internal/domain"
	"github.com/ErlanBelekov/events-client/internal/repository"
)

type account struct {
	user        domain.User
	hash        []byte
	hasLocation bool
}

type storedEvent struct {
	event   domain.Event
	creator int64
}

// Store implements repository.AccountStore and repository.EventStore.
type Store struct {
	mu sync.RWMutex

	lastUserID  int64
	lastEventID int64

	users      map[int64]*account
	byEmail    map[string]int64
	events     map[int64]*storedEvent
	attendance map[int64]map[int64]struct{} // event id -> user ids
}

func NewStore() *Store {
	return &Store{
		users:      make(map[int64]*account),
		byEmail:    make(map[string]int64),
		events:     make(map[int64]*storedEvent),
		attendance: make(map[int64]map[int64]struct{}),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ---- accounts ----

func (s *Store) CreateAccount(_ context.Context, user domain.User, passwordHash []byte) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := normalizeEmail(user.Email)
	if _, taken := s.byEmail[key]; taken {
		return nil, domain.ErrEmailTaken
	}

	s.lastUserID++
	user.ID = s.lastUserID
	user.Password = ""
	user.Me = false
	s.users[user.ID] = &account{
		user:        user,
		hash:        passwordHash,
		hasLocation: user.Lat != 0 || user.Lng != 0,
	}
	s.byEmail[key] = user.ID
	return &user, nil
}

func (s *Store) FindAccountByEmail(_ context.Context, email string) (*repository.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	a := s.users[id]
	return &repository.Account{User: a.user, PasswordHash: slices.Clone(a.hash)}, nil
}

func (s *Store) FindUser(_ context.Context, id int64) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := a.user
	return &u, nil
}

func (s *Store) SetLocation(_ context.Context, id int64, lat, lng float64) error {
	return s.updateAccount(id, func(a *account) error {
		a.user.Lat, a.user.Lng = lat, lng
		a.hasLocation = true
		return nil
	})
}

func (s *Store) UpdateProfile(_ context.Context, id int64, name, email string) error {
	return s.updateAccount(id, func(a *account) error {
		oldKey, newKey := normalizeEmail(a.user.Email), normalizeEmail(email)
		if newKey != oldKey {
			if _, taken := s.byEmail[newKey]; taken {
				return domain.ErrEmailTaken
			}
			delete(s.byEmail, oldKey)
			s.byEmail[newKey] = id
		}
		a.user.Name = name
		a.user.Email = email
		return nil
	})
}

func (s *Store) UpdateAvatar(_ context.Context, id int64, avatar string) error {
	return s.updateAccount(id, func(a *account) error {
		a.user.Avatar = avatar
		return nil
	})
}

func (s *Store) UpdatePasswordHash(_ context.Context, id int64, hash []byte) error {
	return s.updateAccount(id, func(a *account) error {
		a.hash = hash
		return nil
	})
}

func (s *Store) updateAccount(id int64, fn func(a *account) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.users[id]
	if !ok {
		return domain.ErrNotFound
	}
	return fn(a)
}

// ---- events ----

func (s *Store) ListEvents(_ context.Context, viewer int64) ([]domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := slices.Sorted(maps.Keys(s.events))
	out := make([]domain.Event, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.project(s.events[id], viewer))
	}
	return out, nil
}

func (s *Store) GetEvent(_ context.Context, id, viewer int64) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	se, ok := s.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	e := s.project(se, viewer)
	return &e, nil
}

func (s *Store) CreateEvent(_ context.Context, event domain.Event, creator int64) (*domain.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[creator]; !ok {
		return nil, domain.ErrNotFound
	}

	s.lastEventID++
	event.ID = s.lastEventID
	event.Creator = nil
	event.Distance = nil
	event.NumAttend, event.Attend, event.Mine = 0, false, false

	se := &storedEvent{event: event, creator: creator}
	s.events[event.ID] = se
	e := s.project(se, creator)
	return &e, nil
}

func (s *Store) DeleteEvent(_ context.Context, id, requester int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	se, ok := s.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	if se.creator != requester {
		return domain.ErrForbidden
	}
	delete(s.events, id)
	delete(s.attendance, id)
	return nil
}

func (s *Store) Attendees(_ context.Context, id int64) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.events[id]; !ok {
		return nil, domain.ErrNotFound
	}
	userIDs := slices.Sorted(maps.Keys(s.attendance[id]))
	out := make([]domain.User, 0, len(userIDs))
	for _, uid := range userIDs {
		if a, ok := s.users[uid]; ok {
			out = append(out, a.user)
		}
	}
	return out, nil
}

// SetAttendance is idempotent: joining twice or leaving an event the user
// does not attend succeeds without changing anything.
func (s *Store) SetAttendance(_ context.Context, id, user int64, attend bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.events[id]; !ok {
		return domain.ErrNotFound
	}
	if !attend {
		delete(s.attendance[id], user)
		return nil
	}
	if s.attendance[id] == nil {
		s.attendance[id] = make(map[int64]struct{})
	}
	s.attendance[id][user] = struct{}{}
	return nil
}

// project fills the per-viewer fields. Callers hold s.mu.
func (s *Store) project(se *storedEvent, viewer int64) domain.Event {
	e := se.event
	if a, ok := s.users[se.creator]; ok {
		creator := a.user
		e.Creator = &creator
	}

	attendees := s.attendance[e.ID]
	_, e.Attend = attendees[viewer]
	e.NumAttend = len(attendees)
	e.Mine = se.creator == viewer

	if v, ok := s.users[viewer]; ok && v.hasLocation {
		d := DistanceKM(v.user.Lat, v.user.Lng, e.Lat, e.Lng)
		e.Distance = &d
	}
	return e
}
