package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/iliyamo/trendaura-auth/internal/model"
	"github.com/iliyamo/trendaura-auth/internal/repository"
	"github.com/iliyamo/trendaura-auth/internal/storage"
)

// memDB stands in for the MySQL-backed stores: accounts, profiles and
// collections behind one mutex, with the same uniqueness rules.
type memDB struct {
	mu          sync.Mutex
	nextID      uint64
	users       map[uint64]model.User
	profiles    map[uint64]model.Profile
	collections []model.Collection

	upsertErr     error
	collectionErr error
}

func newMemDB() *memDB {
	return &memDB{users: map[uint64]model.User{}, profiles: map[uint64]model.Profile{}}
}

func (m *memDB) GetByEmail(_ context.Context, email string) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return model.User{}, repository.ErrNotFound
}

func (m *memDB) GetByID(_ context.Context, id uint64) (model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (m *memDB) MarkEmailVerified(_ context.Context, id uint64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return repository.ErrNotFound
	}
	if u.EmailVerifiedAt == nil {
		now := time.Now().UTC()
		u.EmailVerifiedAt = &now
		m.users[id] = u
	}
	return nil
}

func (m *memDB) Register(_ context.Context, u *model.User) (uint64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return 0, repository.ErrEmailExists
		}
	}
	m.nextID++
	stored := *u
	stored.ID = m.nextID
	stored.CreatedAt = time.Now().UTC()
	m.users[stored.ID] = stored
	m.profiles[stored.ID] = model.Profile{UserID: stored.ID}
	return stored.ID, nil
}

func (m *memDB) FindView(_ context.Context, id uint64) (model.ProfileView, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return model.ProfileView{}, repository.ErrNotFound
	}
	p := m.profiles[id]
	return model.ProfileView{
		ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email, CreatedAt: u.CreatedAt,
		ProfilePicture: p.Picture, Bio: p.Bio, Location: p.Location, Website: p.Website,
	}, nil
}

func (m *memDB) Upsert(_ context.Context, id uint64, upd model.ProfileUpdate) (model.Profile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upsertErr != nil {
		return model.Profile{}, m.upsertErr
	}
	if _, ok := m.users[id]; !ok {
		return model.Profile{}, repository.ErrNotFound
	}
	prev, ok := m.profiles[id]
	if !ok {
		prev = model.Profile{UserID: id}
	}
	m.profiles[id] = prev.Merge(upd)
	return prev, nil
}

func (m *memDB) Create(_ context.Context, c *model.Collection) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.collectionErr != nil {
		return m.collectionErr
	}
	c.ID = uint64(len(m.collections) + 1)
	c.CreatedAt = time.Now().UTC()
	m.collections = append(m.collections, *c)
	return nil
}

func (m *memDB) ListAll(context.Context) ([]model.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.Collection, len(m.collections))
	copy(out, m.collections)
	return out, nil
}

func (m *memDB) userCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.users)
}

// collectionStore adapts memDB to CollectionStore; GetByID clashes with the
// user lookup.
type collectionStore struct{ *memDB }

func (c collectionStore) GetByID(_ context.Context, id uint64) (model.Collection, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, col := range c.collections {
		if col.ID == id {
			return col, nil
		}
	}
	return model.Collection{}, repository.ErrNotFound
}

// failingStore wraps a real store and fails on demand.
type failingStore struct {
	inner     storage.Store
	storeErr  error
	deleteErr error
	deleted   []string
}

func (f *failingStore) Store(ctx context.Context, data []byte, name string) (string, error) {
	if f.storeErr != nil {
		return "", f.storeErr
	}
	return f.inner.Store(ctx, data, name)
}

func (f *failingStore) Delete(ctx context.Context, ref string) error {
	f.deleted = append(f.deleted, ref)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	return f.inner.Delete(ctx, ref)
}

type sentEmail struct {
	Kind, To, FirstName, Code string
}

type recordingNotify struct {
	mu   sync.Mutex
	sent []sentEmail
}

func (r *recordingNotify) VerificationEmail(to, firstName, code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentEmail{"verification", to, firstName, code})
}

func (r *recordingNotify) LoginNotification(to, firstName string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, sentEmail{"login", to, firstName, ""})
}

type memCodes struct {
	mu    sync.Mutex
	codes map[string]string
}

func newMemCodes() *memCodes { return &memCodes{codes: map[string]string{}} }

func (c *memCodes) Save(_ context.Context, email, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codes[email] = code
	return nil
}

func (c *memCodes) Consume(_ context.Context, email, code string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if stored, ok := c.codes[email]; ok && stored == code {
		delete(c.codes, email)
		return true, nil
	}
	return false, nil
}

var errBoom = errors.New("boom")
