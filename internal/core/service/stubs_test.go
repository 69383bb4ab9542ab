package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/bilemo/bilemo-api/internal/core/domain"
	"github.com/bilemo/bilemo-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

// memStore is an in-memory Store. Every write bumps the table activity the
// same way the database triggers do, and Tx rolls back on error.
type memStore struct {
	mu       sync.Mutex
	clients  map[uint]domain.Client
	mobiles  map[uint]domain.Mobile
	users    map[uint]domain.User
	activity map[string]domain.TableActivity
	nextID   uint
	clock    time.Time

	failUserDelete error
}

func newMemStore() *memStore {
	return &memStore{
		clients:  make(map[uint]domain.Client),
		mobiles:  make(map[uint]domain.Mobile),
		users:    make(map[uint]domain.User),
		activity: make(map[string]domain.TableActivity),
		clock:    time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) touch(table string) {
	s.clock = s.clock.Add(time.Millisecond)
	a := s.activity[table]
	a.Table = table
	a.LastWriteAt = s.clock
	a.Revision++
	s.activity[table] = a
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) Clients() ports.ClientRepository { return memClients{s} }
func (s *memStore) Mobiles() ports.MobileRepository { return memMobiles{s} }
func (s *memStore) Users() ports.UserRepository     { return memUsers{s} }

func (s *memStore) Tx(_ context.Context, fn func(r ports.Repositories) error) error {
	s.mu.Lock()
	clients := copyMap(s.clients)
	mobiles := copyMap(s.mobiles)
	users := copyMap(s.users)
	activity := copyMap(s.activity)
	s.mu.Unlock()

	if err := fn(s); err != nil {
		s.mu.Lock()
		s.clients, s.mobiles, s.users, s.activity = clients, mobiles, users, activity
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) LastWrite(_ context.Context, table string) (domain.TableActivity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activity[table], nil
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// page applies criteria and id ordering the way the SQL repositories do.
func page[T any](rows map[uint]T, keep func(T) bool, q ports.PageQuery) ([]*T, int64) {
	ids := make([]uint, 0, len(rows))
	for id, row := range rows {
		if keep(row) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	total := int64(len(ids))
	if q.Limit <= 0 || q.Offset >= len(ids) {
		return nil, total
	}
	end := min(q.Offset+q.Limit, len(ids))
	out := make([]*T, 0, end-q.Offset)
	for _, id := range ids[q.Offset:end] {
		row := rows[id]
		out = append(out, &row)
	}
	return out, total
}

func ownerCriteria(q ports.PageQuery) (uint, bool) {
	v, ok := q.Criteria["client_id"]
	if !ok {
		return 0, false
	}
	return v.(uint), true
}

type memClients struct{ s *memStore }

func (r memClients) FindByID(_ context.Context, id uint) (*domain.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.clients[id]
	if !ok {
		return nil, domain.ErrClientNotFound
	}
	return &c, nil
}

func (r memClients) FindByEmail(_ context.Context, email string) (*domain.Client, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.clients {
		if c.Email == email {
			return &c, nil
		}
	}
	return nil, domain.ErrClientNotFound
}

func (r memClients) EmailTaken(_ context.Context, email string, excludeID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.clients {
		if c.Email == email && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r memClients) CountByRole(_ context.Context, role string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for _, c := range r.s.clients {
		if c.Role == role {
			n++
		}
	}
	return n, nil
}

func (r memClients) List(_ context.Context, q ports.PageQuery) ([]*domain.Client, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items, total := page(r.s.clients, func(domain.Client) bool { return true }, q)
	return items, total, nil
}

func (r memClients) Create(_ context.Context, c *domain.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = r.s.id()
	r.s.clients[c.ID] = *c
	r.s.touch("clients")
	return nil
}

func (r memClients) Update(_ context.Context, c *domain.Client) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.clients[c.ID] = *c
	r.s.touch("clients")
	return nil
}

func (r memClients) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.clients, id)
	r.s.touch("clients")
	return nil
}

type memMobiles struct{ s *memStore }

func (r memMobiles) FindByID(_ context.Context, id uint) (*domain.Mobile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.mobiles[id]
	if !ok {
		return nil, domain.ErrMobileNotFound
	}
	return &m, nil
}

func (r memMobiles) NameTaken(_ context.Context, name string, excludeID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, m := range r.s.mobiles {
		if m.Name == name && m.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r memMobiles) List(_ context.Context, q ports.PageQuery) ([]*domain.Mobile, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	items, total := page(r.s.mobiles, func(domain.Mobile) bool { return true }, q)
	return items, total, nil
}

func (r memMobiles) Create(_ context.Context, m *domain.Mobile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = r.s.id()
	r.s.mobiles[m.ID] = *m
	r.s.touch("mobiles")
	return nil
}

func (r memMobiles) Update(_ context.Context, m *domain.Mobile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.mobiles[m.ID] = *m
	r.s.touch("mobiles")
	return nil
}

func (r memMobiles) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.mobiles, id)
	r.s.touch("mobiles")
	return nil
}

type memUsers struct{ s *memStore }

func (r memUsers) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r memUsers) EmailTaken(_ context.Context, clientID uint, email string, excludeID uint) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.ClientID == clientID && u.Email == email && u.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r memUsers) List(_ context.Context, q ports.PageQuery) ([]*domain.User, int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	owner, scoped := ownerCriteria(q)
	items, total := page(r.s.users, func(u domain.User) bool { return !scoped || u.ClientID == owner }, q)
	return items, total, nil
}

func (r memUsers) Create(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u.ID = r.s.id()
	r.s.users[u.ID] = *u
	r.s.touch("users")
	return nil
}

func (r memUsers) Update(_ context.Context, u *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.users[u.ID] = *u
	r.s.touch("users")
	return nil
}

func (r memUsers) Delete(_ context.Context, id uint) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.users, id)
	r.s.touch("users")
	return nil
}

func (r memUsers) DeleteByClient(_ context.Context, clientID uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failUserDelete != nil {
		return 0, r.s.failUserDelete
	}
	var n int64
	for id, u := range r.s.users {
		if u.ClientID == clientID {
			delete(r.s.users, id)
			n++
		}
	}
	if n > 0 {
		r.s.touch("users")
	}
	return n, nil
}

type memCache struct {
	entries map[string][]byte
	gets    int
	hits    int
	err     error
}

func newMemCache() *memCache { return &memCache{entries: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.gets++
	if c.err != nil {
		return nil, false, c.err
	}
	v, ok := c.entries[key]
	if ok {
		c.hits++
	}
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	if c.err != nil {
		return c.err
	}
	c.entries[key] = value
	return nil
}

type recordingNotifier struct {
	sent []domain.AccountNotification
	err  error
}

func (n *recordingNotifier) NotifyAccountCreated(_ context.Context, msg domain.AccountNotification) error {
	n.sent = append(n.sent, msg)
	return n.err
}

type recordingAudit struct {
	entries []domain.AuditEntry
}

func (a *recordingAudit) Record(_ context.Context, e domain.AuditEntry) error {
	a.entries = append(a.entries, e)
	return nil
}

var errBoom = errors.New("boom")

// fixture wires every service against one memStore.
type fixture struct {
	store    *memStore
	cache    *memCache
	notifier *recordingNotifier
	audit    *recordingAudit
	clients  *ClientService
	mobiles  *MobileService
	users    *UserService
	admin    domain.Principal
}

func newFixture() *fixture {
	f := &fixture{
		store:    newMemStore(),
		cache:    newMemCache(),
		notifier: &recordingNotifier{},
		audit:    &recordingAudit{},
	}
	opts := Options{
		Store:      f.store,
		Tables:     f.store,
		Cache:      f.cache,
		Audit:      f.audit,
		Notifier:   f.notifier,
		Logger:     discardLogger,
		BcryptCost: bcrypt.MinCost,
	}
	f.clients = NewClientService(opts, 5)
	f.mobiles = NewMobileService(opts, 5)
	f.users = NewUserService(opts, 5)
	f.admin = domain.Principal{ClientID: 0, Email: "root@bilemo.test", Role: domain.RoleAdmin}
	return f
}

func (f *fixture) client(name, email string) (*domain.Client, domain.Principal) {
	c, err := f.clients.Create(context.Background(), f.admin, ports.ClientInput{
		Name: name, Email: email, Password: "secret-" + name,
	})
	if err != nil {
		panic(err)
	}
	return c, c.Principal()
}
