package repository

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"pool-market-client/internal/models"
)

// MemoryStore keeps users and pools in process memory. It backs the demo API
// when no database is configured.
type MemoryStore struct {
	mu        sync.RWMutex
	users     map[string]*UserRecord
	pools     map[string]*models.Pool
	poolOrder []string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[string]*UserRecord),
		pools: make(map[string]*models.Pool),
	}
}

// Users returns the user repository view of the store
func (s *MemoryStore) Users() *MemoryUsers {
	return &MemoryUsers{s: s}
}

// Pools returns the pool repository view of the store
func (s *MemoryStore) Pools() *MemoryPools {
	return &MemoryPools{s: s}
}

// MemoryUsers is the in-memory user repository
type MemoryUsers struct {
	s *MemoryStore
}

func cloneUser(u *UserRecord) *UserRecord {
	c := *u
	if u.AvatarURL != nil {
		avatar := *u.AvatarURL
		c.AvatarURL = &avatar
	}
	c.PublishedPoolsCount = nil
	return &c
}

// Create creates a new user
func (r *MemoryUsers) Create(_ context.Context, user *UserRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.emailTakenLocked(user.Email, "") {
		return ErrEmailTaken
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

// GetByID retrieves a user by ID
func (r *MemoryUsers) GetByID(_ context.Context, id string) (*UserRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneUser(u), nil
}

// GetByEmail retrieves a user by email, ignoring case
func (r *MemoryUsers) GetByEmail(_ context.Context, email string) (*UserRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			return cloneUser(u), nil
		}
	}
	return nil, ErrNotFound
}

// Update stores the profile fields and password hash of a user
func (r *MemoryUsers) Update(_ context.Context, user *UserRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.ID]; !ok {
		return ErrNotFound
	}
	if r.emailTakenLocked(user.Email, user.ID) {
		return ErrEmailTaken
	}
	r.s.users[user.ID] = cloneUser(user)
	return nil
}

// List returns all users ordered by creation time
func (r *MemoryUsers) List(_ context.Context) ([]models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	users := make([]models.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		users = append(users, cloneUser(u).User)
	}
	slices.SortStableFunc(users, func(a, b models.User) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return users, nil
}

func (r *MemoryUsers) emailTakenLocked(email, exceptID string) bool {
	for id, u := range r.s.users {
		if id != exceptID && strings.EqualFold(u.Email, email) {
			return true
		}
	}
	return false
}

// MemoryPools is the in-memory pool repository
type MemoryPools struct {
	s *MemoryStore
}

func clonePool(p *models.Pool) *models.Pool {
	c := *p
	c.Images = slices.Clone(p.Images)
	c.BusyDays = slices.Clone(p.BusyDays)
	if p.Filters != nil {
		f := *p.Filters
		c.Filters = &f
	}
	c.Owner = nil
	return &c
}

// Create creates a new pool
func (r *MemoryPools) Create(_ context.Context, pool *models.Pool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pools[pool.ID]; !ok {
		r.s.poolOrder = append(r.s.poolOrder, pool.ID)
	}
	r.s.pools[pool.ID] = clonePool(pool)
	return nil
}

// GetByID retrieves a pool by ID
func (r *MemoryPools) GetByID(_ context.Context, id string) (*models.Pool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pools[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clonePool(p), nil
}

// List returns the pools matching q in insertion order
func (r *MemoryPools) List(_ context.Context, q PoolQuery) ([]models.Pool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	pools := []models.Pool{}
	for _, id := range r.s.poolOrder {
		p := r.s.pools[id]
		if q.Matches(p) {
			pools = append(pools, *clonePool(p))
		}
	}
	return pools, nil
}

// Update stores every writable field of a pool
func (r *MemoryPools) Update(_ context.Context, pool *models.Pool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pools[pool.ID]; !ok {
		return ErrNotFound
	}
	r.s.pools[pool.ID] = clonePool(pool)
	return nil
}

// Delete deletes a pool by ID
func (r *MemoryPools) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pools[id]; !ok {
		return ErrNotFound
	}
	delete(r.s.pools, id)
	r.s.poolOrder = slices.DeleteFunc(r.s.poolOrder, func(v string) bool { return v == id })
	return nil
}

// CountByUser returns the number of pools owned by a user
func (r *MemoryPools) CountByUser(_ context.Context, userID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	count := 0
	for _, p := range r.s.pools {
		if p.UserID == userID {
			count++
		}
	}
	return count, nil
}

const demoImage = "https://t3.ftcdn.net/jpg/02/80/11/26/360_F_280112608_32mLVErazmuz6OLyrz2dK4MgBULBUCSO.jpg"

// DemoPools returns the sample listings the marketplace launched with, all
// owned by ownerID and visible
func DemoPools(ownerID string, now time.Time) []models.Pool {
	price := func(v float64) *float64 { return &v }

	pools := []models.Pool{
		{
			ID: "1", Title: "Vila Sunce", City: "Mostar", Capacity: 8, PricePerDay: price(150),
			Images: []string{
				demoImage,
				"https://leisurepoolscanada.ca/wp-content/uploads/2020/06/best-type-of-swimming-pool-for-my-home_2.jpg",
			},
		},
		{ID: "2", Title: "Oaza Mira", City: "Sarajevo", Capacity: 12, PricePerDay: price(220)},
		{ID: "3", Title: "Plavi Raj", City: "Tuzla", Capacity: 6},
		{ID: "4", Title: "Jadranska Laguna", City: "Neum", Capacity: 10, PricePerDay: price(280)},
		{ID: "5", Title: "Zeleni Brežuljak", City: "Banja Luka", Capacity: 14, PricePerDay: price(240)},
		{ID: "6", Title: "Kamenita Bašta", City: "Konjic", Capacity: 5},
		{ID: "7", Title: "Mostarska Terasa", City: "Mostar", Capacity: 9, PricePerDay: price(190)},
		{ID: "8", Title: "Rimski Izvor", City: "Ilidža", Capacity: 7, PricePerDay: price(170)},
		{ID: "9", Title: "Mala Laguna", City: "Zenica", Capacity: 4},
	}

	for i := range pools {
		pools[i].UserID = ownerID
		pools[i].IsVisible = true
		if len(pools[i].Images) == 0 {
			pools[i].Images = []string{demoImage}
		}
		pools[i].CreatedAt = now.Add(time.Duration(i) * time.Second)
		pools[i].UpdatedAt = pools[i].CreatedAt
	}
	return pools
}
