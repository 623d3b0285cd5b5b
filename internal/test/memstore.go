package test

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/arcregistry/wallet-activation/internal/data"
	"github.com/shopspring/decimal"
)

// MemStore is an in-memory stand-in for store.Postgres. It enforces the same
// (wallet, chain) uniqueness on registrations and counts rejected inserts.
type MemStore struct {
	mu            sync.Mutex
	chains        map[int]*data.Chain
	wallets       map[string]*data.Wallet
	registrations map[int64]*data.Registration
	nextID        int64

	insertGate *sync.WaitGroup
	conflicts  atomic.Int64
	promotions atomic.Int64
}

func NewMemStore() *MemStore {
	return &MemStore{
		chains:        make(map[int]*data.Chain),
		wallets:       make(map[string]*data.Wallet),
		registrations: make(map[int64]*data.Registration),
	}
}

// HoldInserts makes every InsertRegistration call block until n callers have arrived.
func (m *MemStore) HoldInserts(n int) {
	wg := &sync.WaitGroup{}
	wg.Add(n)

	m.mu.Lock()
	m.insertGate = wg
	m.mu.Unlock()
}

// Conflicts returns the number of inserts rejected with data.ErrUniqueViolation.
func (m *MemStore) Conflicts() int64 {
	return m.conflicts.Load()
}

// Promotions returns the number of PromoteWallet calls that changed a row.
func (m *MemStore) Promotions() int64 {
	return m.promotions.Load()
}

func (m *MemStore) PutChain(c *data.Chain) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *c
	m.chains[c.ChainID] = &cp
}

func (m *MemStore) PutWallet(w *data.Wallet) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *w
	m.wallets[w.WalletAddress] = &cp
}

// Registrations returns copies of all stored registrations ordered by id.
func (m *MemStore) Registrations() []*data.Registration {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := make([]*data.Registration, 0, len(m.registrations))
	for _, r := range m.registrations {
		cp := *r
		res = append(res, &cp)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })

	return res
}

// ExpireRegistration moves valid_to of the registration into the past.
func (m *MemStore) ExpireRegistration(id int64, validTo time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if r, ok := m.registrations[id]; ok {
		r.ValidTo = validTo
	}
}

func (m *MemStore) ChainByID(_ context.Context, chainID int) (*data.Chain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.chains[chainID]
	if !ok {
		return nil, data.ErrNotFound
	}

	cp := *c
	return &cp, nil
}

func (m *MemStore) ActiveChains(_ context.Context) ([]*data.Chain, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	res := make([]*data.Chain, 0, len(m.chains))
	for _, c := range m.chains {
		if c.IsActive {
			cp := *c
			res = append(res, &cp)
		}
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ChainID < res[j].ChainID })

	return res, nil
}

func (m *MemStore) SeedChains(_ context.Context, chains []*data.Chain) error {
	for _, c := range chains {
		m.PutChain(c)
	}

	return nil
}

func (m *MemStore) LatestRegistration(_ context.Context, walletAddress string, chainID int) (*data.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.latest(func(r *data.Registration) bool {
		return r.WalletAddress == walletAddress && r.ChainID == chainID
	})
}

func (m *MemStore) LatestRegistrationForWallet(_ context.Context, walletAddress string) (*data.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.latest(func(r *data.Registration) bool {
		return r.WalletAddress == walletAddress
	})
}

func (m *MemStore) latest(match func(r *data.Registration) bool) (*data.Registration, error) {
	var found *data.Registration
	for _, r := range m.registrations {
		if !match(r) {
			continue
		}
		if found == nil || r.UpdatedAt.After(found.UpdatedAt) || (r.UpdatedAt.Equal(found.UpdatedAt) && r.ID > found.ID) {
			found = r
		}
	}

	if found == nil {
		return nil, data.ErrNotFound
	}

	cp := *found
	return &cp, nil
}

func (m *MemStore) RegistrationByID(_ context.Context, id int64) (*data.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.registrations[id]
	if !ok {
		return nil, data.ErrNotFound
	}

	cp := *r
	return &cp, nil
}

func (m *MemStore) InsertRegistration(_ context.Context, reg *data.Registration) error {
	m.mu.Lock()
	gate := m.insertGate
	m.mu.Unlock()

	if gate != nil {
		gate.Done()
		gate.Wait()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.registrations {
		if r.WalletAddress == reg.WalletAddress && r.ChainID == reg.ChainID {
			m.conflicts.Add(1)
			return data.ErrUniqueViolation
		}
	}

	m.nextID++
	now := time.Now()
	reg.ID = m.nextID
	reg.Confirmed = false
	reg.TxHash = null.String{}
	reg.CreatedAt = now
	reg.UpdatedAt = now

	cp := *reg
	m.registrations[reg.ID] = &cp

	return nil
}

func (m *MemStore) UpdatePendingRegistration(_ context.Context, id int64, amount decimal.Decimal, validTo time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.registrations[id]
	if !ok || r.Confirmed {
		return false, nil
	}

	r.CryptoAmount = amount
	r.ValidTo = validTo
	r.TxHash = null.String{}
	r.UpdatedAt = time.Now()

	return true, nil
}

func (m *MemStore) ConfirmRegistration(_ context.Context, id int64, txHash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.registrations[id]
	if !ok || r.Confirmed {
		return false, nil
	}

	r.Confirmed = true
	r.TxHash = null.StringFrom(txHash)
	r.UpdatedAt = time.Now()

	return true, nil
}

func (m *MemStore) EnsureWallet(_ context.Context, walletAddress string, now time.Time) (*data.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.wallets[walletAddress]
	if !ok {
		w = &data.Wallet{
			WalletAddress: walletAddress,
			CreatedAt:     now,
		}
		m.wallets[walletAddress] = w
	}

	w.LastLogin = null.TimeFrom(now)
	w.UpdatedAt = now

	cp := *w
	return &cp, nil
}

func (m *MemStore) GetWallet(_ context.Context, walletAddress string) (*data.Wallet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.wallets[walletAddress]
	if !ok {
		return nil, data.ErrNotFound
	}

	cp := *w
	return &cp, nil
}

func (m *MemStore) PromoteWallet(_ context.Context, walletAddress string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.wallets[walletAddress]
	if !ok {
		now := time.Now()
		w = &data.Wallet{WalletAddress: walletAddress, CreatedAt: now, UpdatedAt: now}
		m.wallets[walletAddress] = w
	} else if w.FeePaid {
		return false, nil
	}

	w.FeePaid = true
	if w.SetupStep == 0 {
		w.SetupStep = 1
	}
	w.UpdatedAt = time.Now()
	m.promotions.Add(1)

	return true, nil
}
