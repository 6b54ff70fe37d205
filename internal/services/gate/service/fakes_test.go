package service

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"minishop/internal/core/initdata"
	"minishop/internal/services/gate/domain"
)

const testToken = "123456:TEST-bot-token"

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type update struct {
	sheet string
	index int
	row   []string
}

// memRows is an in-memory RowStore
type memRows struct {
	mu      sync.Mutex
	sheets  map[string][][]string
	appends []update
	updates []update
	readErr error
	calls   atomic.Int32
}

func newMemRows(sheets map[string][][]string) *memRows {
	if sheets == nil {
		sheets = map[string][][]string{}
	}
	return &memRows{sheets: sheets}
}

func (m *memRows) Read(_ context.Context, sheet string) ([][]string, error) {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.readErr != nil {
		return nil, m.readErr
	}
	return append([][]string(nil), m.sheets[sheet]...), nil
}

func (m *memRows) Append(_ context.Context, sheet string, row []string) error {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[sheet] = append(m.sheets[sheet], row)
	m.appends = append(m.appends, update{sheet: sheet, index: len(m.sheets[sheet]) - 1, row: row})
	return nil
}

func (m *memRows) UpdateRow(_ context.Context, sheet string, index int, row []string) error {
	m.calls.Add(1)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheets[sheet][index] = row
	m.updates = append(m.updates, update{sheet: sheet, index: index, row: row})
	return nil
}

// fakeShop serves fixed orders and products
type fakeShop struct {
	orders    []domain.Order
	ordersErr error
	products  map[string]*domain.Product
	failing   map[string]error
	delay     time.Duration

	calls    atomic.Int32
	inflight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeShop) ListOrders(context.Context) ([]domain.Order, error) {
	f.calls.Add(1)
	return f.orders, f.ordersErr
}

func (f *fakeShop) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	f.calls.Add(1)
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err := f.failing[id]; err != nil {
		return nil, err
	}
	return f.products[id], nil
}

// signedInitData builds a query string signed with key at authDate
func signedInitData(t *testing.T, key []byte, authDate time.Time, user *domain.ClientUser) string {
	t.Helper()
	p := initdata.Payload{
		initdata.KeyAuthDate: strconv.FormatInt(authDate.Unix(), 10),
		"query_id":           "AAHdF6IQAAAAAN0XohDhrOrc",
	}
	if user != nil {
		b, err := json.Marshal(user)
		if err != nil {
			t.Fatalf("marshal user: %v", err)
		}
		p[initdata.KeyUser] = string(b)
	}
	p[initdata.KeyHash] = initdata.Sign(p, key)
	return p.Encode()
}

func newTestSvc(rows domain.RowStore, shop domain.Shop, mut func(*Options)) *Svc {
	o := Options{
		BotToken:   testToken,
		FetchLimit: 2,
		Now:        func() time.Time { return testNow },
	}
	if mut != nil {
		mut(&o)
	}
	return New(rows, shop, o)
}

func creds(t *testing.T, u domain.ClientUser) domain.Credentials {
	t.Helper()
	return domain.Credentials{
		InitData: signedInitData(t, initdata.DeriveKey(testToken), testNow.Add(-time.Minute), &u),
		Unsafe:   u,
	}
}
