package customer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"myLocalMarket/business/favorites"
	"myLocalMarket/business/gamification"
	"myLocalMarket/business/points"
	"myLocalMarket/domain"
	"myLocalMarket/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryCustomers backs the customer, points and favorites services at once.
type memoryCustomers struct {
	mu        sync.Mutex
	customers map[uint]*domain.Customer
	nextID    uint
}

func newMemoryCustomers() *memoryCustomers {
	return &memoryCustomers{customers: make(map[uint]*domain.Customer)}
}

func (m *memoryCustomers) Create(_ context.Context, c *domain.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c.ID = m.nextID
	stored := *c
	m.customers[c.ID] = &stored
	return nil
}

func (m *memoryCustomers) FindByID(_ context.Context, id uint) (domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return *c, nil
}

func (m *memoryCustomers) FindByEmail(_ context.Context, email string) (domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.customers {
		if c.Email == email {
			return *c, nil
		}
	}
	return domain.Customer{}, domain.ErrCustomerNotFound
}

func (m *memoryCustomers) Exists(_ context.Context, id uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.customers[id]
	return ok, nil
}

func (m *memoryCustomers) AddPoints(_ context.Context, id uint, amount int64, derive points.DeriveFunc) (domain.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.customers[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	c.Points += amount
	c.Batch, c.Title = derive(c.Points)
	return *c, nil
}

func (m *memoryCustomers) snapshot() map[uint]domain.Customer {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[uint]domain.Customer, len(m.customers))
	for id, c := range m.customers {
		out[id] = *c
	}
	return out
}

func (m *memoryCustomers) restore(snap map[uint]domain.Customer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.customers = make(map[uint]*domain.Customer, len(snap))
	for id, c := range snap {
		c := c
		m.customers[id] = &c
	}
}

type memoryFavorites struct {
	mu   sync.Mutex
	rows []domain.FavoriteStore
}

func (m *memoryFavorites) Insert(_ context.Context, fav *domain.FavoriteStore) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, row := range m.rows {
		if row.CustomerID == fav.CustomerID && row.SellerID == fav.SellerID {
			return domain.ErrDuplicateFavorite
		}
	}
	m.rows = append(m.rows, *fav)
	return nil
}

func (m *memoryFavorites) DeleteBySeller(_ context.Context, customerID, sellerID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.rows[:0]
	for _, row := range m.rows {
		if row.CustomerID != customerID || row.SellerID != sellerID {
			kept = append(kept, row)
		}
	}
	m.rows = kept
	return nil
}

func (m *memoryFavorites) FindByCustomer(_ context.Context, customerID uint) ([]domain.FavoriteStore, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.FavoriteStore
	for _, row := range m.rows {
		if row.CustomerID == customerID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (m *memoryFavorites) snapshot() []domain.FavoriteStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.FavoriteStore(nil), m.rows...)
}

func (m *memoryFavorites) restore(rows []domain.FavoriteStore) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = rows
}

// memoryTx rolls the memory stores back when the unit of work fails.
type memoryTx struct {
	customers *memoryCustomers
	favorites *memoryFavorites
	sellers   *fakeSellers
}

func (m *memoryTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	customers := m.customers.snapshot()
	favs := m.favorites.snapshot()
	visits := m.sellers.snapshot()

	if err := fn(ctx); err != nil {
		m.customers.restore(customers)
		m.favorites.restore(favs)
		m.sellers.visits = visits
		return err
	}
	return nil
}

type fakeSellers struct {
	visits map[uint]int64
}

func (f *fakeSellers) Exists(_ context.Context, sellerID uint) (bool, error) {
	_, ok := f.visits[sellerID]
	return ok, nil
}

func (f *fakeSellers) snapshot() map[uint]int64 {
	out := make(map[uint]int64, len(f.visits))
	for id, v := range f.visits {
		out[id] = v
	}
	return out
}

func (f *fakeSellers) RecordProfileVisit(_ context.Context, sellerID uint) (int64, error) {
	if _, ok := f.visits[sellerID]; !ok {
		return 0, domain.ErrSellerNotFound
	}
	f.visits[sellerID]++
	return f.visits[sellerID], nil
}

type failingPoints struct {
	err error
}

func (f failingPoints) Award(context.Context, uint, domain.PointAction) (domain.PointsStanding, error) {
	return domain.PointsStanding{}, f.err
}

type fixture struct {
	svc       *customerService
	points    PointsService
	customers *memoryCustomers
	favorites *memoryFavorites
	sellers   *fakeSellers
	tokens    *utils.TokenIssuer
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	customers := newMemoryCustomers()
	favs := &memoryFavorites{}
	sellers := &fakeSellers{visits: map[uint]int64{10: 0, 11: 0}}
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	pointsSvc := points.NewPointsService(customers, nil)

	svc := NewCustomerService(
		customers,
		pointsSvc,
		favorites.NewFavoritesService(favs, customers, sellers),
		sellers,
		&memoryTx{customers: customers, favorites: favs, sellers: sellers},
		tokens,
		validator.New(),
	)

	return fixture{svc: svc, points: pointsSvc, customers: customers, favorites: favs, sellers: sellers, tokens: tokens}
}

func register(t *testing.T, f fixture) domain.Customer {
	t.Helper()
	c, err := f.svc.Register(context.Background(), RegisterInput{
		Name:     "Amali",
		Email:    "amali@example.com",
		Password: "s3cret-pass",
		Location: "Kandy",
	})
	require.NoError(t, err)
	return c
}

func TestRegister_GrantsBonus(t *testing.T) {
	f := newFixture(t)

	c := register(t, f)

	assert.Equal(t, int64(10), c.Points)
	assert.Equal(t, []string{gamification.TierIron}, []string(c.Batch))
	assert.Equal(t, gamification.TitleNewbie, c.Title)
	assert.Empty(t, c.Password)

	stored := f.customers.customers[c.ID]
	assert.NotEqual(t, "s3cret-pass", stored.Password)
	assert.True(t, utils.CheckPassword("s3cret-pass", stored.Password))
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Register(context.Background(), RegisterInput{Name: "A", Email: "not-an-email", Password: "s3cret-pass", Location: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.Register(context.Background(), RegisterInput{Name: "A", Email: "a@example.com", Password: "short", Location: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Empty(t, f.customers.customers)
}

func TestRegister_EmailTaken(t *testing.T) {
	f := newFixture(t)
	register(t, f)

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Name: "Other", Email: "amali@example.com", Password: "another-pass", Location: "Galle",
	})
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	c := register(t, f)

	res, err := f.svc.Login(context.Background(), "amali@example.com", "s3cret-pass")
	require.NoError(t, err)

	assert.Equal(t, int64(30), res.Customer.Points)
	claims, err := f.tokens.ParseJWT(res.Token)
	require.NoError(t, err)
	assert.Equal(t, utils.RoleCustomer, claims.Role)
	assert.Equal(t, "1", claims.UserID)
	assert.Equal(t, c.ID, res.Customer.ID)

	res, err = f.svc.Login(context.Background(), "amali@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, int64(50), res.Customer.Points)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	f := newFixture(t)
	c := register(t, f)

	_, err := f.svc.Login(context.Background(), "amali@example.com", "wrong-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = f.svc.Login(context.Background(), "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	assert.Equal(t, int64(10), f.customers.customers[c.ID].Points)
}

func TestCustomerJourney(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	c := register(t, f)
	assert.Equal(t, int64(10), c.Points)

	_, err := f.svc.Login(ctx, "amali@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, standing, err := f.svc.AddFavoriteStore(ctx, c.ID, favorites.AddFavoriteInput{SellerID: 10, StoreName: "Spice Hut"})
	require.NoError(t, err)
	assert.Equal(t, int64(40), standing.Points)

	_, _, err = f.svc.AddFavoriteStore(ctx, c.ID, favorites.AddFavoriteInput{SellerID: 10, StoreName: "Spice Hut"})
	assert.ErrorIs(t, err, domain.ErrDuplicateFavorite)
	assert.Equal(t, int64(40), f.customers.customers[c.ID].Points)

	_, standing, err = f.svc.AddFavoriteStore(ctx, c.ID, favorites.AddFavoriteInput{SellerID: 11, StoreName: "Tea Corner"})
	require.NoError(t, err)
	assert.Equal(t, int64(50), standing.Points)
	assert.Equal(t, []string{gamification.TierIron}, standing.Tiers)

	standing, err = f.svc.RecordActivity(ctx, c.ID, domain.ActionSearch)
	require.NoError(t, err)

	assert.Equal(t, int64(54), standing.Points)
	assert.Equal(t, []string{gamification.TierIron, gamification.TierSilver}, standing.Tiers)
	assert.Equal(t, gamification.TitleIntermediate, standing.Title)

	profile, err := f.svc.GetProfile(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(54), profile.Points)
	assert.Empty(t, profile.Password)

	favs, err := f.svc.ListFavoriteStores(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, favs, 2)

	require.NoError(t, f.svc.RemoveFavoriteStore(ctx, c.ID, 10))
	favs, err = f.svc.ListFavoriteStores(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, uint(11), favs[0].SellerID)
}

func TestRegister_BonusFailureLeavesNoCustomer(t *testing.T) {
	f := newFixture(t)
	f.svc.points = failingPoints{err: errors.New("db blip")}

	_, err := f.svc.Register(context.Background(), RegisterInput{
		Name: "Amali", Email: "amali@example.com", Password: "s3cret-pass", Location: "Kandy",
	})
	require.Error(t, err)
	assert.Empty(t, f.customers.customers)

	f.svc.points = f.points
	c := register(t, f)
	assert.Equal(t, int64(10), c.Points)
}

func TestAddFavoriteStore_BonusFailureLeavesNoFavorite(t *testing.T) {
	f := newFixture(t)
	c := register(t, f)
	ctx := context.Background()

	f.svc.points = failingPoints{err: errors.New("db blip")}
	_, _, err := f.svc.AddFavoriteStore(ctx, c.ID, favorites.AddFavoriteInput{SellerID: 10, StoreName: "Spice Hut"})
	require.Error(t, err)
	assert.Empty(t, f.favorites.rows)
	assert.Equal(t, int64(10), f.customers.customers[c.ID].Points)

	f.svc.points = f.points
	_, standing, err := f.svc.AddFavoriteStore(ctx, c.ID, favorites.AddFavoriteInput{SellerID: 10, StoreName: "Spice Hut"})
	require.NoError(t, err)
	assert.Equal(t, int64(20), standing.Points)
	assert.Len(t, f.favorites.rows, 1)
}

func TestAddFavoriteStore_UnknownSeller(t *testing.T) {
	f := newFixture(t)
	c := register(t, f)

	for _, sellerID := range []uint{5000, 5001, 5002} {
		_, _, err := f.svc.AddFavoriteStore(context.Background(), c.ID, favorites.AddFavoriteInput{SellerID: sellerID})
		assert.ErrorIs(t, err, domain.ErrSellerNotFound)
	}

	assert.Equal(t, int64(10), f.customers.customers[c.ID].Points)
	assert.Empty(t, f.favorites.rows)
}

func TestVisitStore_BonusFailureRollsBackVisit(t *testing.T) {
	f := newFixture(t)
	c := register(t, f)

	f.svc.points = failingPoints{err: errors.New("db blip")}
	_, err := f.svc.VisitStore(context.Background(), domain.CustomerViewer(c.ID), 10)
	require.Error(t, err)
	assert.Equal(t, int64(0), f.sellers.visits[10])
}

func TestRecordActivity_RejectsServerOwnedBonus(t *testing.T) {
	f := newFixture(t)
	c := register(t, f)

	for _, action := range []domain.PointAction{domain.ActionLoginBonus, domain.ActionAddFavoriteBonus, domain.ActionStoreVisit, "dance"} {
		_, err := f.svc.RecordActivity(context.Background(), c.ID, action)
		assert.ErrorIs(t, err, domain.ErrUnknownAction, "action %s", action)
	}

	assert.Equal(t, int64(10), f.customers.customers[c.ID].Points)
}

func TestVisitStore(t *testing.T) {
	f := newFixture(t)
	c := register(t, f)
	ctx := context.Background()

	res, err := f.svc.VisitStore(ctx, domain.AnonymousViewer(), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.ProfileVisit)
	assert.Nil(t, res.Standing)
	assert.Equal(t, int64(10), f.customers.customers[c.ID].Points)

	res, err = f.svc.VisitStore(ctx, domain.CustomerViewer(c.ID), 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.ProfileVisit)
	require.NotNil(t, res.Standing)
	assert.Equal(t, int64(15), res.Standing.Points)

	_, err = f.svc.VisitStore(ctx, domain.CustomerViewer(c.ID), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
