package checkout

import (
	"context"
	"errors"
	"testing"

	"handmade-market/internal/cart"
	"handmade-market/internal/order"
	"handmade-market/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Authorize(ctx context.Context, c Charge) (Receipt, error) {
	args := m.Called(ctx, c)
	return args.Get(0).(Receipt), args.Error(1)
}

// flakyCartRepo persists normally until failClear is set, then refuses to
// save an empty cart.
type flakyCartRepo struct {
	cart.Repository
	failClear bool
}

func (r *flakyCartRepo) Save(ctx context.Context, lines []cart.Line) error {
	if r.failClear && len(lines) == 0 {
		return cart.ErrFailedSaveCart
	}
	return r.Repository.Save(ctx, lines)
}

type failingOrderRepo struct {
	order.Repository
}

func (failingOrderRepo) Save(context.Context, []order.Order) error {
	return order.ErrFailedSaveOrders
}

type fixture struct {
	carts    cart.Service
	cartRepo *flakyCartRepo
	orders   order.Service
	outcomes []string
}

func newFixture(t *testing.T, orderRepo order.Repository) *fixture {
	t.Helper()
	ctx := context.Background()

	f := &fixture{cartRepo: &flakyCartRepo{Repository: cart.NewRepository(storage.NewMemoryStore())}}

	var err error
	f.carts, err = cart.NewService(ctx, f.cartRepo)
	require.NoError(t, err)

	if orderRepo == nil {
		orderRepo = order.NewRepository(storage.NewMemoryStore())
	}
	f.orders, err = order.NewService(ctx, orderRepo)
	require.NoError(t, err)
	return f
}

func (f *fixture) service(gw Gateway) Service {
	return NewService(f.carts, f.orders, gw, DefaultPricing(), func(outcome string, _ order.PaymentMethod) {
		f.outcomes = append(f.outcomes, outcome)
	})
}

func (f *fixture) addSaree(t *testing.T, qty int) {
	t.Helper()
	_, err := f.carts.AddLine(context.Background(), cart.LineInput{
		ProductID: "1", Name: "Handwoven Silk Saree", Price: 8500, Quantity: qty,
		SellerID: "1", SellerName: "Meera Textiles",
	})
	require.NoError(t, err)
}

func address() order.ShippingAddress {
	return order.ShippingAddress{
		Name: "Asha Rao", Phone: "9800000000", Address: "12 Lake Road",
		City: "Pune", State: "MH", PostalCode: "411001",
	}
}

func TestService_PlaceOrder(t *testing.T) {
	ctx := context.Background()

	t.Run("CashOnDelivery", func(t *testing.T) {
		f := newFixture(t, nil)
		f.addSaree(t, 2)
		assert.Equal(t, 17000.0, f.carts.Total(ctx))
		assert.Equal(t, 2, f.carts.Count(ctx))

		res, err := f.service(NewSimulatedGateway(0)).PlaceOrder(ctx, Request{
			UserID: "u1", Address: address(), Method: order.PaymentCOD,
		})
		require.NoError(t, err)
		assert.Equal(t, 20060.0, res.Quote.GrandTotal)
		assert.Contains(t, res.Instructions, "Keep ₹20,060 in cash ready when the courier arrives")

		o, ok := f.orders.GetByID(ctx, res.OrderID)
		require.True(t, ok)
		assert.Equal(t, order.StatusPending, o.Status)
		assert.Equal(t, order.PaymentPending, o.PaymentStatus)
		assert.Equal(t, 20060.0, o.Total)
		require.Len(t, o.Items, 1)
		assert.Equal(t, 2, o.Items[0].Quantity)

		assert.Empty(t, f.carts.Lines(ctx))
		assert.Equal(t, []string{OutcomePlaced}, f.outcomes)
	})

	t.Run("Online", func(t *testing.T) {
		f := newFixture(t, nil)
		f.addSaree(t, 1)

		gw := new(MockGateway)
		gw.On("Authorize", mock.Anything, Charge{UserID: "u1", Amount: 10030, Method: order.PaymentOnline}).
			Return(Receipt{Reference: "pay_1", Status: order.PaymentCompleted}, nil)

		res, err := f.service(gw).PlaceOrder(ctx, Request{
			UserID: "u1", Address: address(), Method: order.PaymentOnline,
		})
		require.NoError(t, err)
		assert.Equal(t, "pay_1", res.PaymentReference)

		o, _ := f.orders.GetByID(ctx, res.OrderID)
		assert.Equal(t, order.PaymentCompleted, o.PaymentStatus)
		gw.AssertExpectations(t)
	})

	t.Run("SnapshotSurvivesCartChanges", func(t *testing.T) {
		f := newFixture(t, nil)
		f.addSaree(t, 2)

		res, err := f.service(NewSimulatedGateway(0)).PlaceOrder(ctx, Request{
			UserID: "u1", Address: address(), Method: order.PaymentCOD,
		})
		require.NoError(t, err)

		f.addSaree(t, 5)
		o, _ := f.orders.GetByID(ctx, res.OrderID)
		assert.Equal(t, 2, o.Items[0].Quantity)
		assert.Equal(t, 20060.0, o.Total)
	})

	t.Run("EmptyCart", func(t *testing.T) {
		f := newFixture(t, nil)
		_, err := f.service(NewSimulatedGateway(0)).PlaceOrder(ctx, Request{
			UserID: "u1", Address: address(), Method: order.PaymentCOD,
		})
		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Equal(t, []string{OutcomeRejected}, f.outcomes)
	})

	t.Run("IncompleteAddress", func(t *testing.T) {
		f := newFixture(t, nil)
		f.addSaree(t, 1)
		addr := address()
		addr.Phone = ""

		_, err := f.service(NewSimulatedGateway(0)).PlaceOrder(ctx, Request{
			UserID: "u1", Address: addr, Method: order.PaymentCOD,
		})
		assert.ErrorIs(t, err, order.ErrIncompleteAddress)
		assert.Len(t, f.carts.Lines(ctx), 1)
	})

	t.Run("NoUser", func(t *testing.T) {
		f := newFixture(t, nil)
		f.addSaree(t, 1)
		_, err := f.service(NewSimulatedGateway(0)).PlaceOrder(ctx, Request{Address: address(), Method: order.PaymentCOD})
		assert.ErrorIs(t, err, ErrMissingUser)
	})

	t.Run("PaymentFailsKeepsCart", func(t *testing.T) {
		f := newFixture(t, nil)
		f.addSaree(t, 1)

		gw := new(MockGateway)
		gw.On("Authorize", mock.Anything, mock.Anything).Return(Receipt{}, errors.New("card declined"))

		_, err := f.service(gw).PlaceOrder(ctx, Request{
			UserID: "u1", Address: address(), Method: order.PaymentOnline,
		})
		assert.ErrorIs(t, err, ErrRetryable)
		assert.ErrorIs(t, err, ErrPaymentFailed)
		assert.True(t, IsRetryable(err))
		assert.Len(t, f.carts.Lines(ctx), 1)
		assert.Empty(t, f.orders.ListAll(ctx))
	})

	t.Run("OrderSaveFailsKeepsCart", func(t *testing.T) {
		f := newFixture(t, failingOrderRepo{order.NewRepository(storage.NewMemoryStore())})
		f.addSaree(t, 1)

		_, err := f.service(NewSimulatedGateway(0)).PlaceOrder(ctx, Request{
			UserID: "u1", Address: address(), Method: order.PaymentCOD,
		})
		assert.ErrorIs(t, err, ErrRetryable)
		assert.ErrorIs(t, err, order.ErrFailedSaveOrders)
		assert.Len(t, f.carts.Lines(ctx), 1)
		assert.Equal(t, []string{OutcomeOrderFailed}, f.outcomes)
	})

	t.Run("CartClearFails", func(t *testing.T) {
		f := newFixture(t, nil)
		f.addSaree(t, 1)
		f.cartRepo.failClear = true

		res, err := f.service(NewSimulatedGateway(0)).PlaceOrder(ctx, Request{
			UserID: "u1", Address: address(), Method: order.PaymentCOD,
		})
		assert.ErrorIs(t, err, ErrCartNotCleared)
		assert.False(t, IsRetryable(err))
		require.NotEmpty(t, res.OrderID)

		_, ok := f.orders.GetByID(ctx, res.OrderID)
		assert.True(t, ok)
	})
}

func TestService_Quote(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	svc := f.service(NewSimulatedGateway(0))

	_, err := svc.Quote(ctx)
	assert.ErrorIs(t, err, ErrEmptyCart)

	f.addSaree(t, 2)
	q, err := svc.Quote(ctx)
	require.NoError(t, err)
	assert.Equal(t, 20060.0, q.GrandTotal)
}
