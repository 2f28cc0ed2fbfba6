package checkoutcontroller

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/AmanMishra107/sweet-artisan-bakery/checkout"
	"github.com/AmanMishra107/sweet-artisan-bakery/realtime"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: conn}), &gorm.Config{})
	require.NoError(t, err)
	return gdb, mock
}

func sessionAtReview(store *checkout.Store, userID string) *checkout.Session {
	s := store.Get(userID)
	s.SetContact(checkout.ContactInfo{
		Email:     "mira@example.com",
		FirstName: "Mira",
		LastName:  "Kapoor",
		Phone:     "9876543210",
	})
	_ = s.Next()
	_ = s.SetDelivery(checkout.DeliveryInfo{
		Address:    "12 Rose Lane",
		City:       "Pune",
		PostalCode: "411001",
	})
	_ = s.Next()
	s.SetPayment(checkout.PaymentInfo{Method: "upi"})
	_ = s.Next()
	return s
}

func submitRequest(t *testing.T, db *gorm.DB, store *checkout.Store, userID string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/user/checkout/submit", nil)
	c.Set("user_id", userID)

	Submit(db, store, realtime.NewHub())(c)
	return w
}

func TestSubmitCartFetchFailureIsNotEmptyCart(t *testing.T) {
	prev := paymentDelay
	paymentDelay = 0
	defer func() { paymentDelay = prev }()

	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "carts"`).WillReturnError(errors.New("connection reset"))

	store := checkout.NewStore()
	s := sessionAtReview(store, "u1")

	w := submitRequest(t, db, store, "u1")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to fetch cart")
	assert.NotContains(t, w.Body.String(), "cart is empty",
		"a transient DB failure must not read like an empty cart")

	// Failure keeps the session at review so the user can retry.
	require.NoError(t, s.BeginSubmit())
}

func TestSubmitEmptyCartRejected(t *testing.T) {
	prev := paymentDelay
	paymentDelay = 0
	defer func() { paymentDelay = prev }()

	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "carts"`).
		WillReturnRows(sqlmock.NewRows([]string{"cart_id", "user_id"}).AddRow(1, "u1"))
	mock.ExpectQuery(`SELECT \* FROM "cart_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_id", "product_id", "product_name", "product_price", "quantity"}))

	store := checkout.NewStore()
	sessionAtReview(store, "u1")

	w := submitRequest(t, db, store, "u1")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "cart is empty")
}
