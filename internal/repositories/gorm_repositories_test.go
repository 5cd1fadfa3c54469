package repositories_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"styleshop/internal/database"
	"styleshop/internal/models"
	"styleshop/internal/repositories"
)

// newTestDB opens a private in-memory SQLite database named after the test
// so parallel tests never share state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestGORMProductRepository_CRUD(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))

	product := &models.Product{
		Name:        "Denim Jacket",
		Description: "Classic blue denim",
		Price:       89.00,
		Category:    "jackets",
		ImageURL:    "/images/denim-jacket.jpg",
	}
	require.NoError(t, repo.Create(product))
	assert.NotZero(t, product.ID)

	fetched, err := repo.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Denim Jacket", fetched.Name)
	assert.Equal(t, 89.00, fetched.Price)

	fetched.Price = 69.00
	fetched.Category = "outerwear"
	require.NoError(t, repo.Update(fetched))
	updated, err := repo.GetByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, 69.00, updated.Price)
	assert.Equal(t, "outerwear", updated.Category)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.Delete(product.ID))
	all, err = repo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGORMProductRepository_NotFound(t *testing.T) {
	repo := repositories.NewGORMProductRepository(newTestDB(t))

	_, err := repo.GetByID(42)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	err = repo.Update(&models.Product{ID: 42, Name: "Ghost", Price: 1})
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	err = repo.Delete(42)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestGORMOrderRepository_CreatePersistsOrderAndItems(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	order := &models.Order{
		UserID:      7,
		TotalAmount: 20,
		Status:      models.OrderStatusPending,
		Items: []models.OrderItem{
			{ProductID: 3, Quantity: 2, Price: 10},
		},
		ShippingAddress: models.ShippingAddress{
			FullName: "Ada Lovelace",
			Street:   "12 Analytical Way",
			City:     "London",
			ZipCode:  "N1 9GU",
			Country:  "UK",
		},
		PaymentMethod: "credit_card",
	}
	require.NoError(t, repo.Create(order))
	assert.NotZero(t, order.ID)
	assert.Equal(t, order.ID, order.Items[0].OrderID)

	fetched, err := repo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(7), fetched.UserID)
	assert.Equal(t, 20.0, fetched.TotalAmount)
	assert.Equal(t, "Ada Lovelace", fetched.ShippingAddress.FullName)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, uint(3), fetched.Items[0].ProductID)
	assert.Equal(t, 2, fetched.Items[0].Quantity)
	assert.Equal(t, 10.0, fetched.Items[0].Price)
}

// A failed item insert must roll back the order row too: no half-written
// orders.
func TestGORMOrderRepository_CreateIsAtomic(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	order := &models.Order{
		UserID:      7,
		TotalAmount: 25,
		Items: []models.OrderItem{
			// Explicit duplicate primary keys make the item insert fail.
			{ID: 1, ProductID: 3, Quantity: 2, Price: 10},
			{ID: 1, ProductID: 4, Quantity: 1, Price: 5},
		},
	}
	err := repo.Create(order)
	require.Error(t, err)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestGORMOrderRepository_GetByUser(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	older := &models.Order{
		UserID:      7,
		TotalAmount: 10,
		CreatedAt:   time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		Items:       []models.OrderItem{{ProductID: 1, Quantity: 1, Price: 10}},
	}
	newer := &models.Order{
		UserID:      7,
		TotalAmount: 30,
		CreatedAt:   time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
		Items:       []models.OrderItem{{ProductID: 2, Quantity: 3, Price: 10}},
	}
	foreign := &models.Order{
		UserID:      8,
		TotalAmount: 5,
		Items:       []models.OrderItem{{ProductID: 1, Quantity: 1, Price: 5}},
	}
	require.NoError(t, repo.Create(older))
	require.NoError(t, repo.Create(newer))
	require.NoError(t, repo.Create(foreign))

	orders, err := repo.GetByUser(7)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, newer.ID, orders[0].ID)
	assert.Equal(t, older.ID, orders[1].ID)
	// Line items come preloaded.
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, uint(2), orders[0].Items[0].ProductID)

	// Zero orders is an empty slice, not an error.
	none, err := repo.GetByUser(99)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestGORMOrderRepository_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	repo := repositories.NewGORMOrderRepository(db)

	order := &models.Order{
		UserID:      7,
		TotalAmount: 10,
		Status:      models.OrderStatusPending,
		Items:       []models.OrderItem{{ProductID: 1, Quantity: 1, Price: 10}},
	}
	require.NoError(t, repo.Create(order))

	require.NoError(t, repo.UpdateStatus(order.ID, models.OrderStatusShipped, "TRK-42"))
	updated, err := repo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
	assert.Equal(t, "TRK-42", updated.TrackingNumber)

	// Status-only update keeps the tracking number.
	require.NoError(t, repo.UpdateStatus(order.ID, models.OrderStatusDelivered, ""))
	updated, err = repo.GetByID(order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)
	assert.Equal(t, "TRK-42", updated.TrackingNumber)

	err = repo.UpdateStatus(9999, models.OrderStatusShipped, "")
	assert.ErrorIs(t, err, repositories.ErrOrderNotFound)
}

func TestGORMUserRepository(t *testing.T) {
	repo := repositories.NewGORMUserRepository(newTestDB(t))

	user := &models.User{
		Email:     "ada@example.com",
		Password:  "hashed",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
	require.NoError(t, repo.Create(user))
	assert.NotZero(t, user.ID)

	byEmail, err := repo.GetByEmail("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	byID, err := repo.GetByID(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", byID.FirstName)

	_, err = repo.GetByEmail("nobody@example.com")
	assert.ErrorIs(t, err, repositories.ErrUserNotFound)

	// The unique index rejects a second account on the same email.
	err = repo.Create(&models.User{Email: "ada@example.com", Password: "x", FirstName: "A", LastName: "L"})
	assert.Error(t, err)
}

func TestGORMReviewRepository_GetByProductJoinsNamesNewestFirst(t *testing.T) {
	db := newTestDB(t)
	userRepo := repositories.NewGORMUserRepository(db)
	reviewRepo := repositories.NewGORMReviewRepository(db)

	ada := &models.User{Email: "ada@example.com", Password: "x", FirstName: "Ada", LastName: "Lovelace"}
	grace := &models.User{Email: "grace@example.com", Password: "x", FirstName: "Grace", LastName: "Hopper"}
	require.NoError(t, userRepo.Create(ada))
	require.NoError(t, userRepo.Create(grace))

	older := &models.Review{
		UserID:    ada.ID,
		ProductID: 3,
		Rating:    4,
		Comment:   "Good fit",
		CreatedAt: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	newer := &models.Review{
		UserID:    grace.ID,
		ProductID: 3,
		Rating:    5,
		Comment:   "Excellent",
		CreatedAt: time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC),
	}
	other := &models.Review{UserID: ada.ID, ProductID: 4, Rating: 2, Comment: "Too small"}
	require.NoError(t, reviewRepo.Create(older))
	require.NoError(t, reviewRepo.Create(newer))
	require.NoError(t, reviewRepo.Create(other))

	reviews, err := reviewRepo.GetByProduct(3)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Grace", reviews[0].FirstName)
	assert.Equal(t, "Hopper", reviews[0].LastName)
	assert.Equal(t, 5, reviews[0].Rating)
	assert.Equal(t, "Ada", reviews[1].FirstName)
	assert.Equal(t, 4, reviews[1].Rating)

	empty, err := reviewRepo.GetByProduct(99)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}
