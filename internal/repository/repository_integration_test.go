package repository_test

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/raditia/gerai/internal/repository"
)

func setupQueries(t *testing.T, c context.Context) *repository.Queries {
	t.Helper()

	migrations := []string{
		"20260810090000_create_table_profiles.up.sql",
		"20260810090100_create_table_categories.up.sql",
		"20260810090200_create_table_shops.up.sql",
		"20260810090300_create_table_products.up.sql",
		"20260810090400_create_table_orders.up.sql",
		"20260810090500_create_table_order_items.up.sql",
		"20260810090600_create_table_notifications.up.sql",
		"20260810090700_create_table_faqs.up.sql",
	}
	scripts := make([]string, len(migrations))
	for i, migration := range migrations {
		scripts[i] = filepath.Join("..", "..", "db", "migrations", migration)
	}

	pgContainer, err := postgres.Run(
		c,
		"postgres:16.6-alpine3.21",
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		postgres.WithDatabase("postgres"),
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(scripts...),
	)
	require.NoError(t, err, "failed running postgres container")
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(pgContainer); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	connStr, err := pgContainer.ConnectionString(c, "sslmode=disable")
	require.NoError(t, err, "failed getting postgres connection string")

	pool, err := pgxpool.New(c, connStr)
	require.NoError(t, err, "failed creating postgres pool")
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(c), "failed pinging postgres pool")

	return repository.New(pool)
}

func TestRepositoryCheckoutFlow(t *testing.T) {
	c := context.Background()
	queries := setupQueries(t, c)

	owner, err := queries.InsertProfile(c, repository.InsertProfileParams{
		Username: "warung-owner",
		Email:    "owner@example.com",
		Password: "not-a-real-hash",
		Role:     "customer",
	})
	require.NoError(t, err)

	shop, err := queries.InsertShop(c, repository.InsertShopParams{
		OwnerID: owner.ID,
		Name:    "Warung Kopi",
	})
	require.NoError(t, err)
	assert.Equal(t, "pending", shop.Status)

	category, err := queries.InsertCategory(c, "Minuman")
	require.NoError(t, err)

	product, err := queries.InsertProduct(c, repository.InsertProductParams{
		ShopID:     shop.ID,
		CategoryID: uuid.NullUUID{UUID: category.ID, Valid: true},
		Name:       "Kopi Susu",
		Price:      pgtype.Numeric{Int: big.NewInt(18000), Exp: 0, Valid: true},
	})
	require.NoError(t, err)

	order, err := queries.InsertOrder(c, repository.InsertOrderParams{
		CustomerName: "Pelanggan",
		TotalAmount:  pgtype.Numeric{Int: big.NewInt(36000), Exp: 0, Valid: true},
		Status:       "pending",
	})
	require.NoError(t, err)

	inserted, err := queries.InsertOrderItems(c, []repository.InsertOrderItemsParams{
		{
			ID:          uuid.New(),
			OrderID:     order.ID,
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    2,
			Price:       product.Price,
		},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, inserted)

	items, err := queries.FindOrderItemsByOrderId(c, order.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Kopi Susu", items[0].ProductName)
	assert.EqualValues(t, 2, items[0].Quantity)

	sold, err := queries.CountSoldItemsByShopId(c, shop.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, sold)
}

func TestRepositoryShopVerification(t *testing.T) {
	c := context.Background()
	queries := setupQueries(t, c)

	owner, err := queries.InsertProfile(c, repository.InsertProfileParams{
		Username: "seller-to-be",
		Email:    "seller@example.com",
		Password: "not-a-real-hash",
		Role:     "customer",
	})
	require.NoError(t, err)

	shop, err := queries.InsertShop(c, repository.InsertShopParams{
		OwnerID: owner.ID,
		Name:    "Toko Roti",
	})
	require.NoError(t, err)

	pendings, err := queries.FindShops(c, "pending")
	require.NoError(t, err)
	require.Len(t, pendings, 1)

	shop, err = queries.UpdateShopStatus(c, shop.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, "approved", shop.Status)

	promoted, err := queries.UpdateProfileRole(c, owner.ID, "seller")
	require.NoError(t, err)
	assert.Equal(t, "seller", promoted.Role)

	pendings, err = queries.FindShops(c, "pending")
	require.NoError(t, err)
	assert.Empty(t, pendings)

	// A second shop for the same owner violates the unique constraint.
	_, err = queries.InsertShop(c, repository.InsertShopParams{
		OwnerID: owner.ID,
		Name:    "Toko Kedua",
	})
	assert.Error(t, err)
}

func TestRepositoryNotificationTargeting(t *testing.T) {
	c := context.Background()
	queries := setupQueries(t, c)

	customer, err := queries.InsertProfile(c, repository.InsertProfileParams{
		Username: "customer",
		Email:    "customer@example.com",
		Password: "not-a-real-hash",
		Role:     "customer",
	})
	require.NoError(t, err)
	other, err := queries.InsertProfile(c, repository.InsertProfileParams{
		Username: "other",
		Email:    "other@example.com",
		Password: "not-a-real-hash",
		Role:     "customer",
	})
	require.NoError(t, err)

	_, err = queries.InsertNotification(c, repository.InsertNotificationParams{
		Title:   "Promo akhir pekan",
		Message: "Diskon untuk semua pelanggan.",
	})
	require.NoError(t, err)
	targeted, err := queries.InsertNotification(c, repository.InsertNotificationParams{
		UserID:  uuid.NullUUID{UUID: customer.ID, Valid: true},
		Title:   "Pesananmu dikirim",
		Message: "Paket sedang dalam perjalanan.",
	})
	require.NoError(t, err)

	forCustomer, err := queries.FindNotificationsForUser(c, customer.ID)
	require.NoError(t, err)
	assert.Len(t, forCustomer, 2)

	forOther, err := queries.FindNotificationsForUser(c, other.ID)
	require.NoError(t, err)
	require.Len(t, forOther, 1)
	assert.Equal(t, "Promo akhir pekan", forOther[0].Title)

	read, err := queries.UpdateNotificationRead(c, targeted.ID, true)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
}
