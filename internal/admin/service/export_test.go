package service

import (
	"math/big"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raditia/gerai/internal/repository"
)

func TestBuildProductSheet(t *testing.T) {
	categoryId := uuid.New()
	createdAt := time.Date(2026, 8, 10, 9, 30, 0, 0, time.UTC)
	products := []repository.Product{
		{
			ID:          uuid.New(),
			ShopID:      uuid.New(),
			CategoryID:  uuid.NullUUID{UUID: categoryId, Valid: true},
			Name:        "Kopi Susu",
			Description: "Kopi susu gula aren",
			Price:       pgtype.Numeric{Int: big.NewInt(18000), Exp: 0, Valid: true},
			ImageUrl:    "https://cdn.example.com/kopi.jpg",
			CreatedAt:   pgtype.Timestamptz{Time: createdAt, Valid: true},
		},
		{
			ID:        uuid.New(),
			ShopID:    uuid.New(),
			Name:      "Roti Bakar",
			Price:     pgtype.Numeric{Int: big.NewInt(125), Exp: 2, Valid: true},
			CreatedAt: pgtype.Timestamptz{Time: createdAt, Valid: true},
		},
	}

	file, err := buildProductSheet(products)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Products", sheet.Name)
	require.Len(t, sheet.Rows, 3)

	header := sheet.Rows[0]
	assert.Equal(t, "Name", header.Cells[3].Value)
	assert.Equal(t, "Price", header.Cells[5].Value)

	first := sheet.Rows[1]
	assert.Equal(t, products[0].ID.String(), first.Cells[0].Value)
	assert.Equal(t, categoryId.String(), first.Cells[2].Value)
	assert.Equal(t, "Kopi Susu", first.Cells[3].Value)
	assert.Equal(t, "18000", first.Cells[5].Value)
	assert.Equal(t, "2026-08-10 09:30:00", first.Cells[7].Value)

	second := sheet.Rows[2]
	assert.Equal(t, "", second.Cells[2].Value)
	assert.Equal(t, "12500", second.Cells[5].Value)
}

func TestBuildProductSheetEmpty(t *testing.T) {
	file, err := buildProductSheet(nil)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	assert.Len(t, file.Sheets[0].Rows, 1)
}
