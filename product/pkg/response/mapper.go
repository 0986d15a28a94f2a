package response

import (
	"github.com/shopspring/decimal"

	"github.com/raditia/gerai/internal/repository"
)

func FromProduct(p repository.Product) Product {
	product := Product{
		ID:          p.ID,
		ShopID:      p.ShopID,
		Name:        p.Name,
		Description: p.Description,
		Price:       decimal.NewFromBigInt(p.Price.Int, p.Price.Exp),
		ImageUrl:    p.ImageUrl,
		CreatedAt:   p.CreatedAt.Time,
		UpdatedAt:   p.UpdatedAt.Time,
	}
	if p.CategoryID.Valid {
		categoryId := p.CategoryID.UUID
		product.CategoryID = &categoryId
	}
	return product
}

func FromProducts(rows []repository.Product) []Product {
	products := make([]Product, len(rows))
	for i, row := range rows {
		products[i] = FromProduct(row)
	}
	return products
}

func FromCategories(rows []repository.Category) []Category {
	categories := make([]Category, len(rows))
	for i, row := range rows {
		categories[i] = Category{ID: row.ID, Name: row.Name}
	}
	return categories
}

func FromFaqs(rows []repository.Faq) []Faq {
	faqs := make([]Faq, len(rows))
	for i, row := range rows {
		faqs[i] = Faq{
			ID:       row.ID,
			Question: row.Question,
			Answer:   row.Answer,
			Position: row.Position,
		}
	}
	return faqs
}
