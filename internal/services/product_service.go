// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/anenterprise-lab/pet-food-backend/internal/models"
	"github.com/anenterprise-lab/pet-food-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Sku               string            `json:"sku" validate:"required"`
	Name              string            `json:"name" validate:"required,min=2,max=255"`
	Description       string            `json:"description" validate:"required"`
	Category          string            `json:"category" validate:"required"`
	Price             float64           `json:"price" validate:"required,min=0"`
	Variety           string            `json:"variety"`
	ImageURL          string            `json:"imageUrl"`
	StockLevel        int               `json:"stockLevel" validate:"min=0"`
	Barcode           string            `json:"barcode" validate:"required"`
	Ingredients       []string          `json:"ingredients,omitempty"`
	NutritionalValues map[string]string `json:"nutritionalValues,omitempty"`
}

type UpdateProductRequest struct {
	Name              string            `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Description       string            `json:"description,omitempty"`
	Category          string            `json:"category,omitempty"`
	Price             *float64          `json:"price,omitempty" validate:"omitempty,min=0"`
	Variety           string            `json:"variety,omitempty"`
	ImageURL          string            `json:"imageUrl,omitempty"`
	StockLevel        *int              `json:"stockLevel,omitempty" validate:"omitempty,min=0"`
	Barcode           string            `json:"barcode,omitempty"`
	Ingredients       []string          `json:"ingredients,omitempty"`
	NutritionalValues map[string]string `json:"nutritionalValues,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// SearchProducts filters the catalog by a case-insensitive name substring
// and an exact category, both optional.
func (s *ProductService) SearchProducts(keyword, category string) ([]models.Product, error) {
	query := s.db.Model(&models.Product{})

	if keyword != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(keyword)+"%")
	}
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Product"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("validation failed: %v", err)}
	}

	product := &models.Product{
		Sku:               req.Sku,
		Name:              req.Name,
		Description:       req.Description,
		Category:          req.Category,
		Price:             req.Price,
		Variety:           req.Variety,
		ImageURL:          req.ImageURL,
		StockLevel:        req.StockLevel,
		Barcode:           req.Barcode,
		Ingredients:       pq.StringArray(req.Ingredients),
		NutritionalValues: models.StringMap(req.NutritionalValues),
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("validation failed: %v", err)}
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "Product"}
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Variety != "" {
		updates["variety"] = req.Variety
	}
	if req.ImageURL != "" {
		updates["image_url"] = req.ImageURL
	}
	if req.StockLevel != nil {
		updates["stock_level"] = *req.StockLevel
	}
	if req.Barcode != "" {
		updates["barcode"] = req.Barcode
	}
	if req.Ingredients != nil {
		updates["ingredients"] = pq.StringArray(req.Ingredients)
	}
	if req.NutritionalValues != nil {
		updates["nutritional_values"] = models.StringMap(req.NutritionalValues)
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &product, nil
}

func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "Product"}
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// AddStock increments a product's stock by one, keyed by barcode. Used by
// the warehouse restock flow.
func (s *ProductService) AddStock(barcode string) (*models.Product, error) {
	var product models.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "barcode = ?", barcode).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &NotFoundError{Resource: "Product"}
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Model(&product).
			UpdateColumn("stock_level", gorm.Expr("stock_level + ?", 1)).Error; err != nil {
			return fmt.Errorf("failed to increment stock: %w", err)
		}

		return tx.First(&product, "id = ?", product.ID).Error
	})

	if err != nil {
		return nil, err
	}

	return &product, nil
}
