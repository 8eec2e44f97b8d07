// internal/app/features/products/types.go
package products

import (
	"github.com/JayanshJR7/novara-api/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// productJSON is the storefront/admin representation of a product.
type productJSON struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	SKU         string   `json:"sku,omitempty"`
	Price       float64  `json:"price"`
	CategoryID  string   `json:"category_id,omitempty"`
	Images      []string `json:"images,omitempty"`
	Material    string   `json:"material,omitempty"`
	Stock       int      `json:"stock"`
	InStock     bool     `json:"in_stock"`
	Active      bool     `json:"active"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
}

func toProductJSON(p models.Product) productJSON {
	out := productJSON{
		ID:          p.ID.Hex(),
		Name:        p.Name,
		Description: p.Description,
		SKU:         p.SKU,
		Price:       p.Price,
		Images:      p.Images,
		Material:    p.Material,
		Stock:       p.Stock,
		InStock:     p.InStock(),
		Active:      p.Active,
		Rating:      p.Rating,
		ReviewCount: p.ReviewCount,
	}
	if p.CategoryID != nil {
		out.CategoryID = p.CategoryID.Hex()
	}
	return out
}

func toProductList(ps []models.Product) []productJSON {
	out := make([]productJSON, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductJSON(p))
	}
	return out
}

// reviewJSON is the review shape embedded in product detail responses.
type reviewJSON struct {
	ID         string `json:"id"`
	AuthorName string `json:"author_name"`
	Rating     int    `json:"rating"`
	Comment    string `json:"comment,omitempty"`
	CreatedAt  string `json:"created_at"`
}

func toReviewList(rs []models.Review) []reviewJSON {
	out := make([]reviewJSON, 0, len(rs))
	for _, rv := range rs {
		out = append(out, reviewJSON{
			ID:         rv.ID.Hex(),
			AuthorName: rv.AuthorName,
			Rating:     rv.Rating,
			Comment:    rv.Comment,
			CreatedAt:  rv.CreatedAt.Format(timeFormat),
		})
	}
	return out
}

const timeFormat = "2006-01-02T15:04:05Z07:00"

// productRequest is the admin create/edit payload.
type productRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	SKU         string   `json:"sku"`
	Price       float64  `json:"price"`
	CategoryID  string   `json:"category_id"`
	Images      []string `json:"images"`
	Material    string   `json:"material"`
	Stock       int      `json:"stock"`
	Active      bool     `json:"active"`
}

func (req productRequest) toModel() (models.Product, error) {
	p := models.Product{
		Name:        req.Name,
		Description: req.Description,
		SKU:         req.SKU,
		Price:       req.Price,
		Images:      req.Images,
		Material:    req.Material,
		Stock:       req.Stock,
		Active:      req.Active,
	}
	if req.CategoryID != "" {
		cid, err := primitive.ObjectIDFromHex(req.CategoryID)
		if err != nil {
			return models.Product{}, err
		}
		p.CategoryID = &cid
	}
	return p, nil
}
