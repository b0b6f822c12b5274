// Package product defines the catalog entities read by the search core.
package product

import "github.com/google/uuid"

// Lifecycle values a product must carry to be searchable.
const (
	ApprovalApproved = "approved"
	StatusActive     = "active"
)

// Product is a catalog row as read from the store. The search core never
// writes products; it only reads them and attaches display sub-lists.
type Product struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	Brand              string     `json:"brand"`
	Images             string     `json:"images"`
	Price              float64    `json:"price"`
	SalePrice          *float64   `json:"sale_price,omitempty"`
	DiscountPercentage *float64   `json:"discount_percentage,omitempty"`
	Rating             float64    `json:"rating"`
	ReviewCount        int        `json:"review_count"`
	InStock            bool       `json:"in_stock"`
	StockQuantity      int        `json:"stock_quantity"`
	CategoryID         *uuid.UUID `json:"category_id,omitempty"`
	SubcategoryID      *uuid.UUID `json:"subcategory_id,omitempty"`
	VendorID           *uuid.UUID `json:"vendor_id,omitempty"`
	VendorName         string     `json:"vendor_name,omitempty"`
	ApprovalStatus     string     `json:"approval_status"`
	Status             string     `json:"status"`

	Highlights     []Highlight     `json:"highlights,omitempty"`
	Specifications []Specification `json:"specifications,omitempty"`
}

// Eligible reports whether the product may appear in any search result.
func (p *Product) Eligible() bool {
	return p.InStock && p.ApprovalStatus == ApprovalApproved && p.Status == StatusActive
}

// Highlight is a display bullet attached to a product during enrichment.
type Highlight struct {
	Label   string `json:"label"`
	IconURL string `json:"icon_url,omitempty"`
}

// Specification is a grouped spec row attached to a product during enrichment.
type Specification struct {
	GroupName string `json:"group_name,omitempty"`
	Name      string `json:"name"`
	Value     string `json:"value"`
}
