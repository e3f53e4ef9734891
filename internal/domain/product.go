package domain

// Product is a catalog record owned by a tenant (a manufacturer or a
// reseller replicating a manufacturer catalog). Matching only looks at SKU
// and Name; the rest rides along so callers can act on a match without a
// second lookup.
type Product struct {
	ID       string  `json:"id"`
	TenantID string  `json:"tenantId"`
	SKU      string  `json:"sku"`
	Name     string  `json:"name"`
	Price    float64 `json:"price,omitempty"`
	Category string  `json:"category,omitempty"`
	ImageURL string  `json:"imageUrl,omitempty"`
}
