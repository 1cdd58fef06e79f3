package domain

// Product is the catalog view returned by the order platform.
type Product struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Handle      string           `json:"handle"`
	Vendor      string           `json:"vendor,omitempty"`
	ProductType string           `json:"product_type,omitempty"`
	Status      string           `json:"status,omitempty"`
	Tags        string           `json:"tags,omitempty"`
	Variants    []ProductVariant `json:"variants"`
}

// ProductVariant is one purchasable variant of a product.
type ProductVariant struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	SKU   string `json:"sku"`
	Price string `json:"price"`
}

// DiscountDescriptor identifies a discount code known to the order platform.
type DiscountDescriptor struct {
	ID          string
	Code        string
	PriceRuleID string
	UsageCount  int
}

// AppliedDiscount is the discount attached to a draft order.
type AppliedDiscount struct {
	Title     string
	ValueType string
	Value     string
}

// DraftOrder is the order platform's view of a created draft order.
type DraftOrder struct {
	ID         string
	Name       string
	Status     string
	InvoiceURL string
}

// UpstreamQuote is the inventory platform's view of a created quote.
type UpstreamQuote struct {
	ID        string
	Reference string
}
