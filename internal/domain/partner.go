package domain

// Partner is an affiliate bookmaker listing.
type Partner struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Logo        string   `json:"logo"`
	Bonus       string   `json:"bonus"`
	Description string   `json:"description"`
	PromoCode   string   `json:"promoCode"`
	Code        string   `json:"code"`
	Rating      float64  `json:"rating"`
	Link        string   `json:"link"`
	Features    []string `json:"features"`
	Color       string   `json:"color"`
	Gradient    string   `json:"gradient"`
	Clicks      int64    `json:"clicks"`
	Conversions int64    `json:"conversions"`
	Users       int64    `json:"users"`
	IsActive    bool     `json:"isActive"`
	Created     string   `json:"created"`
	Updated     string   `json:"updated"`
}

// PartnerFields is the writable subset of a partner record. Counters are
// managed by the store, never set directly by callers.
type PartnerFields struct {
	Name        string   `json:"name" validate:"required,min=2,max=100"`
	Logo        string   `json:"logo"`
	Bonus       string   `json:"bonus"`
	Description string   `json:"description"`
	PromoCode   string   `json:"promoCode"`
	Code        string   `json:"code"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5"`
	Link        string   `json:"link" validate:"omitempty,url"`
	Features    []string `json:"features"`
	Color       string   `json:"color"`
	Gradient    string   `json:"gradient"`
	IsActive    bool     `json:"isActive"`
}
