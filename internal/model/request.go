package model

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type UpdateUserRequest struct {
	Name      *string    `json:"name"`
	Addresses *[]Address `json:"addresses"`
}

type CreateProductRequest struct {
	Title              string   `json:"title"`
	Description        string   `json:"description"`
	Price              float64  `json:"price"`
	DiscountPercentage float64  `json:"discount_percentage"`
	Rating             float64  `json:"rating"`
	Stock              int      `json:"stock"`
	Brand              string   `json:"brand"`
	Category           string   `json:"category"`
	Thumbnail          string   `json:"thumbnail"`
	Images             []string `json:"images"`
	Colors             []string `json:"colors"`
	Sizes              []string `json:"sizes"`
	Highlights         []string `json:"highlights"`
}

type UpdateProductRequest struct {
	Title              *string   `json:"title"`
	Description        *string   `json:"description"`
	Price              *float64  `json:"price"`
	DiscountPercentage *float64  `json:"discount_percentage"`
	Rating             *float64  `json:"rating"`
	Stock              *int      `json:"stock"`
	Brand              *string   `json:"brand"`
	Category           *string   `json:"category"`
	Thumbnail          *string   `json:"thumbnail"`
	Images             *[]string `json:"images"`
	Deleted            *bool     `json:"deleted"`
}

type CreateOptionRequest struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type UpdateCartItemRequest struct {
	Quantity *int    `json:"quantity"`
	Size     *string `json:"size"`
	Color    *string `json:"color"`
}

type OrderLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

type CreateOrderRequest struct {
	Items           []OrderLine `json:"items"`
	PaymentMethod   string      `json:"payment_method"`
	SelectedAddress Address     `json:"selected_address"`
}

type UpdateOrderRequest struct {
	Status        *string `json:"status"`
	PaymentStatus *string `json:"payment_status"`
}

// PaymentIntentRequest keeps the storefront client's field names.
type PaymentIntentRequest struct {
	TotalAmount int64 `json:"totalAmount"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}
