package request

type Checkout struct {
	CustomerName string `json:"customer_name"`
}
