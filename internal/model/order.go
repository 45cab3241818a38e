package model

// Order statuses as they appear in the dashboard document.
const (
	StatusPending    = "در انتظار"
	StatusProcessing = "در حال پردازش"
	StatusCanceled   = "لغو شده"
	StatusDelivered  = "تحویل داده شده"
)

// OrderStatuses lists the values an order status may be edited to.
var OrderStatuses = []string{StatusPending, StatusProcessing, StatusCanceled, StatusDelivered}

type Order struct {
	ID      string  `json:"id,omitempty"`
	Client  string  `json:"client,omitempty"`
	Email   string  `json:"email,omitempty"`
	Total   float64 `json:"total,omitempty"`
	Status  string  `json:"status,omitempty"` // see OrderStatuses
	Date    string  `json:"date,omitempty"`
	Country string  `json:"country,omitempty"`
}

type OrderStat struct {
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
	Icon  Icon   `json:"icon,omitempty"`
}

type OrderStatus struct {
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"value,omitempty"`
}
