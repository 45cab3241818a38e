package model

type Product struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name,omitempty"`
	Category string  `json:"category,omitempty"`
	Price    float64 `json:"price,omitempty"`
	Stock    float64 `json:"stock,omitempty"`
	Sales    float64 `json:"sales,omitempty"`
	Image    string  `json:"image,omitempty"`
}

type Category struct {
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"value,omitempty"`
}

type SalesByCategory struct {
	Name  string  `json:"name,omitempty"`
	Value float64 `json:"value,omitempty"`
}

// ProductPerformance keeps the capitalised series keys used by the bar chart.
type ProductPerformance struct {
	Name      string  `json:"name,omitempty"`
	Retention float64 `json:"Retention,omitempty"`
	Revenue   float64 `json:"Revenue,omitempty"`
	Profit    float64 `json:"Profit,omitempty"`
}
