package model

// Document is the dashboard data file: a dictionary of named arrays.
type Document struct {
	Sales              []Sale               `json:"sales"`
	Categories         []Category           `json:"categories"`
	OrderStatus        []OrderStatus        `json:"orderStatus"`
	ProductPerformance []ProductPerformance `json:"productPerformance"`
	Orders             []Order              `json:"orders"`
	OrderStats         []OrderStat          `json:"orderStats"`
	Products           []Product            `json:"products"`
	SalesByCategory    []SalesByCategory    `json:"salesByCategory"`
	Clients            []Client             `json:"clients"`
	SidebarItems       []SidebarItem        `json:"sidebarItems"`
	SalesRecords       []SaleRecord         `json:"salesRecords"`
	YearlySales        []YearlySales        `json:"yearlySales"`
}

type SidebarItem struct {
	Name string `json:"name,omitempty"`
	Icon Icon   `json:"icon,omitempty"`
	Href string `json:"href,omitempty"`
}

// Normalize replaces missing arrays with empty ones and unknown icons with
// IconDefault. It returns the names that were replaced.
func (d *Document) Normalize() (unknownIcons []string) {
	d.Sales = orEmpty(d.Sales)
	d.Categories = orEmpty(d.Categories)
	d.OrderStatus = orEmpty(d.OrderStatus)
	d.ProductPerformance = orEmpty(d.ProductPerformance)
	d.Orders = orEmpty(d.Orders)
	d.OrderStats = orEmpty(d.OrderStats)
	d.Products = orEmpty(d.Products)
	d.SalesByCategory = orEmpty(d.SalesByCategory)
	d.Clients = orEmpty(d.Clients)
	d.SidebarItems = orEmpty(d.SidebarItems)
	d.SalesRecords = orEmpty(d.SalesRecords)
	d.YearlySales = orEmpty(d.YearlySales)

	for i := range d.SidebarItems {
		icon, ok := ParseIcon(string(d.SidebarItems[i].Icon))
		if !ok {
			unknownIcons = append(unknownIcons, string(d.SidebarItems[i].Icon))
		}
		d.SidebarItems[i].Icon = icon
		if d.SidebarItems[i].Href == "" {
			d.SidebarItems[i].Href = "#"
		}
	}
	for i := range d.OrderStats {
		icon, ok := ParseIcon(string(d.OrderStats[i].Icon))
		if !ok {
			unknownIcons = append(unknownIcons, string(d.OrderStats[i].Icon))
		}
		d.OrderStats[i].Icon = icon
	}
	return unknownIcons
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
