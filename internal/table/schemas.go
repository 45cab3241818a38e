package table

import (
	"strconv"

	"dashboard/internal/model"
)

var Orders = &Schema[model.Order]{
	Name:   "orders",
	ID:     func(o model.Order) string { return o.ID },
	Search: []func(model.Order) string{func(o model.Order) string { return o.Client }},
	Facets: map[Facet]func(model.Order) string{
		FacetStatus:  func(o model.Order) string { return o.Status },
		FacetCountry: func(o model.Order) string { return o.Country },
	},
	Fields: map[string]Field[model.Order]{
		"client":  {Kind: Text, Set: func(o *model.Order, s string, _ float64) { o.Client = s }},
		"email":   {Kind: Text, Set: func(o *model.Order, s string, _ float64) { o.Email = s }},
		"total":   {Kind: Number, Set: func(o *model.Order, _ string, n float64) { o.Total = n }},
		"status":  {Kind: Choice, Choices: model.OrderStatuses, Set: func(o *model.Order, s string, _ float64) { o.Status = s }},
		"date":    {Kind: Text, Set: func(o *model.Order, s string, _ float64) { o.Date = s }},
		"country": {Kind: Text, Set: func(o *model.Order, s string, _ float64) { o.Country = s }},
	},
}

var Products = &Schema[model.Product]{
	Name: "products",
	ID:   func(p model.Product) string { return p.ID },
	Search: []func(model.Product) string{
		func(p model.Product) string { return p.Name },
		func(p model.Product) string { return p.Category },
	},
	Facets: map[Facet]func(model.Product) string{
		FacetCategory: func(p model.Product) string { return p.Category },
	},
	Fields: map[string]Field[model.Product]{
		"name":     {Kind: Text, Set: func(p *model.Product, s string, _ float64) { p.Name = s }},
		"category": {Kind: Text, Set: func(p *model.Product, s string, _ float64) { p.Category = s }},
		"price":    {Kind: Number, Set: func(p *model.Product, _ string, n float64) { p.Price = n }},
		"stock":    {Kind: Number, Set: func(p *model.Product, _ string, n float64) { p.Stock = n }},
		"sales":    {Kind: Number, Set: func(p *model.Product, _ string, n float64) { p.Sales = n }},
	},
}

var Clients = &Schema[model.Client]{
	Name: "clients",
	ID:   func(c model.Client) string { return strconv.FormatInt(c.ID, 10) },
	Search: []func(model.Client) string{
		func(c model.Client) string { return c.Name },
		func(c model.Client) string { return c.Email },
		func(c model.Client) string { return c.Country },
	},
	Facets: map[Facet]func(model.Client) string{
		FacetCountry: func(c model.Client) string { return c.Country },
	},
	Fields: map[string]Field[model.Client]{
		"name":        {Kind: Text, Set: func(c *model.Client, s string, _ float64) { c.Name = s }},
		"email":       {Kind: Text, Set: func(c *model.Client, s string, _ float64) { c.Email = s }},
		"phoneNumber": {Kind: Text, Set: func(c *model.Client, s string, _ float64) { c.PhoneNumber = s }},
		"country":     {Kind: Text, Set: func(c *model.Client, s string, _ float64) { c.Country = s }},
	},
}
