package catalog

import "github.com/shopspring/decimal"

type Book struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Author      string          `json:"author"`
	Price       decimal.Decimal `json:"price"`
	Genre       string          `json:"genre"`
	Description string          `json:"description"`
	Image       string          `json:"image"`
	Stock       int             `json:"stock"`
	Pages       int             `json:"pages"`
	ISBN        string          `json:"isbn"`
	Published   string          `json:"published"`
	Rating      float64         `json:"rating"`
	Reviews     int             `json:"reviews"`
}

type Stats struct {
	TotalBooks   int             `json:"totalBooks"`
	TotalStock   int             `json:"totalStock"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	Genres       int             `json:"genres"`
}

type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)
