package domain

// ItemCard — карточка товара каталога.
// Price == nil означает, что товар не продаётся.
type ItemCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Price       *int   `json:"price"`
}

// ItemList — ответ каталога: общее число и список карточек.
type ItemList struct {
	Total int        `json:"total"`
	Items []ItemCard `json:"items"`
}
