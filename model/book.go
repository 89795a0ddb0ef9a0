package model

// Book is a catalog record as served by the remote API. The field tags are
// the API's wire names; stock is authoritative on the server and never
// adjusted locally.
type Book struct {
	ID          int64     `json:"id"`
	ShelfNumber string    `json:"no_rak"`
	Title       string    `json:"judul"`
	Author      string    `json:"pengarang"`
	PublishYear string    `json:"tahun_terbit"`
	Publisher   string    `json:"penerbit"`
	Stock       int       `json:"stok"`
	Detail      string    `json:"detail"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

// BookFields is the writable subset sent on create/update.
type BookFields struct {
	ShelfNumber string `json:"no_rak"`
	Title       string `json:"judul"`
	Author      string `json:"pengarang"`
	PublishYear string `json:"tahun_terbit"`
	Publisher   string `json:"penerbit"`
	Stock       int    `json:"stok"`
	Detail      string `json:"detail"`
}
