package model

type Member struct {
	ID         int64     `json:"id"`
	NationalID string    `json:"no_ktp"`
	Name       string    `json:"nama"`
	Address    string    `json:"alamat"`
	BirthDate  Date      `json:"tgl_lahir"`
	CreatedAt  Timestamp `json:"createdAt"`
	UpdatedAt  Timestamp `json:"updatedAt"`
}

type MemberFields struct {
	NationalID string `json:"no_ktp"`
	Name       string `json:"nama"`
	Address    string `json:"alamat"`
	BirthDate  Date   `json:"tgl_lahir"`
}
