package model

// Fine types accepted by the remote API.
const (
	FineTypeLate   = "late"
	FineTypeDamage = "damage"
	FineTypeLost   = "lost"
	FineTypeOther  = "other"
)

var FineTypes = []string{FineTypeLate, FineTypeDamage, FineTypeLost, FineTypeOther}

// Fine is a penalty against a member+book pair. It is independent of any
// single loan record: several fines and several loans can share the same
// pair, so matching is always on both ids.
type Fine struct {
	ID          int64     `json:"id"`
	MemberID    int64     `json:"id_member"`
	BookID      int64     `json:"id_buku"`
	Amount      Amount    `json:"jumlah_denda"`
	Type        string    `json:"jenis_denda"`
	Description string    `json:"deskripsi"`
	CreatedAt   Timestamp `json:"createdAt"`
	UpdatedAt   Timestamp `json:"updatedAt"`
}

type FineFields struct {
	MemberID    int64  `json:"id_member"`
	BookID      int64  `json:"id_buku"`
	Amount      Amount `json:"jumlah_denda"`
	Type        string `json:"jenis_denda"`
	Description string `json:"deskripsi"`
}

func ValidFineType(t string) bool {
	for _, v := range FineTypes {
		if v == t {
			return true
		}
	}
	return false
}
