package model

// Session is one browser session of the admin UI. The bearer token is the
// single durable value; its presence is the whole authorization signal the
// gateway checks. No expiry is modeled; a dead token surfaces as a failed
// remote call.
type Session struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	CreatedTs int64  `json:"created_ts"`
	UpdatedTs int64  `json:"updated_ts"`
}

type FindSession struct {
	ID *string
}
