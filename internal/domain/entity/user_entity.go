package entity

// User is a client-held projection of a user owned by the user-service.
// CreatedAt is kept as a Timestamp because the service serialises it without a zone.
type User struct {
	ID        ID        `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt Timestamp `json:"createdAt"`
}

// NewUser is the create payload; id and createdAt are assigned by the service.
type NewUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
