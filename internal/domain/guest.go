package domain

type Guest struct {
	ID               int64
	FirstName        string
	LastName         string
	Email            string
	Phone            *string
	IdentityDocument *string
}
