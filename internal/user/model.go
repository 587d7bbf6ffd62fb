package user

import "time"

type User struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Role            Role      `json:"role"`
	Verified        bool      `json:"verified"`
	Phone           string    `json:"phone,omitempty"`
	Address         string    `json:"address,omitempty"`
	ShopName        string    `json:"shopName,omitempty"`
	ShopDescription string    `json:"shopDescription,omitempty"`
	CreatedAt       time.Time `json:"createdAt,omitzero"`
}

// RegisterInput is the body of POST /auth/register.
type RegisterInput struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	Role            Role   `json:"role"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
	ShopName        string `json:"shopName,omitempty"`
	ShopDescription string `json:"shopDescription,omitempty"`
}

// ProfileUpdate is the body of PUT /auth/profile; nil fields are unchanged.
type ProfileUpdate struct {
	Name            *string `json:"name,omitempty"`
	Phone           *string `json:"phone,omitempty"`
	Address         *string `json:"address,omitempty"`
	ShopName        *string `json:"shopName,omitempty"`
	ShopDescription *string `json:"shopDescription,omitempty"`
}

func (p ProfileUpdate) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.Address == nil &&
		p.ShopName == nil && p.ShopDescription == nil
}
