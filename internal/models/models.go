package models

import "time"

// Role is the role of a registered user
type Role string

const (
	RoleHost  Role = "host"
	RoleAdmin Role = "admin"
)

// User represents an authenticated marketplace user
type User struct {
	ID                  string    `json:"id"`
	FirstName           string    `json:"firstName"`
	LastName            string    `json:"lastName"`
	Email               string    `json:"email"`
	MobileNumber        string    `json:"mobileNumber"`
	AvatarURL           *string   `json:"avatarUrl,omitempty"`
	Role                Role      `json:"role"`
	PublishedPoolsCount *int      `json:"publishedPoolsCount,omitempty"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

// PoolFilters holds the optional amenity flags of a pool
type PoolFilters struct {
	Heated        bool `json:"heated"`
	PetsAllowed   bool `json:"petsAllowed"`
	PartyAllowed  bool `json:"partyAllowed"`
	Wifi          bool `json:"wifi"`
	BBQ           bool `json:"bbq"`
	Parking       bool `json:"parking"`
	SummerKitchen bool `json:"summerKitchen"`
}

// PoolOwner is the owner summary embedded in a pool
type PoolOwner struct {
	FirstName    string  `json:"firstName"`
	LastName     string  `json:"lastName"`
	AvatarURL    *string `json:"avatarUrl,omitempty"`
	MobileNumber string  `json:"mobileNumber"`
}

// Pool represents a rentable swimming pool listing
type Pool struct {
	ID           string       `json:"id"`
	UserID       string       `json:"userId"`
	Title        string       `json:"title"`
	City         string       `json:"city"`
	Capacity     int          `json:"capacity"`
	Images       []string     `json:"images"`
	IsVisible    bool         `json:"isVisible"`
	PricePerDay  *float64     `json:"pricePerDay,omitempty"`
	Description  *string      `json:"description,omitempty"`
	BusyDays     []string     `json:"busyDays,omitempty"`
	Filters      *PoolFilters `json:"filters,omitempty"`
	Owner        *PoolOwner   `json:"owner,omitempty"`
	VisibleUntil *time.Time   `json:"visibleUntil,omitempty"`
	CheckIn      *string      `json:"checkIn,omitempty"`
	CheckOut     *string      `json:"checkOut,omitempty"`
	Rules        *string      `json:"rules,omitempty"`
	Views        *int         `json:"views,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// PoolInput is the writable part of a pool sent on create and update
type PoolInput struct {
	Title       string       `json:"title" validate:"required,max=120"`
	City        string       `json:"city" validate:"required"`
	Capacity    int          `json:"capacity" validate:"min=1"`
	Images      []string     `json:"images" validate:"required,min=1"`
	PricePerDay *float64     `json:"pricePerDay,omitempty" validate:"omitempty,gt=0"`
	Description *string      `json:"description,omitempty"`
	BusyDays    []string     `json:"busyDays,omitempty"`
	Filters     *PoolFilters `json:"filters,omitempty"`
	CheckIn     *string      `json:"checkIn,omitempty"`
	CheckOut    *string      `json:"checkOut,omitempty"`
	Rules       *string      `json:"rules,omitempty"`
}

// NotificationKind is the kind of a user-facing notification
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is an ephemeral user-facing message
type Notification struct {
	ID   string           `json:"id"`
	Text []string         `json:"text"`
	Kind NotificationKind `json:"type"`
}

// LoginRequest is the body of POST /auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the body of POST /auth/register
type RegisterRequest struct {
	FirstName    string `json:"firstName" validate:"required"`
	LastName     string `json:"lastName" validate:"required"`
	Email        string `json:"email" validate:"required,email"`
	MobileNumber string `json:"mobileNumber" validate:"required"`
	Password     string `json:"password" validate:"required,min=6"`
}

// PasswordChange is an optional part of a profile update
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// UpdateUserRequest is the input of a profile update. AvatarBase64 is uploaded
// first and never sent to PUT /user.
type UpdateUserRequest struct {
	FirstName      string          `json:"firstName" validate:"required"`
	LastName       string          `json:"lastName" validate:"required"`
	Email          string          `json:"email" validate:"required,email"`
	MobileNumber   string          `json:"mobileNumber" validate:"required"`
	AvatarBase64   string          `json:"avatarBase64,omitempty"`
	AvatarURL      *string         `json:"avatarUrl,omitempty"`
	PasswordChange *PasswordChange `json:"passwordChange,omitempty"`
}

// AuthResponse is returned by login and register
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

// VisibilityRequest is the body of PUT /pools/:id/visibility
type VisibilityRequest struct {
	IsVisible    bool       `json:"isVisible"`
	VisibleUntil *time.Time `json:"visibleUntil"`
}
