package models

// UserProfile is the caller's saved contact profile. Checkout requires one.
type UserProfile struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// UserRole is the caller's role as reported by the remote service.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
	RoleGuest UserRole = "guest"
)

// ClaimAdminResult is the closed result set of the admin claim flow.
// These are domain outcomes, not errors: callers must branch on every case.
type ClaimAdminResult string

const (
	ClaimSuccess         ClaimAdminResult = "success"
	ClaimAlreadyExists   ClaimAdminResult = "alreadyExists"
	ClaimAnonymousCaller ClaimAdminResult = "anonymousCaller"
)

// TransferAdminResult is the closed result set of the admin transfer flow.
type TransferAdminResult string

const (
	TransferSuccess             TransferAdminResult = "success"
	TransferAnonymousCaller     TransferAdminResult = "anonymousCaller"
	TransferAuthenticationError TransferAdminResult = "authenticationError"
)
