package services

// Actor is the authenticated caller as seen by the domain layer. Capability
// flags can co-occur; they are independent booleans, not a role enum.
type Actor struct {
	ID         string
	Username   string
	IsAdmin    bool
	IsSupplier bool
	IsCustomer bool
}
