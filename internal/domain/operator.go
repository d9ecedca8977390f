package domain

import "time"

type OperatorRole string

const (
	OperatorRoleStaff OperatorRole = "STAFF"
	OperatorRoleAdmin OperatorRole = "ADMIN"
)

// Operator is a counter employee allowed to manage contracts.
type Operator struct {
	ID           int32        `json:"id"`
	Email        string       `json:"email"`
	Name         string       `json:"name"`
	PasswordHash string       `json:"-"`
	Role         OperatorRole `json:"role"`
	CreatedOn    time.Time    `json:"createdOn"`
}
