package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role tags which collection a sale actor lives in.
type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleSupplier Role = "Supplier"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSupplier
}

// Actor is a role-tagged reference to the principal who performed a sale.
type Actor struct {
	ID   primitive.ObjectID
	Role Role
}

func (a Actor) Valid() bool {
	return !a.ID.IsZero() && a.Role.Valid()
}

type Admin struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username string             `bson:"username" json:"username"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
}

type Supplier struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name     string             `bson:"name" json:"name"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"-"`
}

type RegisterAdminInput struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterSupplierInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}
