package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// UserRole enum
type UserRole string

const (
	RoleCitizen   UserRole = "citizen"
	RoleAuthority UserRole = "authority"
	RoleAdmin     UserRole = "admin"
)

// Rating bounds for authority profiles. New authorities start at the
// midpoint.
const (
	RatingMin     = 1.0
	RatingMax     = 5.0
	RatingDefault = 3.0
)

// Area is an authority's declared coverage: which categories it handles and
// in which district. Both must be set before the authority may act on any
// issue.
type Area struct {
	Categories []IssueCategory `bson:"categories,omitempty" json:"categories,omitempty"`
	District   string          `bson:"district,omitempty" json:"district,omitempty"`
}

// Configured reports whether the area is complete enough to act on issues.
func (a Area) Configured() bool {
	return len(a.Categories) > 0 && a.District != ""
}

type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Password  string             `bson:"password,omitempty" json:"-"`
	Role      UserRole           `bson:"role" json:"role"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`

	// Authority profile fields. Zero-valued for citizens.
	Department    string  `bson:"department,omitempty" json:"department,omitempty"`
	Rating        float64 `bson:"rating,omitempty" json:"rating,omitempty"`
	TotalResolved int64   `bson:"totalResolved,omitempty" json:"totalResolved"`
	TotalIgnored  int64   `bson:"totalIgnored,omitempty" json:"totalIgnored"`
	Area          Area    `bson:"area,omitempty" json:"area,omitempty"`
}

func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

func (u *User) ComparePassword(candidate string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(candidate))
	return err == nil
}

// IsAuthority reports whether the user may perform triage actions at all.
// Admins are not authorities; they only get administrative deletion rights.
func (u *User) IsAuthority() bool {
	return u.Role == RoleAuthority
}
