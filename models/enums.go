package models

// Category is the closed set of uniform lines shared by products and gallery items.
type Category string

const (
	CategoryHospital   Category = "Hospital"
	CategorySchool     Category = "School"
	CategorySports     Category = "Sports"
	CategoryHotel      Category = "Hotel"
	CategoryIndustrial Category = "Industrial"
	CategoryScoutNCC   Category = "Scout & NCC"
)

// Categories lists every permitted category in display order.
var Categories = []Category{
	CategoryHospital,
	CategorySchool,
	CategorySports,
	CategoryHotel,
	CategoryIndustrial,
	CategoryScoutNCC,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ContactStatus tracks how far an enquiry has been handled. Any value may be set at any time.
type ContactStatus string

const (
	ContactStatusNew       ContactStatus = "new"
	ContactStatusRead      ContactStatus = "read"
	ContactStatusResponded ContactStatus = "responded"
)

var ContactStatuses = []ContactStatus{ContactStatusNew, ContactStatusRead, ContactStatusResponded}

func (s ContactStatus) Valid() bool {
	switch s {
	case ContactStatusNew, ContactStatusRead, ContactStatusResponded:
		return true
	}
	return false
}

// Role is the closed set of account roles. Only admin exists today.
type Role string

const (
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin:
		return true
	}
	return false
}

// Satisfies reports whether an account holding r may act where required is demanded.
func (r Role) Satisfies(required Role) bool {
	switch required {
	case RoleAdmin:
		return r == RoleAdmin
	}
	return false
}
