package domain

type Place struct {
	ID          string
	Title       string
	Price       *float64
	Description string
	ImageURL    string
	Owner       *Owner
	Amenities   []Amenity
}

type Owner struct {
	FirstName string
	LastName  string
}

type Amenity struct {
	Name string
}
