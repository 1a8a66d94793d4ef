package domain

type Review struct {
	ID     string
	User   *Reviewer
	Text   string
	Rating int
}

type Reviewer struct {
	FirstName string
	LastName  string
}
