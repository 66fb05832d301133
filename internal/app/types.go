package app

// Repository entity
type Repository struct {
	Name       string
	OwnerLogin string
	Stars      int
	Language   string
}

// ID returns repository identifier in "owner/name" form.
func (r Repository) ID() string {
	return r.OwnerLogin + "/" + r.Name
}

// Contributor entity. Commit count is scoped to a single repository.
type Contributor struct {
	Login   string
	Commits int
}

// ContributionSet holds contributors of a single repository.
type ContributionSet struct {
	Repository   Repository
	Contributors []Contributor
}

// Total returns the repository's total commit count.
func (s ContributionSet) Total() int {
	var total int
	for _, c := range s.Contributors {
		total += c.Commits
	}

	return total
}

// BusFactorResult pairs a repository with its computed bus factor,
// or with the error that prevented computing it.
type BusFactorResult struct {
	Repository Repository
	BusFactor  int
	Err        error
}
