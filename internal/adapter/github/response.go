package github

import (
	"fmt"

	"github.com/m-zajac/busfactor/internal/app"
)

type searchResponse struct {
	TotalCount int                  `json:"total_count"`
	Items      []searchResponseItem `json:"items"`
}

type searchResponseItem struct {
	Name            string                  `json:"name"`
	Owner           searchResponseItemOwner `json:"owner"`
	StargazersCount int                     `json:"stargazers_count"`
	Language        string                  `json:"language"`
}

type searchResponseItemOwner struct {
	Login string `json:"login"`
}

// ToRepositories converts the response to app entities.
// Items with missing identity fields make the whole response malformed.
func (s searchResponse) ToRepositories() ([]app.Repository, error) {
	rs := make([]app.Repository, 0, len(s.Items))
	for _, i := range s.Items {
		if i.Name == "" || i.Owner.Login == "" {
			return nil, app.MalformedError("search response item misses name or owner login")
		}
		if i.StargazersCount < 0 {
			return nil, app.MalformedError(fmt.Sprintf("search response item %s/%s has negative star count", i.Owner.Login, i.Name))
		}
		rs = append(rs, app.Repository{
			Name:       i.Name,
			OwnerLogin: i.Owner.Login,
			Stars:      i.StargazersCount,
			Language:   i.Language,
		})
	}

	return rs, nil
}

type contributorsResponse []contributorsResponseItem

type contributorsResponseItem struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

// ToContributors converts the response to app entities.
// Items with empty login or negative commit count make the whole response malformed.
func (s contributorsResponse) ToContributors() ([]app.Contributor, error) {
	cs := make([]app.Contributor, 0, len(s))
	for _, el := range s {
		if el.Login == "" {
			return nil, app.MalformedError("contributors response item misses login")
		}
		if el.Contributions < 0 {
			return nil, app.MalformedError(fmt.Sprintf("contributor %s has negative commit count", el.Login))
		}
		cs = append(cs, app.Contributor{
			Login:   el.Login,
			Commits: el.Contributions,
		})
	}

	return cs, nil
}
