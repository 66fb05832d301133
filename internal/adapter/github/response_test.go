package github

import (
	"reflect"
	"testing"

	"github.com/m-zajac/busfactor/internal/app"
)

func Test_searchResponse_ToRepositories(t *testing.T) {
	tests := []struct {
		name     string
		response searchResponse
		want     []app.Repository
		wantErr  bool
	}{
		{
			name:     "empty",
			response: searchResponse{},
			want:     []app.Repository{},
		},
		{
			name: "2 items",
			response: searchResponse{
				Items: []searchResponseItem{
					{
						Name: "x",
						Owner: searchResponseItemOwner{
							Login: "y",
						},
						StargazersCount: 10,
						Language:        "Go",
					},
					{
						Name: "a",
						Owner: searchResponseItemOwner{
							Login: "b",
						},
						StargazersCount: 5,
						Language:        "Go",
					},
				},
			},
			want: []app.Repository{
				{
					Name:       "x",
					OwnerLogin: "y",
					Stars:      10,
					Language:   "Go",
				},
				{
					Name:       "a",
					OwnerLogin: "b",
					Stars:      5,
					Language:   "Go",
				},
			},
		},
		{
			name: "item without name",
			response: searchResponse{
				Items: []searchResponseItem{
					{
						Owner: searchResponseItemOwner{
							Login: "y",
						},
					},
				},
			},
			wantErr: true,
		},
		{
			name: "item with negative stars",
			response: searchResponse{
				Items: []searchResponseItem{
					{
						Name: "x",
						Owner: searchResponseItemOwner{
							Login: "y",
						},
						StargazersCount: -1,
					},
				},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.response.ToRepositories()
			if (err != nil) != tt.wantErr {
				t.Fatalf("searchResponse.ToRepositories() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !app.IsMalformedError(err) {
					t.Errorf("searchResponse.ToRepositories() error is not malformed: %v", err)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("searchResponse.ToRepositories() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func Test_contributorsResponse_ToContributors(t *testing.T) {
	tests := []struct {
		name     string
		response contributorsResponse
		want     []app.Contributor
		wantErr  bool
	}{
		{
			name:     "empty",
			response: contributorsResponse{},
			want:     []app.Contributor{},
		},
		{
			name: "2 items",
			response: contributorsResponse{
				{
					Login:         "x",
					Contributions: 2,
				},
				{
					Login:         "y",
					Contributions: 4,
				},
			},
			want: []app.Contributor{
				{
					Login:   "x",
					Commits: 2,
				},
				{
					Login:   "y",
					Commits: 4,
				},
			},
		},
		{
			name: "item without login",
			response: contributorsResponse{
				{
					Contributions: 2,
				},
			},
			wantErr: true,
		},
		{
			name: "item with negative contributions",
			response: contributorsResponse{
				{
					Login:         "x",
					Contributions: -2,
				},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.response.ToContributors()
			if (err != nil) != tt.wantErr {
				t.Fatalf("contributorsResponse.ToContributors() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				if !app.IsMalformedError(err) {
					t.Errorf("contributorsResponse.ToContributors() error is not malformed: %v", err)
				}
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("contributorsResponse.ToContributors() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
