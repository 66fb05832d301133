package app

import (
	"fmt"
	"math/rand"
	"testing"
)

func TestBusFactor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		contributors []Contributor
		want         int
	}{
		{
			name:         "empty set",
			contributors: nil,
			want:         0,
		},
		{
			name: "zero total commits",
			contributors: []Contributor{
				{Login: "a", Commits: 0},
				{Login: "b", Commits: 0},
			},
			want: 0,
		},
		{
			name: "single contributor",
			contributors: []Contributor{
				{Login: "a", Commits: 7},
			},
			want: 1,
		},
		{
			name: "leader alone crosses half exactly",
			contributors: []Contributor{
				{Login: "a", Commits: 50},
				{Login: "b", Commits: 30},
				{Login: "c", Commits: 20},
			},
			want: 1,
		},
		{
			name: "uniform commits",
			contributors: []Contributor{
				{Login: "a", Commits: 10},
				{Login: "b", Commits: 10},
				{Login: "c", Commits: 10},
				{Login: "d", Commits: 10},
			},
			want: 2,
		},
		{
			name: "leader just below half",
			contributors: []Contributor{
				{Login: "a", Commits: 49},
				{Login: "b", Commits: 30},
				{Login: "c", Commits: 21},
			},
			want: 2,
		},
		{
			name: "long tail",
			contributors: []Contributor{
				{Login: "a", Commits: 5},
				{Login: "b", Commits: 4},
				{Login: "c", Commits: 3},
				{Login: "d", Commits: 2},
				{Login: "e", Commits: 1},
				{Login: "f", Commits: 1},
			},
			want: 2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set := ContributionSet{Contributors: tt.contributors}
			if got := BusFactor(set); got != tt.want {
				t.Errorf("BusFactor() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestBusFactorInputOrderInvariance(t *testing.T) {
	t.Parallel()

	contributors := []Contributor{
		{Login: "a", Commits: 120},
		{Login: "b", Commits: 95},
		{Login: "c", Commits: 95},
		{Login: "d", Commits: 10},
		{Login: "e", Commits: 3},
	}

	want := BusFactor(ContributionSet{Contributors: contributors})

	rnd := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		shuffled := make([]Contributor, len(contributors))
		copy(shuffled, contributors)
		rnd.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		if got := BusFactor(ContributionSet{Contributors: shuffled}); got != want {
			t.Fatalf("BusFactor() = %d for shuffled input, want %d", got, want)
		}
	}
}

func TestBusFactorMinimality(t *testing.T) {
	t.Parallel()

	rnd := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		n := rnd.Intn(20) + 1
		contributors := make([]Contributor, 0, n)
		for j := 0; j < n; j++ {
			contributors = append(contributors, Contributor{
				Login:   fmt.Sprintf("user%d", j),
				Commits: rnd.Intn(100) + 1,
			})
		}
		set := ContributionSet{Contributors: contributors}
		total := set.Total()

		b := BusFactor(set)
		if b < 1 || b > n {
			t.Fatalf("BusFactor() = %d out of range [1..%d]", b, n)
		}

		// Top b contributors must cover at least half of the total,
		// top b-1 must not.
		sorted := make([]Contributor, len(contributors))
		copy(sorted, contributors)
		for x := range sorted {
			for y := x + 1; y < len(sorted); y++ {
				if sorted[y].Commits > sorted[x].Commits {
					sorted[x], sorted[y] = sorted[y], sorted[x]
				}
			}
		}

		var sum int
		for j := 0; j < b-1; j++ {
			sum += sorted[j].Commits
		}
		if sum*2 >= total {
			t.Fatalf("BusFactor() = %d is not minimal: top %d cover %d of %d", b, b-1, sum, total)
		}
		sum += sorted[b-1].Commits
		if sum*2 < total {
			t.Fatalf("BusFactor() = %d: top %d cover only %d of %d", b, b, sum, total)
		}
	}
}
