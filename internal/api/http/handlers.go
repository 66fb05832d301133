package http

import (
	"net/http"
	"strconv"

	jsoniter "github.com/json-iterator/go"

	"github.com/m-zajac/busfactor/internal/app"
)

type repositoryReport struct {
	Repository string `json:"repository"`
	Stars      int    `json:"stars"`
	BusFactor  *int   `json:"busFactor,omitempty"`
	Error      string `json:"error,omitempty"`
}

type busFactorResponse struct {
	Language     string             `json:"language"`
	Repositories []repositoryReport `json:"repositories"`
}

func newBusFactorResponse(language string, results []app.BusFactorResult) busFactorResponse {
	reports := make([]repositoryReport, 0, len(results))
	for _, res := range results {
		report := repositoryReport{
			Repository: res.Repository.ID(),
			Stars:      res.Repository.Stars,
		}
		if res.Err != nil {
			report.Error = res.Err.Error()
		} else {
			bf := res.BusFactor
			report.BusFactor = &bf
		}
		reports = append(reports, report)
	}

	return busFactorResponse{
		Language:     language,
		Repositories: reports,
	}
}

// NewBusFactorHandler creates handlerfunc returning bus factor report.
// Every requested repository appears in the report exactly once, with a
// bus factor or with the reason its stats couldn't be fetched.
func NewBusFactorHandler(
	getLanguage func(*http.Request) string,
	service Service,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := getLanguage(r)
		projectsCount := getIntParam(r, "projects", 5)

		results, err := service.BusFactors(r.Context(), lang, projectsCount)
		if err != nil {
			if app.IsInvalidRequestError(err) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			http.Error(w, "", http.StatusInternalServerError)
			return
		}

		response := newBusFactorResponse(lang, results)

		w.Header().Set("Content-type", "application/json; charset=utf-8")
		_ = jsoniter.ConfigFastest.NewEncoder(w).Encode(response)
	}
}

func getIntParam(r *http.Request, name string, defaultValue int) int {
	value := defaultValue
	if vs := r.URL.Query().Get(name); vs != "" {
		if v, err := strconv.Atoi(vs); err == nil && v > 0 && v < 1000 {
			value = v
		}
	}

	return value
}
