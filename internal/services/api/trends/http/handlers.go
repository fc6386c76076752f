// Package http provides http transport for the trend views
package http

import (
	stdhttp "net/http"

	"oilwatch/internal/modkit/httpkit"
	"oilwatch/internal/services/api/trends/domain"
)

// Register mounts trend endpoints on the given router.
// Views take POST with JSON bodies so filters compose without query string encoding
func Register(r httpkit.Router, s domain.ServicePort) {
	h := &handlers{svc: s}

	// posts per bucket
	httpkit.PostJSON[domain.PostsInput](r, "/posts", h.posts)

	// term or dictionary scores per bucket
	httpkit.PostJSON[domain.TermsInput](r, "/terms", h.terms)

	// one dictionary across companies
	httpkit.PostJSON[domain.DictionaryCompaniesInput](r, "/dictionary/companies", h.dictionaryCompanies)

	// descriptive table
	httpkit.PostJSON[domain.SummaryInput](r, "/companies/summary", h.summary)

	// selector options
	httpkit.Get(r, "/companies", h.companies)
}

type handlers struct{ svc domain.ServicePort }

// swagger:route POST /trends/posts Trends trendsPosts
// @Summary Posts by date, optionally per company
// @Tags Trends
// @Accept json
// @Produce json
// @Param payload body domain.PostsInput true "Query"
// @Success 200 {object} domain.View "ok"
// @Router /trends/posts [post]
func (h *handlers) posts(r *stdhttp.Request, in domain.PostsInput) (any, error) {
	return h.svc.Posts(r.Context(), in)
}

// swagger:route POST /trends/terms Trends trendsTerms
// @Summary Term or dictionary counts by date
// @Tags Trends
// @Accept json
// @Produce json
// @Param payload body domain.TermsInput true "Query"
// @Success 200 {object} domain.View "ok"
// @Failure 404 {object} httpkit.Envelope "unknown dictionary"
// @Router /trends/terms [post]
func (h *handlers) terms(r *stdhttp.Request, in domain.TermsInput) (any, error) {
	return h.svc.Terms(r.Context(), in)
}

// swagger:route POST /trends/dictionary/companies Trends trendsDictionaryCompanies
// @Summary One dictionary by date per company
// @Tags Trends
// @Accept json
// @Produce json
// @Param payload body domain.DictionaryCompaniesInput true "Query"
// @Success 200 {object} domain.View "ok"
// @Failure 404 {object} httpkit.Envelope "unknown dictionary"
// @Router /trends/dictionary/companies [post]
func (h *handlers) dictionaryCompanies(r *stdhttp.Request, in domain.DictionaryCompaniesInput) (any, error) {
	return h.svc.DictionaryCompanies(r.Context(), in)
}

// swagger:route POST /trends/companies/summary Trends trendsSummary
// @Summary Start year, articles and words per company
// @Tags Trends
// @Accept json
// @Produce json
// @Param payload body domain.SummaryInput true "Query"
// @Success 200 {object} domain.View "ok"
// @Router /trends/companies/summary [post]
func (h *handlers) summary(r *stdhttp.Request, in domain.SummaryInput) (any, error) {
	return h.svc.Summary(r.Context(), in)
}

// swagger:route GET /trends/companies Trends trendsCompanies
// @Summary Companies in the corpus with roster colors
// @Tags Trends
// @Produce json
// @Success 200 {object} domain.CompaniesOut "ok"
// @Router /trends/companies [get]
func (h *handlers) companies(r *stdhttp.Request) (any, error) {
	return h.svc.Companies(r.Context())
}
