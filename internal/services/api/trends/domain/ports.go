package domain

import "context"

// ServicePort is consumed by handlers, the report CLI and other modules
type ServicePort interface {
	Posts(ctx context.Context, in PostsInput) (*View, error)
	Terms(ctx context.Context, in TermsInput) (*View, error)
	DictionaryCompanies(ctx context.Context, in DictionaryCompaniesInput) (*View, error)
	Summary(ctx context.Context, in SummaryInput) (*View, error)
	Companies(ctx context.Context) (*CompaniesOut, error)
	Dictionaries(ctx context.Context) ([]DictionaryOut, error)
	Dictionary(ctx context.Context, key string) (*DictionaryOut, error)
}
