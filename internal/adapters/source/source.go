// Package source holds what the corpus source adapters share: the article
// column names and table name validation
package source

import (
	"regexp"
	"strings"

	perr "oilwatch/internal/platform/errors"
)

// DefaultTable is the table the sql sources read when none is configured
const DefaultTable = "oil_company_articles"

// DefaultFile is the parquet file name the dashboard ships with
const DefaultFile = "combined_oil_company_dta.parquet"

// Columns are the article columns every source reads, in scan order
var Columns = []string{"company_name", "date", "source_url", "text"}

var tableRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// Table validates an optionally schema qualified table name and returns its parts.
// Empty means DefaultTable
func Table(name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultTable
	}
	if !tableRe.MatchString(name) {
		return nil, perr.WithField(perr.Configf("invalid table name %q", name), "table")
	}
	return strings.Split(name, "."), nil
}
