package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// newDryRunDB builds statements without a live database so the generated SQL
// can be inspected.
func newDryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{DryRun: true})
	assert.NoError(t, err)
	return db
}

func buildSQL(t *testing.T, categoryID uint, filters ProductFilters) (string, []interface{}) {
	t.Helper()
	db := newDryRunDB(t)
	var products []Product
	stmt := applyFilters(db.Model(&Product{}), categoryID, filters).Find(&products).Statement
	return stmt.SQL.String(), stmt.Vars
}

func TestApplyFilters(t *testing.T) {
	testCases := []struct {
		name         string
		categoryID   uint
		filters      ProductFilters
		wantClauses  []string
		wantVars     []interface{}
		wantAndCount int
	}{
		{
			name:        "No filters selects everything",
			filters:     ProductFilters{},
			wantClauses: nil,
			wantVars:    nil,
		},
		{
			name:         "Category only",
			categoryID:   7,
			filters:      ProductFilters{CategorySlug: "men"},
			wantClauses:  []string{"category_id = "},
			wantVars:     []interface{}{uint(7)},
			wantAndCount: 0,
		},
		{
			name:         "Featured only",
			filters:      ProductFilters{Featured: true},
			wantClauses:  []string{"is_featured = "},
			wantVars:     []interface{}{true},
			wantAndCount: 0,
		},
		{
			name:         "Search only is case-insensitive substring",
			filters:      ProductFilters{Search: "Oxford"},
			wantClauses:  []string{"LOWER(name) LIKE "},
			wantVars:     []interface{}{"%oxford%"},
			wantAndCount: 0,
		},
		{
			// Regression guard: a later filter must never replace an earlier
			// one; category and search have to land in the same conjunction.
			name:         "Category and search combine with AND",
			categoryID:   3,
			filters:      ProductFilters{CategorySlug: "men", Search: "shirt"},
			wantClauses:  []string{"category_id = ", "LOWER(name) LIKE "},
			wantVars:     []interface{}{uint(3), "%shirt%"},
			wantAndCount: 1,
		},
		{
			name:       "All three filters combine with AND",
			categoryID: 3,
			filters:    ProductFilters{CategorySlug: "men", Featured: true, Search: "shirt"},
			wantClauses: []string{
				"category_id = ",
				"is_featured = ",
				"LOWER(name) LIKE ",
			},
			wantVars:     []interface{}{uint(3), true, "%shirt%"},
			wantAndCount: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sql, vars := buildSQL(t, tc.categoryID, tc.filters)

			for _, clause := range tc.wantClauses {
				assert.Contains(t, sql, clause)
			}
			assert.Equal(t, tc.wantAndCount, strings.Count(sql, " AND "),
				"every active filter must join the same conjunction")
			if tc.wantVars == nil {
				assert.Empty(t, vars)
			} else {
				assert.Equal(t, tc.wantVars, vars)
			}
		})
	}
}
