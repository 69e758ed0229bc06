package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildGetAllQuery(t *testing.T) {
	tests := []struct {
		name      string
		sort      string
		status    string
		wantOrder string
		wantArgs  int
	}{
		{name: "a_z", sort: "a_z", wantOrder: "ORDER BY name ASC"},
		{name: "z_a", sort: "z_a", wantOrder: "ORDER BY name DESC"},
		{name: "date_desc", sort: "date_desc", wantOrder: "ORDER BY created_at DESC"},
		{name: "date_asc", sort: "date_asc", wantOrder: "ORDER BY created_at ASC"},
		{name: "unknown falls back to a_z", sort: "bogus", wantOrder: "ORDER BY name ASC"},
		{name: "empty falls back to a_z", sort: "", wantOrder: "ORDER BY name ASC"},
		{name: "status filter binds a parameter", sort: "date_asc", status: "active", wantOrder: "ORDER BY created_at ASC", wantArgs: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args := buildGetAllQuery(tt.sort, tt.status)

			assert.Contains(t, query, tt.wantOrder)
			assert.Len(t, args, tt.wantArgs)

			if tt.status == "" {
				assert.NotContains(t, query, "WHERE")
			} else {
				assert.Contains(t, query, "WHERE status = $1")
				assert.Equal(t, tt.status, args[0])
			}
		})
	}
}

func TestBuildGetAllQueryNeverInterpolates(t *testing.T) {
	// Filter values must only ever travel as bind parameters.
	query, args := buildGetAllQuery("a_z", "'; DROP TABLE courses; --")
	assert.NotContains(t, query, "DROP TABLE")
	assert.Equal(t, []any{"'; DROP TABLE courses; --"}, args)
}
