package utils

import (
	"encoding/json"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Title   Optional[string]    `json:"title"`
		DueDate Optional[time.Time] `json:"due_date"`
		Count   Optional[int]       `json:"count"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"title":"hello","due_date":null}`), &p))

	assert.True(t, p.Title.Set)
	require.NotNil(t, p.Title.Value)
	assert.Equal(t, "hello", *p.Title.Value)

	assert.True(t, p.DueDate.Set)
	assert.True(t, p.DueDate.IsNull())

	assert.False(t, p.Count.Set)
	assert.False(t, p.Count.IsNull())
}

func TestOptional_UnmarshalJSONTypeMismatch(t *testing.T) {
	var o struct {
		Count Optional[int] `json:"count"`
	}
	assert.Error(t, json.Unmarshal([]byte(`{"count":"three"}`), &o))
}

func TestOptional_Constructors(t *testing.T) {
	s := Some(3)
	assert.True(t, s.Set)
	assert.Equal(t, 3, *s.Value)

	n := Null[string]()
	assert.True(t, n.IsNull())
}

func paginationContext(rawQuery string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/tasks?"+rawQuery, nil)
	return c
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected PaginationParams
		page     int
		wantErr  bool
	}{
		{name: "defaults", query: "", expected: PaginationParams{Skip: 0, Limit: 10}, page: 1},
		{name: "second page", query: "skip=10&limit=10", expected: PaginationParams{Skip: 10, Limit: 10}, page: 2},
		{name: "uneven skip", query: "skip=25&limit=10", expected: PaginationParams{Skip: 25, Limit: 10}, page: 3},
		{name: "max limit", query: "limit=100", expected: PaginationParams{Skip: 0, Limit: 100}, page: 1},
		{name: "limit too large", query: "limit=101", wantErr: true},
		{name: "limit zero", query: "limit=0", wantErr: true},
		{name: "negative skip", query: "skip=-1", wantErr: true},
		{name: "non numeric", query: "skip=abc", wantErr: true},
		{name: "max skip", query: "skip=2147483647&limit=100", expected: PaginationParams{Skip: 2147483647, Limit: 100}, page: 21474837},
		{name: "skip too large", query: "skip=9223372036854775807&limit=1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := GetPaginationParams(paginationContext(tt.query), 10, 100)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPagination)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, params)
			assert.Equal(t, tt.page, params.Page())
		})
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("supersecret")
	require.NoError(t, err)

	assert.NotEqual(t, "supersecret", hash)
	assert.True(t, CheckPassword(hash, "supersecret"))
	assert.False(t, CheckPassword(hash, "supersecreT"))
	assert.False(t, CheckPassword("not-a-hash", "supersecret"))
}

func TestGeneratePassword(t *testing.T) {
	first, err := GeneratePassword()
	require.NoError(t, err)
	second, err := GeneratePassword()
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{6}-[0-9a-f]{6}-[0-9a-f]{6}$`), first)
	assert.NotEqual(t, first, second)
}
