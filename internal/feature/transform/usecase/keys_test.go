package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"advisor_backend/internal/feature/transform/domain/entity"
)

func TestCacheKey(t *testing.T) {
	t.Parallel()

	base := entity.Request{CompanyName: "Acme", CompanyURL: "https://acme.example", Action: entity.ActionStart}

	testCases := []struct {
		name  string
		other entity.Request
		same  bool
	}{
		{
			name:  "case and whitespace are ignored",
			other: entity.Request{CompanyName: " ACME ", CompanyURL: "HTTPS://ACME.EXAMPLE", Action: entity.ActionStart},
			same:  true,
		},
		{
			name:  "empty action means start",
			other: entity.Request{CompanyName: "Acme", CompanyURL: "https://acme.example"},
			same:  true,
		},
		{
			name:  "session and project do not matter",
			other: entity.Request{CompanyName: "Acme", CompanyURL: "https://acme.example", Action: entity.ActionStart, SessionID: "x", ProjectID: "p"},
			same:  true,
		},
		{
			name:  "prompt changes the key",
			other: entity.Request{CompanyName: "Acme", CompanyURL: "https://acme.example", Action: entity.ActionStart, Prompt: "security"},
		},
		{
			name:  "files change the key",
			other: entity.Request{CompanyName: "Acme", CompanyURL: "https://acme.example", Action: entity.ActionStart, Files: []string{"s3://b/a.pdf"}},
		},
		{
			name:  "action changes the key",
			other: entity.Request{CompanyName: "Acme", CompanyURL: "https://acme.example", Action: entity.ActionSelect},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			a, b := CacheKey(&base), CacheKey(&tc.other)
			assert.Len(t, a, 32)
			if tc.same {
				assert.Equal(t, a, b)
			} else {
				assert.NotEqual(t, a, b)
			}
		})
	}
}

func TestCacheKey_OrderInsensitiveLists(t *testing.T) {
	t.Parallel()

	a := entity.Request{CompanyName: "Acme", Action: entity.ActionSelect, Files: []string{"f1", "f2"}, SelectedUseCaseIDs: []string{"b", "a"}}
	b := entity.Request{CompanyName: "Acme", Action: entity.ActionSelect, Files: []string{"f2", "f1"}, SelectedUseCaseIDs: []string{"a", "b"}}

	assert.Equal(t, CacheKey(&a), CacheKey(&b))
	assert.Equal(t, SessionKey(&a), SessionKey(&b))
	assert.Equal(t, []string{"b", "a"}, a.SelectedUseCaseIDs)
}

func TestSessionKey_IgnoresFetchType(t *testing.T) {
	t.Parallel()

	a := entity.Request{CompanyName: "Acme", Action: entity.ActionFetch, FetchType: entity.FetchUseCases}
	b := entity.Request{CompanyName: "Acme", Action: entity.ActionFetch, FetchType: entity.FetchAll}

	assert.Equal(t, SessionKey(&a), SessionKey(&b))
	assert.NotEqual(t, CacheKey(&a), CacheKey(&b))
}
