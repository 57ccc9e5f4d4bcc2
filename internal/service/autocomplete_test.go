package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/trendgate/internal/cache/memory"
	"github.com/kitbuilder587/trendgate/internal/domain"
	suggestMock "github.com/kitbuilder587/trendgate/internal/suggest/mock"
)

func newAutocompleteService(provider *suggestMock.Client) AutocompleteService {
	return NewAutocompleteService(AutocompleteServiceDeps{
		Provider: provider,
		Cache:    memory.New(),
		Logger:   zap.NewNop(),
		Config:   AutocompleteConfig{CacheTTL: time.Minute},
	})
}

func TestAutocomplete_EmptyKeyword(t *testing.T) {
	s := newAutocompleteService(suggestMock.New())

	_, err := s.Suggest(context.Background(), AutocompleteQuery{Keyword: "  "})
	if !errors.Is(err, domain.ErrEmptyQuery) {
		t.Errorf("err = %v, want ErrEmptyQuery", err)
	}
}

func TestAutocomplete_PassesParams(t *testing.T) {
	provider := suggestMock.New().WithSuggestions([]string{"bitcoin price"})
	s := newAutocompleteService(provider)

	got, err := s.Suggest(context.Background(), AutocompleteQuery{
		Keyword: " bitcoin ",
		Limit:   5,
		Lang:    "en",
		Region:  "us",
	})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(got) != 1 || got[0] != "bitcoin price" {
		t.Errorf("suggestions = %v", got)
	}

	req := provider.Requests[0]
	if req.Keyword != "bitcoin" || req.Limit != 5 || req.Lang != "en" || req.Region != "us" {
		t.Errorf("request = %+v, keyword must be trimmed and params passed through", req)
	}
}

func TestAutocomplete_Cached(t *testing.T) {
	provider := suggestMock.New().WithSuggestions([]string{"a"})
	s := newAutocompleteService(provider)

	q := AutocompleteQuery{Keyword: "bitcoin"}
	for i := 0; i < 3; i++ {
		if _, err := s.Suggest(context.Background(), q); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if len(provider.Requests) != 1 {
		t.Errorf("provider calls = %d, want 1", len(provider.Requests))
	}

	// другой limit - другой ключ кэша
	if _, err := s.Suggest(context.Background(), AutocompleteQuery{Keyword: "bitcoin", Limit: 3}); err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(provider.Requests) != 2 {
		t.Errorf("provider calls = %d, want 2 after limit change", len(provider.Requests))
	}
}

func TestAutocomplete_EmptyNotNil(t *testing.T) {
	s := newAutocompleteService(suggestMock.New())

	got, err := s.Suggest(context.Background(), AutocompleteQuery{Keyword: "zzz"})
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if got == nil {
		t.Error("suggestions must be empty non-nil slice")
	}
}
