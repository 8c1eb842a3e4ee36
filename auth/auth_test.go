package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
)

// TestNoAuth tests the NoAuth authenticator.
func TestNoAuth(t *testing.T) {
	for _, token := range []string{"any-token", ""} {
		identity, err := NoAuth().Authenticate(context.Background(), token)
		if err != nil {
			t.Errorf("NoAuth should never return error, got: %v", err)
		}
		if identity != "anonymous" {
			t.Errorf("Expected identity 'anonymous', got '%s'", identity)
		}
	}
}

// TestBearerAuth tests bearer token validation through a user function.
func TestBearerAuth(t *testing.T) {
	a := BearerAuth(func(token string) (string, error) {
		if token == "valid-token" {
			return "user123", nil
		}
		return "", errors.New("invalid token")
	})

	tests := []struct {
		name     string
		token    string
		identity string
		wantErr  bool
	}{
		{"Valid", "valid-token", "user123", false},
		{"Invalid", "invalid-token", "", true},
		{"Empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := a.Authenticate(context.Background(), tt.token)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if identity != tt.identity {
				t.Errorf("identity = %q, want %q", identity, tt.identity)
			}
		})
	}
}

// TestStaticTokens tests the fixed token table.
func TestStaticTokens(t *testing.T) {
	tokens := map[string]string{"t1": "alice", "t2": "bob"}
	a := StaticTokens(tokens)

	// Mutating the source map must not change the authenticator.
	tokens["t3"] = "mallory"

	tests := []struct {
		token    string
		identity string
		wantErr  bool
	}{
		{"t1", "alice", false},
		{"t2", "bob", false},
		{"t3", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		identity, err := a.Authenticate(context.Background(), tt.token)
		if (err != nil) != tt.wantErr {
			t.Errorf("token %q: err = %v, wantErr %v", tt.token, err, tt.wantErr)
		}
		if identity != tt.identity {
			t.Errorf("token %q: identity = %q, want %q", tt.token, identity, tt.identity)
		}
	}
}

// TestBearerAuthConcurrency tests concurrent authentication calls.
func TestBearerAuthConcurrency(t *testing.T) {
	a := StaticTokens(map[string]string{"token-a": "a", "token-b": "b"})

	var wg sync.WaitGroup
	errs := make(chan error, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, want := "token-a", "a"
			if i%2 == 1 {
				token, want = "token-b", "b"
			}
			identity, err := a.Authenticate(context.Background(), token)
			if err != nil {
				errs <- err
				return
			}
			if identity != want {
				errs <- errors.New("identity mismatch: " + identity)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestTokenFromAuthorizationHeader(t *testing.T) {
	tests := []struct {
		header  string
		token   string
		wantErr error
	}{
		{"Bearer abc", "abc", nil},
		{"Basic abc", "", ErrInvalidAuthHeader},
		{"Bearer ", "", ErrTokenIsEmpty},
		{"", "", ErrInvalidAuthHeader},
	}

	for _, tt := range tests {
		token, err := TokenFromAuthorizationHeader(tt.header)
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("header %q: err = %v, want %v", tt.header, err, tt.wantErr)
		}
		if token != tt.token {
			t.Errorf("header %q: token = %q, want %q", tt.header, token, tt.token)
		}
	}
}

func TestValidateTokenSetsIdentity(t *testing.T) {
	a := StaticTokens(map[string]string{"secret": "analyst"})

	ctx, err := ValidateToken(context.Background(), "secret", a)
	if err != nil {
		t.Fatalf("ValidateToken failed: %v", err)
	}
	if got := IdentityFromContext(ctx); got != "analyst" {
		t.Errorf("IdentityFromContext = %q, want analyst", got)
	}

	if _, err := ValidateToken(context.Background(), "wrong", a); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
	if _, err := ValidateToken(context.Background(), "", a); !errors.Is(err, ErrTokenIsEmpty) {
		t.Errorf("expected ErrTokenIsEmpty, got %v", err)
	}

	if got := IdentityFromContext(context.Background()); got != "" {
		t.Errorf("empty context identity = %q", got)
	}
}
