package auth

import (
	"errors"
	"testing"
	"time"
)

func TestSessionsIssueAndVerify(t *testing.T) {
	sessions := NewSessions("test-secret", time.Hour)

	token, err := sessions.Issue(time.Now())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if err := sessions.Verify(token); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestSessionsRejectsBadTokens(t *testing.T) {
	sessions := NewSessions("test-secret", time.Hour)

	token, err := sessions.Issue(time.Now())
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name  string
		check func() error
	}{
		{"garbage", func() error { return sessions.Verify("not.a.token") }},
		{"empty", func() error { return sessions.Verify("") }},
		{"wrong secret", func() error {
			return NewSessions("other-secret", time.Hour).Verify(token)
		}},
		{"expired", func() error {
			expired, err := sessions.Issue(time.Now().Add(-2 * time.Hour))
			if err != nil {
				t.Fatalf("Issue() error = %v", err)
			}
			return sessions.Verify(expired)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.check(); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
