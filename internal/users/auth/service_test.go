// Copyright (c) 2026 Revio. All rights reserved.
// Author: quang.dm.vn@gmail.com

package auth_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quangdm/revio/internal/platform/apperr"
	"github.com/quangdm/revio/internal/platform/sec"
	"github.com/quangdm/revio/internal/users/auth"
	"github.com/quangdm/revio/pkg/pagination"
)

// # Test Doubles

// fakeUserRepository is an in-memory UserRepository.
type fakeUserRepository struct {
	users map[string]*auth.User // keyed by ID
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*auth.User)}
}

func (repo *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	copied := *user
	repo.users[user.ID] = &copied
	return nil
}

func (repo *fakeUserRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	for _, user := range repo.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	stored, found := repo.users[user.ID]
	if !found {
		return apperr.NotFound("User")
	}
	stored.Email = user.Email
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	stored.Bio = user.Bio
	stored.Role = user.Role
	return nil
}

func (repo *fakeUserRepository) UpdateConfirmationCode(_ context.Context, userID, codeHash string) error {
	stored, found := repo.users[userID]
	if !found {
		return apperr.NotFound("User")
	}
	stored.ConfirmationCodeHash = codeHash
	return nil
}

func (repo *fakeUserRepository) List(_ context.Context, _ string, _ pagination.Params) ([]auth.User, int, error) {
	users := make([]auth.User, 0, len(repo.users))
	for _, user := range repo.users {
		users = append(users, *user)
	}
	return users, len(users), nil
}

func (repo *fakeUserRepository) DeleteByUsername(_ context.Context, username string) error {
	for id, user := range repo.users {
		if user.Username == username {
			delete(repo.users, id)
			return nil
		}
	}
	return apperr.NotFound("User")
}

// fakeNotifier records delivered codes instead of queueing email.
type fakeNotifier struct {
	deliveries []delivery
}

type delivery struct {
	email    string
	username string
	code     string
}

func (notifier *fakeNotifier) Notify(_ context.Context, email, username, code string) error {
	notifier.deliveries = append(notifier.deliveries, delivery{email: email, username: username, code: code})
	return nil
}

func (notifier *fakeNotifier) lastCode() string {
	if len(notifier.deliveries) == 0 {
		return ""
	}
	return notifier.deliveries[len(notifier.deliveries)-1].code
}

// fakeTokenProvider issues predictable tokens.
type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, username, role string, _ time.Duration) (string, error) {
	return "token-for-" + username, nil
}

func newTestService(repo *fakeUserRepository, notifier *fakeNotifier) *auth.Service {
	logger := slog.New(slog.DiscardHandler)
	return auth.NewService(repo, notifier, fakeTokenProvider{}, logger)
}

// # Signup

/*
TestSignup_NewAccount verifies registration: a user row appears with the
default role, a code is delivered, and the response echoes the input pair.
*/
func TestSignup_NewAccount(t *testing.T) {
	repo := newFakeUserRepository()
	notifier := &fakeNotifier{}
	service := newTestService(repo, notifier)

	receipt, err := service.Signup(context.Background(), auth.SignupInput{
		Email:    "alice@example.com",
		Username: "alice",
	})
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", receipt.Email)
	assert.Equal(t, "alice", receipt.Username)

	user, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, sec.RoleUser, user.Role)
	assert.NotEmpty(t, user.ConfirmationCodeHash)

	require.Len(t, notifier.deliveries, 1)
	assert.Equal(t, "alice@example.com", notifier.deliveries[0].email)
	assert.NotEmpty(t, notifier.deliveries[0].code)

	// The raw code is never persisted, only its hash.
	assert.NotContains(t, user.ConfirmationCodeHash, notifier.deliveries[0].code)
	assert.True(t, sec.CheckCodeHash(notifier.deliveries[0].code, user.ConfirmationCodeHash))
}

/*
TestSignup_RepeatSamePair verifies idempotent re-signup: no duplicate account,
a fresh code replacing the previous one.
*/
func TestSignup_RepeatSamePair(t *testing.T) {
	repo := newFakeUserRepository()
	notifier := &fakeNotifier{}
	service := newTestService(repo, notifier)

	input := auth.SignupInput{Email: "alice@example.com", Username: "alice"}

	_, err := service.Signup(context.Background(), input)
	require.NoError(t, err)
	firstCode := notifier.lastCode()

	_, err = service.Signup(context.Background(), input)
	require.NoError(t, err)
	secondCode := notifier.lastCode()

	assert.Len(t, repo.users, 1)
	assert.NotEqual(t, firstCode, secondCode)

	user, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)

	// Only the latest code opens the account now.
	assert.False(t, sec.CheckCodeHash(firstCode, user.ConfirmationCodeHash))
	assert.True(t, sec.CheckCodeHash(secondCode, user.ConfirmationCodeHash))
}

/*
TestSignup_CrossBoundIdentity verifies that neither half of an existing
(email, username) pair can be re-bound to a new partner.
*/
func TestSignup_CrossBoundIdentity(t *testing.T) {
	repo := newFakeUserRepository()
	notifier := &fakeNotifier{}
	service := newTestService(repo, notifier)

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Email:    "alice@example.com",
		Username: "alice",
	})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input auth.SignupInput
	}{
		{"username_taken", auth.SignupInput{Email: "other@example.com", Username: "alice"}},
		{"email_taken", auth.SignupInput{Email: "alice@example.com", Username: "other"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Signup(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
		})
	}
}

/*
TestSignup_InvalidInput verifies field validation on the signup payload.
*/
func TestSignup_InvalidInput(t *testing.T) {
	service := newTestService(newFakeUserRepository(), &fakeNotifier{})

	tests := []struct {
		name  string
		input auth.SignupInput
	}{
		{"reserved_username", auth.SignupInput{Email: "a@b.com", Username: "me"}},
		{"bad_charset", auth.SignupInput{Email: "a@b.com", Username: "has space"}},
		{"bad_email", auth.SignupInput{Email: "not-an-email", Username: "alice"}},
		{"missing_email", auth.SignupInput{Username: "alice"}},
		{"missing_username", auth.SignupInput{Email: "a@b.com"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Signup(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

// # Token Exchange

/*
TestExchangeToken_Flow walks the full happy path and verifies that codes are
reusable: exchanging does not consume them.
*/
func TestExchangeToken_Flow(t *testing.T) {
	repo := newFakeUserRepository()
	notifier := &fakeNotifier{}
	service := newTestService(repo, notifier)

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Email:    "alice@example.com",
		Username: "alice",
	})
	require.NoError(t, err)
	code := notifier.lastCode()

	grant, err := service.ExchangeToken(context.Background(), auth.TokenInput{
		Username:         "alice",
		ConfirmationCode: code,
	})
	require.NoError(t, err)
	assert.Equal(t, "token-for-alice", grant.Access)

	// Codes never expire and survive use.
	grant, err = service.ExchangeToken(context.Background(), auth.TokenInput{
		Username:         "alice",
		ConfirmationCode: code,
	})
	require.NoError(t, err)
	assert.Equal(t, "token-for-alice", grant.Access)
}

/*
TestExchangeToken_Failures separates the two rejection modes: unknown
username is 404, known username with a wrong code is 400.
*/
func TestExchangeToken_Failures(t *testing.T) {
	repo := newFakeUserRepository()
	notifier := &fakeNotifier{}
	service := newTestService(repo, notifier)

	_, err := service.Signup(context.Background(), auth.SignupInput{
		Email:    "alice@example.com",
		Username: "alice",
	})
	require.NoError(t, err)

	_, err = service.ExchangeToken(context.Background(), auth.TokenInput{
		Username:         "nobody",
		ConfirmationCode: "whatever",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperr.As(err).HTTPStatus)

	_, err = service.ExchangeToken(context.Background(), auth.TokenInput{
		Username:         "alice",
		ConfirmationCode: "definitely-wrong",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperr.As(err).HTTPStatus)
}
