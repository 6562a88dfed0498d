package booking

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/yomiyu15/Workingspacebackend/internal/domain"
	"github.com/yomiyu15/Workingspacebackend/internal/repository"
)

const generatedCredentialBytes = 12

// ResolveUser returns the id of the account registered under email, creating
// a standard account when none exists. Repeat calls never modify the account.
// credentialHash is stored for a new account; empty means generate one here.
func ResolveUser(ctx context.Context, users UserDirectory, name, email, phone, credentialHash string) (int64, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return 0, invalid("Email is required to create a booking")
	}

	existing, err := users.GetByEmail(ctx, email)
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return 0, storage("find user by email", err)
	}

	hash := credentialHash
	if hash == "" {
		if hash, err = generateCredentialHash(); err != nil {
			return 0, err
		}
	}

	first, last := domain.SplitName(name, email)
	u := &domain.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    first,
		LastName:     last,
		Phone:        optionalString(phone),
		Role:         domain.RoleUser,
	}
	if err := users.Create(ctx, u); err != nil {
		if !repository.IsUniqueViolation(err) {
			return 0, storage("create user", err)
		}
		// Lost the race to a concurrent request for the same email.
		logrus.WithField("email", email).WithError(ErrConflict).Debug("[BOOKING] user created concurrently, re-resolving")
		existing, lookupErr := users.GetByEmail(ctx, email)
		if lookupErr != nil {
			return 0, storage("re-resolve user", lookupErr)
		}
		return existing.ID, nil
	}
	return u.ID, nil
}

// prepareCredential hashes a credential for email when no account exists
// yet, so the bcrypt work happens before any workspace lock is taken. It
// returns "" when the account exists or the lookup fails; ResolveUser decides
// again inside the transaction.
func prepareCredential(ctx context.Context, users UserDirectory, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", nil
	}
	if _, err := users.GetByEmail(ctx, email); !errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	return generateCredentialHash()
}

// generateCredentialHash makes a throwaway password the customer never sees
// and returns only its bcrypt hash.
func generateCredentialHash() (string, error) {
	buf := make([]byte, generatedCredentialBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate credential: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(hex.EncodeToString(buf)), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash credential: %w", err)
	}
	return string(hash), nil
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
