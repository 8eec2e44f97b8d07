// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/JayanshJR7/novara-api/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

var (
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// Create registers a new user with a bcrypt password hash.
func (s *Store) Create(ctx context.Context, name, email, password string) (models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, err
	}

	now := time.Now().UTC()
	u := models.User{
		ID:           primitive.NewObjectID(),
		Name:         strings.TrimSpace(name),
		Email:        strings.TrimSpace(email),
		EmailCI:      text.Fold(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// Authenticate checks email + password and returns the user on success.
// The error is the same for unknown email and wrong password so callers
// cannot probe which emails exist.
func (s *Store) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email_ci": text.Fold(strings.TrimSpace(email))}).Decode(&u)
	if err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	if u.PasswordHash == "" {
		// Google-only account.
		return models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

func (s *Store) GetByEmailCI(ctx context.Context, emailCI string) (models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email_ci": emailCI}).Decode(&u); err != nil {
		return models.User{}, err
	}
	return u, nil
}

// UpsertGoogle finds or creates the account for a Google sign-in. Existing
// accounts (matched by folded email) are linked to the Google id; new
// accounts are created without a password hash.
func (s *Store) UpsertGoogle(ctx context.Context, googleID, email, name string) (models.User, error) {
	now := time.Now().UTC()
	emailCI := text.Fold(strings.TrimSpace(email))

	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email_ci": emailCI}).Decode(&u)
	if err == nil {
		if u.GoogleID != googleID {
			_, err = s.c.UpdateByID(ctx, u.ID, bson.M{"$set": bson.M{
				"google_id":  googleID,
				"updated_at": now,
			}})
			if err != nil {
				return models.User{}, err
			}
			u.GoogleID = googleID
		}
		return u, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, err
	}

	u = models.User{
		ID:        primitive.NewObjectID(),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(email),
		EmailCI:   emailCI,
		GoogleID:  googleID,
		Role:      models.RoleCustomer,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			// Lost a race with a concurrent sign-in for the same email.
			return s.GetByEmailCI(ctx, emailCI)
		}
		return models.User{}, err
	}
	return u, nil
}

// PromoteAdmin sets the admin role on the account with the given email.
// Returns mongo.ErrNoDocuments via the driver if no such account exists.
func (s *Store) PromoteAdmin(ctx context.Context, email string) error {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"email_ci": text.Fold(strings.TrimSpace(email))},
		bson.M{"$set": bson.M{"role": models.RoleAdmin, "updated_at": time.Now().UTC()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
