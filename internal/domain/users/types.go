package users

import (
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound          = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("a user with the given email is already registered")
	ErrDuplicateUsername = errors.New("a user with the given username is already registered")
	QueryTimeoutDuration = time.Second * 5
)

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  password  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

type password struct {
	text *string
	hash []byte
}

func (p *password) Set(text string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(text), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	p.text = &text
	p.hash = hash

	return nil
}

// SetHash loads an already hashed password, as read from storage.
func (p *password) SetHash(hash []byte) {
	p.text = nil
	p.hash = hash
}

func (p *password) Hash() []byte {
	return p.hash
}

func (p *password) Compare(text string) error {
	return bcrypt.CompareHashAndPassword(p.hash, []byte(text))
}

// Ref points at the author of a record. It is either a bare reference
// holding only the user id, or an expanded reference carrying the loaded
// user. The zero Ref points at nobody.
type Ref struct {
	id   int64
	user *User
}

func RefID(id int64) Ref {
	return Ref{id: id}
}

func RefUser(u *User) Ref {
	if u == nil {
		return Ref{}
	}
	return Ref{id: u.ID, user: u}
}

// ID resolves the referenced user id for both forms. ok is false when the
// reference is empty.
func (r Ref) ID() (id int64, ok bool) {
	if r.user != nil {
		return r.user.ID, r.user.ID != 0
	}
	return r.id, r.id != 0
}

// User returns the expanded user, or nil for a bare reference.
func (r Ref) User() *User {
	return r.user
}

func (r Ref) Expanded() bool {
	return r.user != nil
}

// Is reports whether the reference points at the given user.
func (r Ref) Is(userID int64) bool {
	id, ok := r.ID()
	return ok && id == userID
}

// MarshalJSON renders an expanded reference as the public user object and a
// bare one as its id.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.user != nil {
		return json.Marshal(struct {
			ID       int64  `json:"id"`
			Username string `json:"username"`
		}{r.user.ID, r.user.Username})
	}
	if r.id == 0 {
		return []byte("null"), nil
	}
	return json.Marshal(r.id)
}
