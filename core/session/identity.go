// Package session models the authenticated principal of a session and its lifecycle.
package session

import (
	"encoding/json"
	"errors"
)

type Kind string

const (
	KindAdmin   Kind = "admin"
	KindStudent Kind = "student"
)

// Identity is the authenticated principal: either an Admin or a Student.
// The set of implementations is closed.
type Identity interface {
	Kind() Kind
	DisplayName() string
	identity()
}

type Admin struct {
	Username string `json:"username"`
	Name     string `json:"name"`
}

func (Admin) Kind() Kind            { return KindAdmin }
func (a Admin) DisplayName() string { return a.Name }
func (Admin) identity()             {}

// Student is bound to a roll number; the display data is copied at login time.
type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Class string `json:"class"`
}

func (Student) Kind() Kind            { return KindStudent }
func (s Student) DisplayName() string { return s.Name }
func (Student) identity()             {}

// Subject is the stable key of an identity: the admin username or the roll number.
func Subject(id Identity) string {
	switch id := id.(type) {
	case Admin:
		return id.Username
	case Student:
		return id.ID
	}
	return ""
}

var ErrCorruptRecord = errors.New("session record does not match the identity schema")

// Record is the persisted form of an Identity.
type Record struct {
	Type     Kind   `json:"type"`
	Name     string `json:"name"`
	ID       string `json:"id,omitempty"`
	Email    string `json:"email,omitempty"`
	Class    string `json:"class,omitempty"`
	Username string `json:"username,omitempty"`
}

func NewRecord(id Identity) Record {
	switch id := id.(type) {
	case Admin:
		return Record{Type: KindAdmin, Name: id.Name, Username: id.Username}
	case Student:
		return Record{Type: KindStudent, Name: id.Name, ID: id.ID, Email: id.Email, Class: id.Class}
	}
	return Record{}
}

// Identity converts the record back, failing with ErrCorruptRecord on any schema mismatch.
func (r Record) Identity() (Identity, error) {
	switch r.Type {
	case KindAdmin:
		if r.Username == "" {
			return nil, ErrCorruptRecord
		}
		return Admin{Username: r.Username, Name: r.Name}, nil
	case KindStudent:
		if r.ID == "" || r.Name == "" {
			return nil, ErrCorruptRecord
		}
		return Student{ID: r.ID, Name: r.Name, Email: r.Email, Class: r.Class}, nil
	}
	return nil, ErrCorruptRecord
}

func Marshal(id Identity) ([]byte, error) {
	if id == nil {
		return nil, ErrCorruptRecord
	}
	return json.Marshal(NewRecord(id))
}

func Unmarshal(data []byte) (Identity, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, ErrCorruptRecord
	}
	return rec.Identity()
}
