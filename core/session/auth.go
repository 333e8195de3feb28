package session

import (
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/trezcool/studenthub/core/student"
)

var (
	// ErrInvalidCredentials matches both ErrInvalidAdminCredentials and ErrInvalidStudentCredentials.
	ErrInvalidCredentials        = errors.New("invalid credentials")
	ErrInvalidAdminCredentials   = credentialsError("invalid admin credentials")
	ErrInvalidStudentCredentials = credentialsError("invalid roll number or password")

	ErrStaleIdentity = errors.New("session identity is no longer valid")
)

type credentialsError string

func (e credentialsError) Error() string        { return string(e) }
func (e credentialsError) Is(target error) bool { return target == ErrInvalidCredentials }

// AdminAccount is the single administrator credential pair.
type AdminAccount struct {
	Username string
	Password string
	Name     string
}

type StudentFinder interface {
	GetByID(id string) (student.Student, error)
}

// Authenticator checks credentials and re-validates identities. It holds no session state.
type Authenticator struct {
	admin    AdminAccount
	students StudentFinder
}

func NewAuthenticator(admin AdminAccount, students StudentFinder) *Authenticator {
	return &Authenticator{admin: admin, students: students}
}

func (a *Authenticator) AdminLogin(username, password string) (Admin, error) {
	if username == "" || username != a.admin.Username || password != a.admin.Password {
		return Admin{}, ErrInvalidAdminCredentials
	}
	return Admin{Username: a.admin.Username, Name: a.admin.Name}, nil
}

func (a *Authenticator) StudentLogin(rollNumber, password string) (Student, error) {
	st, err := a.students.GetByID(rollNumber)
	if err != nil {
		if errors.Is(err, student.ErrNotFound) {
			return Student{}, ErrInvalidStudentCredentials
		}
		return Student{}, pkgerrors.Wrap(err, "finding student by roll number")
	}
	if !st.CheckPassword(password) {
		return Student{}, ErrInvalidStudentCredentials
	}
	return Student{ID: st.ID, Name: st.Name, Email: st.Email, Class: st.Class}, nil
}

// Verify checks that a restored identity still refers to a known principal.
// The display data carried by the identity is not compared.
func (a *Authenticator) Verify(id Identity) error {
	switch id := id.(type) {
	case Admin:
		if id.Username != a.admin.Username {
			return ErrStaleIdentity
		}
		return nil
	case Student:
		if _, err := a.students.GetByID(id.ID); err != nil {
			if errors.Is(err, student.ErrNotFound) {
				return ErrStaleIdentity
			}
			return pkgerrors.Wrap(err, "finding student by roll number")
		}
		return nil
	}
	return ErrStaleIdentity
}
