package tutorial

import (
	"fmt"
	"strings"
)

// Person is a contact record. It is treated as an immutable value.
type Person struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// NewPerson returns a new Person.
func NewPerson(name, email, phone string) Person {
	return Person{
		Name:  name,
		Email: email,
		Phone: phone,
	}
}

// Upper returns a copy of p with the name upper-cased.
func (p Person) Upper() Person {
	p.Name = strings.ToUpper(p.Name)
	return p
}

func (p Person) String() string {
	return fmt.Sprintf("Person{name=%s, email=%s, phone=%s}", p.Name, p.Email, p.Phone)
}

// DefaultPeople returns the two sample contacts.
func DefaultPeople() []Person {
	return []Person{
		NewPerson("John", "john@gmail.com", "12345678"),
		NewPerson("Jack", "jack@gmail.com", "12345678"),
	}
}
