package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveUsername(t *testing.T) {
	testCases := []struct {
		name     string
		email    string
		expected string
	}{
		{name: "локальная часть от 3 символов", email: "sarah@example.com", expected: "sa"},
		{name: "локальная часть ровно 3 символа", email: "bob@example.com", expected: "bo"},
		{name: "короткая локальная часть", email: "ab@example.com", expected: "a"},
		{name: "один символ до @", email: "x@example.com", expected: "x"},
		{name: "без @", email: "plainaddress", expected: "pl"},
		{name: "пустая строка", email: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, DeriveUsername(tc.email))
		})
	}
}
