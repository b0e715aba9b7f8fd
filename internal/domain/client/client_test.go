package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Validate(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		email string
		want  bool
	}{
		{name: "international phone and plain email", phone: "+1234567890", email: "ivan@example.com", want: true},
		{name: "seven digits without plus", phone: "1234567", email: "a@b.io", want: true},
		{name: "fifteen digits", phone: "+123456789012345", email: "first.last-x@mail.example.org", want: true},
		{name: "phone too short", phone: "12345", email: "ivan@example.com", want: false},
		{name: "phone too long", phone: "1234567890123456", email: "ivan@example.com", want: false},
		{name: "phone with spaces", phone: "+1 234 567 890", email: "ivan@example.com", want: false},
		{name: "email without at", phone: "+1234567890", email: "not-an-email", want: false},
		{name: "email without tld", phone: "+1234567890", email: "ivan@localhost", want: false},
		{name: "both invalid", phone: "12345", email: "not-an-email", want: false},
		{name: "empty", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New("Ivan", tt.phone, tt.email)
			assert.Equal(t, tt.want, c.Validate())
		})
	}
}

func TestClient_ValidateIsPure(t *testing.T) {
	c := New("Petr", "12345", "not-an-email")

	assert.False(t, c.Validate())
	assert.False(t, c.Validate())
	assert.Equal(t, "12345", c.Phone)
	assert.Equal(t, "not-an-email", c.Email)
	assert.False(t, c.HasID())
}

func TestClient_String(t *testing.T) {
	c := New("Anna", "+1234567891", "anna@example.com")
	assert.Equal(t, "Client(id=<unset>, name=Anna)", c.String())

	require.NoError(t, c.SetID(3))
	assert.Equal(t, "Client(id=3, name=Anna)", c.String())
}

func TestIndex(t *testing.T) {
	a := New("A", "", "")
	require.NoError(t, a.SetID(1))
	b := New("B", "", "")
	require.NoError(t, b.SetID(2))
	draft := New("Draft", "", "")

	idx := Index([]*Client{a, b, draft})
	assert.Len(t, idx, 2)
	assert.Same(t, a, idx[1])
	assert.Same(t, b, idx[2])
}
