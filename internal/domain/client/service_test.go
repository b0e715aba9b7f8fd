package client

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type mockRepo struct {
	created []*Client
	nextID  int64
	err     error
}

func (m *mockRepo) Create(_ context.Context, c *Client) error {
	if m.err != nil {
		return m.err
	}
	m.nextID++
	if err := c.SetID(m.nextID); err != nil {
		return err
	}
	m.created = append(m.created, c)
	return nil
}

func (m *mockRepo) CreateBatch(ctx context.Context, cs []*Client) error {
	for _, c := range cs {
		if err := m.Create(ctx, c); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockRepo) List(_ context.Context) ([]*Client, error) {
	return m.created, m.err
}

func (m *mockRepo) GetByID(_ context.Context, id int64) (*Client, error) {
	for _, c := range m.created {
		if got, _ := c.ID(); got == id {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func (m *mockRepo) FindByEmail(_ context.Context, email string) (*Client, error) {
	for _, c := range m.created {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, ErrNotFound
}

func TestService_Register(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, zaptest.NewLogger(t))

	c := New("Ivan", "+1234567890", "ivan@example.com")
	require.NoError(t, svc.Register(context.Background(), c))

	id, ok := c.ID()
	assert.True(t, ok)
	assert.Equal(t, int64(1), id)
	assert.Len(t, repo.created, 1)
}

func TestService_RegisterInvalid(t *testing.T) {
	repo := &mockRepo{}
	svc := NewService(repo, zaptest.NewLogger(t))

	c := New("Petr", "12345", "ivan@example.com")
	err := svc.Register(context.Background(), c)

	var invalid *InvalidContactError
	require.ErrorAs(t, err, &invalid)
	assert.True(t, invalid.Phone)
	assert.False(t, invalid.Email)
	assert.Equal(t, "invalid phone for client Petr", invalid.Error())
	assert.Empty(t, repo.created)
	assert.False(t, c.HasID())
}

func TestService_RegisterStorageError(t *testing.T) {
	repo := &mockRepo{err: errors.New("disk full")}
	svc := NewService(repo, zaptest.NewLogger(t))

	c := New("Ivan", "+1234567890", "ivan@example.com")
	err := svc.Register(context.Background(), c)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "create client")
	assert.False(t, c.HasID())
}
