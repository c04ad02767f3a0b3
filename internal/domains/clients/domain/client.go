package domain

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName    = errors.New("client name is required")
	ErrInvalidEmail = errors.New("client email must contain '@'")
)

// Client is a customer that shipments are registered for.
type Client struct {
	ID      int64
	Name    string
	Email   string
	Phone   string
	Address string
}

// NewClient trims and validates client details.
func NewClient(name, email, phone, address string) (*Client, error) {
	c := &Client{
		Name:    name,
		Email:   email,
		Phone:   phone,
		Address: address,
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate normalizes whitespace and enforces invariants.
func (c *Client) Validate() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)
	if c.Name == "" {
		return ErrEmptyName
	}
	if c.Email != "" && !strings.Contains(c.Email, "@") {
		return ErrInvalidEmail
	}
	return nil
}

func (c *Client) Clone() *Client {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}
