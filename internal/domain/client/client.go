package client

import (
	"strings"

	"github.com/fondos-platform/service-subscription/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NotificationChannel is how a client prefers to be told about subscription changes.
type NotificationChannel string

const (
	ChannelEmail NotificationChannel = "email"
	ChannelSMS   NotificationChannel = "sms"
)

// ParseNotificationChannel accepts a channel name in any case.
func ParseNotificationChannel(s string) (NotificationChannel, error) {
	switch NotificationChannel(strings.ToLower(strings.TrimSpace(s))) {
	case ChannelEmail:
		return ChannelEmail, nil
	case ChannelSMS:
		return ChannelSMS, nil
	default:
		return "", domain.NewValidationError("unknown notification channel %q", s)
	}
}

// InitialBalance is the opening balance of a newly registered client.
var InitialBalance = decimal.NewFromInt(500000)

// Well-known identity of the seeded demo client.
var (
	DefaultClientID = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	DefaultUserID   = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
)

// Client is the aggregate root holding a cash balance.
type Client struct {
	id      uuid.UUID
	userID  uuid.UUID
	info    PersonalInfo
	balance decimal.Decimal
	channel NotificationChannel
}

// NewClient registers a client with an explicit opening balance.
func NewClient(id, userID uuid.UUID, info PersonalInfo, balance decimal.Decimal, channel NotificationChannel) (*Client, error) {
	if id == uuid.Nil {
		id = uuid.New()
	}
	if balance.IsNegative() {
		return nil, domain.NewValidationError("opening balance cannot be negative")
	}
	if !balance.Equal(balance.Round(domain.CurrencyPlaces)) {
		return nil, domain.NewValidationError("opening balance must have at most %d decimal places", domain.CurrencyPlaces)
	}
	if _, err := ParseNotificationChannel(string(channel)); err != nil {
		return nil, err
	}
	return &Client{id: id, userID: userID, info: info, balance: balance, channel: channel}, nil
}

// NewDefaultClient builds the demo client seeded at startup.
func NewDefaultClient() *Client {
	return &Client{
		id:     DefaultClientID,
		userID: DefaultUserID,
		info: PersonalInfo{
			FirstName: "Demo",
			LastName:  "Client",
			City:      "Bogota",
			Email:     "demo.client@amaris.com",
			Phone:     "+573001234567",
		},
		balance: InitialBalance,
		channel: ChannelEmail,
	}
}

// Reconstruct rebuilds a Client from persistence.
func Reconstruct(id, userID uuid.UUID, info PersonalInfo, balance decimal.Decimal, channel NotificationChannel) *Client {
	return &Client{id: id, userID: userID, info: info, balance: balance, channel: channel}
}

// Debit withdraws amount from the balance. label names what the money is for
// and is only used in the insufficient-funds message.
func (c *Client) Debit(amount decimal.Decimal, label string) error {
	if err := domain.CheckAmount(amount); err != nil {
		return err
	}
	if c.balance.LessThan(amount) {
		if label != "" {
			return domain.NewError(domain.ErrInsufficientFunds,
				"insufficient balance to subscribe to %s: balance %s, required %s",
				label, c.balance.StringFixed(domain.CurrencyPlaces), amount.StringFixed(domain.CurrencyPlaces))
		}
		return domain.NewError(domain.ErrInsufficientFunds,
			"insufficient balance: balance %s, required %s",
			c.balance.StringFixed(domain.CurrencyPlaces), amount.StringFixed(domain.CurrencyPlaces))
	}
	c.balance = c.balance.Sub(amount)
	return nil
}

// Credit adds amount to the balance.
func (c *Client) Credit(amount decimal.Decimal) error {
	if err := domain.CheckAmount(amount); err != nil {
		return err
	}
	c.balance = c.balance.Add(amount)
	return nil
}

// UpdateNotificationChannel switches the preferred channel.
func (c *Client) UpdateNotificationChannel(channel NotificationChannel) error {
	parsed, err := ParseNotificationChannel(string(channel))
	if err != nil {
		return err
	}
	c.channel = parsed
	return nil
}

// UpdatePersonalInfo replaces the contact details.
func (c *Client) UpdatePersonalInfo(info PersonalInfo) {
	c.info = info
}

// Getters.
func (c *Client) ID() uuid.UUID                            { return c.id }
func (c *Client) UserID() uuid.UUID                        { return c.userID }
func (c *Client) Info() PersonalInfo                       { return c.info }
func (c *Client) Balance() decimal.Decimal                 { return c.balance }
func (c *Client) NotificationChannel() NotificationChannel { return c.channel }
