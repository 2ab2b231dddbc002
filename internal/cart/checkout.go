package cart

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

var ErrEmptyCart = errors.New("cart is empty")

type CheckoutOptions struct {
	StoreName string
	Phone     string
	Currency  string
	Footer    string
	NodeID    int64
}

// Order is the result of a checkout. It is not stored anywhere.
type Order struct {
	Ref       string          `json:"order_ref"`
	Items     []Item          `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Message   string          `json:"message"`
	URL       string          `json:"url"`
	CreatedAt time.Time       `json:"created_at"`
}

// Checkout turns a cart into a WhatsApp order message and deep link.
type Checkout struct {
	opts CheckoutOptions
	node *snowflake.Node
}

func NewCheckout(opts CheckoutOptions) (*Checkout, error) {
	node, err := snowflake.NewNode(opts.NodeID)
	if err != nil {
		return nil, errors.Wrapf(err, "snowflake node %d", opts.NodeID)
	}
	opts.Phone = digitsOnly(opts.Phone)
	if opts.Phone == "" {
		return nil, errors.New("checkout phone is required")
	}
	if opts.Currency == "" {
		opts.Currency = "R$"
	}
	return &Checkout{opts: opts, node: node}, nil
}

// Place builds the order for c. The cart itself is left untouched.
func (co *Checkout) Place(c *Cart) (*Order, error) {
	if c == nil || c.IsEmpty() {
		return nil, ErrEmptyCart
	}
	ref := co.node.Generate().String()
	items := c.Items()
	total := c.Total()
	msg := co.Message(ref, items, total)
	return &Order{
		Ref:       ref,
		Items:     items,
		Total:     total,
		Message:   msg,
		URL:       DeepLink(co.opts.Phone, msg),
		CreatedAt: time.Now(),
	}, nil
}

// Message renders the plaintext order summary sent to the store.
func (co *Checkout) Message(ref string, items []Item, total decimal.Decimal) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*Novo Pedido - %s*\n\n", co.opts.StoreName)
	if ref != "" {
		fmt.Fprintf(&sb, "Pedido #%s\n\n", ref)
	}
	for i, it := range items {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "- %s (%dx): %s %s", it.Name, it.Quantity, co.opts.Currency, it.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&sb, "\n\n*Total: %s %s*", co.opts.Currency, total.StringFixed(2))
	if co.opts.Footer != "" {
		sb.WriteString("\n\n")
		sb.WriteString(co.opts.Footer)
	}
	return sb.String()
}

// DeepLink returns the wa.me link that opens a chat with phone prefilled
// with text.
func DeepLink(phone, text string) string {
	u := url.URL{
		Scheme:   "https",
		Host:     "wa.me",
		Path:     "/" + digitsOnly(phone),
		RawQuery: "text=" + encodeComponent(text),
	}
	return u.String()
}

// componentUnescape undoes QueryEscape for the marks a browser's
// encodeURIComponent leaves alone, and writes spaces as %20.
var componentUnescape = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

func encodeComponent(s string) string {
	return componentUnescape.Replace(url.QueryEscape(s))
}

func digitsOnly(s string) string {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
