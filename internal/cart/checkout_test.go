package cart

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talkincode/streamstore/internal/domain"
)

func newTestCheckout(t *testing.T) *Checkout {
	t.Helper()
	co, err := NewCheckout(CheckoutOptions{
		StoreName: "StreamStore",
		Phone:     "+55 (85) 98234-9916",
		Currency:  "R$",
		Footer:    "_Aguardando instruções para pagamento._",
		NodeID:    1,
	})
	require.NoError(t, err)
	return co
}

func TestMessageFormat(t *testing.T) {
	co := newTestCheckout(t)
	c := New()
	c.Add(domain.Product{ID: 1, Name: "Canva Pro", Price: 15.90})
	c.Add(domain.Product{ID: 2, Name: "Conta Completa", Price: 12.90})
	c.Add(domain.Product{ID: 2, Name: "Conta Completa", Price: 12.90})

	msg := co.Message("42", c.Items(), c.Total())
	want := "*Novo Pedido - StreamStore*\n\n" +
		"Pedido #42\n\n" +
		"- Canva Pro (1x): R$ 15.90\n" +
		"- Conta Completa (2x): R$ 25.80\n\n" +
		"*Total: R$ 41.70*\n\n" +
		"_Aguardando instruções para pagamento._"
	assert.Equal(t, want, msg)
}

func TestPlace(t *testing.T) {
	co := newTestCheckout(t)
	c := New()
	c.Add(domain.Product{ID: 7, Name: "Spotify Premium", Price: 20.90})

	order, err := co.Place(c)
	require.NoError(t, err)
	assert.NotEmpty(t, order.Ref)
	assert.Equal(t, "20.90", order.Total.StringFixed(2))
	assert.Contains(t, order.Message, "Pedido #"+order.Ref)
	assert.Equal(t, 1, c.Len(), "checkout does not clear the cart")

	u, err := url.Parse(order.URL)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/5585982349916", u.Path)
	assert.Equal(t, order.Message, u.Query().Get("text"))

	again, err := co.Place(c)
	require.NoError(t, err)
	assert.NotEqual(t, order.Ref, again.Ref, "refs are unique")
}

func TestPlace_EmptyCart(t *testing.T) {
	co := newTestCheckout(t)
	_, err := co.Place(New())
	assert.ErrorIs(t, err, ErrEmptyCart)
	_, err = co.Place(nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestNewCheckout_RequiresPhone(t *testing.T) {
	_, err := NewCheckout(CheckoutOptions{Phone: "n/a"})
	require.Error(t, err)
	_, err = NewCheckout(CheckoutOptions{Phone: "123", NodeID: 5000})
	require.Error(t, err, "node id out of snowflake range")
}

func TestDeepLink_EncodesText(t *testing.T) {
	link := DeepLink("55 85 9", "a b&c\n*d*")
	assert.Equal(t, "https://wa.me/55859?text=a%20b%26c%0A*d*", link)
	assert.NotContains(t, link, "+")
	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "a b&c\n*d*", u.Query().Get("text"))
}

func TestDeepLink_MatchesBrowserEncoding(t *testing.T) {
	link := DeepLink("1", "R$ 1+1 (ok)! it's 100% ~")
	assert.Equal(t, "https://wa.me/1?text=R%24%201%2B1%20(ok)!%20it's%20100%25%20~", link)
}
