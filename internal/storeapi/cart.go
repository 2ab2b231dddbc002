package storeapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/sessions"
	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/streamstore/internal/app"
	"github.com/talkincode/streamstore/internal/cart"
	"github.com/talkincode/streamstore/internal/webserver"
	"github.com/talkincode/streamstore/pkg/metrics"
)

const (
	cartSessionName = "streamstore_cart"
	cartItemsKey    = "items"
	notifyTimeout   = 30 * time.Second
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type cartAddPayload struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

type cartQuantityPayload struct {
	Delta int `json:"delta" validate:"required"`
}

type cartItemView struct {
	cart.Item
	Subtotal float64 `json:"subtotal"`
}

type cartView struct {
	Items     []cartItemView `json:"items"`
	Count     int            `json:"count"`
	Total     float64        `json:"total"`
	TotalText string         `json:"total_text"`
}

type checkoutView struct {
	OrderRef  string    `json:"order_ref"`
	Message   string    `json:"message"`
	URL       string    `json:"url"`
	Total     float64   `json:"total"`
	TotalText string    `json:"total_text"`
	CreatedAt time.Time `json:"created_at"`
}

func registerCartRoutes() {
	webserver.ApiGET("/cart", getCart)
	webserver.ApiPOST("/cart/items", addCartItem)
	webserver.ApiPATCH("/cart/items/:id", updateCartItem)
	webserver.ApiDELETE("/cart/items/:id", removeCartItem)
	webserver.ApiDELETE("/cart", clearCart)
	webserver.ApiPOST("/cart/checkout", checkout)
}

func newCartView(ct *cart.Cart) cartView {
	items := ct.Items()
	v := cartView{Items: make([]cartItemView, 0, len(items)), Count: ct.Count()}
	for _, it := range items {
		v.Items = append(v.Items, cartItemView{Item: it, Subtotal: it.Subtotal().InexactFloat64()})
	}
	total := ct.Total()
	v.Total = total.InexactFloat64()
	v.TotalText = total.StringFixed(2)
	return v
}

// loadCart reads the cart lines from the browser session and hydrates them
// from the catalog. A cookie that fails to decode yields an empty cart.
func loadCart(c echo.Context) (*cart.Cart, *sessions.Session, error) {
	sess, err := session.Get(cartSessionName, c)
	if err != nil {
		zap.L().Debug("discarding unreadable cart session", zap.Error(err))
	}
	if sess == nil {
		if err == nil {
			err = errors.New("no session store")
		}
		return nil, nil, errors.Wrap(err, "cart session")
	}
	var lines []cart.Line
	if raw, ok := sess.Values[cartItemsKey].(string); ok && raw != "" {
		if err := json.UnmarshalFromString(raw, &lines); err != nil {
			zap.L().Debug("discarding malformed cart", zap.Error(err))
			lines = nil
		}
	}
	if len(lines) == 0 {
		return cart.New(), sess, nil
	}
	ids := make([]int64, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	products, err := GetCatalog(c).ProductsByIDs(c.Request().Context(), ids)
	if err != nil {
		return nil, nil, err
	}
	return cart.Hydrate(lines, products), sess, nil
}

func saveCart(c echo.Context, sess *sessions.Session, ct *cart.Cart) error {
	raw, err := json.MarshalToString(ct.Lines())
	if err != nil {
		return errors.Wrap(err, "encode cart")
	}
	sess.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   0,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	sess.Values[cartItemsKey] = raw
	return errors.Wrap(sess.Save(c.Request(), c.Response()), "save cart session")
}

// getCart returns the cart of the current browser session
//
// @Summary current cart
// @Tags Cart
// @Success 200 {object} cartView
// @Router /api/cart [get]
func getCart(c echo.Context) error {
	ct, _, err := loadCart(c)
	if err != nil {
		return storeError(c, err)
	}
	return ok(c, newCartView(ct))
}

func addCartItem(c echo.Context) error {
	var payload cartAddPayload
	if err := decodePayload(c, &payload); err != nil {
		return err
	}
	ct, sess, err := loadCart(c)
	if err != nil {
		return storeError(c, err)
	}
	p, err := GetCatalog(c).GetProduct(c.Request().Context(), payload.ProductID)
	if err != nil {
		return storeError(c, err)
	}
	ct.Add(*p)
	if err := saveCart(c, sess, ct); err != nil {
		return err
	}
	return ok(c, newCartView(ct))
}

func updateCartItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	var payload cartQuantityPayload
	if err := decodePayload(c, &payload); err != nil {
		return err
	}
	ct, sess, err := loadCart(c)
	if err != nil {
		return storeError(c, err)
	}
	if _, err := ct.UpdateQuantity(id, payload.Delta); err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			return fail(c, http.StatusNotFound, "NOT_FOUND", "Product is not in the cart", id)
		}
		return err
	}
	if err := saveCart(c, sess, ct); err != nil {
		return err
	}
	return ok(c, newCartView(ct))
}

func removeCartItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	ct, sess, err := loadCart(c)
	if err != nil {
		return storeError(c, err)
	}
	if !ct.Remove(id) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product is not in the cart", id)
	}
	if err := saveCart(c, sess, ct); err != nil {
		return err
	}
	return ok(c, newCartView(ct))
}

func clearCart(c echo.Context) error {
	ct, sess, err := loadCart(c)
	if err != nil {
		return storeError(c, err)
	}
	ct.Clear()
	if err := saveCart(c, sess, ct); err != nil {
		return err
	}
	return ok(c, newCartView(ct))
}

// checkout builds the WhatsApp order message for the current cart. The cart
// is kept so the customer can retry the hand-off.
//
// @Summary checkout via WhatsApp
// @Tags Cart
// @Success 200 {object} checkoutView
// @Router /api/cart/checkout [post]
func checkout(c echo.Context) error {
	ct, _, err := loadCart(c)
	if err != nil {
		return storeError(c, err)
	}
	appCtx := GetAppContext(c)
	order, err := appCtx.Checkout().Place(ct)
	if errors.Is(err, cart.ErrEmptyCart) {
		return fail(c, http.StatusBadRequest, "EMPTY_CART", "Cart is empty", nil)
	}
	if err != nil {
		return err
	}
	metrics.Incr(app.MetricOrders)
	zap.L().Info("order placed",
		zap.String("ref", order.Ref),
		zap.Int("items", len(order.Items)),
		zap.String("total", order.Total.StringFixed(2)))

	notifier := appCtx.Notifier()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := notifier.OrderPlaced(ctx, order); err != nil {
			zap.L().Warn("order notification failed", zap.String("ref", order.Ref), zap.Error(err))
		}
	}()

	return ok(c, checkoutView{
		OrderRef:  order.Ref,
		Message:   order.Message,
		URL:       order.URL,
		Total:     order.Total.InexactFloat64(),
		TotalText: order.Total.StringFixed(2),
		CreatedAt: order.CreatedAt,
	})
}
