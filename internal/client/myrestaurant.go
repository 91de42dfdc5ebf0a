package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-faster/errors"

	"github.com/xenking/eats-storefront/internal/domain/order"
	"github.com/xenking/eats-storefront/internal/domain/restaurant"
)

// MenuItemForm is one menu entry in the restaurant management form.
// Price is in minor units.
type MenuItemForm struct {
	Name  string
	Price int64
}

// RestaurantForm is the owner-side create/update payload. The backend
// expects a multipart form (the image travels as a file part); field names
// follow the backend's bracket-indexed convention.
type RestaurantForm struct {
	Name                  string
	City                  string
	Country               string
	DeliveryPrice         int64
	EstimatedDeliveryTime int
	Cuisines              []string
	MenuItems             []MenuItemForm

	// Image is optional; when set it is streamed as the imageFile part.
	Image         io.Reader
	ImageFilename string
}

// encodeMultipart writes the form into a multipart body.
func (f *RestaurantForm) encodeMultipart() (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)

	fields := map[string]string{
		"restaurantName":        f.Name,
		"city":                  f.City,
		"country":               f.Country,
		"deliveryPrice":         strconv.FormatInt(f.DeliveryPrice, 10),
		"estimatedDeliveryTime": strconv.Itoa(f.EstimatedDeliveryTime),
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", errors.Wrapf(err, "write field %s", name)
		}
	}
	for i, cuisine := range f.Cuisines {
		if err := w.WriteField(fmt.Sprintf("cuisines[%d]", i), cuisine); err != nil {
			return nil, "", errors.Wrap(err, "write cuisines")
		}
	}
	for i, item := range f.MenuItems {
		if err := w.WriteField(fmt.Sprintf("menuItems[%d][name]", i), item.Name); err != nil {
			return nil, "", errors.Wrap(err, "write menu item name")
		}
		if err := w.WriteField(fmt.Sprintf("menuItems[%d][price]", i), strconv.FormatInt(item.Price, 10)); err != nil {
			return nil, "", errors.Wrap(err, "write menu item price")
		}
	}

	if f.Image != nil {
		filename := f.ImageFilename
		if filename == "" {
			filename = "image"
		}
		part, err := w.CreateFormFile("imageFile", filename)
		if err != nil {
			return nil, "", errors.Wrap(err, "create image part")
		}
		if _, err := io.Copy(part, f.Image); err != nil {
			return nil, "", errors.Wrap(err, "copy image")
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", errors.Wrap(err, "finalize multipart body")
	}
	return buf, w.FormDataContentType(), nil
}

// GetMyRestaurant fetches the owner's restaurant. Authenticated. A 404 maps
// to restaurant.ErrNotFound (the owner has not created one yet).
func (c *Client) GetMyRestaurant(ctx context.Context) (*restaurant.Restaurant, error) {
	var r restaurant.Restaurant
	if err := c.getJSON(ctx, "/api/my/restaurant", true, &r); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 404 {
			return nil, restaurant.ErrNotFound
		}
		return nil, err
	}
	return &r, nil
}

// CreateMyRestaurant creates the owner's restaurant from the multipart form.
// Authenticated.
func (c *Client) CreateMyRestaurant(ctx context.Context, form RestaurantForm) (*restaurant.Restaurant, error) {
	return c.sendRestaurantForm(ctx, http.MethodPost, form)
}

// UpdateMyRestaurant replaces the owner's restaurant record. Authenticated.
func (c *Client) UpdateMyRestaurant(ctx context.Context, form RestaurantForm) (*restaurant.Restaurant, error) {
	return c.sendRestaurantForm(ctx, http.MethodPut, form)
}

func (c *Client) sendRestaurantForm(ctx context.Context, method string, form RestaurantForm) (*restaurant.Restaurant, error) {
	body, contentType, err := form.encodeMultipart()
	if err != nil {
		return nil, err
	}
	var r restaurant.Restaurant
	if err := c.do(ctx, method, "/api/my/restaurant", body, contentType, true, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetMyRestaurantOrders lists orders placed against the owner's restaurant.
// Authenticated.
func (c *Client) GetMyRestaurantOrders(ctx context.Context) ([]order.Order, error) {
	var orders []order.Order
	if err := c.getJSON(ctx, "/api/my/restaurant/order", true, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus advances an order's lifecycle state. Authenticated;
// owner-side only, the customer client never mutates status.
func (c *Client) UpdateOrderStatus(ctx context.Context, orderID string, status order.Status) error {
	body := struct {
		Status order.Status `json:"status"`
	}{Status: status}
	path := "/api/my/restaurant/order/" + url.PathEscape(orderID) + "/status"
	return c.sendJSON(ctx, http.MethodPatch, path, body, nil)
}
