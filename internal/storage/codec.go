// Package storage holds the wire codec shared by the session store
// implementations. Cart snapshots are encoded with jx rather than reflection
// since they sit on the hot path of every cart mutation.
package storage

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/eats-storefront/internal/domain/cart"
)

// EncodeCart serializes a full cart snapshot.
func EncodeCart(c cart.Cart) []byte {
	e := &jx.Encoder{}
	e.ArrStart()
	for _, item := range c {
		e.ObjStart()
		e.FieldStart("id")
		e.Str(item.ID)
		e.FieldStart("name")
		e.Str(item.Name)
		e.FieldStart("unitPrice")
		e.Int64(item.UnitPrice)
		e.FieldStart("quantity")
		e.Int(item.Quantity)
		e.ObjEnd()
	}
	e.ArrEnd()
	return e.Bytes()
}

// DecodeCart parses a cart snapshot. Callers treat any error as "no stored
// cart": corrupt session data must never break a view.
func DecodeCart(raw []byte) (cart.Cart, error) {
	d := jx.DecodeBytes(raw)

	var c cart.Cart
	err := d.Arr(func(d *jx.Decoder) error {
		var item cart.LineItem
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			switch key {
			case "id":
				v, err := d.Str()
				item.ID = v
				return err
			case "name":
				v, err := d.Str()
				item.Name = v
				return err
			case "unitPrice":
				v, err := d.Int64()
				item.UnitPrice = v
				return err
			case "quantity":
				v, err := d.Int()
				item.Quantity = v
				return err
			default:
				return d.Skip()
			}
		}); err != nil {
			return err
		}
		if item.ID == "" || item.Quantity < 1 {
			return errors.Errorf("malformed line item %q", item.ID)
		}
		c = append(c, item)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode cart snapshot")
	}
	return c, nil
}
