package order

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem")

// Item is one order line. Quantity and unit price are fixed when the order is
// placed; only the ledger moves approvedQuantity, and always within
// [0, quantity].
type Item struct {
	id               kernel.UUID
	productID        string
	productName      string
	productCategory  string
	quantity         int
	approvedQuantity int
	unitPrice        decimal.Decimal
	guard            guard.ConstructorGuard
}

func NewItem(
	id kernel.UUID,
	productID, productName, productCategory string,
	quantity int,
	unitPrice decimal.Decimal,
) (*Item, error) {
	return RestoreItem(id, productID, productName, productCategory, quantity, 0, unitPrice)
}

// RestoreItem rebuilds an item from persistence.
func RestoreItem(
	id kernel.UUID,
	productID, productName, productCategory string,
	quantity, approvedQuantity int,
	unitPrice decimal.Decimal,
) (*Item, error) {
	item := &Item{
		productName:     strings.TrimSpace(productName),
		productCategory: strings.TrimSpace(productCategory),
		guard:           guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		item.setID(id),
		item.setProductID(productID),
		item.setQuantities(quantity, approvedQuantity),
		item.setUnitPrice(unitPrice),
	); err != nil {
		return nil, err
	}
	return item, nil
}

func (i *Item) Validate() error {
	if i == nil {
		return ErrItemIsNotConstructed
	}
	return i.guard.Validate(ErrItemIsNotConstructed)
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) ProductID() string {
	return i.productID
}

func (i *Item) ProductName() string {
	return i.productName
}

func (i *Item) ProductCategory() string {
	return i.productCategory
}

func (i *Item) Quantity() int {
	return i.quantity
}

func (i *Item) ApprovedQuantity() int {
	return i.approvedQuantity
}

// Remaining is the quantity still available to ship.
func (i *Item) Remaining() int {
	return i.quantity - i.approvedQuantity
}

func (i *Item) UnitPrice() decimal.Decimal {
	return i.unitPrice
}

// Amount is quantity times unit price.
func (i *Item) Amount() decimal.Decimal {
	return i.unitPrice.Mul(decimal.NewFromInt(int64(i.quantity)))
}

// approve moves approvedQuantity forward by qty.
func (i *Item) approve(qty int) error {
	if qty < 0 {
		return errs.NewValueIsOutOfRangeError("itemQuantities."+i.productID, qty, 0, i.Remaining())
	}
	if qty > i.Remaining() {
		return errs.NewQuantityExceededError(i.productID, qty, i.Remaining())
	}
	i.approvedQuantity += qty
	return nil
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setProductID(productID string) error {
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return errs.NewValueIsRequiredError("productId")
	}
	i.productID = productID
	return nil
}

func (i *Item) setQuantities(quantity, approved int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", quantity))
	}
	if approved < 0 || approved > quantity {
		return errs.NewValueIsOutOfRangeError("approvedQuantity", approved, 0, quantity)
	}
	i.quantity = quantity
	i.approvedQuantity = approved
	return nil
}

func (i *Item) setUnitPrice(unitPrice decimal.Decimal) error {
	if unitPrice.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("unitPrice is invalid", fmt.Errorf("%s is negative", unitPrice))
	}
	i.unitPrice = unitPrice
	return nil
}
