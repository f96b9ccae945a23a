package model

import "github.com/shopspring/decimal"

// MainLine is the item the operator asked for.
type MainLine struct {
	Product  Product         `json:"product"`
	Quantity float64         `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// AccessoryLine is one required add-on. Quantity is always a whole number of units.
type AccessoryLine struct {
	Product    Product         `json:"product"`
	Multiplier float64         `json:"multiplier"`
	Quantity   int64           `json:"quantity"`
	Cost       decimal.Decimal `json:"cost"`
}

// StockWarning describes one line that cannot be filled from on-hand stock.
type StockWarning struct {
	ProductID   string          `json:"productId"`
	Name        string          `json:"name"`
	Color       string          `json:"color"`
	OnHand      int64           `json:"onHand"`
	Needed      decimal.Decimal `json:"needed"`
	Shortfall   decimal.Decimal `json:"shortfall"`
	Incoming    int64           `json:"incoming"`
	RestockDate string          `json:"restockDate"`
	Message     string          `json:"message"`
}

// Quote is the result of one quote request. It is never stored.
type Quote struct {
	Reference      string          `json:"reference"`
	Main           MainLine        `json:"main"`
	AccessoryColor string          `json:"accessoryColor,omitempty"`
	Accessories    []AccessoryLine `json:"accessories"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	AccessoryTotal decimal.Decimal `json:"accessoryTotal"`
	GrandTotal     decimal.Decimal `json:"grandTotal"`
	Warnings       []StockWarning  `json:"warnings"`
}
