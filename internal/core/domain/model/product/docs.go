// Package product holds the catalog entry an order line refers to. Orders keep a
// weak reference (the product id) and a price snapshot; changing a product never
// changes existing orders.
package product
