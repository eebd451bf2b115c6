package model

// Item is one entry on the packing list.
// ID is opaque and assigned by the store; callers never pick it.
type Item struct {
	ID          string `json:"id" yaml:"id"`
	Description string `json:"description" yaml:"description"`
	Quantity    int    `json:"quantity" yaml:"quantity"`
	Packed      bool   `json:"packed" yaml:"packed"`
}
