package model

// SKULocation is the inventory lookup result for one sku in one warehouse.
// Location fields are empty when the sku has no assigned bin.
type SKULocation struct {
	SKU          string `db:"sku" json:"sku"`
	ProductName  string `db:"product_name" json:"product_name"`
	Barcode      string `db:"barcode" json:"barcode"`
	Zone         string `db:"zone" json:"zone"`
	Aisle        string `db:"aisle" json:"aisle"`
	Rack         string `db:"rack" json:"rack"`
	Shelf        string `db:"shelf" json:"shelf"`
	Bin          string `db:"bin" json:"bin"`
	AvailableQty int64  `db:"available_qty" json:"available_qty"`
}
