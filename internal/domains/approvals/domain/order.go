package domain

import (
	"strconv"
	"strings"
	"time"
)

// PrintMarkerProperty flags a line item as a custom print job when set to "true".
const PrintMarkerProperty = "mo_print"

// supplierSuffix marks locally-assigned SKUs that carry a vendor code.
const supplierSuffix = "-MID"

// ItemProperty is one storefront-supplied key/value pair on a line item.
type ItemProperty struct {
	Name  string
	Value string
}

// LineItem is a single position of a source order. The property bag decides
// whether it is a standard stock item or a custom print job.
type LineItem struct {
	Title      string
	SKU        string
	Quantity   int
	Price      string
	Properties []ItemProperty
}

// Property returns the value of the named property, or "" when absent.
func (li LineItem) Property(name string) string {
	for _, p := range li.Properties {
		if p.Name == name {
			return p.Value
		}
	}
	return ""
}

// PropertyOr returns the named property value, falling back when absent or empty.
func (li LineItem) PropertyOr(name, fallback string) string {
	if v := li.Property(name); v != "" {
		return v
	}
	return fallback
}

// IsPrintJob reports whether the storefront marked this line as a custom print job.
func (li LineItem) IsPrintJob() bool {
	return li.Property(PrintMarkerProperty) == "true"
}

// ShippingAddress mirrors the source platform address block.
type ShippingAddress struct {
	Name        string
	Company     string
	Address1    string
	Address2    string
	Zip         string
	City        string
	Province    string
	CountryCode string
	Phone       string
}

// Annotation is a named note attached to the source order alongside a tag update.
type Annotation struct {
	Name  string
	Value string
}

// Order is the source-platform order as seen by this workflow. It is never
// stored locally; every use re-fetches it from the platform.
type Order struct {
	ID              int64
	Name            string
	OrderNumber     int64
	Email           string
	Currency        string
	CreatedAt       time.Time
	Tags            []string
	LineItems       []LineItem
	ShippingAddress *ShippingAddress
}

// State derives the workflow state from the order's current tag set.
func (o *Order) State() State {
	return DeriveState(o.Tags)
}

// HasPrintJob reports whether any line item is a custom print job.
func (o *Order) HasPrintJob() bool {
	for _, li := range o.LineItems {
		if li.IsPrintJob() {
			return true
		}
	}
	return false
}

// PurchaseOrderNumber returns the platform order number, falling back to the
// display name when the number is unset.
func (o *Order) PurchaseOrderNumber() string {
	if o.OrderNumber != 0 {
		return strconv.FormatInt(o.OrderNumber, 10)
	}
	return o.Name
}

// VendorCode recovers the vendor catalog code from a locally-assigned SKU:
// strip the supplier suffix when present, then reverse the remaining
// characters. The reversal is self-inverse; a SKU without the suffix is
// reversed whole.
func VendorCode(ownSKU string) string {
	base := strings.TrimSuffix(ownSKU, supplierSuffix)
	runes := []rune(base)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// MasterCode returns the vendor master code for a print job: an explicit
// property override wins, else the first hyphen-delimited SKU segment.
func MasterCode(li LineItem) string {
	if v := li.Property("mo_master_code"); v != "" {
		return v
	}
	segment, _, _ := strings.Cut(li.SKU, "-")
	return segment
}
