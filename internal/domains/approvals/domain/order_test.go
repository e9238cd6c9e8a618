package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVendorCode_StripsSuffixAndReverses(t *testing.T) {
	require.Equal(t, "321CBA", VendorCode("ABC123-MID"))
	require.Equal(t, "321CBA", VendorCode("ABC123"))
	require.Equal(t, "", VendorCode(""))
}

func TestVendorCode_IsSelfInverseOnBareCode(t *testing.T) {
	require.Equal(t, "ABC123", VendorCode(VendorCode("ABC123")))
}

func TestLineItem_IsPrintJob(t *testing.T) {
	standard := LineItem{SKU: "ABC123-MID"}
	require.False(t, standard.IsPrintJob())

	marked := LineItem{Properties: []ItemProperty{{Name: PrintMarkerProperty, Value: "true"}}}
	require.True(t, marked.IsPrintJob())

	unmarked := LineItem{Properties: []ItemProperty{{Name: PrintMarkerProperty, Value: "false"}}}
	require.False(t, unmarked.IsPrintJob())
}

func TestMasterCode_OverrideWinsOverSKUSegment(t *testing.T) {
	bySKU := LineItem{SKU: "MUG01-RED"}
	require.Equal(t, "MUG01", MasterCode(bySKU))

	overridden := LineItem{
		SKU:        "MUG01-RED",
		Properties: []ItemProperty{{Name: "mo_master_code", Value: "CUP99"}},
	}
	require.Equal(t, "CUP99", MasterCode(overridden))
}

func TestOrder_PurchaseOrderNumberFallsBackToName(t *testing.T) {
	withNumber := Order{OrderNumber: 1001, Name: "#1001"}
	require.Equal(t, "1001", withNumber.PurchaseOrderNumber())

	withoutNumber := Order{Name: "#draft"}
	require.Equal(t, "#draft", withoutNumber.PurchaseOrderNumber())
}

func TestOrder_HasPrintJob(t *testing.T) {
	order := Order{LineItems: []LineItem{
		{SKU: "ABC123-MID"},
		{Properties: []ItemProperty{{Name: PrintMarkerProperty, Value: "true"}}},
	}}
	require.True(t, order.HasPrintJob())

	require.False(t, (&Order{LineItems: []LineItem{{SKU: "ABC123-MID"}}}).HasPrintJob())
}
