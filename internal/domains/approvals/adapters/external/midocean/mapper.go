package midocean

import (
	"strconv"
	"strings"
	"time"

	midoceanclient "github.com/ordermesh/approval-api/internal/clients/http/midocean"
	"github.com/ordermesh/approval-api/internal/domains/approvals/domain"
)

// Line numbering is order-local with a disjoint band per item kind so mixed
// orders never collide: standard lines count up from 1, print jobs from 10.
const (
	standardLineBase = 1
	printLineBase    = 10
)

// Order types accepted by the gateway. A single print job anywhere in the
// order forces the PRINT type for the whole payload.
const (
	orderTypePrint  = "PRINT"
	orderTypeNormal = "NORMAL"
)

const defaultCurrency = "EUR"

// Printing-position defaults applied when a print job omits a property.
const (
	defaultPositionID  = "FRONT"
	defaultPrintHeight = "20"
	defaultPrintWidth  = "50"
	defaultTechniqueID = "S2"
	defaultPrintColors = "1"
)

// timestampLayout renders the header timestamp in whole seconds, UTC.
const timestampLayout = "2006-01-02T15:04:05"

// BuildOrderPayload transforms a source order into the gateway intake shape.
// Pure: the result depends only on the order and the supplied time.
func BuildOrderPayload(order *domain.Order, now time.Time) midoceanclient.OrderPayload {
	lines := make([]midoceanclient.OrderLine, 0, len(order.LineItems))
	standardSeq, printSeq := 0, 0
	for _, li := range order.LineItems {
		if li.IsPrintJob() {
			lines = append(lines, printLine(li, printLineBase+printSeq))
			printSeq++
			continue
		}
		lines = append(lines, standardLine(li, standardLineBase+standardSeq))
		standardSeq++
	}

	orderType := orderTypeNormal
	if order.HasPrintJob() {
		orderType = orderTypePrint
	}
	currency := order.Currency
	if currency == "" {
		currency = defaultCurrency
	}

	return midoceanclient.OrderPayload{
		OrderHeader: midoceanclient.OrderHeader{
			PONumber:        order.PurchaseOrderNumber(),
			ContactEmail:    order.Email,
			Currency:        currency,
			Timestamp:       now.UTC().Truncate(time.Second).Format(timestampLayout),
			OrderType:       orderType,
			ShippingAddress: shippingAddress(order),
		},
		OrderLines: lines,
	}
}

func printLine(li domain.LineItem, lineID int) midoceanclient.OrderLine {
	quantity := strconv.Itoa(li.Quantity)
	return midoceanclient.OrderLine{
		OrderLineID:   strconv.Itoa(lineID),
		MasterCode:    domain.MasterCode(li),
		Quantity:      quantity,
		ExpectedPrice: "0",
		PrintingPositions: []midoceanclient.PrintingPosition{{
			ID:                  li.PropertyOr("mo_position_id", defaultPositionID),
			PrintSizeHeight:     li.PropertyOr("mo_print_h", defaultPrintHeight),
			PrintSizeWidth:      li.PropertyOr("mo_print_w", defaultPrintWidth),
			PrintingTechniqueID: li.PropertyOr("mo_technique_id", defaultTechniqueID),
			NumberOfPrintColors: li.PropertyOr("mo_colors", defaultPrintColors),
			PrintArtworkURL:     li.Property("mo_artwork_url"),
			PrintMockupURL:      li.Property("mo_mockup_url"),
			PrintInstruction:    li.Property("mo_instruction"),
		}},
		PrintItems: []midoceanclient.PrintItem{{
			ItemColorNumber: li.Property("mo_item_color_number"),
			Quantity:        quantity,
		}},
	}
}

func standardLine(li domain.LineItem, lineID int) midoceanclient.OrderLine {
	return midoceanclient.OrderLine{
		OrderLineID:   strconv.Itoa(lineID),
		SKU:           domain.VendorCode(li.SKU),
		Quantity:      strconv.Itoa(li.Quantity),
		ExpectedPrice: "0",
	}
}

func shippingAddress(order *domain.Order) midoceanclient.ShippingAddress {
	addr := order.ShippingAddress
	if addr == nil {
		addr = &domain.ShippingAddress{}
	}
	street := strings.TrimSpace(addr.Address1 + " " + addr.Address2)
	return midoceanclient.ShippingAddress{
		ContactName: addr.Name,
		CompanyName: addr.Company,
		Street1:     street,
		PostalCode:  addr.Zip,
		City:        addr.City,
		Region:      addr.Province,
		Country:     addr.CountryCode,
		Email:       order.Email,
		Phone:       addr.Phone,
	}
}
