package shopify

import (
	shopifyclient "github.com/ordermesh/approval-api/internal/clients/http/shopify"
	"github.com/ordermesh/approval-api/internal/domains/approvals/domain"
)

// ToDomainOrder converts the Shopify wire order into the domain model. The
// comma-joined tag string is parsed here; tag strings never cross the
// boundary in raw form.
func ToDomainOrder(order *shopifyclient.Order) *domain.Order {
	if order == nil {
		return nil
	}
	mapped := &domain.Order{
		ID:          order.ID,
		Name:        order.Name,
		OrderNumber: order.OrderNumber,
		Email:       order.Email,
		Currency:    order.Currency,
		CreatedAt:   order.CreatedAt,
		Tags:        domain.ParseTags(order.Tags),
	}
	for _, li := range order.LineItems {
		item := domain.LineItem{
			Title:    li.Title,
			SKU:      li.SKU,
			Quantity: li.Quantity,
			Price:    li.Price,
		}
		for _, prop := range li.Properties {
			item.Properties = append(item.Properties, domain.ItemProperty{Name: prop.Name, Value: prop.Value})
		}
		mapped.LineItems = append(mapped.LineItems, item)
	}
	if addr := order.ShippingAddress; addr != nil {
		mapped.ShippingAddress = &domain.ShippingAddress{
			Name:        addr.Name,
			Company:     addr.Company,
			Address1:    addr.Address1,
			Address2:    addr.Address2,
			Zip:         addr.Zip,
			City:        addr.City,
			Province:    addr.Province,
			CountryCode: addr.CountryCode,
			Phone:       addr.Phone,
		}
	}
	return mapped
}

// ToDomainWebhookOrder extracts the ingest-relevant fields from a webhook
// delivery body: the order id and its current tag set.
func ToDomainWebhookOrder(order *shopifyclient.Order) (int64, []string) {
	if order == nil {
		return 0, nil
	}
	return order.ID, domain.ParseTags(order.Tags)
}
