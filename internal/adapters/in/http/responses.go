package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/shopspring/decimal"
)

// envelope wraps every JSON response.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

type errorDTO struct {
	Kind    string   `json:"kind"`
	Details []string `json:"details,omitempty"`
}

type pageDTO[T any] struct {
	Content       []T   `json:"content"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	Number        int   `json:"number"`
	Size          int   `json:"size"`
}

type metricsDTO struct {
	Total    int64            `json:"total"`
	Urgent   int64            `json:"urgent"`
	ByStatus map[string]int64 `json:"byStatus"`
}

type orderSummaryDTO struct {
	ID                    string          `json:"id"`
	OrderReference        string          `json:"orderReference"`
	CustomerName          string          `json:"customerName"`
	Destination           string          `json:"destination"`
	Status                string          `json:"status"`
	TotalOrderedQuantity  int             `json:"totalOrderedQuantity"`
	TotalApprovedQuantity int             `json:"totalApprovedQuantity"`
	TotalAmount           decimal.Decimal `json:"totalAmount"`
	OrderDate             time.Time       `json:"orderDate"`
	EstimatedDeliveryDate *time.Time      `json:"estimatedDeliveryDate,omitempty"`
	DeliveryDate          *time.Time      `json:"deliveryDate,omitempty"`
	Urgent                bool            `json:"urgent"`
}

type orderItemDTO struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"productId"`
	ProductName       string          `json:"productName"`
	ProductCategory   string          `json:"productCategory"`
	Quantity          int             `json:"quantity"`
	ApprovedQuantity  int             `json:"approvedQuantity"`
	RemainingQuantity int             `json:"remainingQuantity"`
	UnitPrice         decimal.Decimal `json:"unitPrice"`
	Amount            decimal.Decimal `json:"amount"`
}

type orderDetailsDTO struct {
	ID                    string          `json:"id"`
	OrderReference        string          `json:"orderReference"`
	CustomerName          string          `json:"customerName"`
	Destination           string          `json:"destination"`
	Status                string          `json:"status"`
	TotalOrderedQuantity  int             `json:"totalOrderedQuantity"`
	TotalApprovedQuantity int             `json:"totalApprovedQuantity"`
	TotalAmount           decimal.Decimal `json:"totalAmount"`
	OrderDate             time.Time       `json:"orderDate"`
	EstimatedDeliveryDate *time.Time      `json:"estimatedDeliveryDate,omitempty"`
	DeliveryDate          *time.Time      `json:"deliveryDate,omitempty"`
	ConfirmedBy           string          `json:"confirmedBy,omitempty"`
	LastUpdate            *time.Time      `json:"lastUpdate,omitempty"`
	Items                 []orderItemDTO  `json:"items"`
}

type cancelDTO struct {
	Order            orderDetailsDTO `json:"order"`
	AlreadyCancelled bool            `json:"alreadyCancelled"`
	Released         map[string]int  `json:"released"`
}

type qrViewDTO struct {
	ImageURL   string    `json:"imageUrl"`
	Token      string    `json:"token"`
	TTLMinutes int       `json:"ttlMinutes"`
	ExpiresAt  time.Time `json:"expiresAt"`
}

type qrVerifyDTO struct {
	Order          orderDetailsDTO `json:"order"`
	Token          string          `json:"token"`
	TokenExpiresAt time.Time       `json:"tokenExpiresAt"`
	VerifiedBy     string          `json:"verifiedBy"`
}

type stockOutRequest struct {
	OrderID        string         `json:"orderId"`
	ItemQuantities map[string]int `json:"itemQuantities"`
}

func toMetricsDTO(r queries.GetOrderMetricsQueryResponse) metricsDTO {
	byStatus := make(map[string]int64, len(r.ByStatus))
	for status, count := range r.ByStatus {
		byStatus[status.String()] = count
	}
	return metricsDTO{Total: r.Total, Urgent: r.Urgent, ByStatus: byStatus}
}

func toSummaryPage(p queries.Page[queries.OrderSummaryResponse]) pageDTO[orderSummaryDTO] {
	content := make([]orderSummaryDTO, 0, len(p.Content))
	for _, s := range p.Content {
		content = append(content, orderSummaryDTO{
			ID:                    s.ID.String(),
			OrderReference:        s.OrderReference,
			CustomerName:          s.CustomerName,
			Destination:           s.Destination,
			Status:                s.Status.String(),
			TotalOrderedQuantity:  s.TotalOrderedQuantity,
			TotalApprovedQuantity: s.TotalApprovedQuantity,
			TotalAmount:           s.TotalAmount,
			OrderDate:             s.OrderDate,
			EstimatedDeliveryDate: s.EstimatedDeliveryDate,
			DeliveryDate:          s.DeliveryDate,
			Urgent:                s.Urgent,
		})
	}
	return pageDTO[orderSummaryDTO]{
		Content:       content,
		TotalElements: p.TotalElements,
		TotalPages:    p.TotalPages,
		Number:        p.Number,
		Size:          p.Size,
	}
}

func toDetailsDTO(d queries.OrderDetailsResponse) orderDetailsDTO {
	items := make([]orderItemDTO, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, orderItemDTO{
			ID:                item.ID.String(),
			ProductID:         item.ProductID,
			ProductName:       item.ProductName,
			ProductCategory:   item.ProductCategory,
			Quantity:          item.Quantity,
			ApprovedQuantity:  item.ApprovedQuantity,
			RemainingQuantity: item.RemainingQuantity,
			UnitPrice:         item.UnitPrice,
			Amount:            item.Amount,
		})
	}
	return orderDetailsDTO{
		ID:                    d.ID.String(),
		OrderReference:        d.OrderReference,
		CustomerName:          d.CustomerName,
		Destination:           d.Destination,
		Status:                d.Status.String(),
		TotalOrderedQuantity:  d.TotalOrderedQuantity,
		TotalApprovedQuantity: d.TotalApprovedQuantity,
		TotalAmount:           d.TotalAmount,
		OrderDate:             d.OrderDate,
		EstimatedDeliveryDate: d.EstimatedDeliveryDate,
		DeliveryDate:          d.DeliveryDate,
		ConfirmedBy:           d.ConfirmedBy,
		LastUpdate:            d.LastUpdate,
		Items:                 items,
	}
}
