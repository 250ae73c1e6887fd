package order

import (
	"time"

	"github.com/shopspring/decimal"
)

const sampleTimeLayout = "2006-01-02T15:04:05"

// SampleOrders returns the orders shown before any order has been placed.
// Each call builds a fresh slice.
func SampleOrders() []Order {
	return []Order{
		{
			ID:           "ORD-2025-00001",
			CustomerName: "Ahmad bin Hassan",
			Phone:        "0123456789",
			Email:        "ahmad@email.com",
			Address:      "123 Jalan Bunga Raya, Taman Indah, 50000 Kuala Lumpur",
			Items: []OrderItem{
				{BookID: 1, Title: "The Dragon's Heir", Quantity: 1, Price: amount("45.90")},
				{BookID: 2, Title: "Shadow of the Throne", Quantity: 2, Price: amount("52.00")},
			},
			Subtotal:      amount("149.90"),
			Shipping:      decimal.Zero,
			Total:         amount("149.90"),
			Status:        StatusProcessing,
			PaymentMethod: "Online Banking",
			Notes:         "Please deliver after 6pm",
			CreatedAt:     sampleTime("2025-12-30T10:30:00"),
			UpdatedAt:     sampleTime("2025-12-30T14:45:00"),
		},
		{
			ID:           "ORD-2025-00002",
			CustomerName: "Sarah Lim",
			Phone:        "0187654321",
			Email:        "sarah.lim@email.com",
			Address:      "45 Lorong Mawar 3, Taman Bahagia, 47400 Petaling Jaya, Selangor",
			Items: []OrderItem{
				{BookID: 3, Title: "The Crystal Mage", Quantity: 1, Price: amount("38.50")},
				{BookID: 5, Title: "The Last Enchanter", Quantity: 1, Price: amount("41.00")},
				{BookID: 9, Title: "Song of the Siren", Quantity: 1, Price: amount("39.90")},
			},
			Subtotal:      amount("119.40"),
			Shipping:      decimal.Zero,
			Total:         amount("119.40"),
			Status:        StatusPending,
			PaymentMethod: "Credit Card",
			CreatedAt:     sampleTime("2025-12-31T09:15:00"),
			UpdatedAt:     sampleTime("2025-12-31T09:15:00"),
		},
		{
			ID:           "ORD-2025-00003",
			CustomerName: "Kumar a/l Rajan",
			Phone:        "0162345678",
			Email:        "kumar.rajan@email.com",
			Address:      "78 Jalan Melati, Taman Sri Sentosa, 81300 Johor Bahru, Johor",
			Items: []OrderItem{
				{BookID: 6, Title: "Blood of the Phoenix", Quantity: 2, Price: amount("55.90")},
				{BookID: 8, Title: "The Iron Kingdom", Quantity: 1, Price: amount("43.00")},
			},
			Subtotal:       amount("154.80"),
			Shipping:       decimal.Zero,
			Total:          amount("154.80"),
			Status:         StatusShipped,
			PaymentMethod:  "E-Wallet",
			Notes:          "Gift wrap please",
			CreatedAt:      sampleTime("2025-12-28T16:20:00"),
			UpdatedAt:      sampleTime("2025-12-30T11:30:00"),
			TrackingNumber: "EMS123456789MY",
		},
		{
			ID:           "ORD-2025-00004",
			CustomerName: "Nurul Aisyah",
			Phone:        "0191234567",
			Email:        "nurul.aisyah@email.com",
			Address:      "12 Persiaran Anggerik, Bandar Baru Ampang, 68000 Ampang, Selangor",
			Items: []OrderItem{
				{BookID: 4, Title: "Realm of the Forgotten", Quantity: 1, Price: amount("49.90")},
			},
			Subtotal:      amount("49.90"),
			Shipping:      amount("5.00"),
			Total:         amount("54.90"),
			Status:        StatusDelivered,
			PaymentMethod: "Cash on Delivery",
			CreatedAt:     sampleTime("2025-12-25T14:00:00"),
			UpdatedAt:     sampleTime("2025-12-27T10:15:00"),
			DeliveredAt:   sampleTimePtr("2025-12-27T10:15:00"),
		},
		{
			ID:           "ORD-2025-00005",
			CustomerName: "David Tan",
			Phone:        "0178765432",
			Email:        "david.tan@email.com",
			Address:      "56 Jalan Cempaka, Taman Harmoni, 10450 Georgetown, Penang",
			Items: []OrderItem{
				{BookID: 7, Title: "Whispers of the Void", Quantity: 1, Price: amount("47.50")},
				{BookID: 10, Title: "The Wanderer's Path", Quantity: 2, Price: amount("36.50")},
			},
			Subtotal:      amount("120.50"),
			Shipping:      decimal.Zero,
			Total:         amount("120.50"),
			Status:        StatusCancelled,
			PaymentMethod: "Credit Card",
			Notes:         "Changed my mind",
			CreatedAt:     sampleTime("2025-12-29T11:45:00"),
			UpdatedAt:     sampleTime("2025-12-29T15:30:00"),
			CancelledAt:   sampleTimePtr("2025-12-29T15:30:00"),
			CancelReason:  "Customer requested cancellation",
		},
	}
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleTime(s string) time.Time {
	t, err := time.ParseInLocation(sampleTimeLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleTimePtr(s string) *time.Time {
	t := sampleTime(s)
	return &t
}
