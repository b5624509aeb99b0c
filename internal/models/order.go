package models

import "time"

// OrderLine is one (order, product) row of the input dataset.
type OrderLine struct {
	OrderID          string
	PurchasedAt      time.Time
	Category         string
	ItemValue        float64
	PaymentValue     float64
	CustomerUniqueID string
	CustomerCity     string
	CustomerState    string
}

type DailyOrders struct {
	Date       time.Time `json:"date"`
	OrderCount int       `json:"order_count"`
	Revenue    float64   `json:"revenue"`
}

type CategoryOrders struct {
	Category   string `json:"category"`
	OrderCount int    `json:"order_count"`
}

type CategoryRevenue struct {
	Category string  `json:"category"`
	Revenue  float64 `json:"revenue"`
}

type StateCustomers struct {
	State         string `json:"customer_state"`
	CustomerCount int    `json:"customer_count"`
}

type CityCustomers struct {
	City          string `json:"customer_city"`
	CustomerCount int    `json:"customer_count"`
}

type CityRevenue struct {
	City         string  `json:"customer_city"`
	PaymentValue float64 `json:"payment_value"`
}

type Summary struct {
	TotalOrders      int     `json:"total_orders"`
	TotalRevenue     float64 `json:"total_revenue"`
	FormattedRevenue string  `json:"formatted_revenue"`
}

// Dashboard bundles every derived view computed for one date range.
type Dashboard struct {
	Range                 DateRange         `json:"range"`
	Summary               Summary           `json:"summary"`
	DailyOrders           []DailyOrders     `json:"daily_orders"`
	CategoryOrders        []CategoryOrders  `json:"category_orders"`
	LowestCategoryOrders  []CategoryOrders  `json:"lowest_category_orders"`
	CategoryRevenue       []CategoryRevenue `json:"category_revenue"`
	LowestCategoryRevenue []CategoryRevenue `json:"lowest_category_revenue"`
	CustomersByState      []StateCustomers  `json:"customers_by_state"`
	CustomersByCity       []CityCustomers   `json:"customers_by_city"`
	TopCities             []CityRevenue     `json:"top_cities"`
	RecordCount           int               `json:"record_count"`
}
