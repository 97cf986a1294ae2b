package models

// ChangePercent holds month-over-month changes, in percent.
type ChangePercent struct {
	Revenue float64 `json:"revenue"`
	Product float64 `json:"product"`
	User    float64 `json:"user"`
	Order   float64 `json:"order"`
}

type Counts struct {
	Revenue float64 `json:"revenue"`
	Product int     `json:"product"`
	User    int     `json:"user"`
	Order   int     `json:"order"`
}

type OrderChart struct {
	Order   []float64 `json:"order"`
	Revenue []float64 `json:"revenue"`
}

type UserRatio struct {
	Male   int `json:"male"`
	Female int `json:"female"`
}

type Transaction struct {
	ID       string      `json:"_id"`
	Discount float64     `json:"discount"`
	Amount   float64     `json:"amount"`
	Quantity int         `json:"quantity"`
	Status   OrderStatus `json:"status"`
}

// DashboardStats is the admin dashboard snapshot cached under admin-stats.
type DashboardStats struct {
	CategoryCount     []map[string]int `json:"categoryCount"`
	ChangePercent     ChangePercent    `json:"changePercent"`
	Counts            Counts           `json:"counts"`
	Chart             OrderChart       `json:"chart"`
	UserRatio         UserRatio        `json:"userRatio"`
	LatestTransaction []Transaction    `json:"latestTransaction"`
}

type OrderFullfillment struct {
	Processing int `json:"processing"`
	Shipped    int `json:"shipped"`
	Delivered  int `json:"delivered"`
}

type StockAvailability struct {
	InStock    int `json:"inStock"`
	OutOfStock int `json:"outOfStock"`
}

type RevenueDistribution struct {
	NetMargin      float64 `json:"netMargin"`
	Discount       float64 `json:"discount"`
	ProductionCost float64 `json:"productionCost"`
	Burnt          float64 `json:"burnt"`
	MarketingCost  float64 `json:"marketingCost"`
}

type UsersAgeGroup struct {
	Teen  int `json:"teen"`
	Adult int `json:"adult"`
	Old   int `json:"old"`
}

type AdminCustomer struct {
	Admin    int `json:"admin"`
	Customer int `json:"customer"`
}

type PieCharts struct {
	OrderFullfillment   OrderFullfillment   `json:"orderFullfillment"`
	ProductCategories   []map[string]int    `json:"productCategories"`
	StockAvailability   StockAvailability   `json:"stockAvailability"`
	RevenueDistribution RevenueDistribution `json:"revenueDistribution"`
	UsersAgeGroup       UsersAgeGroup       `json:"usersAgeGroup"`
	AdminCustomer       AdminCustomer       `json:"adminCustomer"`
}

type BarCharts struct {
	Users    []float64 `json:"users"`
	Products []float64 `json:"products"`
	Orders   []float64 `json:"orders"`
}

type LineCharts struct {
	Users    []float64 `json:"users"`
	Products []float64 `json:"products"`
	Discount []float64 `json:"discount"`
	Revenue  []float64 `json:"revenue"`
}
