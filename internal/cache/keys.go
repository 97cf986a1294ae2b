package cache

// Fixed cache keys.
const (
	KeyLatestProducts  = "latest-products"
	KeyCategories      = "categories"
	KeyAllProducts     = "all-products"
	KeyAllOrders       = "all-orders"
	KeyAdminStats      = "admin-stats"
	KeyAdminPieCharts  = "admin-pie-charts"
	KeyAdminBarCharts  = "admin-bar-charts"
	KeyAdminLineCharts = "admin-line-charts"
)

// missingID is the suffix used when an id is absent. Existing clients and
// stored keys depend on the literal value.
const missingID = "undefined"

func ProductKey(id string) string { return "product-" + orMissing(id) }

func MyOrdersKey(userID string) string { return "my-orders-" + orMissing(userID) }

func OrderKey(id string) string { return "orders-" + orMissing(id) }

func orMissing(id string) string {
	if id == "" {
		return missingID
	}
	return id
}
