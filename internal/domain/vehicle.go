package domain

type FuelType string

const (
	FuelTypePetrol   FuelType = "PETROL"
	FuelTypeDiesel   FuelType = "DIESEL"
	FuelTypeElectric FuelType = "ELECTRIC"
)

func ValidFuelType(s string) bool {
	switch FuelType(s) {
	case FuelTypePetrol, FuelTypeDiesel, FuelTypeElectric:
		return true
	}
	return false
}

type Vehicle struct {
	ID              int32    `json:"id"`
	SupplierID      int32    `json:"supplier_id"`
	Supplier        *User    `json:"supplier,omitempty"` // Populated when fetching vehicle details
	Make            string   `json:"make"`
	Model           string   `json:"model"`
	FuelType        FuelType `json:"fuel_type"`
	Mileage         int32    `json:"mileage"`
	DailyPriceCents int32    `json:"daily_price_cents"`
	ImagePath       string   `json:"image_path,omitempty"`
	IsAssigned      bool     `json:"is_assigned"`
}

// VehicleFilter narrows available-vehicle listings.
type VehicleFilter struct {
	SupplierID    *int32
	MaxPriceCents *int32
	FuelType      string
	Make          string
}
