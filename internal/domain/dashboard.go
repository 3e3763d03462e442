package domain

// DashboardStats is the fleet-admin summary.
type DashboardStats struct {
	TotalVehicles       int32             `json:"total_vehicles"`
	AssignedVehicles    int32             `json:"assigned_vehicles"`
	UnassignedVehicles  int32             `json:"unassigned_vehicles"`
	ContractsThisMonth  int32             `json:"contracts_this_month"`
	RentedDaysThisMonth int32             `json:"rented_days_this_month"`
	TopMakes            []MakeCount       `json:"top_makes"`
	MonthlyRentedDays   []MonthRentedDays `json:"monthly_rented_days"`
}

type MakeCount struct {
	Make  string `json:"make"`
	Count int32  `json:"count"`
}

type MonthRentedDays struct {
	Month string `json:"month"`
	Days  int32  `json:"days"`
}
